package embeddings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2025DataEdu/project-5/internal/domain/embedding"
)

// Model is the document_embeddings table. Embedding holds the pgvector text
// form "[x,y,...]", which PostgreSQL casts to vector and SQLite stores as text.
type Model struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DocumentID    string    `gorm:"column:document_id;not null;index:document_embeddings_document_idx,priority:2"`
	DocumentTitle string    `gorm:"column:document_title"`
	DocumentType  string    `gorm:"column:document_type;not null;index:document_embeddings_document_idx,priority:1"`
	Department    string    `gorm:"column:department"`
	ContentText   string    `gorm:"column:content_text"`
	ContentHash   string    `gorm:"column:content_hash;not null;default:''"`
	Embedding     string    `gorm:"column:embedding"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

// TableName implements gorm's tabler.
func (Model) TableName() string { return "document_embeddings" }

func fromDomain(d embedding.Document) Model {
	return Model{
		DocumentID:    d.DocumentID,
		DocumentTitle: d.DocumentTitle,
		DocumentType:  d.DocumentType,
		Department:    d.Department,
		ContentText:   d.ContentText,
		ContentHash:   d.ContentHash,
		Embedding:     FormatVector(d.Embedding),
	}
}

func (m *Model) toDomain() (embedding.Document, error) {
	vec, err := ParseVector(m.Embedding)
	if err != nil {
		return embedding.Document{}, fmt.Errorf("embedding of %s/%s: %w", m.DocumentType, m.DocumentID, err)
	}
	return embedding.Document{
		DocumentID:    m.DocumentID,
		DocumentTitle: m.DocumentTitle,
		DocumentType:  m.DocumentType,
		Department:    m.Department,
		ContentText:   m.ContentText,
		ContentHash:   m.ContentHash,
		Embedding:     vec,
	}, nil
}

// FormatVector renders v in pgvector text form.
func FormatVector(v []float32) string {
	var b strings.Builder
	b.Grow(len(v)*10 + 2)
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// ParseVector parses the pgvector text form. An empty string yields nil.
func ParseVector(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("invalid vector literal %.20q", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return []float32{}, nil
	}
	parts := strings.Split(body, ",")
	out := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %d: %w", i, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}
