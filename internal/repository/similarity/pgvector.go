// Package similarity runs nearest-neighbour queries over stored embeddings.
package similarity

import (
	"context"
	"fmt"

	"github.com/2025DataEdu/project-5/internal/db"
	"github.com/2025DataEdu/project-5/internal/domain/embedding"
	"github.com/2025DataEdu/project-5/internal/repository/embeddings"
)

const similarSQL = `SELECT document_id, document_title, document_type, department, content_text, similarity
FROM search_similar_documents(CAST(? AS vector), ?, ?)`

type matchRow struct {
	DocumentID    string
	DocumentTitle *string
	DocumentType  string
	Department    *string
	ContentText   *string
	Similarity    float64
}

// PGVector queries the search_similar_documents SQL function.
type PGVector struct {
	sql *db.SQL
}

// NewPGVector creates a pgvector-backed similarity index.
func NewPGVector(s *db.SQL) (*PGVector, error) {
	if !s.SupportsVectorSearch() {
		return nil, fmt.Errorf("driver %q: %w", s.Driver(), db.ErrVectorUnsupported)
	}
	return &PGVector{sql: s}, nil
}

// Similar returns up to count embeddings whose cosine similarity to vec is at least threshold.
func (p *PGVector) Similar(ctx context.Context, vec []float32, threshold float64, count int) ([]embedding.Match, error) {
	var rows []matchRow
	err := p.sql.DB().WithContext(ctx).
		Raw(similarSQL, embeddings.FormatVector(vec), threshold, count).
		Scan(&rows).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSimilarTo, Err: err}
	}

	out := make([]embedding.Match, len(rows))
	for i, r := range rows {
		out[i] = embedding.Match{
			DocumentID:    r.DocumentID,
			DocumentTitle: deref(r.DocumentTitle),
			DocumentType:  r.DocumentType,
			Department:    deref(r.Department),
			ContentText:   deref(r.ContentText),
			Similarity:    r.Similarity,
		}
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
