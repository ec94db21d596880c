package embeddings

import (
	"context"

	"gorm.io/gorm"

	"github.com/2025DataEdu/project-5/internal/db"
	"github.com/2025DataEdu/project-5/internal/domain/embedding"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
)

// Repo stores document embeddings.
type Repo struct {
	sql *db.SQL
}

// New creates an embeddings repository.
func New(s *db.SQL) *Repo {
	return &Repo{sql: s}
}

// Hashes returns document_id -> content_hash for every stored embedding of docType.
func (r *Repo) Hashes(ctx context.Context, docType string) (map[string]string, error) {
	var rows []Model
	err := r.sql.DB().WithContext(ctx).
		Select("document_id", "content_hash").
		Where("document_type = ?", docType).
		Find(&rows).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	out := make(map[string]string, len(rows))
	for _, m := range rows {
		out[m.DocumentID] = m.ContentHash
	}
	return out, nil
}

// Insert stores one embedding.
func (r *Repo) Insert(ctx context.Context, doc embedding.Document) error {
	m := fromDomain(doc)
	if err := r.sql.DB().WithContext(ctx).Create(&m).Error; err != nil {
		return &db.Error{Op: db.OpInsert, Err: err}
	}
	return nil
}

// Replace swaps the stored embeddings of doc's document for doc in one
// transaction. A failed insert leaves the previous rows in place.
func (r *Repo) Replace(ctx context.Context, doc embedding.Document) error {
	m := fromDomain(doc)
	return r.sql.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("document_type = ? AND document_id = ?", doc.DocumentType, doc.DocumentID).
			Delete(&Model{}).Error
		if err != nil {
			return &db.Error{Op: db.OpDelete, Err: err}
		}
		if err := tx.Create(&m).Error; err != nil {
			return &db.Error{Op: db.OpInsert, Err: err}
		}
		return nil
	})
}

// All loads every stored embedding with its vector.
func (r *Repo) All(ctx context.Context) ([]embedding.Document, error) {
	var rows []Model
	if err := r.sql.DB().WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	out := make([]embedding.Document, 0, len(rows))
	for i := range rows {
		d, err := rows[i].toDomain()
		if err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: err}
		}
		out = append(out, d)
	}
	return out, nil
}

// Stats counts stored embeddings in total, per document type and per department.
func (r *Repo) Stats(ctx context.Context) (embedding.Stats, error) {
	var rows []Model
	err := r.sql.DB().WithContext(ctx).
		Select("document_type", "department").
		Find(&rows).Error
	if err != nil {
		return embedding.Stats{}, &db.Error{Op: db.OpSelect, Err: err}
	}

	stats := embedding.Stats{
		Total:        len(rows),
		ByType:       make(map[string]int),
		ByDepartment: make(map[string]int),
	}
	for _, m := range rows {
		docType := m.DocumentType
		if docType == "" {
			docType = result.UnclassifiedDepartment
		}
		stats.ByType[docType]++
		if m.Department != "" {
			stats.ByDepartment[m.Department]++
		}
	}
	return stats, nil
}
