package pdf

import (
	"context"

	"gorm.io/gorm"

	"github.com/2025DataEdu/project-5/internal/db"
	"github.com/2025DataEdu/project-5/internal/domain/source"
)

// Repo reads uploaded PDF documents.
type Repo struct {
	sql *db.SQL
}

// New creates a PDF repository.
func New(s *db.SQL) *Repo {
	return &Repo{sql: s}
}

func (r *Repo) active(ctx context.Context) *gorm.DB {
	return r.sql.DB().WithContext(ctx).Model(&Model{}).Where("status = ?", StatusActive)
}

// Search matches q against title, extracted text, department or file name
// of active documents, newest upload first.
func (r *Repo) Search(ctx context.Context, q string, limit int) ([]source.PDF, error) {
	pattern := db.ContainsPattern(q)
	match := r.sql.DB().
		Where(db.ContainsClause("title"), pattern).
		Or(db.ContainsClause("content_text"), pattern).
		Or(db.ContainsClause("department"), pattern).
		Or(db.ContainsClause("file_name"), pattern)

	var rows []Model
	err := r.active(ctx).
		Where(match).
		Order("upload_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomain(rows), nil
}

// CountActive returns the number of active documents.
func (r *Repo) CountActive(ctx context.Context) (int, error) {
	var n int64
	if err := r.active(ctx).Count(&n).Error; err != nil {
		return 0, &db.Error{Op: db.OpSelect, Err: err}
	}
	return int(n), nil
}

// PageActive returns active documents ordered by id.
func (r *Repo) PageActive(ctx context.Context, offset, limit int) ([]source.PDF, error) {
	var rows []Model
	err := r.active(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomain(rows), nil
}
