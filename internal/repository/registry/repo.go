package registry

import (
	"context"
	"strings"

	"github.com/2025DataEdu/project-5/internal/db"
	"github.com/2025DataEdu/project-5/internal/domain/source"
)

const (
	colTitle      = `"제목"`
	colDepartment = `"전체부서명"`
	colCreatedAt  = `"생성일자"`
)

// Repo reads the approval document registry.
type Repo struct {
	sql *db.SQL
}

// New creates a registry repository.
func New(s *db.SQL) *Repo {
	return &Repo{sql: s}
}

// Search matches q against title or department, newest first.
// For a multi-word q the title is also matched against the first word alone.
func (r *Repo) Search(ctx context.Context, q string, limit int) ([]source.Registry, error) {
	pattern := db.ContainsPattern(q)
	tx := r.sql.DB().WithContext(ctx).
		Where(db.ContainsClause(colTitle), pattern).
		Or(db.ContainsClause(colDepartment), pattern)

	if words := strings.Fields(q); len(words) > 1 {
		tx = tx.Or(db.ContainsClause(colTitle), db.ContainsPattern(words[0]))
	}

	var rows []Model
	if err := tx.Order(colCreatedAt + " DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomain(rows), nil
}

// Recent returns the newest rows that have a title.
func (r *Repo) Recent(ctx context.Context, limit int) ([]source.Registry, error) {
	var rows []Model
	err := r.sql.DB().WithContext(ctx).
		Where(colTitle + " IS NOT NULL").
		Order(colCreatedAt + " DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomain(rows), nil
}

// Count returns the number of registry rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.sql.DB().WithContext(ctx).Model(&Model{}).Count(&n).Error; err != nil {
		return 0, &db.Error{Op: db.OpSelect, Err: err}
	}
	return int(n), nil
}

// Page returns rows ordered by id.
func (r *Repo) Page(ctx context.Context, offset, limit int) ([]source.Registry, error) {
	var rows []Model
	err := r.sql.DB().WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomain(rows), nil
}
