package employee

import (
	"context"

	"github.com/2025DataEdu/project-5/internal/db"
	"github.com/2025DataEdu/project-5/internal/domain/source"
)

// Repo reads the employee directory.
type Repo struct {
	sql *db.SQL
}

// New creates an employee repository.
func New(s *db.SQL) *Repo {
	return &Repo{sql: s}
}

// Search matches q against duty, department or position.
func (r *Repo) Search(ctx context.Context, q string, limit int) ([]source.Employee, error) {
	pattern := db.ContainsPattern(q)
	var rows []Model
	err := r.sql.DB().WithContext(ctx).
		Where(db.ContainsClause(`"담당업무"`), pattern).
		Or(db.ContainsClause(`"부서명"`), pattern).
		Or(db.ContainsClause(`"직책"`), pattern).
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomain(rows), nil
}
