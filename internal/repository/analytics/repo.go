package analytics

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/2025DataEdu/project-5/internal/db"
	domain "github.com/2025DataEdu/project-5/internal/domain/analytics"
)

// Repo persists search and view analytics.
type Repo struct {
	sql *db.SQL
}

// New creates an analytics repository.
func New(s *db.SQL) *Repo {
	return &Repo{sql: s}
}

// InsertSearchLog records one search.
func (r *Repo) InsertSearchLog(ctx context.Context, l domain.SearchLog) error {
	m := SearchLogModel{
		Query:        l.Query,
		ResultsCount: l.ResultsCount,
		UserSession:  l.SessionID,
		SearchDate:   l.SearchedAt,
	}
	if err := r.sql.DB().WithContext(ctx).Create(&m).Error; err != nil {
		return &db.Error{Op: db.OpInsert, Err: err}
	}
	return nil
}

// InsertDocumentView records one document view.
func (r *Repo) InsertDocumentView(ctx context.Context, v domain.DocumentView) error {
	m := DocumentViewModel{
		DocumentID:    v.DocumentID,
		DocumentType:  v.DocumentType,
		DocumentTitle: v.DocumentTitle,
		Department:    v.Department,
		UserSession:   v.SessionID,
		SearchQuery:   v.SearchQuery,
		ViewDate:      v.ViewedAt,
	}
	if err := r.sql.DB().WithContext(ctx).Create(&m).Error; err != nil {
		return &db.Error{Op: db.OpInsert, Err: err}
	}
	return nil
}

// Views returns every recorded document view.
func (r *Repo) Views(ctx context.Context) ([]domain.DocumentView, error) {
	var rows []DocumentViewModel
	if err := r.sql.DB().WithContext(ctx).Order("view_date").Find(&rows).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	out := make([]domain.DocumentView, len(rows))
	for i, m := range rows {
		out[i] = domain.DocumentView{
			DocumentID:    m.DocumentID,
			DocumentType:  m.DocumentType,
			DocumentTitle: m.DocumentTitle,
			Department:    m.Department,
			SearchQuery:   m.SearchQuery,
			SessionID:     m.UserSession,
			ViewedAt:      m.ViewDate,
		}
	}
	return out, nil
}

// PopularStats returns stored statistics keyed by document type and id.
func (r *Repo) PopularStats(ctx context.Context) (map[[2]string]domain.PopularStat, error) {
	var rows []PopularStatModel
	if err := r.sql.DB().WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	out := make(map[[2]string]domain.PopularStat, len(rows))
	for i := range rows {
		out[[2]string{rows[i].DocumentType, rows[i].DocumentID}] = rows[i].toDomain()
	}
	return out, nil
}

// TopPopular returns the most viewed documents, optionally for one department.
func (r *Repo) TopPopular(ctx context.Context, department string, limit int) ([]domain.PopularStat, error) {
	tx := r.sql.DB().WithContext(ctx).Order("view_count DESC").Limit(limit)
	if department != "" && department != domain.AllDepartments {
		tx = tx.Where("department = ?", department)
	}
	var rows []PopularStatModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	out := make([]domain.PopularStat, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// UpsertPopular writes statistics, replacing rows with the same document.
func (r *Repo) UpsertPopular(ctx context.Context, stats []domain.PopularStat) error {
	if len(stats) == 0 {
		return nil
	}
	rows := make([]PopularStatModel, len(stats))
	for i, s := range stats {
		rows[i] = popularFromDomain(s)
	}
	err := r.sql.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "document_id"}, {Name: "document_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"document_title",
				"department",
				"view_count",
				"weekly_views",
				"monthly_views",
				"weekly_growth_rate",
				"rank_position",
				"last_viewed",
				"updated_at",
			}),
		}).
		Create(&rows).Error
	if err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	return nil
}
