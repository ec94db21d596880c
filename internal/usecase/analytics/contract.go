package analytics

import (
	"context"

	domain "github.com/2025DataEdu/project-5/internal/domain/analytics"
)

type store interface {
	InsertSearchLog(ctx context.Context, l domain.SearchLog) error
	InsertDocumentView(ctx context.Context, v domain.DocumentView) error
	Views(ctx context.Context) ([]domain.DocumentView, error)
	PopularStats(ctx context.Context) (map[[2]string]domain.PopularStat, error)
	TopPopular(ctx context.Context, department string, limit int) ([]domain.PopularStat, error)
	UpsertPopular(ctx context.Context, stats []domain.PopularStat) error
}
