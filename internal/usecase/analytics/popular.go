package analytics

import (
	"context"

	"go.uber.org/zap"

	analyticsdomain "github.com/2025DataEdu/project-5/internal/domain/analytics"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
)

// PopularStatistics returns the top documents by view count.
// An empty department or "전체" means every department.
func (r *Recorder) PopularStatistics(ctx context.Context, department string) ([]analyticsdomain.PopularEntry, error) {
	stats, err := r.store.TopPopular(ctx, department, popularLimit)
	if err != nil {
		return nil, err
	}

	now := r.now()
	out := make([]analyticsdomain.PopularEntry, len(stats))
	for i, s := range stats {
		title := s.DocumentTitle
		if title == "" {
			title = result.UntitledDocument
		}
		dept := s.Department
		if dept == "" {
			dept = result.UnclassifiedDepartment
		}
		out[i] = analyticsdomain.PopularEntry{
			Rank:         i + 1,
			Title:        title,
			Department:   dept,
			ViewCount:    s.ViewCount,
			WeeklyGrowth: s.WeeklyGrowthRate,
			Type:         s.DocumentType,
			LastViewed:   analyticsdomain.FormatLastViewed(s.LastViewed, now),
		}
	}
	return out, nil
}

// RefreshPopularStatistics rebuilds the statistics table from all recorded
// views and returns the number of documents written.
func (r *Recorder) RefreshPopularStatistics(ctx context.Context) (int, error) {
	views, err := r.store.Views(ctx)
	if err != nil {
		return 0, err
	}
	previous, err := r.store.PopularStats(ctx)
	if err != nil {
		return 0, err
	}

	stats := aggregateViews(views, previous, r.now())
	if err := r.store.UpsertPopular(ctx, stats); err != nil {
		return 0, err
	}
	r.logger.Info("Popular statistics refreshed", zap.Int("documents", len(stats)), zap.Int("views", len(views)))
	return len(stats), nil
}
