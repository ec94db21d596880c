package analytics

import (
	"math"
	"sort"
	"time"

	analyticsdomain "github.com/2025DataEdu/project-5/internal/domain/analytics"
)

const (
	week  = 7 * 24 * time.Hour
	month = 30 * 24 * time.Hour
)

// aggregateViews groups views per document and ranks them by total views.
// Growth compares this week's views with the previously stored weekly count.
func aggregateViews(
	views []analyticsdomain.DocumentView,
	previous map[[2]string]analyticsdomain.PopularStat,
	now time.Time,
) []analyticsdomain.PopularStat {
	index := make(map[[2]string]int)
	var stats []analyticsdomain.PopularStat

	for _, v := range views {
		key := [2]string{v.DocumentType, v.DocumentID}
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, analyticsdomain.PopularStat{
				DocumentID:   v.DocumentID,
				DocumentType: v.DocumentType,
			})
		}
		s := &stats[i]
		if v.DocumentTitle != "" {
			s.DocumentTitle = v.DocumentTitle
		}
		if v.Department != "" {
			s.Department = v.Department
		}
		s.ViewCount++
		age := now.Sub(v.ViewedAt)
		if age <= week {
			s.WeeklyViews++
		}
		if age <= month {
			s.MonthlyViews++
		}
		if s.LastViewed == nil || v.ViewedAt.After(*s.LastViewed) {
			at := v.ViewedAt
			s.LastViewed = &at
		}
	}

	for i := range stats {
		old := previous[[2]string{stats[i].DocumentType, stats[i].DocumentID}]
		stats[i].WeeklyGrowthRate = growthRate(old.WeeklyViews, stats[i].WeeklyViews)
	}

	sort.SliceStable(stats, func(a, b int) bool { return stats[a].ViewCount > stats[b].ViewCount })
	for i := range stats {
		stats[i].RankPosition = i + 1
	}
	return stats
}

func growthRate(oldWeekly, newWeekly int) float64 {
	if oldWeekly > 0 {
		g := float64(newWeekly-oldWeekly) / float64(oldWeekly) * 100
		return math.Round(g*100) / 100
	}
	if newWeekly > 0 {
		return 100
	}
	return 0
}
