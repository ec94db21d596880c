package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsdomain "github.com/2025DataEdu/project-5/internal/domain/analytics"
)

func TestAggregateViews(t *testing.T) {
	view := func(id string, age time.Duration) analyticsdomain.DocumentView {
		return analyticsdomain.DocumentView{DocumentID: id, DocumentType: "결재문서", Department: "총무과", ViewedAt: fixedNow.Add(-age)}
	}
	views := []analyticsdomain.DocumentView{
		view("a", time.Hour),
		view("b", 2*24*time.Hour),
		view("b", 10*24*time.Hour),
		view("b", 40*24*time.Hour),
		view("a", 3*time.Hour),
	}
	previous := map[[2]string]analyticsdomain.PopularStat{
		{"결재문서", "a"}: {WeeklyViews: 4},
	}

	got := aggregateViews(views, previous, fixedNow)
	require.Len(t, got, 2)

	b := got[0]
	assert.Equal(t, "b", b.DocumentID)
	assert.Equal(t, 3, b.ViewCount)
	assert.Equal(t, 1, b.WeeklyViews)
	assert.Equal(t, 2, b.MonthlyViews)
	assert.Equal(t, 1, b.RankPosition)
	assert.Equal(t, 100.0, b.WeeklyGrowthRate)
	require.NotNil(t, b.LastViewed)
	assert.Equal(t, fixedNow.Add(-2*24*time.Hour), *b.LastViewed)

	a := got[1]
	assert.Equal(t, 2, a.ViewCount)
	assert.Equal(t, 2, a.WeeklyViews)
	assert.Equal(t, 2, a.RankPosition)
	assert.Equal(t, -50.0, a.WeeklyGrowthRate)
	assert.Equal(t, fixedNow.Add(-time.Hour), *a.LastViewed)
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name     string
		old, new int
		want     float64
	}{
		{"no history with views", 0, 3, 100},
		{"no history no views", 0, 0, 0},
		{"growth", 3, 4, 33.33},
		{"decline", 4, 1, -75},
		{"flat", 5, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, growthRate(tt.old, tt.new), 1e-9)
		})
	}
}
