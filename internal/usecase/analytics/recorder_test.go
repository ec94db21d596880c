package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain"
	analyticsdomain "github.com/2025DataEdu/project-5/internal/domain/analytics"
)

var fixedNow = time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)

func newRecorder(t *testing.T, s *mockStore) *Recorder {
	t.Helper()
	r, err := NewRecorder(s, Config{PoolSize: 2}, zap.NewNop())
	require.NoError(t, err)
	return r.WithClock(func() time.Time { return fixedNow })
}

func TestLogSearch(t *testing.T) {
	s := &mockStore{}
	r := newRecorder(t, s)

	r.LogSearch(domain.Session{ID: "session_1"}, "출장", 4)
	r.Close(time.Second)

	require.Len(t, s.searches, 1)
	assert.Equal(t, analyticsdomain.SearchLog{
		Query:        "출장",
		ResultsCount: 4,
		SessionID:    "session_1",
		SearchedAt:   fixedNow,
	}, s.searches[0])
}

func TestLogSearch_StoreErrorIsSwallowed(t *testing.T) {
	s := &mockStore{insertErr: errors.New("db down")}
	r := newRecorder(t, s)

	assert.NotPanics(t, func() { r.LogSearch(domain.Session{ID: "s"}, "q", 0) })
	r.Close(time.Second)
	assert.Empty(t, s.searches)
}

func TestLogSearch_AfterCloseIsDropped(t *testing.T) {
	s := &mockStore{}
	r := newRecorder(t, s)
	r.Close(time.Second)

	assert.NotPanics(t, func() { r.LogSearch(domain.Session{ID: "s"}, "q", 1) })
	assert.Empty(t, s.searches)
}

func TestLogDocumentView(t *testing.T) {
	s := &mockStore{}
	r := newRecorder(t, s)

	r.LogDocumentView(domain.Session{ID: "session_2"}, analyticsdomain.DocumentView{
		DocumentID:   "결재문서-7",
		DocumentType: "결재문서",
		SearchQuery:  "출장",
	})
	r.Close(time.Second)

	require.Len(t, s.views, 1)
	assert.Equal(t, "session_2", s.views[0].SessionID)
	assert.Equal(t, fixedNow, s.views[0].ViewedAt)
	assert.Equal(t, "출장", s.views[0].SearchQuery)
}

func TestPopularStatistics(t *testing.T) {
	last := fixedNow.Add(-3 * time.Hour)
	s := &mockStore{top: []analyticsdomain.PopularStat{
		{DocumentID: "1", DocumentType: "결재문서", DocumentTitle: "출장 규정", Department: "총무과", ViewCount: 9, WeeklyGrowthRate: 12.5, LastViewed: &last},
		{DocumentID: "2", DocumentType: "PDF문서", ViewCount: 3},
	}}
	r := newRecorder(t, s)
	defer r.Close(time.Second)

	got, err := r.PopularStatistics(context.Background(), "총무과")
	require.NoError(t, err)
	assert.Equal(t, "총무과", s.lastDept)
	require.Len(t, got, 2)

	assert.Equal(t, analyticsdomain.PopularEntry{
		Rank: 1, Title: "출장 규정", Department: "총무과", ViewCount: 9,
		WeeklyGrowth: 12.5, Type: "결재문서", LastViewed: "3시간 전",
	}, got[0])
	assert.Equal(t, 2, got[1].Rank)
	assert.Equal(t, "제목 없음", got[1].Title)
	assert.Equal(t, "미분류", got[1].Department)
	assert.Equal(t, "기록 없음", got[1].LastViewed)
}

func TestPopularStatistics_Error(t *testing.T) {
	s := &mockStore{selectErr: errors.New("db down")}
	r := newRecorder(t, s)
	defer r.Close(time.Second)

	_, err := r.PopularStatistics(context.Background(), "")
	assert.Error(t, err)
}

func TestRefreshPopularStatistics(t *testing.T) {
	s := &mockStore{
		views: []analyticsdomain.DocumentView{
			{DocumentID: "1", DocumentType: "결재문서", DocumentTitle: "출장 규정", ViewedAt: fixedNow.Add(-time.Hour)},
			{DocumentID: "2", DocumentType: "PDF문서", DocumentTitle: "보안 지침", ViewedAt: fixedNow.Add(-2 * time.Hour)},
			{DocumentID: "2", DocumentType: "PDF문서", ViewedAt: fixedNow.Add(-20 * 24 * time.Hour)},
		},
		previous: map[[2]string]analyticsdomain.PopularStat{},
	}
	r := newRecorder(t, s)
	defer r.Close(time.Second)

	n, err := r.RefreshPopularStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, s.upserted, 2)
	assert.Equal(t, "2", s.upserted[0].DocumentID)
	assert.Equal(t, 1, s.upserted[0].RankPosition)
	assert.Equal(t, "보안 지침", s.upserted[0].DocumentTitle)
}
