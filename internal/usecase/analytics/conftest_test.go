package analytics

import (
	"context"
	"sync"

	domain "github.com/2025DataEdu/project-5/internal/domain/analytics"
)

type mockStore struct {
	mu        sync.Mutex
	searches  []domain.SearchLog
	views     []domain.DocumentView
	previous  map[[2]string]domain.PopularStat
	top       []domain.PopularStat
	upserted  []domain.PopularStat
	lastDept  string
	insertErr error
	selectErr error
}

func (m *mockStore) InsertSearchLog(_ context.Context, l domain.SearchLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.searches = append(m.searches, l)
	return nil
}

func (m *mockStore) InsertDocumentView(_ context.Context, v domain.DocumentView) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.views = append(m.views, v)
	return nil
}

func (m *mockStore) Views(_ context.Context) ([]domain.DocumentView, error) {
	return m.views, m.selectErr
}

func (m *mockStore) PopularStats(_ context.Context) (map[[2]string]domain.PopularStat, error) {
	return m.previous, m.selectErr
}

func (m *mockStore) TopPopular(_ context.Context, department string, _ int) ([]domain.PopularStat, error) {
	m.lastDept = department
	return m.top, m.selectErr
}

func (m *mockStore) UpsertPopular(_ context.Context, stats []domain.PopularStat) error {
	m.upserted = stats
	return nil
}
