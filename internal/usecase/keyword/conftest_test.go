package keyword

import (
	"context"
	"errors"
	"sync"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	"github.com/2025DataEdu/project-5/internal/domain/source"
)

var errDown = errors.New("connection refused")

type mockRegistry struct {
	rows      []source.Registry
	recent    []source.Registry
	err       error
	recentErr error
	recentHit bool
}

func (m *mockRegistry) Search(_ context.Context, _ string, _ int) ([]source.Registry, error) {
	return m.rows, m.err
}

func (m *mockRegistry) Recent(_ context.Context, _ int) ([]source.Registry, error) {
	m.recentHit = true
	return m.recent, m.recentErr
}

type mockPDF struct {
	rows []source.PDF
	err  error
}

func (m *mockPDF) Search(_ context.Context, _ string, _ int) ([]source.PDF, error) {
	return m.rows, m.err
}

type mockEmployee struct {
	rows []source.Employee
	err  error
}

func (m *mockEmployee) Search(_ context.Context, _ string, _ int) ([]source.Employee, error) {
	return m.rows, m.err
}

type stubAdapter struct {
	name    string
	results []result.Result
	err     error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Search(_ context.Context, _ string) ([]result.Result, error) {
	if s.err != nil {
		return nil, domain.NewSourceAdapterError(s.name, s.err)
	}
	return s.results, nil
}

type recordedSearch struct {
	session string
	query   string
	count   int
}

type mockSearchLogger struct {
	mu   sync.Mutex
	logs []recordedSearch
}

func (m *mockSearchLogger) LogSearch(s domain.Session, q string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, recordedSearch{session: s.ID, query: q, count: n})
}
