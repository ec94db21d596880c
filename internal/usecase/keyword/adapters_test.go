package keyword

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	"github.com/2025DataEdu/project-5/internal/domain/source"
)

func TestRegistryAdapter_DirectHit(t *testing.T) {
	store := &mockRegistry{rows: []source.Registry{{ID: 7, Title: "출장 규정", Department: "총무과", CreatedAt: "2024-03-01"}}}
	a := NewRegistryAdapter(store, Limits{}, zap.NewNop())

	got, err := a.Search(context.Background(), "출장")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "출장 규정" || got[0].Type != result.TypeRegistry {
		t.Fatalf("unexpected results: %+v", got)
	}
	if store.recentHit {
		t.Error("fallback scan must not run when the direct search matched")
	}
}

func TestRegistryAdapter_FallbackFilters(t *testing.T) {
	store := &mockRegistry{recent: []source.Registry{
		{ID: 1, Title: "Travel Policy", Department: "HR"},
		{ID: 2, Title: "예산 편성", Department: "기획예산과"},
		{ID: 3, Title: "회의록", Department: "travel team"},
	}}
	a := NewRegistryAdapter(store, Limits{}, zap.NewNop())

	got, err := a.Search(context.Background(), "TRAVEL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.recentHit {
		t.Fatal("expected fallback scan")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 fallback matches, got %d", len(got))
	}
	if got[0].Title != "Travel Policy" || got[1].Title != "회의록" {
		t.Errorf("unexpected order: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestRegistryAdapter_FallbackErrorIsSwallowed(t *testing.T) {
	store := &mockRegistry{recentErr: errDown}
	a := NewRegistryAdapter(store, Limits{}, zap.NewNop())

	got, err := a.Search(context.Background(), "출장")
	if err != nil {
		t.Fatalf("fallback failure must not fail the adapter: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestRegistryAdapter_Error(t *testing.T) {
	a := NewRegistryAdapter(&mockRegistry{err: errDown}, Limits{}, zap.NewNop())

	_, err := a.Search(context.Background(), "출장")
	var srcErr *domain.SourceAdapterError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceAdapterError, got %v", err)
	}
	if srcErr.Source != result.TypeRegistry {
		t.Errorf("expected source %q, got %q", result.TypeRegistry, srcErr.Source)
	}
	if !errors.Is(err, errDown) {
		t.Error("expected cause to be preserved")
	}
}

func TestPDFAdapter(t *testing.T) {
	a := NewPDFAdapter(&mockPDF{rows: []source.PDF{{ID: "p1", Title: "보안 지침", FileName: "sec.pdf"}}}, Limits{})

	got, err := a.Search(context.Background(), "보안")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Type != result.TypePDF {
		t.Fatalf("unexpected results: %+v", got)
	}

	_, err = NewPDFAdapter(&mockPDF{err: errDown}, Limits{}).Search(context.Background(), "보안")
	var srcErr *domain.SourceAdapterError
	if !errors.As(err, &srcErr) || srcErr.Source != result.TypePDF {
		t.Errorf("expected PDF source error, got %v", err)
	}
}

func TestEmployeeAdapter(t *testing.T) {
	a := NewEmployeeAdapter(&mockEmployee{rows: []source.Employee{{ID: 3, Duty: "예산 편성", Department: "기획예산과"}}}, Limits{})

	got, err := a.Search(context.Background(), "예산")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Type != result.TypeEmployee {
		t.Fatalf("unexpected results: %+v", got)
	}

	_, err = NewEmployeeAdapter(&mockEmployee{err: errDown}, Limits{}).Search(context.Background(), "예산")
	var srcErr *domain.SourceAdapterError
	if !errors.As(err, &srcErr) || srcErr.Source != result.TypeEmployee {
		t.Errorf("expected employee source error, got %v", err)
	}
}

func TestLimits_WithDefaults(t *testing.T) {
	l := Limits{PDF: 5}.withDefaults()
	if l.PDF != 5 || l.Registry != 30 || l.RegistryFallback != 15 || l.Employee != 15 {
		t.Errorf("unexpected limits: %+v", l)
	}
}
