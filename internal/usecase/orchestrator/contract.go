package orchestrator

import (
	"context"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	"github.com/2025DataEdu/project-5/internal/usecase/fallback"
	"github.com/2025DataEdu/project-5/internal/usecase/search"
)

// KeywordSearcher collects keyword results from every source.
type KeywordSearcher interface {
	Collect(ctx context.Context, q string) ([]result.Result, error)
}

// SmartSearcher runs vector search.
type SmartSearcher interface {
	SmartSearch(ctx context.Context, q string, opts search.Options) ([]result.Result, error)
}

// Explainer produces AI guidance.
type Explainer interface {
	Explain(ctx context.Context, q string) (fallback.Answer, error)
}

// SearchLogger records searches without blocking.
type SearchLogger interface {
	LogSearch(session domain.Session, q string, resultsCount int)
}
