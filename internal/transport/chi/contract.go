package chi

import (
	"context"

	"github.com/2025DataEdu/project-5/internal/domain"
	analyticsdomain "github.com/2025DataEdu/project-5/internal/domain/analytics"
	"github.com/2025DataEdu/project-5/internal/domain/embedding"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	"github.com/2025DataEdu/project-5/internal/usecase/fallback"
	healthuc "github.com/2025DataEdu/project-5/internal/usecase/health"
	"github.com/2025DataEdu/project-5/internal/usecase/indexing"
	"github.com/2025DataEdu/project-5/internal/usecase/orchestrator"
	"github.com/2025DataEdu/project-5/internal/usecase/search"
)

// KeywordSearcher runs the keyword-only search.
type KeywordSearcher interface {
	PerformSearch(ctx context.Context, session domain.Session, q string) ([]result.Result, error)
}

// SmartSearcher runs vector search.
type SmartSearcher interface {
	SmartSearch(ctx context.Context, q string, opts search.Options) ([]result.Result, error)
}

// HybridSearcher runs the full hybrid search and exposes its state.
type HybridSearcher interface {
	Search(ctx context.Context, session domain.Session, q string) (orchestrator.Outcome, error)
	State() orchestrator.State
}

// Explainer produces AI guidance.
type Explainer interface {
	Explain(ctx context.Context, q string) (fallback.Answer, error)
}

// Indexer generates embeddings.
type Indexer interface {
	Generate(ctx context.Context) (indexing.Summary, error)
	Stats(ctx context.Context) (embedding.Stats, error)
}

// Analytics records views and serves popular statistics.
type Analytics interface {
	LogDocumentView(session domain.Session, v analyticsdomain.DocumentView)
	PopularStatistics(ctx context.Context, department string) ([]analyticsdomain.PopularEntry, error)
	RefreshPopularStatistics(ctx context.Context) (int, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
