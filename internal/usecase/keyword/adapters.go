package keyword

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	"github.com/2025DataEdu/project-5/internal/domain/source"
)

// Limits bounds the rows each adapter fetches.
type Limits struct {
	Registry         int
	RegistryFallback int
	PDF              int
	Employee         int
}

// DefaultLimits are the production row limits.
var DefaultLimits = Limits{Registry: 30, RegistryFallback: 15, PDF: 30, Employee: 15}

func (l Limits) withDefaults() Limits {
	if l.Registry <= 0 {
		l.Registry = DefaultLimits.Registry
	}
	if l.RegistryFallback <= 0 {
		l.RegistryFallback = DefaultLimits.RegistryFallback
	}
	if l.PDF <= 0 {
		l.PDF = DefaultLimits.PDF
	}
	if l.Employee <= 0 {
		l.Employee = DefaultLimits.Employee
	}
	return l
}

func mapRows[R source.Row](rows []R, now time.Time) []result.Result {
	out := make([]result.Result, len(rows))
	for i, r := range rows {
		out[i] = r.Result(now)
	}
	return out
}

// RegistryAdapter searches the approval document registry.
type RegistryAdapter struct {
	store         RegistryStore
	limit         int
	fallbackLimit int
	now           func() time.Time
	logger        *zap.Logger
}

// NewRegistryAdapter creates the registry adapter.
func NewRegistryAdapter(s RegistryStore, limits Limits, logger *zap.Logger) *RegistryAdapter {
	limits = limits.withDefaults()
	return &RegistryAdapter{
		store:         s,
		limit:         limits.Registry,
		fallbackLimit: limits.RegistryFallback,
		now:           time.Now,
		logger:        logger,
	}
}

// Name implements Adapter.
func (a *RegistryAdapter) Name() string { return result.TypeRegistry }

// Search implements Adapter. With no direct hit it scans the most recent
// titled rows and filters them in memory.
func (a *RegistryAdapter) Search(ctx context.Context, q string) ([]result.Result, error) {
	rows, err := a.store.Search(ctx, q, a.limit)
	if err != nil {
		return nil, domain.NewSourceAdapterError(a.Name(), err)
	}
	if len(rows) > 0 {
		return mapRows(rows, a.now()), nil
	}

	recent, err := a.store.Recent(ctx, a.fallbackLimit)
	if err != nil {
		a.logger.Warn("Registry fallback scan failed", zap.String("query", q), zap.Error(err))
		return []result.Result{}, nil
	}

	needle := strings.ToLower(q)
	matched := recent[:0]
	for _, r := range recent {
		if strings.Contains(strings.ToLower(r.Title), needle) ||
			strings.Contains(strings.ToLower(r.Department), needle) {
			matched = append(matched, r)
		}
	}
	return mapRows(matched, a.now()), nil
}

// PDFAdapter searches uploaded PDF documents.
type PDFAdapter struct {
	store PDFStore
	limit int
	now   func() time.Time
}

// NewPDFAdapter creates the PDF adapter.
func NewPDFAdapter(s PDFStore, limits Limits) *PDFAdapter {
	return &PDFAdapter{store: s, limit: limits.withDefaults().PDF, now: time.Now}
}

// Name implements Adapter.
func (a *PDFAdapter) Name() string { return result.TypePDF }

// Search implements Adapter.
func (a *PDFAdapter) Search(ctx context.Context, q string) ([]result.Result, error) {
	rows, err := a.store.Search(ctx, q, a.limit)
	if err != nil {
		return nil, domain.NewSourceAdapterError(a.Name(), err)
	}
	return mapRows(rows, a.now()), nil
}

// EmployeeAdapter searches the employee directory.
type EmployeeAdapter struct {
	store EmployeeStore
	limit int
	now   func() time.Time
}

// NewEmployeeAdapter creates the employee adapter.
func NewEmployeeAdapter(s EmployeeStore, limits Limits) *EmployeeAdapter {
	return &EmployeeAdapter{store: s, limit: limits.withDefaults().Employee, now: time.Now}
}

// Name implements Adapter.
func (a *EmployeeAdapter) Name() string { return result.TypeEmployee }

// Search implements Adapter.
func (a *EmployeeAdapter) Search(ctx context.Context, q string) ([]result.Result, error) {
	rows, err := a.store.Search(ctx, q, a.limit)
	if err != nil {
		return nil, domain.NewSourceAdapterError(a.Name(), err)
	}
	return mapRows(rows, a.now()), nil
}
