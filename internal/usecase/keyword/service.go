package keyword

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	"github.com/2025DataEdu/project-5/internal/metrics"
	"github.com/2025DataEdu/project-5/internal/usecase/search"
)

// Service fans a query out to every keyword adapter.
type Service struct {
	adapters []Adapter
	log      SearchLogger
	logger   *zap.Logger
}

// New creates the aggregator. Results keep the order of adapters.
func New(logger *zap.Logger, adapters ...Adapter) *Service {
	return &Service{adapters: adapters, logger: logger}
}

// WithSearchLogger records every PerformSearch.
func (s *Service) WithSearchLogger(l SearchLogger) *Service {
	s.log = l
	return s
}

// Collect queries all adapters concurrently and returns their deduplicated
// results. It fails only when every adapter failed.
func (s *Service) Collect(ctx context.Context, q string) ([]result.Result, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidQuery)
	}

	perAdapter := make([][]result.Result, len(s.adapters))
	errs := make([]error, len(s.adapters))

	var g errgroup.Group
	for i, a := range s.adapters {
		g.Go(func() error {
			res, err := a.Search(ctx, q)
			if err != nil {
				metrics.KeywordSourceErrorsTotal.WithLabelValues(a.Name()).Inc()
				errs[i] = err
				return nil
			}
			perAdapter[i] = res
			return nil
		})
	}
	_ = g.Wait()

	var all []result.Result
	var failed []error
	for i := range s.adapters {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		all = append(all, perAdapter[i]...)
	}

	if len(s.adapters) > 0 && len(failed) == len(s.adapters) {
		return nil, &domain.AggregateError{Errs: failed}
	}
	return search.Dedup(all), nil
}

// PerformSearch is Collect plus a search log entry with the final count.
// The entry is written even when every adapter failed.
func (s *Service) PerformSearch(ctx context.Context, session domain.Session, q string) ([]result.Result, error) {
	results, err := s.Collect(ctx, q)

	if s.log != nil && strings.TrimSpace(q) != "" {
		s.log.LogSearch(session, strings.TrimSpace(q), len(results))
	}

	if err != nil {
		s.logger.Warn("Keyword search failed", zap.String("query", q), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("Keyword search completed", zap.String("query", q), zap.Int("results", len(results)))
	return results, nil
}
