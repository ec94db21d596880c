// Package analytics records searches and document views in the background
// and maintains the popular document statistics.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain"
	analyticsdomain "github.com/2025DataEdu/project-5/internal/domain/analytics"
	"github.com/2025DataEdu/project-5/internal/metrics"
)

const (
	defaultPoolSize    = 4
	defaultTaskTimeout = 5 * time.Second
	popularLimit       = 10
)

// Log kinds used in metrics.
const (
	kindSearch = "search"
	kindView   = "view"
)

// Config tunes the background writer.
type Config struct {
	PoolSize    int
	TaskTimeout time.Duration
}

// Recorder writes analytics without blocking the search path.
// Writes that cannot be scheduled are dropped.
type Recorder struct {
	store   store
	pool    *ants.Pool
	timeout time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewRecorder creates a recorder backed by a non-blocking worker pool.
func NewRecorder(s store, cfg Config, logger *zap.Logger) (*Recorder, error) {
	size := cfg.PoolSize
	if size <= 0 {
		size = defaultPoolSize
	}
	timeout := cfg.TaskTimeout
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}

	pool, err := ants.NewPool(size,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p any) {
			logger.Error("Analytics task panicked", zap.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create analytics pool: %w", err)
	}

	return &Recorder{
		store:   s,
		pool:    pool,
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}, nil
}

// WithClock overrides the time source.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Close waits up to timeout for queued writes to finish.
func (r *Recorder) Close(timeout time.Duration) {
	if err := r.pool.ReleaseTimeout(timeout); err != nil {
		r.logger.Warn("Analytics pool release timed out", zap.Error(err))
	}
}

// LogSearch records a search. Failures are logged and discarded.
func (r *Recorder) LogSearch(session domain.Session, q string, resultsCount int) {
	entry := analyticsdomain.SearchLog{
		Query:        q,
		ResultsCount: resultsCount,
		SessionID:    session.ID,
		SearchedAt:   r.now(),
	}
	r.submit(kindSearch, func(ctx context.Context) error {
		return r.store.InsertSearchLog(ctx, entry)
	})
}

// LogDocumentView records that a result was opened.
func (r *Recorder) LogDocumentView(session domain.Session, v analyticsdomain.DocumentView) {
	v.SessionID = session.ID
	if v.ViewedAt.IsZero() {
		v.ViewedAt = r.now()
	}
	r.submit(kindView, func(ctx context.Context) error {
		return r.store.InsertDocumentView(ctx, v)
	})
}

func (r *Recorder) submit(kind string, task func(ctx context.Context) error) {
	err := r.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := task(ctx); err != nil {
			metrics.AnalyticsDroppedTotal.WithLabelValues(kind, "error").Inc()
			r.logger.Warn("Analytics write failed", zap.String("kind", kind), zap.Error(err))
		}
	})
	if err == nil {
		return
	}

	reason := "closed"
	if errors.Is(err, ants.ErrPoolOverload) {
		reason = "overload"
	}
	metrics.AnalyticsDroppedTotal.WithLabelValues(kind, reason).Inc()
	r.logger.Warn("Analytics write dropped", zap.String("kind", kind), zap.String("reason", reason))
}
