// Package indexing generates and maintains the document embeddings that
// back smart search.
package indexing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/embedding"
	"github.com/2025DataEdu/project-5/internal/metrics"
)

const (
	defaultBatchSize   = 50
	defaultConcurrency = 3
	defaultMaxErrors   = 50
)

// Config tunes a generation run.
type Config struct {
	BatchSize    int
	Concurrency  int
	Delay        time.Duration
	MaxErrors    int
	RefreshStale bool
}

// Report summarizes generation for one source or for all of them.
type Report struct {
	Processed int  `json:"processed"`
	Errors    int  `json:"errors"`
	Total     int  `json:"total"`
	Existing  int  `json:"existing"`
	Skipped   int  `json:"skipped"`
	Refreshed int  `json:"refreshed"`
	Aborted   bool `json:"aborted"`
}

func (r *Report) add(o Report) {
	r.Processed += o.Processed
	r.Errors += o.Errors
	r.Total += o.Total
	r.Existing += o.Existing
	r.Skipped += o.Skipped
	r.Refreshed += o.Refreshed
	r.Aborted = r.Aborted || o.Aborted
}

// Summary is the combined report plus one report per document type.
type Summary struct {
	Report
	BySource map[string]Report `json:"bySource"`
}

// Service embeds source rows that have no current embedding.
type Service struct {
	store    EmbeddingStore
	embedder domain.Embedder
	sources  []Source
	cfg      Config
	refresh  IndexRefresher
	logger   *zap.Logger
}

// New creates the generation service. Sources run in the given order.
func New(store EmbeddingStore, embedder domain.Embedder, cfg Config, logger *zap.Logger, sources ...Source) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.MaxErrors <= 0 {
		cfg.MaxErrors = defaultMaxErrors
	}
	return &Service{
		store:    store,
		embedder: embedder,
		sources:  sources,
		cfg:      cfg,
		logger:   logger,
	}
}

// WithIndexRefresher reloads r after every run that wrote embeddings.
func (s *Service) WithIndexRefresher(r IndexRefresher) *Service {
	s.refresh = r
	return s
}

// Stats aggregates the embeddings store.
func (s *Service) Stats(ctx context.Context) (embedding.Stats, error) {
	return s.store.Stats(ctx)
}

// Generate runs every source. A source that aborts on too many errors does
// not stop the others.
func (s *Service) Generate(ctx context.Context) (Summary, error) {
	sum := Summary{BySource: make(map[string]Report, len(s.sources))}

	for _, src := range s.sources {
		rep, err := s.generate(ctx, src)
		sum.BySource[src.DocumentType()] = rep
		sum.add(rep)
		if err != nil {
			return sum, fmt.Errorf("generate %s embeddings: %w", src.DocumentType(), err)
		}
	}

	if s.refresh != nil && sum.Processed > 0 {
		if err := s.refresh.Refresh(ctx); err != nil {
			s.logger.Warn("Vector index refresh failed", zap.Error(err))
		}
	}

	s.logger.Info("Embedding generation completed",
		zap.Int("processed", sum.Processed),
		zap.Int("errors", sum.Errors),
		zap.Int("total", sum.Total),
		zap.Int("existing", sum.Existing),
		zap.Bool("aborted", sum.Aborted),
	)
	return sum, nil
}

type task struct {
	item
	stale bool
}

func (s *Service) generate(ctx context.Context, src Source) (Report, error) {
	docType := src.DocumentType()
	var rep Report

	hashes, err := s.store.Hashes(ctx, docType)
	if err != nil {
		return rep, err
	}
	rep.Existing = len(hashes)

	total, err := src.Count(ctx)
	if err != nil {
		return rep, err
	}
	rep.Total = total

	logger := s.logger.With(zap.String("document_type", docType))
	logger.Info("Embedding generation started", zap.Int("total", total), zap.Int("existing", rep.Existing))

	for offset := 0; offset < total; offset += s.cfg.BatchSize {
		rows, err := src.Page(ctx, offset, s.cfg.BatchSize)
		if err != nil {
			return rep, err
		}
		if len(rows) == 0 {
			break
		}

		tasks := s.plan(rows, hashes, docType, &rep)
		for i := 0; i < len(tasks); i += s.cfg.Concurrency {
			end := min(i+s.cfg.Concurrency, len(tasks))
			s.runBatch(ctx, docType, tasks[i:end], &rep)

			if rep.Errors > s.cfg.MaxErrors {
				rep.Aborted = true
				logger.Warn("Embedding generation aborted: too many errors", zap.Int("errors", rep.Errors))
				return rep, nil
			}
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			if end < len(tasks) {
				if err := sleep(ctx, s.cfg.Delay); err != nil {
					return rep, err
				}
			}
		}

		logger.Debug("Embedding batch completed",
			zap.Int("offset", offset),
			zap.Int("processed", rep.Processed),
			zap.Int("errors", rep.Errors),
		)
	}
	return rep, nil
}

// plan selects the rows of one page that need embedding.
func (s *Service) plan(rows []item, hashes map[string]string, docType string, rep *Report) []task {
	var tasks []task
	for _, it := range rows {
		if it.text == "" {
			rep.Skipped++
			metrics.EmbeddingGenerationTotal.WithLabelValues(docType, "skipped").Inc()
			continue
		}
		stored, ok := hashes[it.id]
		switch {
		case !ok:
			tasks = append(tasks, task{item: it})
		case s.cfg.RefreshStale && stored != embedding.HashText(it.text):
			tasks = append(tasks, task{item: it, stale: true})
		}
	}
	return tasks
}

func (s *Service) runBatch(ctx context.Context, docType string, tasks []task, rep *Report) {
	var mu sync.Mutex
	var g errgroup.Group

	for _, t := range tasks {
		g.Go(func() error {
			err := s.embedOne(ctx, docType, t)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Errors++
				metrics.EmbeddingGenerationTotal.WithLabelValues(docType, "error").Inc()
				s.logger.Warn("Embedding generation failed",
					zap.String("document_type", docType),
					zap.String("document_id", t.id),
					zap.Error(err),
				)
				return nil
			}
			rep.Processed++
			if t.stale {
				rep.Refreshed++
			}
			metrics.EmbeddingGenerationTotal.WithLabelValues(docType, "processed").Inc()
			return nil
		})
	}
	_ = g.Wait()
}

// embedOne embeds first, so a provider failure keeps a stale row's old
// embedding. The stale row is then swapped in one store transaction.
func (s *Service) embedOne(ctx context.Context, docType string, t task) error {
	res, err := s.embedder.Embed(ctx, t.text)
	if err != nil {
		return err
	}
	doc := embedding.Document{
		DocumentID:    t.id,
		DocumentTitle: t.title,
		DocumentType:  docType,
		Department:    t.department,
		ContentText:   t.text,
		ContentHash:   embedding.HashText(t.text),
		Embedding:     res.Embedding,
	}
	if t.stale {
		return s.store.Replace(ctx, doc)
	}
	return s.store.Insert(ctx, doc)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
