// Package app wires the regulation search components from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/config"
	"github.com/2025DataEdu/project-5/internal/db"
	dbRedis "github.com/2025DataEdu/project-5/internal/db/redis"
	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/metrics"
	analyticsrepo "github.com/2025DataEdu/project-5/internal/repository/analytics"
	"github.com/2025DataEdu/project-5/internal/repository/embcache"
	embeddingsrepo "github.com/2025DataEdu/project-5/internal/repository/embeddings"
	employeerepo "github.com/2025DataEdu/project-5/internal/repository/employee"
	pdfrepo "github.com/2025DataEdu/project-5/internal/repository/pdf"
	registryrepo "github.com/2025DataEdu/project-5/internal/repository/registry"
	"github.com/2025DataEdu/project-5/internal/repository/similarity"
	chiTransport "github.com/2025DataEdu/project-5/internal/transport/chi"
	openaiTransport "github.com/2025DataEdu/project-5/internal/transport/openai"
	analyticsuc "github.com/2025DataEdu/project-5/internal/usecase/analytics"
	embeddinguc "github.com/2025DataEdu/project-5/internal/usecase/embedding"
	"github.com/2025DataEdu/project-5/internal/usecase/fallback"
	healthuc "github.com/2025DataEdu/project-5/internal/usecase/health"
	"github.com/2025DataEdu/project-5/internal/usecase/indexing"
	"github.com/2025DataEdu/project-5/internal/usecase/keyword"
	"github.com/2025DataEdu/project-5/internal/usecase/orchestrator"
	searchuc "github.com/2025DataEdu/project-5/internal/usecase/search"
)

const providerName = "openai"

// App holds the assembled services and the resources they own.
type App struct {
	SQL       *db.SQL
	Cache     *dbRedis.Store
	Keyword   *keyword.Service
	Smart     *searchuc.Service // nil when smart search is disabled
	Hybrid    *orchestrator.Service
	AI        *fallback.Service
	Indexer   *indexing.Service
	Analytics *analyticsuc.Recorder
	Health    *healthuc.Service

	logger *zap.Logger
}

// New connects to the configured stores and builds every service.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	sql, err := db.Open(db.Config{
		Driver:           cfg.Database.Driver,
		DSN:              cfg.Database.DSN,
		MaxOpenConns:     cfg.Database.MaxOpenConns,
		SlowThreshold:    time.Duration(cfg.Database.SlowQueryMs) * time.Millisecond,
		VectorDimensions: cfg.Embedding.Dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a := &App{SQL: sql, logger: logger}

	if cfg.Database.Migrate {
		if err := sql.Migrate(ctx, cfg.Embedding.Dimensions, models()...); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("Database schema migrated", zap.String("driver", sql.Driver()))
	}

	if cfg.Cache.Enabled {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			WriteTimeout: time.Duration(cfg.Cache.WriteTimeoutMs) * time.Millisecond,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		a.Cache = cache
		if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			a.Close()
			return nil, fmt.Errorf("cache not ready: %w", err)
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	registry := registryrepo.New(sql)
	pdfs := pdfrepo.New(sql)
	employees := employeerepo.New(sql)
	embeddings := embeddingsrepo.New(sql)
	analyticsStore := analyticsrepo.New(sql)

	a.Analytics, err = analyticsuc.NewRecorder(analyticsStore, analyticsuc.Config{
		PoolSize:    cfg.Analytics.PoolSize,
		TaskTimeout: time.Duration(cfg.Analytics.TaskTimeoutSec) * time.Second,
	}, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create analytics recorder: %w", err)
	}

	limits := keyword.Limits{
		Registry:         cfg.Search.RegistryLimit,
		RegistryFallback: cfg.Search.RegistryFallbackLimit,
		PDF:              cfg.Search.PDFLimit,
		Employee:         cfg.Search.EmployeeLimit,
	}
	a.Keyword = keyword.New(logger,
		keyword.NewRegistryAdapter(registry, limits, logger),
		keyword.NewPDFAdapter(pdfs, limits),
		keyword.NewEmployeeAdapter(employees, limits),
	).WithSearchLogger(a.Analytics)

	provider := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   providerName,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Logger:     logger,
	})
	documentEmbedder := embeddinguc.NewInstrumentedEmbedder(
		provider, providerName, cfg.Embedding.Model, cfg.Embedding.Dimensions, logger,
	)

	// Only query embeddings go through the cache; documents are embedded once.
	var queryBase domain.Embedder = provider
	if a.Cache != nil {
		queryBase = embcache.New(provider, a.Cache,
			cfg.Cache.KeyPrefix+"emb:"+cfg.Embedding.Model+":",
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.EmbeddingCacheTotal, logger)
	}
	queryEmbedder := embeddinguc.NewInstrumentedEmbedder(
		queryBase, providerName, cfg.Embedding.Model, cfg.Embedding.Dimensions, logger,
	)

	a.Indexer = indexing.New(embeddings, documentEmbedder, indexing.Config{
		BatchSize:    cfg.Indexing.BatchSize,
		Concurrency:  cfg.Indexing.Concurrency,
		Delay:        cfg.Indexing.Delay(),
		MaxErrors:    cfg.Indexing.MaxErrors,
		RefreshStale: cfg.Indexing.RefreshStale,
	}, logger, indexing.RegistrySource(registry), indexing.PDFSource(pdfs))

	opts := searchuc.Options{Threshold: cfg.Search.Threshold, Limit: cfg.Search.Limit}
	if cfg.Search.SmartEnabled {
		index, err := a.similarityIndex(ctx, cfg, embeddings)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Smart = searchuc.New(index, queryEmbedder, logger)
	}

	a.AI = fallback.New(openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     time.Duration(cfg.AI.TimeoutSec) * time.Second,
		Logger:      logger,
	}), logger)

	// A nil *searchuc.Service must not leak into the interface.
	var smart orchestrator.SmartSearcher
	if a.Smart != nil {
		smart = a.Smart
	}
	a.Hybrid = orchestrator.New(a.Keyword, smart, a.AI, a.Analytics, orchestrator.Config{
		SmartEnabled: a.Smart != nil,
		Smart:        opts,
	}, logger)

	a.Health = healthuc.New(sql)
	if a.Cache != nil {
		a.Health = a.Health.WithCache(a.Cache)
	}
	if cfg.Embedding.APIKey != "" {
		a.Health = a.Health.WithEmbedding(provider)
	}

	return a, nil
}

func (a *App) similarityIndex(ctx context.Context, cfg config.Config, embeddings *embeddingsrepo.Repo) (searchuc.SimilarityIndex, error) {
	switch cfg.Search.VectorBackend {
	case config.BackendPGVector:
		index, err := similarity.NewPGVector(a.SQL)
		if err != nil {
			return nil, fmt.Errorf("create pgvector index: %w", err)
		}
		return index, nil
	case config.BackendChromem:
		index := similarity.NewChromem(embeddings, a.logger)
		if err := index.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("load chromem index: %w", err)
		}
		a.Indexer = a.Indexer.WithIndexRefresher(index)
		return index, nil
	default:
		return nil, fmt.Errorf("unknown vector backend %q", cfg.Search.VectorBackend)
	}
}

// Services exposes the use cases to the HTTP transport.
func (a *App) Services() chiTransport.Services {
	svc := chiTransport.Services{
		Keyword:   a.Keyword,
		Hybrid:    a.Hybrid,
		AI:        a.AI,
		Indexer:   a.Indexer,
		Analytics: a.Analytics,
		Health:    a.Health,
	}
	if a.Smart != nil {
		svc.Smart = a.Smart
	}
	return svc
}

// Close flushes pending analytics and releases connections.
func (a *App) Close() {
	if a.Analytics != nil {
		a.Analytics.Close(5 * time.Second)
	}
	if a.Cache != nil {
		a.Cache.Close()
	}
	a.SQL.Close()
}

func models() []any {
	return append([]any{
		&registryrepo.Model{},
		&pdfrepo.Model{},
		&employeerepo.Model{},
		&embeddingsrepo.Model{},
	}, analyticsrepo.Models()...)
}
