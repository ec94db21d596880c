package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/embedding"
	"github.com/2025DataEdu/project-5/internal/domain/identity"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	"github.com/2025DataEdu/project-5/internal/metrics"
)

// Defaults for vector search.
const (
	DefaultThreshold = 0.8
	DefaultLimit     = 30
	MaxLimit         = 100
)

// Options tune one vector search. Zero values select the defaults.
type Options struct {
	Threshold float64
	Limit     int
}

func (o Options) normalized() (Options, error) {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Threshold < 0 || o.Threshold > 1 {
		return o, fmt.Errorf("%w: threshold must be within (0, 1], got %v", domain.ErrInvalidQuery, o.Threshold)
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit < 0 {
		return o, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidQuery, o.Limit)
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o, nil
}

// Service runs vector (smart) search over stored embeddings.
type Service struct {
	index  SimilarityIndex
	embed  Embedder
	logger *zap.Logger
	now    func() time.Time
}

// New creates a smart search service.
func New(index SimilarityIndex, embed Embedder, logger *zap.Logger) *Service {
	return &Service{index: index, embed: embed, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for LastModified.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SmartSearch embeds q and returns stored documents whose similarity is at
// least the threshold, most similar first.
func (s *Service) SmartSearch(ctx context.Context, q string, opts Options) ([]result.Result, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidQuery)
	}
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	emb, err := s.embed.Embed(ctx, q)
	if err != nil {
		metrics.SmartSearchTotal.WithLabelValues("embedding_error").Inc()
		return nil, fmt.Errorf("embed query: %w: %w", domain.ErrEmbeddingProviderError, err)
	}

	matches, err := s.index.Similar(ctx, emb.Embedding, opts.Threshold, opts.Limit)
	if err != nil {
		metrics.SmartSearchTotal.WithLabelValues("query_error").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrSimilarityQuery, err)
	}
	metrics.SmartSearchTotal.WithLabelValues("success").Inc()

	now := s.now()
	out := make([]result.Result, 0, len(matches))
	for _, m := range matches {
		if m.Similarity < opts.Threshold {
			continue
		}
		out = append(out, toResult(m, opts.Threshold, now))
		if len(out) == opts.Limit {
			break
		}
	}

	s.logger.Debug("Smart search completed",
		zap.String("query", q),
		zap.Float64("threshold", opts.Threshold),
		zap.Int("candidates", len(matches)),
		zap.Int("results", len(out)),
	)
	return out, nil
}

// matchKey lets a vector hit reuse the identifier scheme of its source row.
type matchKey embedding.Match

func (m matchKey) PrimaryKey() string     { return m.DocumentID }
func (m matchKey) TitleHint() string      { return m.DocumentTitle }
func (m matchKey) DepartmentHint() string { return m.Department }

func toResult(m embedding.Match, threshold float64, now time.Time) result.Result {
	title := m.DocumentTitle
	if strings.TrimSpace(title) == "" {
		title = result.UntitledDocument
	}
	content := m.ContentText
	if content == "" {
		content = title + " - " + m.Department + "에서 작성된 결재문서입니다."
	}
	dept := m.Department
	if strings.TrimSpace(dept) == "" {
		dept = result.UnclassifiedDepartment
	}
	sim := result.RoundSimilarity(m.Similarity, threshold)

	return result.Result{
		ID:           identity.GenerateID(m.DocumentType, matchKey(m)),
		Title:        identity.NormalizeTitle(title),
		Content:      content,
		Source:       result.SourceVector,
		Department:   dept,
		LastModified: now.Format(result.DateLayout),
		FileName:     title + ".pdf",
		Type:         m.DocumentType,
		URL:          result.NoResourceURL,
		Similarity:   &sim,
	}
}
