// Package orchestrator runs a hybrid search: keyword and vector search in
// parallel, merged, with AI guidance when nothing matched.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/search/phase"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	"github.com/2025DataEdu/project-5/internal/metrics"
	"github.com/2025DataEdu/project-5/internal/usecase/search"
)

// State is the observable state of the latest search.
type State struct {
	Phase       phase.Phase     `json:"phase"`
	Query       string          `json:"query"`
	Results     []result.Result `json:"results"`
	AIResponse  string          `json:"aiResponse,omitempty"`
	Error       string          `json:"searchError,omitempty"`
	IsSearching bool            `json:"isSearching"`
}

// Outcome is the result of one Search call. A stale outcome was
// superseded by a newer search and did not touch State.
type Outcome struct {
	State
	Seq   uint64 `json:"seq"`
	Stale bool   `json:"stale"`
}

// Config controls the smart search leg.
type Config struct {
	SmartEnabled bool
	Smart        search.Options
}

// Service orchestrates hybrid searches.
type Service struct {
	keyword KeywordSearcher
	smart   SmartSearcher
	ai      Explainer
	log     SearchLogger
	cfg     Config
	logger  *zap.Logger

	seq   atomic.Uint64
	mu    sync.RWMutex
	state State
}

// New creates the orchestrator. smart may be nil when vector search is unavailable.
func New(keyword KeywordSearcher, smart SmartSearcher, ai Explainer, log SearchLogger, cfg Config, logger *zap.Logger) *Service {
	if smart == nil {
		cfg.SmartEnabled = false
	}
	return &Service{
		keyword: keyword,
		smart:   smart,
		ai:      ai,
		log:     log,
		cfg:     cfg,
		logger:  logger,
		state:   State{Phase: phase.Idle, Results: []result.Result{}},
	}
}

// State returns a snapshot of the latest search.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Results = append([]result.Result(nil), s.state.Results...)
	return st
}

// Search runs one hybrid search.
func (s *Service) Search(ctx context.Context, session domain.Session, q string) (Outcome, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return Outcome{}, fmt.Errorf("%w: empty query", domain.ErrInvalidQuery)
	}

	seq := s.seq.Add(1)
	s.publish(seq, State{Phase: phase.Searching, Query: q, Results: []result.Result{}, IsSearching: true})

	smartHits, keywordHits, keywordErr := s.collect(ctx, q)
	merged := search.Merge(smartHits, keywordHits)

	st := State{Phase: phase.ResultsFound, Query: q, Results: merged}
	if len(merged) == 0 {
		st = s.escalate(ctx, q, keywordErr)
	}

	if s.log != nil {
		s.log.LogSearch(session, q, len(merged))
	}
	metrics.SearchResultsCount.Observe(float64(len(merged)))

	out := Outcome{State: st, Seq: seq}
	if !s.publish(seq, st) {
		out.Stale = true
		s.logger.Debug("Discarded stale search", zap.String("query", q), zap.Uint64("seq", seq))
		return out, nil
	}
	metrics.SearchPhaseTotal.WithLabelValues(string(st.Phase)).Inc()
	return out, nil
}

// collect runs keyword and smart search concurrently. Smart search
// failures degrade to keyword-only results.
func (s *Service) collect(ctx context.Context, q string) (smartHits, keywordHits []result.Result, keywordErr error) {
	var g errgroup.Group

	g.Go(func() error {
		keywordHits, keywordErr = s.keyword.Collect(ctx, q)
		if keywordErr != nil {
			s.logger.Warn("Keyword search failed", zap.String("query", q), zap.Error(keywordErr))
		}
		return nil
	})

	if s.cfg.SmartEnabled {
		g.Go(func() error {
			hits, err := s.smart.SmartSearch(ctx, q, s.cfg.Smart)
			if err != nil {
				s.logger.Warn("Smart search failed, using keyword results only", zap.String("query", q), zap.Error(err))
				return nil
			}
			smartHits = hits
			return nil
		})
	} else {
		metrics.SmartSearchTotal.WithLabelValues("disabled").Inc()
	}

	_ = g.Wait()
	return smartHits, keywordHits, keywordErr
}

// escalate asks for AI guidance once when nothing matched.
func (s *Service) escalate(ctx context.Context, q string, keywordErr error) State {
	answer, err := s.ai.Explain(ctx, q)
	if err == nil {
		return State{Phase: phase.AIAnswered, Query: q, Results: []result.Result{}, AIResponse: answer.Response}
	}

	cause := err
	if keywordErr != nil {
		cause = keywordErr
	}
	return State{
		Phase:   phase.EmptyNoAI,
		Query:   q,
		Results: []result.Result{},
		Error:   fmt.Sprintf("'%s' 검색 실패: %v", q, cause),
	}
}

// publish stores st if seq is still the latest issued token.
func (s *Service) publish(seq uint64, st State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq.Load() {
		return false
	}
	s.state = st
	return true
}
