package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain"
	analyticsdomain "github.com/2025DataEdu/project-5/internal/domain/analytics"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	healthuc "github.com/2025DataEdu/project-5/internal/usecase/health"
	"github.com/2025DataEdu/project-5/internal/usecase/search"
)

// SessionHeader carries the client session token.
const SessionHeader = "X-Session-ID"

// Services groups the use cases the HTTP API exposes.
// Smart may be nil when vector search is disabled.
type Services struct {
	Keyword   KeywordSearcher
	Smart     SmartSearcher
	Hybrid    HybridSearcher
	AI        Explainer
	Indexer   Indexer
	Analytics Analytics
	Health    HealthChecker
}

// Server serves the regulation search API.
type Server struct {
	svc           Services
	session       domain.Session
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. session is used for requests
// without an X-Session-ID header.
func NewServer(svc Services, session domain.Session, logger *zap.Logger) *Server {
	return &Server{
		svc:           svc,
		session:       session,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.KeywordSearch)
		r.Post("/search/smart", s.SmartSearch)
		r.Post("/search/hybrid", s.HybridSearch)
		r.Get("/search/state", s.SearchState)
		r.Post("/ai/explain", s.Explain)
		r.Post("/embeddings/generate", s.GenerateEmbeddings)
		r.Get("/embeddings/stats", s.EmbeddingStats)
		r.Post("/views", s.LogView)
		r.Get("/statistics/popular", s.PopularStatistics)
		r.Post("/statistics/popular/refresh", s.RefreshPopularStatistics)
	})
}

type queryRequest struct {
	Query     string   `json:"query"`
	Threshold *float64 `json:"threshold,omitempty"`
	Limit     *int     `json:"limit,omitempty"`
}

type resultsResponse struct {
	Results []result.Result `json:"results"`
	Count   int             `json:"count"`
}

type explainResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

type refreshResponse struct {
	Updated int `json:"updated"`
}

func (s *Server) sessionFor(r *http.Request) domain.Session {
	return domain.SessionFrom(r.Header.Get(SessionHeader), s.session)
}

func decodeQuery(w http.ResponseWriter, r *http.Request) (queryRequest, bool) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return req, false
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query is required")
		return req, false
	}
	return req, true
}

func newResults(rs []result.Result) resultsResponse {
	if rs == nil {
		rs = []result.Result{}
	}
	return resultsResponse{Results: rs, Count: len(rs)}
}

// KeywordSearch handles GET /api/search?q=.
func (s *Server) KeywordSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "q is required")
		return
	}

	results, err := s.svc.Keyword.PerformSearch(r.Context(), s.sessionFor(r), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newResults(results))
}

// SmartSearch handles POST /api/search/smart.
func (s *Server) SmartSearch(w http.ResponseWriter, r *http.Request) {
	if s.svc.Smart == nil {
		writeError(w, http.StatusServiceUnavailable, CodeSmartSearchDisabled, "smart search is disabled")
		return
	}
	req, ok := decodeQuery(w, r)
	if !ok {
		return
	}

	// Zero options mean "use the default"; explicit non-positive values are invalid.
	var opts search.Options
	if req.Threshold != nil {
		if *req.Threshold <= 0 {
			s.handleDomainError(w, r, fmt.Errorf("%w: threshold must be within (0, 1], got %v", domain.ErrInvalidQuery, *req.Threshold))
			return
		}
		opts.Threshold = *req.Threshold
	}
	if req.Limit != nil {
		if *req.Limit <= 0 {
			s.handleDomainError(w, r, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidQuery, *req.Limit))
			return
		}
		opts.Limit = *req.Limit
	}

	results, err := s.svc.Smart.SmartSearch(r.Context(), req.Query, opts)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newResults(results))
}

// HybridSearch handles POST /api/search/hybrid.
func (s *Server) HybridSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQuery(w, r)
	if !ok {
		return
	}

	out, err := s.svc.Hybrid.Search(r.Context(), s.sessionFor(r), req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// SearchState handles GET /api/search/state.
func (s *Server) SearchState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Hybrid.State())
}

// Explain handles POST /api/ai/explain.
func (s *Server) Explain(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQuery(w, r)
	if !ok {
		return
	}

	answer, err := s.svc.AI.Explain(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, explainResponse{Success: true, Response: answer.Response})
}

// GenerateEmbeddings handles POST /api/embeddings/generate.
func (s *Server) GenerateEmbeddings(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Indexer.Generate(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// EmbeddingStats handles GET /api/embeddings/stats.
func (s *Server) EmbeddingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Indexer.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// LogView handles POST /api/views.
func (s *Server) LogView(w http.ResponseWriter, r *http.Request) {
	var v analyticsdomain.DocumentView
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}
	if v.DocumentID == "" || v.DocumentType == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "documentId and documentType are required")
		return
	}

	s.svc.Analytics.LogDocumentView(s.sessionFor(r), v)
	w.WriteHeader(http.StatusAccepted)
}

// PopularStatistics handles GET /api/statistics/popular?department=.
func (s *Server) PopularStatistics(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Analytics.PopularStatistics(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if entries == nil {
		entries = []analyticsdomain.PopularEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// RefreshPopularStatistics handles POST /api/statistics/popular/refresh.
func (s *Server) RefreshPopularStatistics(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Analytics.RefreshPopularStatistics(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Updated: n})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
