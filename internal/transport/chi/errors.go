package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain"
	logpkg "github.com/2025DataEdu/project-5/internal/logger"
)

// ErrorCode is the machine-readable code of an error response.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest          ErrorCode = "bad_request"
	CodeUnauthorized        ErrorCode = "unauthorized"
	CodeValidationFailed    ErrorCode = "validation_failed"
	CodeNotFound            ErrorCode = "not_found"
	CodeSearchFailed        ErrorCode = "search_failed"
	CodeEmbeddingProvider   ErrorCode = "embedding_provider_error"
	CodeSimilarityQuery     ErrorCode = "similarity_query_failed"
	CodeAIUnavailable       ErrorCode = "ai_unavailable"
	CodeSmartSearchDisabled ErrorCode = "smart_search_disabled"
	CodeInternalError       ErrorCode = "internal_error"
)

const (
	msgInternalError         = "internal error"
	msgAllKeywordSourcesFail = "all keyword sources failed"
)

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		aggregateHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProvider),
		sentinelHandler(domain.ErrSimilarityQuery, http.StatusBadGateway, CodeSimilarityQuery),
		sentinelHandler(domain.ErrAIFallback, http.StatusBadGateway, CodeAIUnavailable),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var agg *domain.AggregateError
	if errors.As(err, &agg) {
		return msgAllKeywordSourcesFail
	}
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrEmbeddingProviderError,
		domain.ErrSimilarityQuery,
		domain.ErrAIFallback,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return msgInternalError
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func aggregateHandler(w http.ResponseWriter, err error, msg string) bool {
	var agg *domain.AggregateError
	if !errors.As(err, &agg) {
		return false
	}
	writeError(w, http.StatusBadGateway, CodeSearchFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, msgInternalError)
}
