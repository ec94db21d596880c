package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/2025DataEdu/project-5/internal/domain"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limited", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, errRateLimited},
		{"bad key", &openai.RequestError{HTTPStatusCode: http.StatusUnauthorized}, errUnauthorized},
		{"forbidden", &openai.APIError{HTTPStatusCode: http.StatusForbidden}, errUnauthorized},
		{"deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), errTimeout},
		{"server error", &openai.APIError{HTTPStatusCode: http.StatusInternalServerError}, errAPI},
		{"unknown", errors.New("dial tcp: refused"), errAPI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapAPIError_ProxyDetail(t *testing.T) {
	err := wrapAPIError("completion",
		&openai.RequestError{HTTPStatusCode: http.StatusBadGateway, Body: []byte(`{"detail":"upstream timeout"}`)},
		domain.ErrAIFallback)

	if !errors.Is(err, domain.ErrAIFallback) {
		t.Fatalf("expected ErrAIFallback, got %v", err)
	}
	if got := err.Error(); got != "completion API error 502: upstream timeout: ai guidance unavailable" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestWrapAPIError_HidesTransportDetail(t *testing.T) {
	err := wrapAPIError("embedding", errors.New("dial tcp 10.0.0.1:443: secret"), domain.ErrEmbeddingProviderError)
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
	if got := err.Error(); got != "embedding request failed: embedding provider error" {
		t.Errorf("unexpected message %q", got)
	}
}
