package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidQuery signals an empty or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrSimilarityQuery signals a failure of the vector similarity query.
	ErrSimilarityQuery = errors.New("similarity query failed")
	// ErrAIFallback signals that no AI guidance could be produced.
	ErrAIFallback = errors.New("ai guidance unavailable")
)

// SourceAdapterError reports a failed keyword search against one data source.
type SourceAdapterError struct {
	Source string
	Err    error
}

func (e *SourceAdapterError) Error() string {
	return fmt.Sprintf("%s search failed: %v", e.Source, e.Err)
}

func (e *SourceAdapterError) Unwrap() error { return e.Err }

// NewSourceAdapterError wraps err with the failing source name.
func NewSourceAdapterError(source string, err error) error {
	return &SourceAdapterError{Source: source, Err: err}
}

// AggregateError is returned when every keyword source failed.
type AggregateError struct {
	Errs []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "search failed: " + strings.Join(msgs, ", ")
}

func (e *AggregateError) Unwrap() []error { return e.Errs }

// AIFallbackError wraps a failed generative completion call.
type AIFallbackError struct {
	Err error
}

func (e *AIFallbackError) Error() string {
	return fmt.Sprintf("%s: %v", ErrAIFallback.Error(), e.Err)
}

func (e *AIFallbackError) Unwrap() []error { return []error{ErrAIFallback, e.Err} }
