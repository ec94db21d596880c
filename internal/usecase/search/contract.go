package search

import (
	"context"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/embedding"
)

// SimilarityIndex finds stored embeddings close to a query vector.
type SimilarityIndex interface {
	Similar(ctx context.Context, vec []float32, threshold float64, count int) ([]embedding.Match, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
