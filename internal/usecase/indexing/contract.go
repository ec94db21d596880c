package indexing

import (
	"context"

	"github.com/2025DataEdu/project-5/internal/domain/embedding"
	"github.com/2025DataEdu/project-5/internal/domain/source"
)

// EmbeddingStore persists generated embeddings.
type EmbeddingStore interface {
	Hashes(ctx context.Context, docType string) (map[string]string, error)
	Insert(ctx context.Context, doc embedding.Document) error
	Replace(ctx context.Context, doc embedding.Document) error
	Stats(ctx context.Context) (embedding.Stats, error)
}

// RegistryPager pages through the approval document registry.
type RegistryPager interface {
	Count(ctx context.Context) (int, error)
	Page(ctx context.Context, offset, limit int) ([]source.Registry, error)
}

// PDFPager pages through active PDF documents.
type PDFPager interface {
	CountActive(ctx context.Context) (int, error)
	PageActive(ctx context.Context, offset, limit int) ([]source.PDF, error)
}

// IndexRefresher reloads an in-process vector index after generation.
type IndexRefresher interface {
	Refresh(ctx context.Context) error
}
