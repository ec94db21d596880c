package similarity

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain/embedding"
)

const collectionName = "document_embeddings"

// Metadata keys stored next to each chromem document.
const (
	metaDocumentID = "document_id"
	metaTitle      = "document_title"
	metaType       = "document_type"
	metaDepartment = "department"
)

var errTextQuery = errors.New("chromem index is queried by embedding only")

// loader is the consumer interface for the embeddings store (ISP).
type loader interface {
	All(ctx context.Context) ([]embedding.Document, error)
}

// Chromem is an in-process similarity index rebuilt from the embeddings table.
type Chromem struct {
	loader loader
	logger *zap.Logger

	mu  sync.RWMutex
	db  *chromem.DB
	col *chromem.Collection
}

// NewChromem creates an empty in-process index. Call Refresh to load it.
func NewChromem(l loader, logger *zap.Logger) *Chromem {
	return &Chromem{loader: l, logger: logger}
}

func noTextEmbedding(context.Context, string) ([]float32, error) {
	return nil, errTextQuery
}

// Refresh reloads every stored embedding into a fresh collection.
func (c *Chromem) Refresh(ctx context.Context) error {
	docs, err := c.loader.All(ctx)
	if err != nil {
		return fmt.Errorf("load embeddings: %w", err)
	}

	cdb := chromem.NewDB()
	col, err := cdb.GetOrCreateCollection(collectionName, nil, noTextEmbedding)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	chromDocs := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		if len(d.Embedding) == 0 {
			continue
		}
		chromDocs = append(chromDocs, chromem.Document{
			ID: d.DocumentType + "/" + d.DocumentID,
			Metadata: map[string]string{
				metaDocumentID: d.DocumentID,
				metaTitle:      d.DocumentTitle,
				metaType:       d.DocumentType,
				metaDepartment: d.Department,
			},
			Embedding: d.Embedding,
			Content:   d.ContentText,
		})
	}
	if len(chromDocs) > 0 {
		if err := col.AddDocuments(ctx, chromDocs, runtime.NumCPU()); err != nil {
			return fmt.Errorf("add documents: %w", err)
		}
	}

	c.mu.Lock()
	c.db, c.col = cdb, col
	c.mu.Unlock()

	c.logger.Info("Similarity index loaded", zap.Int("documents", len(chromDocs)))
	return nil
}

// Similar returns up to count embeddings whose cosine similarity to vec is at least threshold.
func (c *Chromem) Similar(ctx context.Context, vec []float32, threshold float64, count int) ([]embedding.Match, error) {
	c.mu.RLock()
	col := c.col
	c.mu.RUnlock()

	if col == nil || count <= 0 {
		return nil, nil
	}
	// chromem-go requires nResults <= collection size.
	n := col.Count()
	if n == 0 {
		return nil, nil
	}
	if count > n {
		count = n
	}

	results, err := col.QueryEmbedding(ctx, vec, count, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]embedding.Match, 0, len(results))
	for _, r := range results {
		if float64(r.Similarity) < threshold {
			continue
		}
		out = append(out, embedding.Match{
			DocumentID:    r.Metadata[metaDocumentID],
			DocumentTitle: r.Metadata[metaTitle],
			DocumentType:  r.Metadata[metaType],
			Department:    r.Metadata[metaDepartment],
			ContentText:   r.Content,
			Similarity:    float64(r.Similarity),
		})
	}
	return out, nil
}

// Count returns the number of indexed documents.
func (c *Chromem) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.col == nil {
		return 0
	}
	return c.col.Count()
}
