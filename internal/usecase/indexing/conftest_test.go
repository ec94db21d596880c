package indexing

import (
	"context"
	"errors"
	"sync"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/embedding"
	"github.com/2025DataEdu/project-5/internal/domain/source"
)

var errProvider = errors.New("provider unavailable")

type memStore struct {
	mu         sync.Mutex
	docs       map[[2]string]embedding.Document
	replaces   int
	replaceErr error
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[[2]string]embedding.Document)}
}

func (m *memStore) Hashes(_ context.Context, docType string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string)
	for k, d := range m.docs {
		if k[0] == docType {
			out[k[1]] = d.ContentHash
		}
	}
	return out, nil
}

func (m *memStore) Insert(_ context.Context, doc embedding.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[[2]string{doc.DocumentType, doc.DocumentID}] = doc
	return nil
}

func (m *memStore) Replace(_ context.Context, doc embedding.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaces++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.docs[[2]string{doc.DocumentType, doc.DocumentID}] = doc
	return nil
}

func (m *memStore) Stats(context.Context) (embedding.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return embedding.Stats{Total: len(m.docs)}, nil
}

type mockEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

type registryRows []source.Registry

func (r registryRows) Count(context.Context) (int, error) { return len(r), nil }

func (r registryRows) Page(_ context.Context, offset, limit int) ([]source.Registry, error) {
	if offset >= len(r) {
		return nil, nil
	}
	return r[offset:min(offset+limit, len(r))], nil
}

type pdfRows []source.PDF

func (p pdfRows) CountActive(context.Context) (int, error) { return len(p), nil }

func (p pdfRows) PageActive(_ context.Context, offset, limit int) ([]source.PDF, error) {
	if offset >= len(p) {
		return nil, nil
	}
	return p[offset:min(offset+limit, len(p))], nil
}

type countingRefresher struct{ calls int }

func (c *countingRefresher) Refresh(context.Context) error {
	c.calls++
	return nil
}
