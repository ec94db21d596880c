package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/embedding"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
)

// --- Mocks ---

type mockIndex struct {
	matches       []embedding.Match
	err           error
	lastThreshold float64
	lastCount     int
	called        bool
}

func (m *mockIndex) Similar(_ context.Context, _ []float32, threshold float64, count int) ([]embedding.Match, error) {
	m.called = true
	m.lastThreshold = threshold
	m.lastCount = count
	return m.matches, m.err
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	return domain.EmbeddingResult{Embedding: m.vec}, m.err
}

var fixedNow = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

func newService(idx *mockIndex, emb *mockEmbedder) *Service {
	return New(idx, emb, zap.NewNop()).WithClock(func() time.Time { return fixedNow })
}

// --- SmartSearch ---

func TestSmartSearch_Defaults(t *testing.T) {
	idx := &mockIndex{}
	svc := newService(idx, &mockEmbedder{vec: []float32{1}})

	if _, err := svc.SmartSearch(context.Background(), "출장", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.lastThreshold != 0.8 || idx.lastCount != 30 {
		t.Errorf("expected threshold 0.8 and limit 30, got %v and %d", idx.lastThreshold, idx.lastCount)
	}
}

func TestSmartSearch_MapsMatches(t *testing.T) {
	idx := &mockIndex{matches: []embedding.Match{
		{DocumentID: "42", DocumentTitle: "출장 여비 규정", DocumentType: result.TypeRegistry, Department: "총무과", Similarity: 0.856},
		{DocumentID: "7b", DocumentTitle: "", DocumentType: result.TypePDF, Department: "", ContentText: "본문", Similarity: 0.81},
	}}
	svc := newService(idx, &mockEmbedder{vec: []float32{1}})

	got, err := svc.SmartSearch(context.Background(), "출장", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}

	first := got[0]
	if first.ID != "결재문서-42" {
		t.Errorf("ID = %q", first.ID)
	}
	if first.Source != result.SourceVector || first.URL != result.NoResourceURL {
		t.Errorf("unexpected source/url: %q %q", first.Source, first.URL)
	}
	if first.Content != "출장 여비 규정 - 총무과에서 작성된 결재문서입니다." {
		t.Errorf("Content = %q", first.Content)
	}
	if first.LastModified != "2025-07-01" || first.FileName != "출장 여비 규정.pdf" {
		t.Errorf("unexpected date/file: %q %q", first.LastModified, first.FileName)
	}
	if first.Similarity == nil || *first.Similarity != 0.86 {
		t.Errorf("Similarity = %v, want 0.86", first.Similarity)
	}

	second := got[1]
	if second.Title != result.UntitledDocument || second.Department != result.UnclassifiedDepartment {
		t.Errorf("expected defaults, got title=%q dept=%q", second.Title, second.Department)
	}
	if second.Content != "본문" || second.Type != result.TypePDF {
		t.Errorf("unexpected content/type: %q %q", second.Content, second.Type)
	}
}

func TestSmartSearch_ThresholdIsInclusive(t *testing.T) {
	idx := &mockIndex{matches: []embedding.Match{
		{DocumentID: "1", DocumentTitle: "a", DocumentType: result.TypeRegistry, Similarity: 0.8},
		{DocumentID: "2", DocumentTitle: "b", DocumentType: result.TypeRegistry, Similarity: 0.7999},
		{DocumentID: "3", DocumentTitle: "c", DocumentType: result.TypeRegistry, Similarity: 0.8049},
	}}
	svc := newService(idx, &mockEmbedder{vec: []float32{1}})

	got, err := svc.SmartSearch(context.Background(), "q", Options{Threshold: 0.8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	for _, r := range got {
		if *r.Similarity < 0.8 {
			t.Errorf("result %s has similarity %v below threshold", r.ID, *r.Similarity)
		}
	}
}

func TestSmartSearch_RoundingNeverDropsBelowThreshold(t *testing.T) {
	idx := &mockIndex{matches: []embedding.Match{
		{DocumentID: "1", DocumentTitle: "a", DocumentType: result.TypeRegistry, Similarity: 0.8501},
	}}
	svc := newService(idx, &mockEmbedder{vec: []float32{1}})

	got, err := svc.SmartSearch(context.Background(), "q", Options{Threshold: 0.8501})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || *got[0].Similarity < 0.8501 {
		t.Fatalf("expected rounded similarity >= threshold, got %+v", got)
	}
}

func TestSmartSearch_LimitTruncates(t *testing.T) {
	idx := &mockIndex{matches: []embedding.Match{
		{DocumentID: "1", DocumentTitle: "a", DocumentType: result.TypeRegistry, Similarity: 0.95},
		{DocumentID: "2", DocumentTitle: "b", DocumentType: result.TypeRegistry, Similarity: 0.9},
	}}
	svc := newService(idx, &mockEmbedder{vec: []float32{1}})

	got, err := svc.SmartSearch(context.Background(), "q", Options{Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "결재문서-1" {
		t.Fatalf("expected only the best match, got %+v", got)
	}
}

func TestSmartSearch_EmptyQuery(t *testing.T) {
	emb := &mockEmbedder{}
	svc := newService(&mockIndex{}, emb)

	_, err := svc.SmartSearch(context.Background(), "   ", Options{})
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if emb.called {
		t.Error("embedder must not be called for an empty query")
	}
}

func TestSmartSearch_InvalidOptions(t *testing.T) {
	svc := newService(&mockIndex{}, &mockEmbedder{})

	for _, opts := range []Options{{Threshold: 1.5}, {Threshold: -0.1}, {Limit: -1}} {
		if _, err := svc.SmartSearch(context.Background(), "q", opts); !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("opts %+v: expected ErrInvalidQuery, got %v", opts, err)
		}
	}
}

func TestSmartSearch_EmbeddingError(t *testing.T) {
	idx := &mockIndex{}
	svc := newService(idx, &mockEmbedder{err: errors.New("timeout")})

	_, err := svc.SmartSearch(context.Background(), "q", Options{})
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
	if idx.called {
		t.Error("index must not be queried when embedding fails")
	}
}

func TestSmartSearch_SimilarityError(t *testing.T) {
	svc := newService(&mockIndex{err: errors.New("function does not exist")}, &mockEmbedder{vec: []float32{1}})

	_, err := svc.SmartSearch(context.Background(), "q", Options{})
	if !errors.Is(err, domain.ErrSimilarityQuery) {
		t.Fatalf("expected ErrSimilarityQuery, got %v", err)
	}
}
