package vectordb

import (
	"context"
	"strings"
	"testing"
)

// mockEmbedder produces deterministic vectors: one dimension per keyword,
// weighted by how often the keyword appears in the text.
type mockEmbedder struct {
	keywords []string
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(m.keywords)+1)
		lower := strings.ToLower(text)
		for k, kw := range m.keywords {
			vec[k] = float32(strings.Count(lower, kw))
		}
		vec[len(m.keywords)] = 0.1 // keeps every vector off the origin
		vectors[i] = vec
	}
	return vectors, nil
}

func (m *mockEmbedder) Dimensions() int { return len(m.keywords) + 1 }
func (m *mockEmbedder) Name() string    { return "mock" }

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore(&mockEmbedder{keywords: []string{"beach", "museum", "food"}})
	if err != nil {
		t.Fatalf("NewChromemStore failed: %v", err)
	}
	return store
}

func testDocs() []Document {
	return []Document{
		{ID: "1", Content: "The beach is beautiful with white sand and beach umbrellas.", Metadata: DocumentMetadata{Document: "coast.pdf", Page: 2, Chunk: 0}},
		{ID: "2", Content: "The museum holds a large collection of modern art.", Metadata: DocumentMetadata{Document: "city.pdf", Page: 5, Chunk: 1}},
		{ID: "3", Content: "Local food markets open early in the morning.", Metadata: DocumentMetadata{Document: "city.pdf", Page: 7, Chunk: 2}},
	}
}

func TestAddAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.AddDocuments(ctx, testDocs()); err != nil {
		t.Fatalf("AddDocuments failed: %v", err)
	}
	if got := store.Count(); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}

func TestAddEmpty(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddDocuments(context.Background(), nil); err != nil {
		t.Errorf("AddDocuments(nil) should be a no-op, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.AddDocuments(ctx, testDocs()); err != nil {
		t.Fatalf("AddDocuments failed: %v", err)
	}

	results, err := store.Search(ctx, "best beach to visit", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID != "1" {
		t.Errorf("top result should be the beach document, got %q", results[0].Document.ID)
	}
	if results[0].Document.Metadata.Document != "coast.pdf" {
		t.Errorf("metadata document: %q", results[0].Document.Metadata.Document)
	}
	if results[0].Document.Metadata.Page != 2 {
		t.Errorf("metadata page: %d", results[0].Document.Metadata.Page)
	}
}

func TestSearchLimitClamped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.AddDocuments(ctx, testDocs()); err != nil {
		t.Fatalf("AddDocuments failed: %v", err)
	}

	results, err := store.Search(ctx, "museum", 50)
	if err != nil {
		t.Fatalf("Search with oversized limit failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected limit clamped to collection size 3, got %d", len(results))
	}
}

func TestSearchEmptyStore(t *testing.T) {
	store := newTestStore(t)
	results, err := store.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search on empty store failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestPersistAndLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := newTestStore(t)
	if err := store.AddDocuments(ctx, testDocs()); err != nil {
		t.Fatalf("AddDocuments failed: %v", err)
	}
	if err := store.Persist(ctx, dir); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	restored := newTestStore(t)
	if err := restored.Load(ctx, dir); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := restored.Count(); got != 3 {
		t.Errorf("Count after Load = %d, want 3", got)
	}

	results, err := restored.Search(ctx, "food market", 1)
	if err != nil {
		t.Fatalf("Search after Load failed: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "3" {
		t.Errorf("unexpected results after Load: %+v", results)
	}
}

func TestLoadMissingIndex(t *testing.T) {
	store := newTestStore(t)
	if err := store.Load(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error when loading from a directory without an index")
	}
}
