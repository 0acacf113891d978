package index

import (
	"context"
	"strings"
	"testing"

	"github.com/hyperjump/genie/internal/embedding"
	"github.com/hyperjump/genie/internal/models"
)

func buildTestIndex(t *testing.T, text string, chunkSize, overlap int) (*Index, []models.Chunk) {
	t.Helper()
	ix := NewIndexer(embedding.NewMockEmbedder(32), chunkSize, overlap)
	idx, chunks, err := ix.Build(context.Background(), []models.TextUnit{{Source: "t.txt", Content: text}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx, chunks
}

func TestBuild_Empty(t *testing.T) {
	ix := NewIndexer(embedding.NewMockEmbedder(8), 100, 10)
	idx, chunks, err := ix.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx != nil || chunks != nil {
		t.Errorf("empty input should yield nil index and chunks, got %v, %v", idx, chunks)
	}
}

func TestBuild_ChunksRetained(t *testing.T) {
	idx, chunks, err := NewIndexer(embedding.NewMockEmbedder(16), 20, 5).
		Build(context.Background(), []models.TextUnit{
			{Source: "a.txt", Content: "alpha beta gamma delta epsilon zeta eta theta"},
		})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx == nil || len(chunks) == 0 {
		t.Fatal("expected index and chunks")
	}
	if idx.Size() != len(chunks) {
		t.Errorf("index size %d != chunk count %d", idx.Size(), len(chunks))
	}
	for i, ch := range chunks {
		if len(ch.Embedding) != 16 {
			t.Errorf("chunk %d embedding dimension %d", i, len(ch.Embedding))
		}
		if ch.Index != i {
			t.Errorf("chunk %d has Index %d", i, ch.Index)
		}
	}
}

func TestQuery_TopK(t *testing.T) {
	// Enough text to produce at least 10 chunks with size 20, overlap 5.
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("topic number ")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString(" content ")
	}
	idx, chunks := buildTestIndex(t, b.String(), 20, 5)
	if len(chunks) < 10 {
		t.Fatalf("test setup: expected >=10 chunks, got %d", len(chunks))
	}

	results, err := idx.Query(context.Background(), "topic content", 4)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	seen := make(map[string]bool)
	for _, ch := range results {
		if seen[ch.ID] {
			t.Errorf("duplicate chunk %s in results", ch.ID)
		}
		seen[ch.ID] = true
	}
}

func TestQuery_SameModelBothSides(t *testing.T) {
	// A chunk queried by its own text must rank first (identical embedding).
	idx, chunks := buildTestIndex(t, "the quick brown fox jumps over the lazy dog and keeps running far away", 30, 5)
	target := chunks[len(chunks)/2]
	results, err := idx.Query(context.Background(), target.Content, 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 1 || results[0].ID != target.ID {
		t.Errorf("expected %s first, got %+v", target.ID, results)
	}
}
