// Package index builds a session-scoped retrieval index over chunk embeddings.
package index

import (
	"context"
	"fmt"

	"github.com/hyperjump/genie/internal/chunker"
	"github.com/hyperjump/genie/internal/embedding"
	"github.com/hyperjump/genie/internal/models"
	"github.com/hyperjump/genie/internal/vector"
	"github.com/hyperjump/genie/pkg/utils"
	"go.uber.org/zap"
)

// Indexer chunks document text, embeds the chunks, and builds a retrieval index.
type Indexer struct {
	embedder embedding.Embedder
	chunker  *chunker.Chunker
	logger   *zap.Logger // optional; when set, logs build progress
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(ix *Indexer) { ix.logger = l }
}

// NewIndexer creates an indexer chunking at the given size and overlap (characters).
func NewIndexer(embedder embedding.Embedder, chunkSize, chunkOverlap int, opts ...Option) *Indexer {
	ix := &Indexer{
		embedder: embedder,
		chunker:  chunker.New(chunkSize, chunkOverlap),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Build concatenates unit text, chunks it, embeds every chunk, and returns the
// retrieval index plus the chunk sequence. Empty input returns (nil, nil, nil):
// callers treat a nil index as "no documents processed", not an error.
func (ix *Indexer) Build(ctx context.Context, units []models.TextUnit) (*Index, []models.Chunk, error) {
	text := utils.CollapseWhitespace(chunker.Concat(units))
	chunks := ix.chunker.Split(text)
	if len(chunks) == 0 {
		return nil, nil, nil
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}
	embeddings, err := ix.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("embed chunks: %w", err)
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	vi, err := vector.NewMemoryIndex(ix.embedder.Dimensions())
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(chunks))
	for i, ch := range chunks {
		ids[i] = ch.ID
	}
	if err := vi.Add(ctx, ids, embeddings); err != nil {
		return nil, nil, fmt.Errorf("index vectors: %w", err)
	}

	byID := make(map[string]models.Chunk, len(chunks))
	for _, ch := range chunks {
		byID[ch.ID] = ch
	}
	if ix.logger != nil {
		ix.logger.Debug("retrieval index built",
			zap.Int("units", len(units)),
			zap.Int("chunks", len(chunks)),
			zap.Int("dimensions", ix.embedder.Dimensions()))
	}
	return &Index{vectors: vi, embedder: ix.embedder, byID: byID}, chunks, nil
}

// Index is a read-only retrieval index over one session's chunks.
type Index struct {
	vectors  *vector.MemoryIndex
	embedder embedding.Embedder
	byID     map[string]models.Chunk
}

// Query embeds the query with the index's embedding model and returns the k
// nearest chunks in descending similarity order, ties broken by original
// chunk order.
func (x *Index) Query(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	vec, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := x.vectors.Search(ctx, vec, k)
	if err != nil {
		return nil, err
	}
	chunks := make([]models.Chunk, 0, len(results))
	for _, r := range results {
		if ch, ok := x.byID[r.ID]; ok {
			chunks = append(chunks, ch)
		}
	}
	return chunks, nil
}

// Size returns the number of indexed chunks.
func (x *Index) Size() int {
	return x.vectors.Size()
}
