// Package embedding provides text embedding via a hosted model, with caching.
package embedding

import "context"

// Embedder produces vector embeddings for text. The same embedder instance
// must be used for index construction and query-time embedding so that
// vectors live in the same space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}
