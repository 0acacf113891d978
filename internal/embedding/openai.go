package embedding

import (
	"context"
	"fmt"
	"sort"

	"github.com/hyperjump/genie/pkg/utils"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder embeds text via an OpenAI-compatible embeddings endpoint.
// Returned vectors are L2-normalized so inner product equals cosine similarity.
type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	dimensions int
	cache      *Cache
}

// NewOpenAIEmbedder creates an embedder for the given model and dimensions.
// baseURL may be empty (default endpoint) or point at any OpenAI-compatible
// service. cacheSize bounds the embedding LRU cache.
func NewOpenAIEmbedder(apiKey, baseURL, model string, dimensions, cacheSize int) *OpenAIEmbedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		dimensions: dimensions,
		cache:      NewCache(cacheSize),
	}
}

// Embed returns the embedding for text, from cache when available.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := e.cache.Get(text); ok {
		return vec, nil
	}
	rsp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(rsp.Data) == 0 || len(rsp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embedding service returned no data")
	}
	vec := rsp.Data[0].Embedding
	utils.NormalizeL2(vec)
	e.cache.Set(text, vec)
	return vec, nil
}

// EmbedBatch embeds all texts in one request, preserving input order.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	rsp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(rsp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, expected %d", len(rsp.Data), len(texts))
	}
	// Response items carry an Index field; restore input order before mapping back.
	sort.Slice(rsp.Data, func(i, j int) bool { return rsp.Data[i].Index < rsp.Data[j].Index })
	vectors := make([][]float32, len(texts))
	for i, d := range rsp.Data {
		vec := d.Embedding
		utils.NormalizeL2(vec)
		vectors[i] = vec
		e.cache.Set(texts[i], vec)
	}
	return vectors, nil
}

// Dimensions returns the embedding dimension.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}
