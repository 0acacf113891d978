package models

// Chunk is a bounded-length window of concatenated document text, used for
// embedding or as model input. Chunk IDs are deterministic per session
// (position-based) so that re-chunking identical input yields identical chunks.
type Chunk struct {
	ID        string    `json:"id"`
	Index     int       `json:"index"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"-"`
}
