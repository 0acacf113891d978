// Package chunker splits text into overlapping fixed-size character windows.
package chunker

import (
	"fmt"
	"strings"

	"github.com/hyperjump/genie/internal/models"
)

// Chunker splits text into overlapping chunks measured in characters (runes).
type Chunker struct {
	size    int
	overlap int
}

// New creates a chunker with the given target size and overlap (in characters).
// Overlap must be smaller than size; a degenerate configuration falls back to
// a step of one character so the chunker always makes progress.
func New(size, overlap int) *Chunker {
	return &Chunker{size: size, overlap: overlap}
}

// Split splits text into chunks. Each chunk after the first begins overlap
// characters before the previous chunk's end; the final chunk may be shorter.
// Text no longer than the target size yields exactly one chunk equal to the
// input. Empty text yields no chunks. Deterministic for identical input.
func (c *Chunker) Split(text string) []models.Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	step := c.size - c.overlap
	if step <= 0 {
		step = 1
	}
	var chunks []models.Chunk
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, models.Chunk{
			ID:      fmt.Sprintf("c%d", len(chunks)),
			Index:   len(chunks),
			Content: string(runes[start:end]),
		})
		if end >= len(runes) {
			break
		}
	}
	return chunks
}

// Concat joins unit text with single spaces. Unit boundaries do not force
// chunk boundaries.
func Concat(units []models.TextUnit) string {
	parts := make([]string, 0, len(units))
	for _, u := range units {
		parts = append(parts, u.Content)
	}
	return strings.Join(parts, " ")
}
