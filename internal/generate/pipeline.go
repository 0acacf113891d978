// Package generate drives chunked summary and podcast-script generation.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperjump/genie/internal/chunker"
	"github.com/hyperjump/genie/internal/llm"
	"github.com/hyperjump/genie/internal/models"
	"github.com/hyperjump/genie/pkg/utils"
	"go.uber.org/zap"
)

// Mode selects the generation workflow.
type Mode string

const (
	// ModeSummarize produces a document summary.
	ModeSummarize Mode = "summarize"
	// ModeScript produces a two-host podcast script.
	ModeScript Mode = "script"
)

// ProgressFunc receives the completed fraction in (0, 1] after each chunk.
type ProgressFunc func(fraction float64)

// Pipeline splits document text into generation-sized chunks and invokes the
// completion service per chunk, in order.
type Pipeline struct {
	client  llm.Client
	chunker *chunker.Chunker
	logger  *zap.Logger // optional; when set, logs per-chunk progress
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// NewPipeline creates a pipeline chunking at the given size and overlap (characters).
func NewPipeline(client llm.Client, chunkSize, chunkOverlap int, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:  client,
		chunker: chunker.New(chunkSize, chunkOverlap),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run generates mode-specific output over the concatenated unit text, one
// completion call per chunk, serially and in order. Fragments are joined by a
// blank line. On a chunk failure classified as a service error, processing
// stops: the fragments produced so far are returned along with the error.
// progress (optional) is invoked after each completed chunk with
// completed/total. No calls are issued when there is no text.
func (p *Pipeline) Run(ctx context.Context, units []models.TextUnit, mode Mode, progress ProgressFunc) (string, error) {
	template, err := templateFor(mode)
	if err != nil {
		return "", err
	}
	text := utils.CollapseWhitespace(chunker.Concat(units))
	chunks := p.chunker.Split(text)
	if len(chunks) == 0 {
		return "", nil
	}

	fragments := make([]string, 0, len(chunks))
	for i, ch := range chunks {
		out, err := p.client.Complete(ctx, fmt.Sprintf(template, ch.Content))
		if err != nil {
			partial := strings.Join(fragments, "\n\n")
			return partial, fmt.Errorf("generate chunk %d/%d: %w", i+1, len(chunks), err)
		}
		fragments = append(fragments, out)
		if p.logger != nil {
			p.logger.Debug("chunk generated",
				zap.String("mode", string(mode)),
				zap.Int("chunk", i+1),
				zap.Int("total", len(chunks)),
				zap.String("head", utils.Truncate(out, 80)))
		}
		if progress != nil {
			progress(float64(i+1) / float64(len(chunks)))
		}
	}
	return strings.Join(fragments, "\n\n"), nil
}

func templateFor(mode Mode) (string, error) {
	switch mode {
	case ModeSummarize:
		return summaryPrompt, nil
	case ModeScript:
		return scriptPrompt, nil
	default:
		return "", fmt.Errorf("unknown generation mode: %s", mode)
	}
}
