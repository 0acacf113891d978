// Package chat answers questions grounded in the session's retrieval index.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/genie/internal/index"
	"github.com/hyperjump/genie/internal/llm"
	"go.uber.org/zap"
)

// ErrNotReady is returned when answering is attempted before an index exists.
var ErrNotReady = errors.New("no retrieval index: process documents first")

// answerPrompt instructs the completion service to answer strictly from the
// supplied context and to emit the fixed fallback phrase otherwise. This is a
// prompt-level contract; the returned answer is passed through unverified.
const answerPrompt = `Answer the user's question based on the provided context.
If the answer is not in the context, say "I couldn't find the answer in the documents."
<context>
%s
</context>
Question: %s`

// Responder composes grounded prompts from retrieved chunks and delegates to
// the completion service.
type Responder struct {
	client llm.Client
	topK   int
	logger *zap.Logger // optional
}

// Option configures a Responder.
type Option func(*Responder)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Responder) { r.logger = l }
}

// NewResponder creates a responder retrieving topK chunks per question.
func NewResponder(client llm.Client, topK int, opts ...Option) *Responder {
	r := &Responder{client: client, topK: topK}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Answer retrieves the top-k chunks for question from idx, builds the grounded
// prompt, and returns the service's answer unmodified. Fails with ErrNotReady
// before any external call when idx is nil.
func (r *Responder) Answer(ctx context.Context, idx *index.Index, question string) (string, error) {
	if idx == nil {
		return "", ErrNotReady
	}
	chunks, err := idx.Query(ctx, question, r.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	parts := make([]string, len(chunks))
	for i, ch := range chunks {
		parts[i] = ch.Content
	}
	if r.logger != nil {
		r.logger.Debug("answering question",
			zap.Int("retrieved_chunks", len(chunks)),
			zap.String("question", question))
	}
	return r.client.Complete(ctx, fmt.Sprintf(answerPrompt, strings.Join(parts, "\n\n"), question))
}
