// Package session holds the state of one user interaction and orchestrates
// the processing workflows over it.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hyperjump/genie/internal/chat"
	"github.com/hyperjump/genie/internal/config"
	"github.com/hyperjump/genie/internal/dialogue"
	"github.com/hyperjump/genie/internal/embedding"
	"github.com/hyperjump/genie/internal/extract"
	"github.com/hyperjump/genie/internal/generate"
	"github.com/hyperjump/genie/internal/index"
	"github.com/hyperjump/genie/internal/llm"
	"github.com/hyperjump/genie/internal/models"
	"github.com/hyperjump/genie/internal/speech"
	"github.com/hyperjump/genie/internal/voice"
	"go.uber.org/zap"
)

// ErrEmptyInput is returned when an operation needs processed documents and none exist.
var ErrEmptyInput = errors.New("no documents processed")

// ErrNoScript is returned when audio synthesis is attempted before a script exists.
var ErrNoScript = errors.New("no podcast script: generate one first")

// Session is the context of one user interaction: the extracted text units,
// the retrieval index, the generated script, and the current progress
// fraction. Exactly one processing run may be active at a time; Session is
// not safe for concurrent operations.
type Session struct {
	id        string
	loader    *extract.Loader
	indexer   *index.Indexer
	pipeline  *generate.Pipeline
	responder *chat.Responder
	engine    *voice.Engine
	logger    *zap.Logger

	units    []models.TextUnit
	idx      *index.Index
	chunks   []models.Chunk
	script   string
	progress float64
}

// New wires a session from configuration and the three external service
// boundaries. Pass mock implementations in tests.
func New(cfg *config.Config, embedder embedding.Embedder, client llm.Client, synth speech.Synthesizer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	profiles := map[models.Speaker]voice.Profile{
		models.SpeakerAlex: {Language: cfg.Speech.Language, Accent: cfg.Speech.AlexAccent},
		models.SpeakerBen:  {Language: cfg.Speech.Language, Accent: cfg.Speech.BenAccent},
	}
	return &Session{
		id:        uuid.New().String(),
		loader:    extract.NewLoader(extract.WithLogger(logger)),
		indexer:   index.NewIndexer(embedder, cfg.Chunking.IndexSize, cfg.Chunking.IndexOverlap, index.WithLogger(logger)),
		pipeline:  generate.NewPipeline(client, cfg.Chunking.GenerationSize, cfg.Chunking.GenerationOverlap, generate.WithLogger(logger)),
		responder: chat.NewResponder(client, cfg.Retrieval.TopK, chat.WithLogger(logger)),
		engine:    voice.NewEngine(synth, profiles, voice.WithLogger(logger)),
		logger:    logger,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// LoadDocuments resets the session and extracts text units from docs.
// Returns ErrEmptyInput when no units could be extracted.
func (s *Session) LoadDocuments(docs []models.SourceDocument) (int, error) {
	s.Reset()
	units := s.loader.Load(docs)
	if len(units) == 0 {
		return 0, ErrEmptyInput
	}
	s.units = units
	s.logger.Info("documents loaded",
		zap.String("session", s.id),
		zap.Int("documents", len(docs)),
		zap.Int("units", len(units)))
	return len(units), nil
}

// BuildIndex builds the retrieval index over the loaded units.
func (s *Session) BuildIndex(ctx context.Context) error {
	if len(s.units) == 0 {
		return ErrEmptyInput
	}
	idx, chunks, err := s.indexer.Build(ctx, s.units)
	if err != nil {
		return err
	}
	s.idx = idx
	s.chunks = chunks
	return nil
}

// ProcessDocuments loads docs and builds the retrieval index in one pass.
// Returns the number of extracted units.
func (s *Session) ProcessDocuments(ctx context.Context, docs []models.SourceDocument) (int, error) {
	n, err := s.LoadDocuments(docs)
	if err != nil {
		return 0, err
	}
	if err := s.BuildIndex(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

// Summarize generates a summary of the loaded documents, tracking progress on
// the session. Returns ErrEmptyInput (no service call) when nothing is loaded.
func (s *Session) Summarize(ctx context.Context) (string, error) {
	if len(s.units) == 0 {
		return "", ErrEmptyInput
	}
	s.progress = 0
	return s.pipeline.Run(ctx, s.units, generate.ModeSummarize, s.setProgress)
}

// Ask answers a question grounded in the retrieval index. Fails with
// chat.ErrNotReady before the index is built.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	return s.responder.Answer(ctx, s.idx, question)
}

// GenerateScript generates the two-host podcast script. A partial script
// produced before a stopping failure is retained on the session alongside the
// returned error, matching the summary pipeline's partial-result policy.
func (s *Session) GenerateScript(ctx context.Context) (string, error) {
	if len(s.units) == 0 {
		return "", ErrEmptyInput
	}
	s.progress = 0
	script, err := s.pipeline.Run(ctx, s.units, generate.ModeScript, s.setProgress)
	if script != "" {
		s.script = script
	}
	return script, err
}

// SynthesizeAudio parses the session script and synthesizes the two-voice
// audio stream. progress (optional) receives fractions in addition to the
// session's own tracking. Fails with ErrNoScript when no script exists and
// with dialogue.ErrNoDialogueFound when the script has no usable lines.
func (s *Session) SynthesizeAudio(ctx context.Context, progress voice.ProgressFunc) ([]byte, error) {
	if s.script == "" {
		return nil, ErrNoScript
	}
	lines, err := dialogue.Parse(s.script)
	if err != nil {
		return nil, err
	}
	s.progress = 0
	return s.engine.Synthesize(ctx, lines, func(f float64) {
		s.progress = f
		if progress != nil {
			progress(f)
		}
	})
}

// Reset clears all session state for a fresh processing run.
func (s *Session) Reset() {
	s.units = nil
	s.idx = nil
	s.chunks = nil
	s.script = ""
	s.progress = 0
}

func (s *Session) setProgress(f float64) { s.progress = f }

// Ready reports whether the retrieval index has been built.
func (s *Session) Ready() bool { return s.idx != nil }

// HasScript reports whether a podcast script is available.
func (s *Session) HasScript() bool { return s.script != "" }

// Script returns the current podcast script ("" when none).
func (s *Session) Script() string { return s.script }

// Progress returns the progress fraction of the most recent chunked run.
func (s *Session) Progress() float64 { return s.progress }

// UnitCount returns the number of loaded text units.
func (s *Session) UnitCount() int { return len(s.units) }

// ChunkCount returns the number of indexed chunks.
func (s *Session) ChunkCount() int { return len(s.chunks) }
