// Package voice turns parsed dialogue into one concatenated audio stream.
package voice

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/hyperjump/genie/internal/models"
	"github.com/hyperjump/genie/internal/speech"
	"go.uber.org/zap"
)

// Profile holds the per-speaker voice parameters.
type Profile struct {
	Language string
	Accent   string
}

// ProgressFunc receives the completed fraction in (0, 1] after each original
// line is handled (synthesized or skipped).
type ProgressFunc func(fraction float64)

// Engine synthesizes dialogue lines with per-speaker voice profiles and
// concatenates the resulting MPEG segments into one stream.
type Engine struct {
	synth    speech.Synthesizer
	profiles map[models.Speaker]Profile
	logger   *zap.Logger // optional
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine using synth and the given speaker profiles.
func NewEngine(synth speech.Synthesizer, profiles map[models.Speaker]Profile, opts ...Option) *Engine {
	e := &Engine{synth: synth, profiles: profiles}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Synthesize converts lines into one audio stream, in line order. Lines whose
// utterance is empty after normalization are skipped but still count toward
// the progress denominator, which is fixed at len(lines) so reported fractions
// are monotonic, bounded by 1, and reach exactly 1 after the last line.
// On the first synthesis failure the whole operation fails with no partial
// audio. progress is optional; a panicking observer never aborts synthesis.
func (e *Engine) Synthesize(ctx context.Context, lines []models.DialogueLine, progress ProgressFunc) ([]byte, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("no dialogue lines to synthesize")
	}
	total := len(lines)
	var stream bytes.Buffer
	for i, line := range lines {
		utterance := strings.TrimSpace(strings.ReplaceAll(line.Utterance, "\n", " "))
		if utterance == "" {
			notify(progress, i+1, total)
			continue
		}
		utterance = normalizeForSpeaker(line.Speaker, utterance)

		profile, ok := e.profiles[line.Speaker]
		if !ok {
			return nil, fmt.Errorf("no voice profile for speaker %q", line.Speaker)
		}
		segment, err := e.synth.Synthesize(ctx, utterance, profile.Language, profile.Accent)
		if err != nil {
			return nil, fmt.Errorf("synthesize line %d (%s): %w", i+1, line.Speaker, err)
		}
		stream.Write(segment)
		if e.logger != nil {
			e.logger.Debug("segment synthesized",
				zap.Int("line", i+1),
				zap.Int("total", total),
				zap.String("speaker", string(line.Speaker)),
				zap.Int("bytes", len(segment)))
		}
		notify(progress, i+1, total)
	}
	return stream.Bytes(), nil
}

// normalizeForSpeaker applies the speaker-specific text adjustment: Ben's
// utterances starting with a lowercase letter get a leading filler word to
// smooth the conversational tone.
func normalizeForSpeaker(speaker models.Speaker, utterance string) string {
	if speaker != models.SpeakerBen {
		return utterance
	}
	runes := []rune(utterance)
	if len(runes) > 0 && unicode.IsLower(runes[0]) {
		return "Well, " + utterance
	}
	return utterance
}

// notify invokes progress with completed/total, swallowing observer panics.
func notify(progress ProgressFunc, completed, total int) {
	if progress == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	progress(float64(completed) / float64(total))
}
