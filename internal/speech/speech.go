// Package speech is the boundary to the hosted text-to-audio service.
package speech

import "context"

// Synthesizer converts an utterance into binary audio. The returned bytes are
// sequential MPEG frames so segments can be concatenated without re-encoding.
// language is a BCP-47-ish code (e.g. "en"); accent selects a per-speaker
// voice variant.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language, accent string) ([]byte, error)
}
