package speech

import "context"

// SynthesizedCall records one mock synthesis request.
type SynthesizedCall struct {
	Text     string
	Language string
	Accent   string
}

// MockSynthesizer is a deterministic synthesizer for tests. Each call yields
// a payload derived from the utterance so byte lengths are predictable.
type MockSynthesizer struct {
	// Err, when set, is returned once the call index reaches ErrAt (0-based).
	Err   error
	ErrAt int
	// Calls records every request received.
	Calls []SynthesizedCall
}

// Synthesize records the call and returns "[<accent>]<text>" as fake audio bytes.
func (m *MockSynthesizer) Synthesize(ctx context.Context, text, language, accent string) ([]byte, error) {
	call := len(m.Calls)
	m.Calls = append(m.Calls, SynthesizedCall{Text: text, Language: language, Accent: accent})
	if m.Err != nil && call >= m.ErrAt {
		return nil, m.Err
	}
	return []byte("[" + accent + "]" + text), nil
}
