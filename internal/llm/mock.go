package llm

import "context"

// MockClient is a scriptable completion client for tests. It records every
// prompt and replays canned responses in order.
type MockClient struct {
	// Responses are returned in call order; the last one repeats when exhausted.
	Responses []string
	// Err, when set, is returned once the call index reaches ErrAt (0-based).
	Err   error
	ErrAt int
	// Prompts records every prompt received.
	Prompts []string
}

// Complete records the prompt and returns the next scripted response or error.
func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	call := len(m.Prompts)
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil && call >= m.ErrAt {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	if call >= len(m.Responses) {
		return m.Responses[len(m.Responses)-1], nil
	}
	return m.Responses[call], nil
}

// Calls returns the number of Complete invocations.
func (m *MockClient) Calls() int {
	return len(m.Prompts)
}
