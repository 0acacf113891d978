package speech

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAISynthesizer produces MP3 audio via an OpenAI-compatible speech endpoint.
type OpenAISynthesizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISynthesizer creates a synthesizer for the given speech model.
// baseURL may be empty (default endpoint) or point at any OpenAI-compatible service.
func NewOpenAISynthesizer(apiKey, baseURL, model string) *OpenAISynthesizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Synthesize returns MP3 bytes for text using the voice mapped from accent.
// The service infers pronunciation from the text itself, so language is
// accepted for interface compatibility but not sent.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, language, accent string) ([]byte, error) {
	rsp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          voiceForAccent(accent),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer rsp.Close()
	audio, err := io.ReadAll(rsp)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}
	return audio, nil
}

// voiceForAccent maps an accent tag to a concrete service voice.
func voiceForAccent(accent string) openai.SpeechVoice {
	switch accent {
	case "british":
		return openai.VoiceFable
	case "american":
		return openai.VoiceOnyx
	default:
		return openai.VoiceAlloy
	}
}
