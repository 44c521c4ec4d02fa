// Package llm abstracts the external text-generation service.
//
// The service is slow (seconds), unreliable, and its output is untrusted;
// callers must treat any returned text as a candidate for repair, never as
// valid JSON. All failure modes surface as ordinary errors.
package llm

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ozytarget/newsdesk/internal/config"
)

// ErrEmptyResponse is returned when the provider answered but produced no
// text, e.g. after hitting its output token limit.
var ErrEmptyResponse = errors.New("llm: empty response")

// Client generates free-form text from a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int, jsonMode bool) (string, error)
}

// New selects a provider from the configuration: Gemini when a Gemini key
// is set, OpenAI when an OpenAI key is set, otherwise a deterministic mock
// so the pipeline runs without any external service.
func New(cfg *config.Config, logger *zerolog.Logger) Client {
	switch {
	case cfg.GeminiAPIKey != "":
		return NewGemini(cfg, logger)
	case cfg.OpenAIAPIKey != "":
		return NewOpenAI(cfg, logger)
	default:
		logger.Warn().Msg("no LLM API key configured, using mock client")

		return &mockClient{}
	}
}

type mockClient struct{}

func (c *mockClient) Generate(_ context.Context, _ string, _ int, jsonMode bool) (string, error) {
	if jsonMode {
		return `{"caption":"MOCK DIGEST (no LLM key configured)","reasoning":[],"bullets":[],"scenarios":{},"watchlist":[]}`, nil
	}

	return "MOCK OUTPUT (no LLM key configured)", nil
}
