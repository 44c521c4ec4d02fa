package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/ozytarget/newsdesk/internal/config"
)

const openaiTemperature = 0.2

type openaiClient struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	breaker *breaker
	logger  *zerolog.Logger
}

// NewOpenAI creates an OpenAI-backed client.
func NewOpenAI(cfg *config.Config, logger *zerolog.Logger) Client {
	return &openaiClient{
		client:  openai.NewClient(cfg.OpenAIAPIKey),
		model:   cfg.OpenAIModel,
		limiter: rate.NewLimiter(rate.Limit(cfg.LLMRateLimitRPS), limiterBurst),
		breaker: newBreaker(logger),
		logger:  logger,
	}
}

func (c *openaiClient) Generate(ctx context.Context, prompt string, maxOutputTokens int, jsonMode bool) (string, error) {
	if err := c.breaker.check(); err != nil {
		return "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llm rate limiter: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: openaiTemperature,
		MaxTokens:   maxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.breaker.recordFailure()

		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.breaker.recordFailure()

		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		c.breaker.recordFailure()

		return "", ErrEmptyResponse
	}

	c.breaker.recordSuccess()

	return text, nil
}
