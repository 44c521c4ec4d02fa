package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ozytarget/newsdesk/internal/config"
)

const (
	geminiBase     = "https://generativelanguage.googleapis.com/v1beta"
	geminiFallback = "gemini-2.5-flash"

	geminiTemperature = 0.20
	modelCacheTTL     = time.Hour

	limiterBurst = 5
)

// geminiPreferred is the model preference order; the first one the API key
// can see wins.
var geminiPreferred = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.0-pro",
	"gemini-2.0-flash",
	"gemini-1.5-pro",
	"gemini-1.5-flash",
	"gemini-pro",
}

type geminiClient struct {
	apiKey  string
	base    string
	client  *http.Client
	limiter *rate.Limiter
	breaker *breaker
	logger  *zerolog.Logger

	mu           sync.Mutex
	pickedModel  string
	pickedExpiry time.Time
}

// NewGemini creates a Gemini REST client with model auto-selection.
func NewGemini(cfg *config.Config, logger *zerolog.Logger) Client {
	return &geminiClient{
		apiKey:  cfg.GeminiAPIKey,
		base:    geminiBase,
		client:  &http.Client{Timeout: cfg.LLMTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.LLMRateLimitRPS), limiterBurst),
		breaker: newBreaker(logger),
		logger:  logger,
	}
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

func (c *geminiClient) Generate(ctx context.Context, prompt string, maxOutputTokens int, jsonMode bool) (string, error) {
	if err := c.breaker.check(); err != nil {
		return "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llm rate limiter: %w", err)
	}

	model := c.pickModel(ctx)

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     geminiTemperature,
			MaxOutputTokens: maxOutputTokens,
		},
	}
	if jsonMode {
		reqBody.GenerationConfig.ResponseMimeType = "application/json"
	}

	var resp geminiResponse

	status, err := c.post(ctx, fmt.Sprintf("%s/models/%s:generateContent", c.base, model), reqBody, &resp)
	if err != nil {
		c.breaker.recordFailure()

		return "", err
	}

	if status == http.StatusNotFound {
		c.breaker.recordFailure()
		c.invalidateModel()

		return "", fmt.Errorf("gemini model not found: %s", model)
	}

	if status >= http.StatusBadRequest {
		c.breaker.recordFailure()

		return "", fmt.Errorf("gemini generateContent status %d", status)
	}

	text := extractGeminiText(resp)
	if text == "" {
		c.breaker.recordFailure()

		finish := ""
		if len(resp.Candidates) > 0 {
			finish = resp.Candidates[0].FinishReason
		}

		return "", fmt.Errorf("%w (finishReason=%s)", ErrEmptyResponse, finish)
	}

	c.breaker.recordSuccess()

	return text, nil
}

func extractGeminiText(resp geminiResponse) string {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
}

// pickModel returns the cached model choice, refreshing from listModels
// once per hour. Listing failures fall back to a safe default without
// poisoning the cache.
func (c *geminiClient) pickModel(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pickedModel != "" && time.Now().Before(c.pickedExpiry) {
		return c.pickedModel
	}

	models, err := c.listModels(ctx)
	if err != nil || len(models) == 0 {
		c.logger.Debug().Err(err).Msg("gemini listModels unavailable, using fallback model")

		return geminiFallback
	}

	picked := models[0]

	for _, pref := range geminiPreferred {
		found := ""

		for _, m := range models {
			if m == pref || strings.HasPrefix(m, pref) {
				found = m

				break
			}
		}

		if found != "" {
			picked = found

			break
		}
	}

	c.pickedModel = picked
	c.pickedExpiry = time.Now().Add(modelCacheTTL)

	return picked
}

func (c *geminiClient) invalidateModel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pickedModel = ""
}

func (c *geminiClient) listModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("build listModels request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listModels: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listModels status %d", resp.StatusCode)
	}

	var payload struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode listModels: %w", err)
	}

	models := make([]string, 0, len(payload.Models))

	for _, m := range payload.Models {
		name := strings.TrimSpace(m.Name)
		if strings.HasPrefix(name, "models/") {
			models = append(models, strings.TrimPrefix(name, "models/"))
		}
	}

	return models, nil
}

func (c *geminiClient) post(ctx context.Context, url string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		// Drain so the connection can be reused; the status is the signal.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	return resp.StatusCode, nil
}
