package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
	"github.com/kirillkom/exam-verifier/internal/infrastructure/resilience"
)

const defaultMaxOutputTokens = 300

type Config struct {
	BaseURL         string
	APIKey          string
	Model           string
	MaxOutputTokens int
	Timeout         time.Duration
	RequestsPerSec  float64
	Burst           int
}

// Client calls an OpenAI-style chat/completions endpoint with a multimodal
// message and a JSON-object response format. One attempt per request; the
// breaker only sheds load when the backend is degraded.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *resilience.Breaker
}

func New(cfg Config, breaker *resilience.Breaker) *Client {
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    breaker,
	}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Classify(ctx context.Context, prompt domain.ModelPrompt) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", domain.WrapError(domain.ErrBackend, "rate limit backend call", err)
	}

	var content string
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		raw, callErr := c.complete(ctx, prompt)
		if callErr != nil {
			return callErr
		}
		content = raw
		return nil
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrBackend, "classify document", err)
	}
	return content, nil
}

func (c *Client) complete(ctx context.Context, prompt domain.ModelPrompt) (string, error) {
	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []any{
			map[string]any{
				"role":    "system",
				"content": prompt.SystemInstruction,
			},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": prompt.UserText},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": prompt.DataURL()}},
				},
			},
		},
		"max_tokens":      c.cfg.MaxOutputTokens,
		"response_format": map[string]any{"type": "json_object"},
	}

	var response chatResponse
	if err := c.postJSON(ctx, "/chat/completions", body, &response, "chat completion"); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return content, nil
}
