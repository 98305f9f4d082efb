// Package llm provides a minimal client for OpenAI-compatible
// chat-completion endpoints (Groq, OpenAI, or any local server speaking the
// same protocol).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrGenerationUnavailable indicates the generation service could not be
// reached or refused the request. It is always recoverable by retrying the
// player action that triggered the call.
var ErrGenerationUnavailable = errors.New("generation service unavailable")

// maxResponseSize limits the response body read to prevent memory exhaustion
const maxResponseSize = 4 * 1024 * 1024 // 4MB

// Config holds connection settings for the generation endpoint
type Config struct {
	// BaseURL is the API root, e.g. https://api.groq.com/openai/v1
	BaseURL string
	// APIKey is sent as a Bearer token when non-empty
	APIKey string
	// Model is the model identifier passed on every request
	Model string
	// Temperature controls randomness of the generated text
	Temperature float64
	// MaxTokens limits response length
	MaxTokens int
	// Timeout bounds a single generation call
	Timeout time.Duration
}

// DefaultConfig returns defaults matching the hosted Groq endpoint
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.groq.com/openai/v1",
		Model:       "llama-3.3-70b-versatile",
		Temperature: 1.0,
		MaxTokens:   1024,
		Timeout:     60 * time.Second,
	}
}

// Client calls an OpenAI-compatible chat completions API
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new generation client
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// chat completions wire types

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete performs a single chat completion call and returns the generated
// text. It does not retry; callers decide whether a failed call is worth
// repeating.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.NewString()

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", err
	}

	url := c.cfg.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("generation call failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("generation call rejected",
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode),
		)
		return "", fmt.Errorf("%w: HTTP %d", ErrGenerationUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationUnavailable)
	}

	c.logger.Info("generation call completed",
		slog.String("request_id", requestID),
		slog.String("model", c.cfg.Model),
		slog.Int("total_tokens", parsed.Usage.TotalTokens),
		slog.Duration("duration", time.Since(start)),
	)

	return parsed.Choices[0].Message.Content, nil
}
