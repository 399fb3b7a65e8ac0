// Package summarizer composes the daily brief prompt and calls the remote
// chat-completion endpoint.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonesrussell/newsbrief/internal/config"
	"github.com/jonesrussell/newsbrief/internal/logger"
	"github.com/jonesrussell/newsbrief/internal/metrics"
)

// Common errors returned by the summarizer package.
var (
	// ErrMissingAPIKey is returned when no credential was provided by flag,
	// config, or environment.
	ErrMissingAPIKey = errors.New("summarizer API key is required (set DEEPSEEK_API_KEY or --api-key)")

	// ErrNoChoices is returned when the API response contains zero choices.
	ErrNoChoices = errors.New("completion response contained no choices")
)

// errorBodyLimit caps how much of an error response body is carried into the
// returned error.
const errorBodyLimit = 2048

// Interface generates a markdown brief from a day's article records.
type Interface interface {
	Summarize(ctx context.Context, records []json.RawMessage) (string, error)
}

// Client is an HTTP client for an OpenAI-compatible chat-completion endpoint.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	logger      logger.Interface
	metrics     *metrics.Metrics
}

// Ensure Client implements Interface.
var _ Interface = (*Client)(nil)

// NewClient creates a completion client. The credential is a hard
// precondition: with no API key resolved from flag, config, or environment,
// construction fails and no call is ever attempted.
func NewClient(cfg config.SummarizerConfig, log logger.Interface, m *metrics.Metrics) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      log.WithComponent("summarizer"),
		metrics:     m,
	}, nil
}

// Summarize sends the composed prompt as one user message and returns the
// text of the first returned choice. One synchronous request, no retry.
func (c *Client) Summarize(ctx context.Context, records []json.RawMessage) (string, error) {
	prompt, err := ComposePrompt(records)
	if err != nil {
		return "", fmt.Errorf("compose prompt: %w", err)
	}

	reqBody := ChatCompletionRequest{
		Model:       c.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Stream:      false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Info("Calling completion endpoint",
		"model", c.model,
		"prompt_chars", len(prompt),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveSummarizerRequest(time.Since(start))
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		excerpt := body
		if len(excerpt) > errorBodyLimit {
			excerpt = excerpt[:errorBodyLimit]
		}
		return "", fmt.Errorf("completion endpoint returned %s: %s", resp.Status, excerpt)
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("parse completion response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrNoChoices
	}

	c.logger.Info("Generated brief",
		"model", completion.Model,
		"total_tokens", completion.Usage.TotalTokens,
	)
	return completion.Choices[0].Message.Content, nil
}
