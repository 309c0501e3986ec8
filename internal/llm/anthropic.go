package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/reportgest/internal/stats"
)

const (
	defaultAnthropicURL   = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	apiKey     string
	model      string
	url        string
	maxTokens  int
	httpClient *http.Client
	latency    *stats.Latency
}

func NewAnthropicClient(cfg Config, latency *stats.Latency) *AnthropicClient {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &AnthropicClient{
		apiKey:    cfg.APIKey,
		model:     orDefault(cfg.Model, defaultAnthropicModel),
		url:       orDefault(cfg.BaseURL, defaultAnthropicURL),
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeoutOrDefault(cfg.Timeout),
		},
		latency: latency,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends prompt as a single user message and returns the text reply.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (reply string, err error) {
	start := time.Now()
	defer func() { c.latency.Observe(start, err) }()

	req := anthropicRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	}

	var apiResp anthropicResponse
	if err := PostJSON(ctx, c.httpClient, c.url, headers, req, &apiResp); err != nil {
		return "", fmt.Errorf("anthropic api: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("anthropic error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from anthropic")
	}
	return sb.String(), nil
}

// Model returns the model identifier requests are sent to.
func (c *AnthropicClient) Model() string { return c.model }

// Close releases resources.
func (c *AnthropicClient) Close() {
	c.httpClient.CloseIdleConnections()
}
