package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dgallion1/reportgest/internal/stats"
)

const (
	defaultGroqURL   = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel = "llama-3.3-70b-versatile"
)

// GroqClient calls Groq's OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	apiKey     string
	model      string
	url        string
	maxTokens  int
	httpClient *http.Client
	latency    *stats.Latency
}

func NewGroqClient(cfg Config, latency *stats.Latency) *GroqClient {
	return &GroqClient{
		apiKey:    cfg.APIKey,
		model:     orDefault(cfg.Model, defaultGroqModel),
		url:       orDefault(cfg.BaseURL, defaultGroqURL),
		maxTokens: cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: timeoutOrDefault(cfg.Timeout),
		},
		latency: latency,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends prompt as a single user message and returns the reply.
func (c *GroqClient) Complete(ctx context.Context, prompt string) (reply string, err error) {
	start := time.Now()
	defer func() { c.latency.Observe(start, err) }()

	req := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: c.maxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var apiResp chatResponse
	if err := PostJSON(ctx, c.httpClient, c.url, headers, req, &apiResp); err != nil {
		return "", fmt.Errorf("groq api: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("groq error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return apiResp.Choices[0].Message.Content, nil
}

// Model returns the model identifier requests are sent to.
func (c *GroqClient) Model() string { return c.model }

// Close releases resources.
func (c *GroqClient) Close() {
	c.httpClient.CloseIdleConnections()
}
