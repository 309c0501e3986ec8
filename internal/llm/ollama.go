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
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3:instruct"
)

// OllamaClient calls a local Ollama server's generate endpoint.
type OllamaClient struct {
	model      string
	baseURL    string
	httpClient *http.Client
	latency    *stats.Latency
}

func NewOllamaClient(cfg Config, latency *stats.Latency) *OllamaClient {
	return &OllamaClient{
		model:   orDefault(cfg.Model, defaultOllamaModel),
		baseURL: strings.TrimSuffix(orDefault(cfg.BaseURL, defaultOllamaURL), "/"),
		httpClient: &http.Client{
			Timeout: timeoutOrDefault(cfg.Timeout),
		},
		latency: latency,
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Complete runs a non-streaming generation and returns the response text.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (reply string, err error) {
	start := time.Now()
	defer func() { c.latency.Observe(start, err) }()

	req := ollamaRequest{Model: c.model, Prompt: prompt}

	var raw ollamaResponse
	if err := PostJSON(ctx, c.httpClient, c.baseURL+"/api/generate", nil, req, &raw); err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	if raw.Error != "" {
		return "", fmt.Errorf("ollama error: %s", raw.Error)
	}
	return raw.Response, nil
}

// Model returns the model identifier requests are sent to.
func (c *OllamaClient) Model() string { return c.model }

// Close releases resources.
func (c *OllamaClient) Close() {
	c.httpClient.CloseIdleConnections()
}
