package summarize

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/reportgest/internal/llm"
	"github.com/dgallion1/reportgest/internal/stats"
)

const (
	defaultHFURL   = "https://router.huggingface.co/hf-inference/models"
	defaultHFModel = "facebook/bart-large-cnn"
)

// HuggingFaceClient calls the Hugging Face inference API summarization task.
type HuggingFaceClient struct {
	token      string
	model      string
	baseURL    string
	httpClient *http.Client
	latency    *stats.Latency
}

// HFConfig configures a HuggingFaceClient.
type HFConfig struct {
	Token   string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func NewHuggingFaceClient(cfg HFConfig, latency *stats.Latency) *HuggingFaceClient {
	if cfg.Model == "" {
		cfg.Model = defaultHFModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultHFURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &HuggingFaceClient{
		token:   cfg.Token,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		latency: latency,
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

// Summarize returns the model's summary of text.
func (c *HuggingFaceClient) Summarize(ctx context.Context, text string, p Params) (summary string, err error) {
	start := time.Now()
	defer func() { c.latency.Observe(start, err) }()

	req := hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MaxLength: p.MaxLength,
			MinLength: p.MinLength,
			DoSample:  !p.Deterministic,
		},
	}
	var headers map[string]string
	if c.token != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.token}
	}

	var out []hfSummary
	if err := llm.PostJSON(ctx, c.httpClient, c.baseURL+"/"+c.model, headers, req, &out); err != nil {
		return "", fmt.Errorf("huggingface %s: %w", c.model, err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("huggingface %s: empty summary", c.model)
	}
	return out[0].SummaryText, nil
}

// Model returns the summarization model identifier.
func (c *HuggingFaceClient) Model() string { return c.model }

// Close releases resources.
func (c *HuggingFaceClient) Close() {
	c.httpClient.CloseIdleConnections()
}
