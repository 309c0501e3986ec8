// Package llm talks to language-model completion APIs.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/reportgest/internal/stats"
)

// Completer sends a rendered prompt to a model and returns its raw reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config selects and configures a completion backend.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// Client is a Completer that can report its model and release resources.
type Client interface {
	Completer
	Model() string
	Close()
}

// New builds the backend named by cfg.Provider. Latency samples go to
// latency, which may be nil.
func New(cfg Config, latency *stats.Latency) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGroq:
		return NewGroqClient(cfg, latency), nil
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, latency), nil
	case ProviderOllama:
		return NewOllamaClient(cfg, latency), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// RequiresAPIKey reports whether provider needs a credential.
func RequiresAPIKey(provider string) bool {
	return !strings.EqualFold(provider, ProviderOllama)
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 120 * time.Second
	}
	return d
}
