package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dgallion1/reportgest/internal/insights"
	"github.com/dgallion1/reportgest/internal/llm"
	"github.com/dgallion1/reportgest/internal/sections"
)

// EnvPrefix prefixes every environment override, e.g. REPORTGEST_OUTPUT.
const EnvPrefix = "REPORTGEST"

// MaxRetriesLimit bounds max_retries.
const MaxRetriesLimit = 10

type Config struct {
	// Run
	Input  string
	Output string
	Format string

	// Sectioning
	Headings     []string
	KeepPreamble bool

	// Summarization
	ChunkSize        int
	SummaryMaxLength int
	SummaryMinLength int
	Deterministic    bool
	SummarizerModel  string
	SummarizerURL    string
	HFToken          string

	// Language model
	LLMProvider  string
	LLMModel     string
	LLMURL       string
	LLMAPIKey    string
	LLMMaxTokens int

	// External calls
	Timeout    time.Duration
	MaxRetries int

	// PDF
	PDFFallbackPdftotext bool

	// Serve mode
	Port           string
	APIKey         string
	MaxUploadBytes int64

	LogLevel string
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", "company_report.pdf")
	v.SetDefault("output", "investor_insights.json")
	v.SetDefault("format", insights.FormatJSON)

	v.SetDefault("headings", sections.DefaultHeadings)
	v.SetDefault("keep_preamble", false)

	v.SetDefault("summarizer.chunk_size", 1024)
	v.SetDefault("summarizer.max_length", 100)
	v.SetDefault("summarizer.min_length", 30)
	v.SetDefault("summarizer.deterministic", true)
	v.SetDefault("summarizer.model", "facebook/bart-large-cnn")
	v.SetDefault("summarizer.url", "")
	v.SetDefault("summarizer.token", "")

	v.SetDefault("llm.provider", llm.ProviderGroq)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.groq_api_key", "")
	v.SetDefault("llm.anthropic_api_key", "")
	v.SetDefault("llm.max_tokens", 0)

	v.SetDefault("timeout", 120*time.Second)
	v.SetDefault("max_retries", 0)

	v.SetDefault("pdf_fallback_pdftotext", true)

	v.SetDefault("serve.port", "8090")
	v.SetDefault("serve.api_key", "")
	v.SetDefault("serve.max_upload_bytes", int64(52428800)) // 50MB

	v.SetDefault("log_level", "info")
}

// BindEnv maps REPORTGEST_* variables onto keys and adds the
// conventional credential variables as fallbacks.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	creds := map[string][]string{
		"summarizer.token":      {EnvPrefix + "_SUMMARIZER_TOKEN", "HF_TOKEN", "HUGGINGFACEHUB_API_TOKEN"},
		"llm.api_key":           {EnvPrefix + "_LLM_API_KEY"},
		"llm.groq_api_key":      {"GROQ_API_KEY"},
		"llm.anthropic_api_key": {"ANTHROPIC_API_KEY"},
		"serve.api_key":         {EnvPrefix + "_SERVE_API_KEY"},
	}
	for key, envs := range creds {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// New returns a viper instance with defaults and environment bindings.
func New() (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	if err := BindEnv(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Load copies v's settings into a Config, applying fallbacks for
// non-positive numbers.
func Load(v *viper.Viper) Config {
	cfg := Config{
		Input:  v.GetString("input"),
		Output: v.GetString("output"),
		Format: strings.ToLower(v.GetString("format")),

		Headings:     stringList(v.Get("headings")),
		KeepPreamble: v.GetBool("keep_preamble"),

		ChunkSize:        v.GetInt("summarizer.chunk_size"),
		SummaryMaxLength: v.GetInt("summarizer.max_length"),
		SummaryMinLength: v.GetInt("summarizer.min_length"),
		Deterministic:    v.GetBool("summarizer.deterministic"),
		SummarizerModel:  v.GetString("summarizer.model"),
		SummarizerURL:    v.GetString("summarizer.url"),
		HFToken:          v.GetString("summarizer.token"),

		LLMProvider:  strings.ToLower(v.GetString("llm.provider")),
		LLMModel:     v.GetString("llm.model"),
		LLMURL:       v.GetString("llm.url"),
		LLMAPIKey:    v.GetString("llm.api_key"),
		LLMMaxTokens: v.GetInt("llm.max_tokens"),

		Timeout:    v.GetDuration("timeout"),
		MaxRetries: v.GetInt("max_retries"),

		PDFFallbackPdftotext: v.GetBool("pdf_fallback_pdftotext"),

		Port:           v.GetString("serve.port"),
		APIKey:         v.GetString("serve.api_key"),
		MaxUploadBytes: v.GetInt64("serve.max_upload_bytes"),

		LogLevel: strings.ToLower(v.GetString("log_level")),
	}

	if cfg.LLMAPIKey == "" {
		switch cfg.LLMProvider {
		case llm.ProviderGroq:
			cfg.LLMAPIKey = v.GetString("llm.groq_api_key")
		case llm.ProviderAnthropic:
			cfg.LLMAPIKey = v.GetString("llm.anthropic_api_key")
		}
	}
	if len(cfg.Headings) == 0 {
		cfg.Headings = sections.DefaultHeadings
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1024
	}
	if cfg.SummaryMaxLength <= 0 {
		cfg.SummaryMaxLength = 100
	}
	if cfg.SummaryMinLength <= 0 {
		cfg.SummaryMinLength = 30
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.Port == "" {
		cfg.Port = "8090"
	}

	return cfg
}

// Validate checks settings needed before any external call is made.
func (c Config) Validate() error {
	switch c.Format {
	case insights.FormatJSON, insights.FormatYAML:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", insights.FormatJSON, insights.FormatYAML, c.Format)
	}
	switch c.LLMProvider {
	case llm.ProviderGroq, llm.ProviderAnthropic, llm.ProviderOllama:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLMProvider)
	}
	if llm.RequiresAPIKey(c.LLMProvider) && c.LLMAPIKey == "" {
		return fmt.Errorf("an API key is required for llm provider %s (set GROQ_API_KEY, ANTHROPIC_API_KEY or %s_LLM_API_KEY)", c.LLMProvider, EnvPrefix)
	}
	if c.SummaryMinLength > c.SummaryMaxLength {
		return fmt.Errorf("summarizer.min_length (%d) exceeds summarizer.max_length (%d)", c.SummaryMinLength, c.SummaryMaxLength)
	}
	if c.MaxRetries > MaxRetriesLimit {
		return fmt.Errorf("max_retries must be at most %d, got %d", MaxRetriesLimit, c.MaxRetries)
	}
	return nil
}

// ValidateRun additionally checks the input/output paths of a batch run.
func (c Config) ValidateRun() error {
	if c.Input == "" {
		return fmt.Errorf("input report path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	return c.Validate()
}

// stringList accepts a YAML list or a comma-separated string. Headings
// contain spaces, so whitespace splitting would break them apart.
func stringList(raw any) []string {
	var items []string
	switch val := raw.(type) {
	case string:
		items = strings.Split(val, ",")
	case []string:
		items = val
	case []any:
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
