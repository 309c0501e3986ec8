package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/reportgest/internal/analyze"
	"github.com/dgallion1/reportgest/internal/config"
	"github.com/dgallion1/reportgest/internal/llm"
	"github.com/dgallion1/reportgest/internal/parser"
	"github.com/dgallion1/reportgest/internal/pipeline"
	"github.com/dgallion1/reportgest/internal/sections"
	"github.com/dgallion1/reportgest/internal/stats"
	"github.com/dgallion1/reportgest/internal/summarize"
)

// latencyWindow bounds the samples reported by /api/stats.
const latencyWindow = time.Hour

// app holds the wired pipeline and its external clients.
type app struct {
	orchestrator *pipeline.Orchestrator
	summarizer   *summarize.HuggingFaceClient
	llm          llm.Client

	summarizeLatency *stats.Latency
	llmLatency       *stats.Latency
}

func newApp(cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{
		summarizeLatency: stats.NewLatency("huggingface", latencyWindow),
		llmLatency:       stats.NewLatency(cfg.LLMProvider, latencyWindow),
	}

	client, err := llm.New(llm.Config{
		Provider:  cfg.LLMProvider,
		Model:     cfg.LLMModel,
		APIKey:    cfg.LLMAPIKey,
		BaseURL:   cfg.LLMURL,
		MaxTokens: cfg.LLMMaxTokens,
		Timeout:   cfg.Timeout,
	}, a.llmLatency)
	if err != nil {
		return nil, fmt.Errorf("init llm: %w", err)
	}
	a.llm = client

	a.summarizer = summarize.NewHuggingFaceClient(summarize.HFConfig{
		Token:   cfg.HFToken,
		Model:   cfg.SummarizerModel,
		BaseURL: cfg.SummarizerURL,
		Timeout: cfg.Timeout,
	}, a.summarizeLatency)

	splitter := sections.NewSplitter(cfg.Headings, sections.WithPreamble(cfg.KeepPreamble))
	a.orchestrator = pipeline.NewOrchestrator(pipeline.Deps{
		Extractor: &parser.FileExtractor{
			Options: parser.Options{FallbackPdftotext: cfg.PDFFallbackPdftotext},
		},
		Splitter: splitter,
		Summarizer: summarize.New(a.summarizer, summarize.Config{
			ChunkSize: cfg.ChunkSize,
			Params: summarize.Params{
				MaxLength:     cfg.SummaryMaxLength,
				MinLength:     cfg.SummaryMinLength,
				Deterministic: cfg.Deterministic,
			},
			MaxRetries: cfg.MaxRetries,
		}, log),
		Analyzer: analyze.New(a.llm, cfg.MaxRetries, log),
	}, log)

	log.Info("pipeline ready",
		"summarizer_model", a.summarizer.Model(),
		"llm_provider", cfg.LLMProvider,
		"llm_model", a.llm.Model(),
		"headings", splitter.Headings(),
	)
	return a, nil
}

func (a *app) Close() {
	a.summarizer.Close()
	a.llm.Close()
}
