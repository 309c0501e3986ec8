// Package summarize condenses report sections through an external
// summarization model.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/reportgest/internal/chunker"
	"github.com/dgallion1/reportgest/internal/llm"
)

// Params bounds a single summarization call.
type Params struct {
	MaxLength     int
	MinLength     int
	Deterministic bool
}

// DefaultParams matches the settings used for report sections.
func DefaultParams() Params {
	return Params{MaxLength: 100, MinLength: 30, Deterministic: true}
}

// Backend summarizes one chunk of text.
type Backend interface {
	Summarize(ctx context.Context, text string, p Params) (string, error)
}

// Summarizer splits a section into fixed-size chunks, summarizes each,
// and joins the results.
type Summarizer struct {
	backend    Backend
	chunkSize  int
	params     Params
	maxRetries int
	log        *slog.Logger
}

// Config tunes a Summarizer.
type Config struct {
	ChunkSize  int
	Params     Params
	MaxRetries int
}

func New(backend Backend, cfg Config, log *slog.Logger) *Summarizer {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = chunker.DefaultSize
	}
	if cfg.Params == (Params{}) {
		cfg.Params = DefaultParams()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Summarizer{
		backend:    backend,
		chunkSize:  cfg.ChunkSize,
		params:     cfg.Params,
		maxRetries: cfg.MaxRetries,
		log:        log,
	}
}

// SummarizeSection returns the concatenated chunk summaries of section.
// The first failing chunk aborts the section.
func (s *Summarizer) SummarizeSection(ctx context.Context, section string) (string, error) {
	chunks := chunker.Split(section, s.chunkSize)

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := llm.Retry(ctx, s.maxRetries, s.log, func(ctx context.Context) (string, error) {
			return s.backend.Summarize(ctx, chunk, s.params)
		})
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, out)
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}
