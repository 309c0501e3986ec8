package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/reportgest/internal/document"
	"github.com/dgallion1/reportgest/internal/insights"
	"github.com/dgallion1/reportgest/internal/sections"
)

// ErrNoText is returned when a report yields no extractable text. It
// fails the whole run before any section is processed.
var ErrNoText = errors.New("the report appears to be empty or text could not be extracted")

// Extractor reads a report into a Document.
type Extractor interface {
	Extract(ctx context.Context, path string) (*document.Document, error)
}

// Summarizer condenses one section.
type Summarizer interface {
	SummarizeSection(ctx context.Context, section string) (string, error)
}

// Analyzer derives insights from a section summary.
type Analyzer interface {
	Analyze(ctx context.Context, summary string) (string, error)
}

// Deps are the collaborators an Orchestrator sequences.
type Deps struct {
	Extractor  Extractor
	Splitter   *sections.Splitter
	Summarizer Summarizer
	Analyzer   Analyzer
}

// Orchestrator runs the report insight pipeline: extract, normalize,
// split, then summarize and analyze each section in order.
type Orchestrator struct {
	extractor  Extractor
	splitter   *sections.Splitter
	summarizer Summarizer
	analyzer   Analyzer
	log        *slog.Logger
}

// NewOrchestrator wires the pipeline. A nil Splitter uses the default headings.
func NewOrchestrator(deps Deps, log *slog.Logger) *Orchestrator {
	if deps.Splitter == nil {
		deps.Splitter = sections.NewSplitter(nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		extractor:  deps.Extractor,
		splitter:   deps.Splitter,
		summarizer: deps.Summarizer,
		analyzer:   deps.Analyzer,
		log:        log,
	}
}

// SectionResult is the outcome of processing one section.
type SectionResult struct {
	ID       string
	Section  sections.Section
	Summary  string
	Insights string
	Err      error
}

// Record converts the result into its serialized form. A failed section
// keeps only the error message.
func (r SectionResult) Record() insights.Record {
	if r.Err != nil {
		return insights.Record{Error: r.Err.Error()}
	}
	return insights.Record{Summary: r.Summary, DetailedInsights: r.Insights}
}

// Run extracts the report at path and returns one record per section.
func (o *Orchestrator) Run(ctx context.Context, path string) (*insights.Collection, error) {
	log := o.log.With("run_id", uuid.NewString(), "report", path)
	log.Info("extracting insights from report")

	doc, err := o.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	return o.runDocument(ctx, doc, log)
}

// RunDocument processes an already extracted document.
func (o *Orchestrator) RunDocument(ctx context.Context, doc *document.Document) (*insights.Collection, error) {
	return o.runDocument(ctx, doc, o.log.With("run_id", uuid.NewString()))
}

func (o *Orchestrator) runDocument(ctx context.Context, doc *document.Document, log *slog.Logger) (*insights.Collection, error) {
	if doc == nil {
		return nil, ErrNoText
	}
	for _, n := range doc.EmptyPages() {
		log.Info("no text found on page", "page", n)
	}

	raw := doc.Text()
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoText
	}

	cleaned := sections.Normalize(raw)
	secs := o.splitter.Split(cleaned)
	log.Info("found sections for analysis", "sections", len(secs), "chars", len(cleaned))

	out := insights.NewCollection()
	for i, sec := range secs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled after %d of %d sections: %w", i, len(secs), err)
		}
		res := o.ProcessSection(ctx, i+1, sec)
		out.Set(res.ID, res.Record())
	}

	log.Info("analysis complete", "sections", out.Len(), "failed", out.Failures())
	return out, nil
}

// ProcessSection summarizes and analyzes the n-th section. Failures are
// returned in the result rather than as an error.
func (o *Orchestrator) ProcessSection(ctx context.Context, n int, sec sections.Section) SectionResult {
	res := SectionResult{ID: insights.SectionID(n), Section: sec}
	log := o.log.With("section", res.ID, "heading", sec.Heading)
	log.Info("processing section", "chars", len(sec.Text))
	start := time.Now()

	summary, err := o.summarizer.SummarizeSection(ctx, sec.Text)
	if err != nil {
		res.Err = fmt.Errorf("summarize: %w", err)
		log.Error("failed to process section", "error", res.Err)
		return res
	}
	res.Summary = summary
	log.Debug("section summary", "summary", summary)

	detail, err := o.analyzer.Analyze(ctx, summary)
	if err != nil {
		res.Err = fmt.Errorf("analyze: %w", err)
		log.Error("failed to process section", "error", res.Err)
		return res
	}
	res.Insights = detail
	log.Debug("section insights", "insights", detail)
	log.Info("section done", "summary_chars", len(summary), "duration_ms", time.Since(start).Milliseconds())
	return res
}

// Generate runs the pipeline on in and writes the collection to out.
// Nothing is written unless the whole run succeeds.
func (o *Orchestrator) Generate(ctx context.Context, in, out, format string) (*insights.Collection, error) {
	coll, err := o.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := insights.WriteFile(out, coll, format); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	o.log.Info("insights saved", "output", out, "sections", coll.Len())
	return coll, nil
}
