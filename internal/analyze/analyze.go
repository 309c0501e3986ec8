// Package analyze turns a section summary into investor insights.
package analyze

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dgallion1/reportgest/internal/llm"
)

// summaryPlaceholder marks where the summary is interpolated.
const summaryPlaceholder = "{summary}"

// PromptTemplate asks for the four insight categories. The reply is
// returned as-is; nothing checks that the categories are present.
const PromptTemplate = `You are an expert financial analyst. Based on the following summary, extract:
1. Future growth prospects.
2. Key changes in the business.
3. Key triggers (opportunities or risks).
4. Material impacts on next year's earnings and growth.

Summary:
{summary}
`

// BuildPrompt renders PromptTemplate around summary.
func BuildPrompt(summary string) string {
	return strings.Replace(PromptTemplate, summaryPlaceholder, summary, 1)
}

// Analyzer forwards rendered prompts to a language model.
type Analyzer struct {
	llm        llm.Completer
	maxRetries int
	log        *slog.Logger
}

func New(c llm.Completer, maxRetries int, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{llm: c, maxRetries: maxRetries, log: log}
}

// Analyze returns the model's raw response for summary.
func (a *Analyzer) Analyze(ctx context.Context, summary string) (string, error) {
	prompt := BuildPrompt(summary)
	return llm.Retry(ctx, a.maxRetries, a.log, func(ctx context.Context) (string, error) {
		return a.llm.Complete(ctx, prompt)
	})
}
