package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/reportgest/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run [report]",
	Short: "Generate investor insights for a report",
	Long: `Run extracts the report's text, splits it into sections, summarizes and
analyzes each section, and writes the insights to the output file. The
report defaults to company_report.pdf in the working directory.

A section that fails is recorded with its error and the run continues.
A report with no extractable text fails the run and writes nothing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInsights,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output file (default investor_insights.json)")
	cmd.Flags().String("format", "", "output format: json or yaml")
	cmd.Flags().Bool("keep-preamble", false, "keep text before the first heading as its own section")
	cmd.Flags().StringSlice("headings", nil, "comma-separated heading keywords")
	cmd.Flags().String("provider", "", "language model provider: groq, anthropic, ollama")
	cmd.Flags().String("model", "", "language model identifier")
	cmd.Flags().Int("max-retries", 0, "retries for rate-limited or unavailable backends")
}

func runInsights(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		settings.Set("input", args[0])
	}
	cfg := config.Load(settings)
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	coll, err := a.orchestrator.Generate(ctx, cfg.Input, cfg.Output, cfg.Format)
	if err != nil {
		return err
	}
	if n := coll.Failures(); n > 0 {
		logger.Warn("some sections failed", "failed", n, "sections", coll.Len())
	}
	return nil
}
