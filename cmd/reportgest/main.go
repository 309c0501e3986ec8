// Package main is the entry point for the reportgest CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgallion1/reportgest/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	settings *viper.Viper
	logger   = slog.New(slog.NewJSONHandler(os.Stdout, nil))
)

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"output":        "output",
	"format":        "format",
	"keep-preamble": "keep_preamble",
	"headings":      "headings",
	"provider":      "llm.provider",
	"model":         "llm.model",
	"max-retries":   "max_retries",
	"port":          "serve.port",
	"log-level":     "log_level",
}

var rootCmd = &cobra.Command{
	Use:   "reportgest",
	Short: "Extract investor insights from financial reports",
	Long: `reportgest reads a financial report, splits it into sections by heading
keyword, summarizes each section and asks a language model for investor
insights. Results are written to investor_insights.json.

Without a subcommand it behaves like "reportgest run".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		v, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		settings = v
		logger = newLogger(v.GetString("log_level"))
		return nil
	},
	RunE: runInsights,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./reportgest.yaml or ~/.config/reportgest/reportgest.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	addRunFlags(rootCmd)
}

func loadSettings(cmd *cobra.Command) (*viper.Viper, error) {
	v, err := config.New()
	if err != nil {
		return nil, err
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("reportgest")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "reportgest"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	}

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	return v, nil
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("reportgest failed", "error", err)
		os.Exit(1)
	}
}
