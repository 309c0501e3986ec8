package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/reportgest/internal/api"
	"github.com/dgallion1/reportgest/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the insight pipeline over HTTP",
	Long: `Serve starts an HTTP API. POST a report to /api/insights as the multipart
field "file" to receive its insights. When serve.api_key is set, /api
routes require "Authorization: Bearer <key>".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(settings)
		if err := cfg.Validate(); err != nil {
			return err
		}

		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := api.NewServer(a.orchestrator,
			api.Backend{Model: a.summarizer.Model(), Latency: a.summarizeLatency},
			api.Backend{Model: a.llm.Model(), Latency: a.llmLatency},
			logger, cfg)

		httpServer := &http.Server{
			Addr:        ":" + cfg.Port,
			Handler:     srv,
			ReadTimeout: 30 * time.Second,
			// A request runs the whole pipeline, one model call per chunk.
			WriteTimeout: 30 * time.Minute,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			logger.Info("shutting down...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		logger.Info("starting reportgest", "port", cfg.Port, "version", version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default 8090)")
	rootCmd.AddCommand(serveCmd)
}
