package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/reportgest/internal/config"
	"github.com/dgallion1/reportgest/internal/document"
	"github.com/dgallion1/reportgest/internal/insights"
	"github.com/dgallion1/reportgest/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Runner produces insights for an already parsed report.
type Runner interface {
	RunDocument(ctx context.Context, doc *document.Document) (*insights.Collection, error)
}

// Backend describes an external model for the stats endpoint.
type Backend struct {
	Model   string
	Latency *stats.Latency
}

// Server is the HTTP API server for reportgest.
type Server struct {
	router     chi.Router
	runner     Runner
	summarizer Backend
	llm        Backend
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(runner Runner, summarizer, llm Backend, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner:     runner,
		summarizer: summarizer,
		llm:        llm,
		log:        log,
		cfg:        cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/insights", s.handleInsights)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
