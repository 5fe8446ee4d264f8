package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/deckplan/internal/config"
	"github.com/dgallion1/deckplan/internal/template"
	"github.com/dgallion1/deckplan/internal/textproc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for deckplan.
type Server struct {
	router     chi.Router
	cache      *template.Cache
	summarizer *textproc.Summarizer
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg config.Config, cache *template.Cache, log *slog.Logger) *Server {
	s := &Server{
		cache:      cache,
		summarizer: textproc.NewSummarizer(textproc.TFIDFScorer{}, cfg.MinSentenceLength, log),
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

	// Planning endpoints, authenticated when an API key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/plan", s.handlePlan)
		r.Post("/api/generate", s.handleGenerate)
		r.Post("/api/template/inspect", s.handleTemplateInspect)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
