package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/config"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API for resume parsing.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	pipeline     *pipeline.Pipeline
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		pipeline:     orch.Pipeline(),
		log:          log,
		cfg:          cfg,
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

	// Authenticated endpoints, when an API key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/resumes", s.handleParseResume)
		r.Post("/api/resumes/text", s.handleExtractText)
		r.Post("/api/resumes/jobs", s.handleSubmitJob)
		r.Get("/api/resumes/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/resumes/{docID}", s.handleGetResume)
		r.Delete("/api/resumes/{docID}", s.handleDeleteResume)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"model":       s.pipeline.Recoverer().Model(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
