package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/replog/internal/catalog"
	"github.com/claude/replog/internal/ingest/logtext"
	"github.com/claude/replog/internal/parse"
	"github.com/claude/replog/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	provider *logtext.Provider
	engine   logtext.Engine
	parser   *parse.Parser
	cat      *catalog.Catalog
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, provider *logtext.Provider, engine logtext.Engine, parser *parse.Parser, cat *catalog.Catalog, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		provider: provider,
		engine:   engine,
		parser:   parser,
		cat:      cat,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Logging endpoint (API key required)
	s.router.Route("/api/v1/log", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleLog)
	})

	// Read/preview endpoints (no auth — tsnet handles access)
	s.router.Post("/api/v1/parse", s.handleParse)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/normalize", s.handleNormalize)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/sets", s.handleQuerySets)
	s.router.Get("/api/v1/summary", s.handleSummary)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/me", s.handleMe)
}
