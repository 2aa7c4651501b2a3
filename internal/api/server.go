// Package api is the HTTP transport adapter over the assessment service.
// It holds no assessment logic of its own.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/skillgauge/internal/assessment"
	"github.com/abhisek/skillgauge/internal/config"
	"github.com/abhisek/skillgauge/internal/roles"
)

// Server is the HTTP API server.
type Server struct {
	cfg    config.ServerConfig
	router *chi.Mux
	svc    *assessment.Service
	roles  roles.Map
	log    *slog.Logger
}

// NewServer creates a new API server. roleMap may be nil, in which case
// every request must carry its skills explicitly.
func NewServer(cfg config.ServerConfig, svc *assessment.Service, roleMap roles.Map, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:   cfg,
		svc:   svc,
		roles: roleMap,
		log:   log,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/roles", s.handleRoles)

	r.Post("/generate", s.handleGenerate)
	r.Post("/evaluate", s.handleEvaluate)
	r.Post("/generate-demotion", s.handleGenerateDemotion)

	s.router = r
}
