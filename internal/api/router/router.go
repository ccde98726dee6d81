package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rapidcleanouts/landing/internal/http/handlers"
	httpmiddleware "github.com/rapidcleanouts/landing/internal/http/middleware"
	"github.com/rapidcleanouts/landing/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadIntake         *handlers.LeadIntakeHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// UploadDir is served read-only under /uploads; WebDir holds the static
	// landing page served at the root.
	UploadDir string
	WebDir    string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handlers.Health)
	if cfg.LeadIntake != nil {
		r.Post("/api/lead", cfg.LeadIntake.Submit)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.UploadDir != "" {
		uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get("/uploads/*", uploadsFS.ServeHTTP)
	}
	if cfg.WebDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))
	}

	return r
}
