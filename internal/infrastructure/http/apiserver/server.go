// Package apiserver provides the pure JSON API HTTP server
package apiserver

import (
	"context"
	"net/http"
	"time"

	"github.com/alchemorsel/breadbook/internal/infrastructure/config"
	"github.com/alchemorsel/breadbook/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/breadbook/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/breadbook/internal/infrastructure/monitoring"
	"github.com/alchemorsel/breadbook/internal/infrastructure/security"
	"github.com/alchemorsel/breadbook/internal/ports/inbound"
	"github.com/alchemorsel/breadbook/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the JSON API HTTP server.
type Server struct {
	config        *config.Config
	logger        *zap.Logger
	server        *http.Server
	router        *chi.Mux
	recipeService inbound.RecipeService
	tokenReader   *security.TokenReader
	registry      *prometheus.Registry
	health        *healthcheck.HealthCheck
	metrics       *monitoring.Metrics
}

// NewServer creates a new API server instance.
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	recipeService inbound.RecipeService,
	tokenReader *security.TokenReader,
	registry *prometheus.Registry,
	health *healthcheck.HealthCheck,
	metrics *monitoring.Metrics,
) *Server {
	server := &Server{
		config:        cfg,
		logger:        log,
		recipeService: recipeService,
		tokenReader:   tokenReader,
		registry:      registry,
		health:        health,
		metrics:       metrics,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:           cfg.Address(),
		Handler:        server.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return server
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures the JSON API routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	if s.metrics != nil {
		r.Use(middleware.Metrics(s.metrics))
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))

	h := handlers.NewAPIHandlers(s.recipeService, s.logger)

	r.Get(s.config.Monitoring.HealthCheckPath, s.health.Handler())
	if s.config.Monitoring.EnableMetrics && s.registry != nil {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath,
			promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.JSONOnly())
		r.Use(middleware.Identify(s.tokenReader, s.logger))

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", h.ListRecipes)
			r.Post("/", h.SaveRecipe)
			r.Post("/scale", h.ScaleRecipe)
			r.Get("/{id}", h.GetRecipe)
			r.Delete("/{id}", h.DeleteRecipe)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/parse-recipe", h.ImportRecipe)
			r.Post("/nutrition", h.EstimateNutrition)
		})
	})

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("Starting JSON API server",
		zap.String("addr", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down JSON API server")
	return s.server.Shutdown(ctx)
}
