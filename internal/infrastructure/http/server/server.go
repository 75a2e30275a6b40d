// Package server provides the HTTP server for the meal-plan API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mealsmith/v1/internal/infrastructure/config"
	"github.com/mealsmith/v1/internal/infrastructure/http/handlers"
	"github.com/mealsmith/v1/internal/infrastructure/http/middleware"
	"github.com/mealsmith/v1/internal/ports/inbound"
	"github.com/mealsmith/v1/internal/ports/outbound"
	"github.com/mealsmith/v1/pkg/healthcheck"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	logger      *zap.Logger
	router      *chi.Mux
	server      *http.Server
	planService inbound.PlanService
	recipes     outbound.RecipeRepository
	health      *healthcheck.HealthCheck
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	planService inbound.PlanService,
	recipes outbound.RecipeRepository,
	health *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config:      cfg,
		logger:      logger.Named("http"),
		planService: planService,
		recipes:     recipes,
		health:      health,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.JSONOnly())
	r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))

	if s.config.Server.EnableCompression {
		r.Use(chimiddleware.Compress(5))
	}

	if s.config.Server.EnableMetrics {
		r.Use(middleware.NewMetrics().Handler())
		r.Handle("/metrics", promhttp.Handler())
	}

	h := handlers.NewAPIHandlers(s.planService, s.recipes, s.logger)

	r.Get("/health", h.HealthCheck)
	r.Get("/health/detail", s.health.Handler())
	r.Get("/ready", s.health.ReadinessHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/plans", func(r chi.Router) {
			r.Post("/", h.GeneratePlan)
			r.Get("/{id}", h.GetPlan)
		})
		r.Get("/recipes", h.ListRecipes)
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the configured router for tests
func (s *Server) Router() http.Handler {
	return s.router
}
