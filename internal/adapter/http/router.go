package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/planfolio/planfolio/internal/adapter/http/handler"
	"github.com/planfolio/planfolio/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PlanHandler       *handler.PlanHandler
	SimulationHandler *handler.SimulationHandler
	HealthHandler     *handler.HealthHandler
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1/plan", func(r chi.Router) {
		r.Get("/", cfg.PlanHandler.Get)
		r.Put("/params", cfg.PlanHandler.UpdateParams)

		r.Route("/holdings/{kind}", func(r chi.Router) {
			r.Post("/", cfg.PlanHandler.AddHolding)
			r.Patch("/{id}", cfg.PlanHandler.UpdateHolding)
			r.Delete("/{id}", cfg.PlanHandler.RemoveHolding)

			r.Route("/{id}/contributions", func(r chi.Router) {
				r.Post("/", cfg.PlanHandler.AddContribution)
				r.Patch("/{flowID}", cfg.PlanHandler.UpdateContribution)
				r.Delete("/{flowID}", cfg.PlanHandler.RemoveContribution)
			})
		})

		r.Route("/flows/{category}", func(r chi.Router) {
			r.Post("/", cfg.PlanHandler.AddFlow)
			r.Patch("/{id}", cfg.PlanHandler.UpdateFlow)
			r.Delete("/{id}", cfg.PlanHandler.RemoveFlow)
		})

		r.Post("/submit", cfg.SimulationHandler.Submit)
		r.Get("/status", cfg.SimulationHandler.Status)
		r.Get("/result", cfg.SimulationHandler.Result)
	})

	return r
}
