package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nlcalc/internal/calculator"
	"nlcalc/internal/handlers"
	"nlcalc/internal/observability"
)

// NewRouter mounts the calculator API. A nil limiter disables rate limiting.
func NewRouter(agent *calculator.Agent, limiter *observability.RateLimiter) http.Handler {
	if limiter == nil {
		limiter = observability.NewRateLimiter(0, 1)
	}

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(limiter.Middleware)

	r.Get("/health", handlers.Health)

	reg := observability.NewRegistry(agent.Ledger())
	r.Handle("/metrics", observability.PrometheusHandler(reg))

	calculator.NewHandler(agent).RegisterRoutes(r)

	return r
}
