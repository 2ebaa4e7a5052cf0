// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// DefaultMetricsPath is where the Prometheus handler is mounted when
// Routes.MetricsPath is empty.
const DefaultMetricsPath = "/metrics"

// Routes collects what NewRouter mounts. Metrics is optional; Lifecycle may
// be nil.
type Routes struct {
	Messages *handlers.MessageHandler
	Health   *handlers.HealthHandler

	Metrics     http.Handler
	MetricsPath string

	// Gate guards /api/v1. Store is reset after business-route 5xx responses.
	Gate      ports.Gate
	Store     ports.ConnectionResetter
	Lifecycle *metrics.Lifecycle

	// RequestTimeout bounds each business request. Zero means no bound.
	RequestTimeout time.Duration
}

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. Health and metrics
// endpoints bypass the readiness gate.
func NewRouter(routes Routes, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", routes.Health.Liveness)
	r.Get("/health/ready", routes.Health.Readiness)

	if routes.Metrics != nil {
		path := routes.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		r.Method(http.MethodGet, path, routes.Metrics)
	}

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Gate(routes.Gate, routes.Lifecycle),
			middleware.ResetOnServerError(routes.Store, routes.Gate, routes.Lifecycle),
		)
		if routes.RequestTimeout > 0 {
			r.Use(middleware.Timeout(routes.RequestTimeout, routes.Lifecycle))
		}

		r.Get("/messages", routes.Messages.ListMessages)
		r.Post("/messages", routes.Messages.SendMessage)
		r.Get("/messages/{id}", routes.Messages.GetMessage)
	})

	return r
}
