package main

import (
	"log/slog"
	nethttp "net/http"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/clients/mail"
	adapthttp "github.com/jsamuelsen11/go-mail-relay/internal/adapters/http"
	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/queue"
	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/store"
	"github.com/jsamuelsen11/go-mail-relay/internal/app"
	"github.com/jsamuelsen11/go-mail-relay/internal/app/lifecycle"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/health"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/telemetry"
)

// newInjector builds the root scope. Services are lazy; resolving the
// server or the orchestrator wires the graph behind it. Dependency handles
// are never connected here: the first connection happens in the startup
// probes.
func newInjector(cfg *config.Config, logger *slog.Logger, tm *telemetry.Metrics) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, tm)

	registerDependencies(injector, cfg, logger)
	return injector
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (*metrics.Lifecycle, error) {
		return metrics.New(), nil
	})

	do.Provide(injector, func(_ do.Injector) (*health.Model, error) {
		return health.New(), nil
	})

	// Dependency handles.
	do.Provide(injector, func(_ do.Injector) (*store.Store, error) {
		return store.New(cfg.Datastore, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (*queue.Queue, error) {
		return queue.New(cfg.Queue, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*mail.Transport, error) {
		tm := do.MustInvoke[*telemetry.Metrics](i)
		return mail.New(cfg.Mail, tm, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.MessageService, error) {
		return app.NewMessageService(
			do.MustInvoke[*store.Store](i),
			do.MustInvoke[*queue.Queue](i),
			do.MustInvoke[*mail.Transport](i),
			do.MustInvoke[*telemetry.Metrics](i),
			do.MustInvoke[*metrics.Lifecycle](i),
			logger,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*lifecycle.Orchestrator, error) {
		deps := lifecycle.Dependencies{
			Data:  do.MustInvoke[*store.Store](i),
			Queue: do.MustInvoke[*queue.Queue](i),
			Mail:  do.MustInvoke[*mail.Transport](i),
		}
		return lifecycle.New(
			deps,
			do.MustInvoke[*health.Model](i),
			do.MustInvoke[*app.MessageService](i),
			lifecycle.ConfigFrom(cfg),
			do.MustInvoke[*metrics.Lifecycle](i),
			logger,
		), nil
	})

	// Inbound HTTP.
	do.Provide(injector, func(i do.Injector) (*handlers.MessageHandler, error) {
		return handlers.NewMessageHandler(do.MustInvoke[*app.MessageService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		orch := do.MustInvoke[*lifecycle.Orchestrator](i)
		return handlers.NewHealthHandler(do.MustInvoke[*health.Model](i), orch.Coordinator), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		lm := do.MustInvoke[*metrics.Lifecycle](i)
		tm := do.MustInvoke[*telemetry.Metrics](i)

		routes := adapthttp.Routes{
			Messages:  do.MustInvoke[*handlers.MessageHandler](i),
			Health:    do.MustInvoke[*handlers.HealthHandler](i),
			Gate:      do.MustInvoke[*health.Model](i),
			Store:     do.MustInvoke[*store.Store](i),
			Lifecycle: lm,

			RequestTimeout: cfg.Server.WriteTimeout,
		}
		if cfg.Metrics.Enabled {
			routes.Metrics = lm.Handler()
			routes.MetricsPath = cfg.Metrics.Path
		}

		return adapthttp.NewRouter(routes,
			middleware.Recovery(logger, lm),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(tm),
			middleware.Logging(logger, "/health", cfg.Metrics.Path),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
