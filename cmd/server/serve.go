package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	adapthttp "github.com/jsamuelsen11/go-mail-relay/internal/adapters/http"
	"github.com/jsamuelsen11/go-mail-relay/internal/app/lifecycle"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/telemetry"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the relay until a shutdown signal or a failed readiness check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, cmd.ErrOrStderr(), nil)
		},
	}
}

// serve runs the relay. It returns once the shutdown coordinator has
// finished, carrying its exit status as an *exitError when non-zero.
// Canceling ctx triggers a graceful shutdown. onListen, if set, receives the
// bound address before serving starts.
func serve(ctx context.Context, cfg *config.Config, logOut io.Writer, onListen func(addr string)) error {
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)
	slog.SetDefault(logger)

	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	injector := newInjector(cfg, logger, otel.metrics)

	// Resolving the server and the orchestrator wires the full graph.
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}
	orch, err := do.Invoke[*lifecycle.Orchestrator](injector)
	if err != nil {
		return fmt.Errorf("resolving orchestrator: %w", err)
	}

	if err := server.Listen(); err != nil {
		return err
	}
	if onListen != nil {
		onListen(server.ListenAddr())
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	trigger := func(reason string) {
		server.Drain()
		orch.Trigger(reason)
	}

	if cfg.App.IsTest() {
		logger.Info("test environment: skipping connection initialisation and signal wiring")
	} else {
		stop := watchSignals(runCtx, trigger, logger)
		defer stop()

		if err := orch.Start(runCtx); err != nil {
			logger.Error("startup failed", slog.Any("error", err))
		}
	}

	go func() {
		select {
		case <-ctx.Done():
			trigger("context canceled")
		case <-orch.Done():
		}
	}()

	serverStopped := false
wait:
	for {
		select {
		case err := <-serverErr:
			serverStopped = true
			serverErr = nil
			if err != nil {
				logger.Error("http server failed", slog.Any("error", err))
				server.Drain()
				orch.Coordinator.Fail("http server: " + err.Error())
			}
		case <-orch.Done():
			break wait
		}
	}

	if !serverStopped {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		<-serverErr
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	code := orch.ExitCode()
	logger.Info("shutdown complete",
		slog.Int("exit_code", code),
		slog.String("reason", orch.Coordinator.Reason()),
	)
	return exitWith(code)
}

// watchSignals forwards every shutdown signal to trigger until ctx ends.
// The returned func unregisters the handler.
func watchSignals(ctx context.Context, trigger func(reason string), logger *slog.Logger) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	go func() {
		for {
			select {
			case sig := <-sigCh:
				logger.Info("received shutdown signal", slog.String("signal", sig.String()))
				trigger("signal: " + sig.String())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() { signal.Stop(sigCh) }
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}
