package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// Orchestrator wires the prober, mounter and coordinator around one health
// model and sequences startup.
type Orchestrator struct {
	Prober      *Prober
	Mounter     *Mounter
	Coordinator *Coordinator

	logger *slog.Logger
}

// New builds the lifecycle components. A tick that leaves the service not
// ready fails the coordinator.
func New(deps Dependencies, model ports.HealthModel, processor ports.DeliveryProcessor, cfg Config, m *metrics.Lifecycle, logger *slog.Logger) *Orchestrator {
	logger = logging.OrDiscard(logger)

	prober := NewProber(deps, model, cfg, m, logger)
	coord := NewCoordinator(deps, model, prober, cfg, m, logger)
	prober.OnUnready(coord.Fail)

	return &Orchestrator{
		Prober:      prober,
		Mounter:     NewMounter(deps.Queue, processor, model, logger),
		Coordinator: coord,
		logger:      logger,
	}
}

// Start runs the startup checks, mounts the queue consumer and launches
// the probe loop. Any failure triggers shutdown with a failing exit status
// and is returned.
func (o *Orchestrator) Start(ctx context.Context) error {
	if err := o.Prober.Startup(ctx); err != nil {
		o.logger.ErrorContext(ctx, "startup checks could not run",
			slog.String("operation", "lifecycle.Start"),
			slog.Any("error", err),
		)
		o.Coordinator.Fail("startup: " + err.Error())
		return fmt.Errorf("startup checks: %w", err)
	}

	if err := o.Mounter.Mount(ctx); err != nil {
		o.logger.ErrorContext(ctx, "mounting queue consumer failed",
			slog.String("operation", "lifecycle.Start"),
			slog.Any("error", err),
		)
		if !errors.Is(err, domain.ErrAlreadyMounted) {
			o.Coordinator.Fail("mount: " + err.Error())
		}
		return fmt.Errorf("mount: %w", err)
	}

	go o.Prober.Run(ctx)
	return nil
}

// Trigger forwards to the coordinator.
func (o *Orchestrator) Trigger(reason string) {
	o.Coordinator.Trigger(reason)
}

// Done is closed when shutdown completes.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.Coordinator.Done()
}

// ExitCode is the process exit status once Done is closed.
func (o *Orchestrator) ExitCode() int {
	return o.Coordinator.ExitCode()
}
