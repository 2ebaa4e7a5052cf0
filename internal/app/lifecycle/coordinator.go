package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// Exit codes reported by Coordinator.ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Stopper halts a background loop.
type Stopper interface {
	Stop()
}

// Coordinator runs the shutdown state machine.
//
//	Running --Trigger--> Draining --quiescence--> teardown --> Closed
//
// Teardown marks shutdown in the model, stops the prober and closes the
// queue, mail transport and data store one after another. A hard ceiling
// timer started with teardown terminates the machine even if a close never
// returns.
type Coordinator struct {
	deps    Dependencies
	model   ports.HealthModel
	prober  Stopper
	cfg     Config
	metrics *metrics.Lifecycle
	logger  *slog.Logger

	triggered atomic.Bool
	exitCode  atomic.Int32
	phase     atomic.Int32

	terminateOnce sync.Once
	done          chan struct{}

	mu     sync.Mutex
	reason string
	timers []*time.Timer
}

// NewCoordinator creates a coordinator in phase Running.
func NewCoordinator(deps Dependencies, model ports.HealthModel, prober Stopper, cfg Config, m *metrics.Lifecycle, logger *slog.Logger) *Coordinator {
	c := &Coordinator{
		deps:    deps,
		model:   model,
		prober:  prober,
		cfg:     cfg,
		metrics: m,
		logger:  logging.OrDiscard(logger),
		done:    make(chan struct{}),
	}
	c.setPhase(domain.PhaseRunning)
	return c
}

// Trigger starts shutdown. Only the first call across Trigger and Fail has
// any effect.
func (c *Coordinator) Trigger(reason string) {
	if !c.triggered.CompareAndSwap(false, true) {
		c.logger.Debug("shutdown already in progress", slog.String("reason", reason))
		return
	}

	c.mu.Lock()
	c.reason = reason
	c.mu.Unlock()

	c.logger.Info("shutdown triggered",
		slog.String("reason", reason),
		slog.Duration("quiescence", c.cfg.Quiescence),
	)

	c.guard("pause queue", false, func() {
		if c.deps.Queue == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), c.pauseTimeout())
		defer cancel()
		if err := c.deps.Queue.Pause(ctx); err != nil {
			c.logger.Warn("pause queue failed", slog.Any("error", err))
		}
	})

	c.setPhase(domain.PhaseDraining)
	c.schedule(c.cfg.Quiescence, "drain", c.teardown)
}

// Fail records a failing exit status and starts shutdown.
func (c *Coordinator) Fail(reason string) {
	c.exitCode.Store(ExitFailure)
	c.logger.Error("fatal lifecycle failure", slog.String("reason", reason))
	c.Trigger(reason)
}

// Done is closed once the machine reaches Closed.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// ExitCode returns ExitOK or ExitFailure.
func (c *Coordinator) ExitCode() int {
	return int(c.exitCode.Load())
}

// Phase returns the current phase.
func (c *Coordinator) Phase() domain.Phase {
	return domain.Phase(c.phase.Load())
}

// Reason returns the reason passed to the first Trigger or Fail.
func (c *Coordinator) Reason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

func (c *Coordinator) teardown() {
	c.model.MarkShutdown()
	c.metrics.ObserveSnapshot(c.model.Snapshot())
	if c.prober != nil {
		c.prober.Stop()
	}

	c.schedule(c.cfg.HardTimeout, "hard timeout", func() {
		c.logger.Error("shutdown exceeded hard timeout, forcing exit",
			slog.Duration("hard_timeout", c.cfg.HardTimeout))
		c.exitCode.Store(ExitFailure)
		c.terminate("hard timeout")
	})

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.HardTimeout)
	defer cancel()

	for _, dep := range c.deps.closeOrder() {
		if dep == nil {
			continue
		}
		c.closeOne(ctx, dep)
	}

	c.terminate("dependencies closed")
}

// closeOne closes dep, logging failures and panics without interrupting the
// chain.
func (c *Coordinator) closeOne(ctx context.Context, dep ports.Dependency) {
	name := dep.Name()
	start := time.Now()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("close panicked: %v", r)
			}
		}()
		return dep.Close(ctx)
	}()

	if err != nil {
		c.metrics.IncCloseError(name)
		c.logger.Error("dependency close failed",
			slog.String("operation", "lifecycle.Close"),
			slog.String("dependency", name.String()),
			slog.Any("error", err),
		)
		return
	}
	c.logger.Info("dependency closed",
		slog.String("dependency", name.String()),
		slog.Duration("took", time.Since(start)),
	)
}

func (c *Coordinator) terminate(how string) {
	c.terminateOnce.Do(func() {
		c.mu.Lock()
		for _, t := range c.timers {
			t.Stop()
		}
		c.mu.Unlock()

		c.setPhase(domain.PhaseClosed)
		c.logger.Info("shutdown complete",
			slog.String("how", how),
			slog.String("reason", c.Reason()),
			slog.Int("exit_code", c.ExitCode()),
		)
		close(c.done)
	})
}

// schedule runs fn after d on its own goroutine, recovering panics.
func (c *Coordinator) schedule(d time.Duration, name string, fn func()) {
	t := time.AfterFunc(d, func() { c.guard(name, true, fn) })
	c.mu.Lock()
	c.timers = append(c.timers, t)
	c.mu.Unlock()
}

// guard runs fn and turns a panic into a logged error. When fatal is set the
// machine is terminated with a failing status.
func (c *Coordinator) guard(name string, fatal bool, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("lifecycle task panicked",
				slog.String("task", name),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			if fatal {
				c.exitCode.Store(ExitFailure)
				c.terminate("panic in " + name)
			}
		}
	}()
	fn()
}

func (c *Coordinator) setPhase(p domain.Phase) {
	c.phase.Store(int32(p))
	c.metrics.SetPhase(p)
}

func (c *Coordinator) pauseTimeout() time.Duration {
	if c.cfg.Quiescence > 0 {
		return c.cfg.Quiescence
	}
	return time.Second
}
