package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/app/fanout"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// ErrProbeBatch is returned when the startup probe batch cannot be started.
var ErrProbeBatch = errors.New("startup probe batch could not be started")

const (
	probeKindDeep    = "deep"
	probeKindShallow = "shallow"
)

// Prober keeps the health model current: deep checks once at startup, then
// shallow checks of the data store and queue on every tick.
type Prober struct {
	deps    Dependencies
	model   ports.HealthModel
	cfg     Config
	metrics *metrics.Lifecycle
	logger  *slog.Logger

	mu        sync.Mutex
	onUnready func(reason string)

	stopOnce sync.Once
	stop     chan struct{}
}

// NewProber creates a prober. metrics and logger may be nil.
func NewProber(deps Dependencies, model ports.HealthModel, cfg Config, m *metrics.Lifecycle, logger *slog.Logger) *Prober {
	return &Prober{
		deps:    deps,
		model:   model,
		cfg:     cfg,
		metrics: m,
		logger:  logging.OrDiscard(logger),
		stop:    make(chan struct{}),
	}
}

// OnUnready sets the callback invoked when a committed tick leaves the
// service not ready.
func (p *Prober) OnUnready(fn func(reason string)) {
	p.mu.Lock()
	p.onUnready = fn
	p.mu.Unlock()
}

// Startup runs every deep check concurrently and records each result once
// all of them have settled. Unhealthy results are recorded, not returned;
// the only error is ErrProbeBatch.
func (p *Prober) Startup(ctx context.Context) error {
	if !p.deps.complete() || p.model == nil {
		return ErrProbeBatch
	}

	targets := []ports.Dependency{p.deps.Data, p.deps.Queue, p.deps.Mail}
	results := fanout.Run(ctx, len(targets), targets, func(ctx context.Context, dep ports.Dependency) (struct{}, error) {
		if dep.Name() == domain.DependencyMail && !p.cfg.DeepCheckMail {
			return struct{}{}, nil
		}
		return struct{}{}, p.probe(ctx, probeKindDeep, p.cfg.DeepCheckTimeout, dep, dep.ProbeDeep)
	})

	for i, r := range results {
		name := targets[i].Name()
		p.model.RecordHealth(name, r.Err == nil)
		if r.Err != nil {
			p.logger.WarnContext(ctx, "startup check failed",
				slog.String("operation", "lifecycle.Startup"),
				slog.String("dependency", name.String()),
				slog.Any("error", r.Err),
			)
		}
	}

	snap := p.model.Snapshot()
	p.metrics.ObserveSnapshot(snap)
	p.logger.InfoContext(ctx, "startup checks complete",
		slog.Bool("ready", snap.Ready),
		slog.String("failing", strings.Join(unhealthy(snap), ",")),
	)
	return nil
}

// Run ticks every ProbeInterval until ctx is done or Stop is called.
func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.ProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Stop prevents further ticks. A tick already running completes and its
// commit is discarded by the model once shutdown is marked. Safe to call
// more than once.
func (p *Prober) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

// Tick runs one shallow probe batch against the data store and queue and
// commits it. The mail transport is not re-probed.
func (p *Prober) Tick(ctx context.Context) {
	if p.stopped() || p.model.Evaluate() == domain.DecisionShutdown {
		return
	}

	targets := []ports.Dependency{p.deps.Data, p.deps.Queue}
	results := fanout.Run(ctx, len(targets), targets, func(ctx context.Context, dep ports.Dependency) (struct{}, error) {
		return struct{}{}, p.probe(ctx, probeKindShallow, p.cfg.ProbeTimeout, dep, dep.ProbeOnce)
	})

	batch := make(map[domain.Dependency]bool, len(targets))
	for i, r := range results {
		name := targets[i].Name()
		batch[name] = r.Err == nil
		if r.Err != nil {
			p.logger.WarnContext(ctx, "dependency check failed",
				slog.String("operation", "lifecycle.Tick"),
				slog.String("dependency", name.String()),
				slog.Any("error", r.Err),
			)
		}
	}

	outcome := p.model.CommitTick(batch)
	if !outcome.Applied {
		return
	}

	snap := p.model.Snapshot()
	p.metrics.ObserveSnapshot(snap)

	if !outcome.WasAccepting && outcome.Accepting {
		p.logger.InfoContext(ctx, "service now accepting traffic")
	}
	if !outcome.Ready {
		reason := "dependencies unhealthy: " + strings.Join(unhealthy(snap), ",")
		p.logger.ErrorContext(ctx, "service not ready", slog.String("reason", reason))

		p.mu.Lock()
		fn := p.onUnready
		p.mu.Unlock()
		if fn != nil {
			fn(reason)
		}
	}
}

func (p *Prober) probe(ctx context.Context, kind string, timeout time.Duration, dep ports.Dependency, check func(context.Context) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	err := check(ctx)
	p.metrics.ObserveProbe(kind, dep.Name(), time.Since(start), err)
	return err
}

func (p *Prober) stopped() bool {
	select {
	case <-p.stop:
		return true
	default:
		return false
	}
}

func unhealthy(s domain.HealthSnapshot) []string {
	var out []string
	for _, dep := range domain.Dependencies() {
		if !s.Dependencies[dep] {
			out = append(out, dep.String())
		}
	}
	return out
}
