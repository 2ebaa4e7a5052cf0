// Package health holds the readiness model: per-dependency health, the
// derived ready and mounted flags, and the monotonic shutdown flag.
package health

import (
	"maps"
	"sync"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthModel = (*Model)(nil)

// Model is the single owned lifecycle state object. Every mutation and every
// gate decision happens under mu, so a decision never mixes flags from two
// different commits.
type Model struct {
	mu                 sync.RWMutex
	deps               map[domain.Dependency]bool
	consumerRegistered bool
	queueReachable     bool
	shutdown           bool
}

// New creates a Model with every tracked dependency unhealthy.
func New() *Model {
	deps := make(map[domain.Dependency]bool, len(domain.Dependencies()))
	for _, d := range domain.Dependencies() {
		deps[d] = false
	}
	return &Model{deps: deps}
}

// RecordHealth sets one entry. Unknown dependencies and writes after
// shutdown are ignored.
func (m *Model) RecordHealth(dep domain.Dependency, healthy bool) {
	if !dep.IsValid() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return
	}
	m.deps[dep] = healthy
}

// CommitTick applies a periodic batch of shallow results. The queue result
// doubles as the reachability signal used by the mounted check.
func (m *Model) CommitTick(results map[domain.Dependency]bool) domain.TickOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return domain.TickOutcome{Ready: m.readyLocked()}
	}

	was := m.acceptingLocked()

	for dep, healthy := range results {
		if dep.IsValid() {
			m.deps[dep] = healthy
		}
	}
	if reachable, ok := results[domain.DependencyQueue]; ok {
		m.queueReachable = reachable
	}

	return domain.TickOutcome{
		Applied:      true,
		WasAccepting: was,
		Accepting:    m.acceptingLocked(),
		Ready:        m.readyLocked(),
	}
}

// MarkConsumerRegistered records the one-time consumer registration.
func (m *Model) MarkConsumerRegistered() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.consumerRegistered {
		return domain.ErrAlreadyMounted
	}
	m.consumerRegistered = true
	return nil
}

// MarkShutdown flips the shutdown flag. Subsequent calls are no-ops.
func (m *Model) MarkShutdown() {
	m.mu.Lock()
	m.shutdown = true
	m.mu.Unlock()
}

// Evaluate returns the gate decision from one consistent read.
func (m *Model) Evaluate() domain.Decision {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch {
	case m.shutdown:
		return domain.DecisionShutdown
	case !m.readyLocked() || !m.mountedLocked():
		return domain.DecisionNotReady
	default:
		return domain.DecisionAdmit
	}
}

// Snapshot returns a copy of every flag.
func (m *Model) Snapshot() domain.HealthSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snapshotLocked()
}

func (m *Model) snapshotLocked() domain.HealthSnapshot {
	return domain.HealthSnapshot{
		Dependencies:       maps.Clone(m.deps),
		Ready:              m.readyLocked(),
		ConsumerRegistered: m.consumerRegistered,
		QueueReachable:     m.queueReachable,
		Mounted:            m.mountedLocked(),
		Shutdown:           m.shutdown,
	}
}

// readyLocked is true iff every dependency is healthy. It is the only source
// of readiness.
func (m *Model) readyLocked() bool {
	for _, healthy := range m.deps {
		if !healthy {
			return false
		}
	}
	return true
}

func (m *Model) mountedLocked() bool {
	return m.consumerRegistered && m.queueReachable
}

func (m *Model) acceptingLocked() bool {
	return !m.shutdown && m.readyLocked() && m.mountedLocked()
}
