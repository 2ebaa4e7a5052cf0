package ports

import "github.com/jsamuelsen11/go-mail-relay/internal/domain"

// Gate evaluates whether an inbound request may proceed.
type Gate interface {
	Evaluate() domain.Decision
}

// HealthModel is the in-memory readiness record shared by the prober, the
// mount controller, the shutdown coordinator and the request gate.
// Implementations must be safe for concurrent use.
type HealthModel interface {
	Gate

	// RecordHealth sets the health of one dependency.
	RecordHealth(dep domain.Dependency, healthy bool)

	// CommitTick applies one periodic probe batch atomically. Results
	// arriving after MarkShutdown are discarded.
	CommitTick(results map[domain.Dependency]bool) domain.TickOutcome

	// MarkConsumerRegistered records the one-time queue consumer
	// registration. Returns domain.ErrAlreadyMounted on a second call.
	MarkConsumerRegistered() error

	// MarkShutdown flips the shutdown flag. It never reverts.
	MarkShutdown()

	// Snapshot returns a consistent copy of every flag.
	Snapshot() domain.HealthSnapshot
}
