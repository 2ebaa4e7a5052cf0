package domain

// Dependency names one external resource the service cannot run without.
type Dependency string

const (
	DependencyData  Dependency = "data"
	DependencyQueue Dependency = "queue"
	DependencyMail  Dependency = "mail"
)

// Dependencies lists every tracked dependency. The set is fixed for the
// lifetime of the process.
func Dependencies() []Dependency {
	return []Dependency{DependencyData, DependencyQueue, DependencyMail}
}

// IsValid returns true if d is one of the tracked dependencies.
func (d Dependency) IsValid() bool {
	switch d {
	case DependencyData, DependencyQueue, DependencyMail:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (d Dependency) String() string {
	return string(d)
}

// Decision is the outcome of evaluating the request gate.
type Decision int

const (
	DecisionNotReady Decision = iota
	DecisionAdmit
	DecisionShutdown
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case DecisionAdmit:
		return "admit"
	case DecisionShutdown:
		return "shutdown"
	default:
		return "not_ready"
	}
}

// Err returns the error a rejected request should carry, or nil on admit.
func (d Decision) Err() error {
	switch d {
	case DecisionAdmit:
		return nil
	case DecisionShutdown:
		return ErrShuttingDown
	default:
		return ErrNotReady
	}
}

// Phase is the state of the shutdown state machine.
//
//	Running -> Draining -> Closed
//
// Transitions only move forward; Closed is terminal.
type Phase int32

const (
	PhaseRunning Phase = iota
	PhaseDraining
	PhaseClosed
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseDraining:
		return "draining"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// HealthSnapshot is a consistent copy of the readiness model taken under a
// single lock.
type HealthSnapshot struct {
	Dependencies       map[Dependency]bool
	Ready              bool
	ConsumerRegistered bool
	QueueReachable     bool
	Mounted            bool
	Shutdown           bool
}

// Decision derives the gate decision from the snapshot.
func (s HealthSnapshot) Decision() Decision {
	switch {
	case s.Shutdown:
		return DecisionShutdown
	case !s.Ready || !s.Mounted:
		return DecisionNotReady
	default:
		return DecisionAdmit
	}
}

// TickOutcome reports the effect of committing one periodic probe batch.
type TickOutcome struct {
	// Applied is false when shutdown had already begun and the results were
	// discarded.
	Applied      bool
	WasAccepting bool
	Accepting    bool
	Ready        bool
}
