// Package metrics exposes lifecycle state to Prometheus: dependency health,
// readiness flags, shutdown phase, probe latencies, gate rejections, queue
// events, connection resets and interrupted requests.
//
// All methods are safe on a nil *Lifecycle so components can run without a
// registry in tests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
)

const namespace = "mail_relay"

// Lifecycle holds a private registry and the lifecycle collectors.
type Lifecycle struct {
	reg     *prometheus.Registry
	handler http.Handler

	depHealthy     *prometheus.GaugeVec
	ready          prometheus.Gauge
	mounted        prometheus.Gauge
	shutdown       prometheus.Gauge
	phase          *prometheus.GaugeVec
	probeDuration  *prometheus.HistogramVec
	probeFailures  *prometheus.CounterVec
	gateRejections *prometheus.CounterVec
	queueEvents    *prometheus.CounterVec
	closeErrors    *prometheus.CounterVec
	connResets     prometheus.Counter
	interrupted    *prometheus.CounterVec
}

// New returns a fresh registry with Go/process collectors and the lifecycle
// metrics. Labels are bounded: dependency names, probe kinds, decisions and
// queue events are all fixed sets.
func New() *Lifecycle {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Lifecycle{
		depHealthy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dependency_healthy",
			Help:      "Last recorded health per dependency (1 healthy, 0 unhealthy)",
		}, []string{"dependency"}),
		ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ready",
			Help:      "Whether every dependency is healthy",
		}),
		mounted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mounted",
			Help:      "Whether the queue consumer is registered and the queue reachable",
		}),
		shutdown: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shutdown",
			Help:      "Whether dependency teardown has begun",
		}),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lifecycle_phase",
			Help:      "Current shutdown state machine phase (label carries the phase, value is 1)",
		}, []string{"phase"}),
		probeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Dependency probe latency by kind and dependency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"kind", "dependency"}),
		probeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probe_failures_total",
			Help:      "Failed dependency probes by kind and dependency",
		}, []string{"kind", "dependency"}),
		gateRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_rejections_total",
			Help:      "Requests rejected by the readiness gate by decision",
		}, []string{"decision"}),
		queueEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_events_total",
			Help:      "Consumer-side work queue events by event name",
		}, []string{"event"}),
		closeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "close_errors_total",
			Help:      "Dependency close failures during shutdown",
		}, []string{"dependency"}),
		connResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datastore_connection_resets_total",
			Help:      "Data store connection resets triggered by 5xx responses",
		}),
		interrupted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_interrupted_total",
			Help:      "Requests cut short by a recovered panic or the request deadline",
		}, []string{"reason"}),
	}
	reg.MustRegister(
		m.depHealthy,
		m.ready,
		m.mounted,
		m.shutdown,
		m.phase,
		m.probeDuration,
		m.probeFailures,
		m.gateRejections,
		m.queueEvents,
		m.closeErrors,
		m.connResets,
		m.interrupted,
	)

	m.SetPhase(domain.PhaseRunning)

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	m.reg = reg
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Lifecycle) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *Lifecycle) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObserveSnapshot mirrors a readiness snapshot into the gauges.
func (m *Lifecycle) ObserveSnapshot(s domain.HealthSnapshot) {
	if m == nil {
		return
	}
	for dep, healthy := range s.Dependencies {
		m.depHealthy.WithLabelValues(dep.String()).Set(boolToFloat(healthy))
	}
	m.ready.Set(boolToFloat(s.Ready))
	m.mounted.Set(boolToFloat(s.Mounted))
	m.shutdown.Set(boolToFloat(s.Shutdown))
}

// SetPhase records the current shutdown phase.
func (m *Lifecycle) SetPhase(p domain.Phase) {
	if m == nil {
		return
	}
	m.phase.Reset()
	m.phase.WithLabelValues(p.String()).Set(1)
}

// ObserveProbe records one probe's latency and outcome. kind is "deep" or
// "shallow".
func (m *Lifecycle) ObserveProbe(kind string, dep domain.Dependency, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.probeDuration.WithLabelValues(kind, dep.String()).Observe(d.Seconds())
	if err != nil {
		m.probeFailures.WithLabelValues(kind, dep.String()).Inc()
	}
}

// IncGateRejection counts a request rejected by the gate.
func (m *Lifecycle) IncGateRejection(d domain.Decision) {
	if m == nil {
		return
	}
	m.gateRejections.WithLabelValues(d.String()).Inc()
}

// IncQueueEvent counts a consumer-side queue event.
func (m *Lifecycle) IncQueueEvent(event string) {
	if m == nil {
		return
	}
	m.queueEvents.WithLabelValues(event).Inc()
}

// IncCloseError counts a failed dependency close.
func (m *Lifecycle) IncCloseError(dep domain.Dependency) {
	if m == nil {
		return
	}
	m.closeErrors.WithLabelValues(dep.String()).Inc()
}

// IncConnectionReset counts a data store connection reset.
func (m *Lifecycle) IncConnectionReset() {
	if m == nil {
		return
	}
	m.connResets.Inc()
}

// Interruption reasons.
const (
	InterruptPanic   = "panic"
	InterruptTimeout = "timeout"
)

// IncInterrupted counts a request that did not finish normally. reason is
// InterruptPanic or InterruptTimeout.
func (m *Lifecycle) IncInterrupted(reason string) {
	if m == nil {
		return
	}
	m.interrupted.WithLabelValues(reason).Inc()
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
