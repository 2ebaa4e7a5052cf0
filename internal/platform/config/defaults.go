package config

const (
	defaultServerPort = 8080

	defaultDatastoreMaxOpenConns = 4
	defaultQueueConcurrency      = 2
	defaultQueueMaxAttempts      = 5

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "mail-relay",
		"app.environment": EnvDevelopment,

		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"lifecycle.probe_interval":     "10s",
		"lifecycle.probe_timeout":      "3s",
		"lifecycle.deep_check_timeout": "5s",
		"lifecycle.quiescence":         "5s",
		"lifecycle.hard_timeout":       "10s",

		"datastore.path":           "data/messages.db",
		"datastore.max_open_conns": defaultDatastoreMaxOpenConns,
		"datastore.busy_timeout":   "5s",

		"queue.path":          "data/queue.db",
		"queue.poll_interval": "500ms",
		"queue.concurrency":   defaultQueueConcurrency,
		"queue.max_attempts":  defaultQueueMaxAttempts,
		"queue.busy_timeout":  "5s",

		"mail.from":                                   "no-reply@localhost",
		"mail.api_key":                                "",
		"mail.api_key_file":                           "",
		"mail.client.base_url":                        "http://localhost:8025",
		"mail.client.timeout":                         "30s",
		"mail.client.retry.max_attempts":              defaultRetryMaxAttempts,
		"mail.client.retry.initial_interval":          "100ms",
		"mail.client.retry.max_interval":              "10s",
		"mail.client.retry.multiplier":                defaultRetryMultiplier,
		"mail.client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"mail.client.circuit_breaker.timeout":         "30s",
		"mail.client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"mail.client.rate_limit.requests_per_second":  0,
		"mail.client.rate_limit.burst_size":           1,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "mail-relay",

		"metrics.enabled": true,
		"metrics.path":    "/metrics",
	}
}
