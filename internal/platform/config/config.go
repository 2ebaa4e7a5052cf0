// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Environment names recognised by app.environment.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config holds all configuration for the service.
type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Lifecycle LifecycleConfig `koanf:"lifecycle"`
	Datastore DatastoreConfig `koanf:"datastore"`
	Queue     QueueConfig     `koanf:"queue"`
	Mail      MailConfig      `koanf:"mail"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// AppConfig holds process-wide identity settings.
type AppConfig struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"`
}

// IsProduction reports whether the production-only startup checks apply.
func (a AppConfig) IsProduction() bool { return a.Environment == EnvProduction }

// IsTest reports whether connection initialisation and signal wiring are skipped.
func (a AppConfig) IsTest() bool { return a.Environment == EnvTest }

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// LifecycleConfig holds readiness probing and shutdown timings.
type LifecycleConfig struct {
	// ProbeInterval is the period of the shallow probe loop.
	ProbeInterval time.Duration `koanf:"probe_interval"`
	// ProbeTimeout bounds one shallow probe batch.
	ProbeTimeout time.Duration `koanf:"probe_timeout"`
	// DeepCheckTimeout bounds each startup deep check.
	DeepCheckTimeout time.Duration `koanf:"deep_check_timeout"`
	// Quiescence is the wait between the shutdown trigger and dependency teardown.
	Quiescence time.Duration `koanf:"quiescence"`
	// HardTimeout is the ceiling on teardown, measured from its start.
	HardTimeout time.Duration `koanf:"hard_timeout"`
}

// DatastoreConfig holds the message store settings.
type DatastoreConfig struct {
	Path         string        `koanf:"path"`
	MaxOpenConns int           `koanf:"max_open_conns"`
	BusyTimeout  time.Duration `koanf:"busy_timeout"`
}

// QueueConfig holds the work queue settings.
type QueueConfig struct {
	Path         string        `koanf:"path"`
	PollInterval time.Duration `koanf:"poll_interval"`
	Concurrency  int           `koanf:"concurrency"`
	MaxAttempts  int           `koanf:"max_attempts"`
	BusyTimeout  time.Duration `koanf:"busy_timeout"`
}

// MailConfig holds the outbound mail transport settings.
type MailConfig struct {
	Client ClientConfig `koanf:"client"`
	From   string       `koanf:"from"`
	APIKey string       `koanf:"api_key"`
	// APIKeyFile is read when APIKey is empty.
	APIKeyFile string `koanf:"api_key_file"`
}

// ClientConfig holds downstream HTTP client settings.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side rate limiting. A zero RequestsPerSecond
// disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// MetricsConfig holds the Prometheus scrape endpoint settings.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}
