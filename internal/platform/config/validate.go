package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.App.validate(),
		c.Server.validate(),
		c.Log.validate(),
		c.Lifecycle.validate(),
		c.Datastore.validate(),
		c.Queue.validate(),
		c.Mail.validate(),
		c.Telemetry.validate(),
		c.Metrics.validate(),
	)
}

func (a *AppConfig) validate() error {
	var errs []error

	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, errors.New("app.name must not be empty"))
	}

	switch a.Environment {
	case EnvDevelopment, EnvTest, EnvProduction:
		// Valid environments.
	default:
		errs = append(errs, fmt.Errorf("app.environment must be one of: %s, %s, %s; got %q",
			EnvDevelopment, EnvTest, EnvProduction, a.Environment))
	}

	return errors.Join(errs...)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (lc *LifecycleConfig) validate() error {
	var errs []error

	if lc.ProbeInterval <= 0 {
		errs = append(errs, errors.New("lifecycle.probe_interval must be positive"))
	}
	if lc.ProbeTimeout <= 0 {
		errs = append(errs, errors.New("lifecycle.probe_timeout must be positive"))
	}
	if lc.ProbeTimeout > lc.ProbeInterval {
		errs = append(errs, fmt.Errorf("lifecycle.probe_timeout (%s) must not exceed lifecycle.probe_interval (%s)",
			lc.ProbeTimeout, lc.ProbeInterval))
	}
	if lc.DeepCheckTimeout <= 0 {
		errs = append(errs, errors.New("lifecycle.deep_check_timeout must be positive"))
	}
	if lc.Quiescence < 0 {
		errs = append(errs, errors.New("lifecycle.quiescence must not be negative"))
	}
	if lc.HardTimeout <= 0 {
		errs = append(errs, errors.New("lifecycle.hard_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (d *DatastoreConfig) validate() error {
	var errs []error

	if strings.TrimSpace(d.Path) == "" {
		errs = append(errs, errors.New("datastore.path must not be empty"))
	}
	if d.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("datastore.max_open_conns must be >= 1, got %d", d.MaxOpenConns))
	}

	return errors.Join(errs...)
}

func (q *QueueConfig) validate() error {
	var errs []error

	if strings.TrimSpace(q.Path) == "" {
		errs = append(errs, errors.New("queue.path must not be empty"))
	}
	if q.PollInterval <= 0 {
		errs = append(errs, errors.New("queue.poll_interval must be positive"))
	}
	if q.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("queue.concurrency must be >= 1, got %d", q.Concurrency))
	}
	if q.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("queue.max_attempts must be >= 1, got %d", q.MaxAttempts))
	}

	return errors.Join(errs...)
}

func (m *MailConfig) validate() error {
	var errs []error

	if strings.TrimSpace(m.From) == "" {
		errs = append(errs, errors.New("mail.from must not be empty"))
	}

	return errors.Join(append(errs, m.Client.validate())...)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, errors.New("mail.client.base_url must not be empty"))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("mail.client.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("mail.client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("mail.client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("mail.client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("mail.client.rate_limit.requests_per_second must not be negative"))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("mail.client.rate_limit.burst_size must be >= 1 when rate limiting, got %d",
			cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (m *MetricsConfig) validate() error {
	if !m.Enabled {
		return nil
	}
	if !strings.HasPrefix(m.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", m.Path)
	}
	return nil
}
