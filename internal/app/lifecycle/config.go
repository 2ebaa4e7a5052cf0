// Package lifecycle drives the service from startup to exit: deep checks at
// boot, one-time consumer mounting, the periodic shallow probe loop, and the
// Running -> Draining -> Closed shutdown with ordered dependency teardown.
//
// The readiness model itself lives in platform/health; this package only
// writes to it (and reads it for logging) through ports.HealthModel.
package lifecycle

import (
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// Config holds lifecycle timings.
type Config struct {
	ProbeInterval    time.Duration
	ProbeTimeout     time.Duration
	DeepCheckTimeout time.Duration
	Quiescence       time.Duration
	HardTimeout      time.Duration

	// DeepCheckMail enables the mail transport's startup deep check. When
	// false the mail dependency is recorded healthy without a probe.
	DeepCheckMail bool
}

// ConfigFrom maps service configuration onto lifecycle timings. The mail
// deep check only runs in production.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		ProbeInterval:    cfg.Lifecycle.ProbeInterval,
		ProbeTimeout:     cfg.Lifecycle.ProbeTimeout,
		DeepCheckTimeout: cfg.Lifecycle.DeepCheckTimeout,
		Quiescence:       cfg.Lifecycle.Quiescence,
		HardTimeout:      cfg.Lifecycle.HardTimeout,
		DeepCheckMail:    cfg.App.IsProduction(),
	}
}

// Dependencies are the three handles the lifecycle manages.
type Dependencies struct {
	Data  ports.DataStore
	Queue ports.WorkQueue
	Mail  ports.MailTransport
}

// complete reports whether every handle is wired.
func (d Dependencies) complete() bool {
	return d.Data != nil && d.Queue != nil && d.Mail != nil
}

// closeOrder is the teardown order: stop consuming, stop sending, then
// release storage.
func (d Dependencies) closeOrder() []ports.Dependency {
	return []ports.Dependency{d.Queue, d.Mail, d.Data}
}
