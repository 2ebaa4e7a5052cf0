// Package mail is the outbound mail transport: an HTTP mail provider API
// reached through the resilient platform HTTP client.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// ServiceName identifies the provider in traces and client metrics.
const ServiceName = "mail-api"

const (
	healthPath = "/health"
	sendPath   = "/v1/messages"
)

var _ ports.MailTransport = (*Transport)(nil)

// sendRequest is the provider's send payload.
type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Transport implements ports.MailTransport.
type Transport struct {
	client *httpclient.Client
	req    *requester
	from   string
	logger *slog.Logger
	closed atomic.Bool
}

// New creates a transport. No request is made until ProbeDeep or Send.
func New(cfg config.MailConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Transport {
	logger = logging.OrDiscard(logger).With(slog.String("dependency", domain.DependencyMail.String()))
	client := httpclient.New(&cfg.Client, ServiceName, metrics, logger)
	return &Transport{
		client: client,
		req:    &requester{client: client, apiKey: cfg.APIKey, logger: logger},
		from:   cfg.From,
		logger: logger,
	}
}

// Name implements ports.Dependency.
func (t *Transport) Name() domain.Dependency { return domain.DependencyMail }

// ProbeDeep calls the provider's health endpoint.
func (t *Transport) ProbeDeep(ctx context.Context) error {
	if t.closed.Load() {
		return domain.ErrClosed
	}
	var hr healthResponse
	if err := t.req.get(ctx, healthPath, http.StatusOK, &hr); err != nil {
		return fmt.Errorf("mail provider deep check: %w", err)
	}
	if hr.Status != "" && hr.Status != "ok" {
		return fmt.Errorf("mail provider reports status %q: %w", hr.Status, domain.ErrUnavailable)
	}
	return nil
}

// ProbeOnce reports the circuit breaker state without a network call.
func (t *Transport) ProbeOnce(ctx context.Context) error {
	if t.closed.Load() {
		return domain.ErrClosed
	}
	return t.client.HealthCheck(ctx)
}

// Send delivers msg. The message ID is sent as the idempotency key so a
// retried job does not produce a duplicate e-mail.
func (t *Transport) Send(ctx context.Context, msg *message.Message) error {
	if t.closed.Load() {
		return domain.ErrClosed
	}
	if msg == nil {
		return errors.New("mail transport: nil message")
	}

	header := http.Header{}
	header.Set("Idempotency-Key", msg.ID)

	var sr sendResponse
	if err := t.req.post(ctx, sendPath, http.StatusAccepted, header, sendRequest{
		From:    t.from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Body,
	}, &sr); err != nil {
		return fmt.Errorf("send message %s: %w", msg.ID, err)
	}

	t.logger.DebugContext(ctx, "message accepted by provider",
		slog.String("message_id", msg.ID),
		slog.String("provider_id", sr.ID),
	)
	return nil
}

// Close drops idle connections. Later calls return domain.ErrClosed.
func (t *Transport) Close(_ context.Context) error {
	if !t.closed.CompareAndSwap(false, true) {
		return domain.ErrClosed
	}
	t.client.CloseIdleConnections()
	return nil
}
