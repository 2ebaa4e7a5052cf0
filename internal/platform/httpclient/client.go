// Package httpclient is the resilient outbound client for the mail provider.
// A call to Do is admitted by the circuit breaker, waits for the rate
// limiter, gets the inbound request and correlation IDs plus W3C trace
// context copied onto its headers, runs inside a client span, and is retried
// with jittered backoff when that is safe.
//
//	client := httpclient.New(&cfg.Mail.Client, "mail-api", metrics, logger)
//	resp, err := client.Do(ctx, req)
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/telemetry"
)

const tracerScope = "github.com/jsamuelsen11/go-mail-relay/internal/platform/httpclient"

// Outcome labels recorded on the client request counter.
const (
	resultSuccess     = "success"
	resultError       = "error"
	resultCanceled    = "canceled"
	resultCircuitOpen = "circuit_open"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID stores the inbound request ID so outbound calls carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID stores the inbound correlation ID so outbound calls
// carry it.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// Client is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	serviceName string
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	limiter     *rate.Limiter
	retryCfg    retryConfig
	metrics     *telemetry.Metrics
}

// New builds a client for the downstream named serviceName. A zero
// RequestsPerSecond leaves the limiter off. metrics and logger may be nil.
func New(cfg *config.ClientConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	logger = logging.OrDiscard(logger)
	maxFailures := uint32(clamp(cfg.CircuitBreaker.MaxFailures))

	c := &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		serviceName: serviceName,
		retryCfg: retryConfig{
			maxAttempts:     cfg.Retry.MaxAttempts,
			initialInterval: cfg.Retry.InitialInterval,
			maxInterval:     cfg.Retry.MaxInterval,
			multiplier:      cfg.Retry.Multiplier,
		},
		metrics: metrics,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: uint32(clamp(cfg.CircuitBreaker.HalfOpenLimit)),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// The relay's own shutdown cancels in-flight sends; that says nothing
		// about the provider.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			level := slog.LevelWarn
			if to == gobreaker.StateClosed {
				level = slog.LevelInfo
			}
			logger.Log(context.Background(), level, "circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	if cfg.RateLimit.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), max(cfg.RateLimit.BurstSize, 1))
	}
	return c
}

// Do sends req through the breaker, limiter, span and retry stages.
//
// On success resp has an open body the caller must close. When the last
// attempt still got a retryable status, resp (body open) and err are both
// set so the caller can read the provider's error. A breaker rejection or a
// transport failure returns a nil resp.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var last *http.Response
	_, err := c.breaker.Execute(func() (*http.Response, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("waiting for %s rate limit: %w", c.serviceName, err)
			}
		}
		return last, c.attempt(ctx, req, &last)
	})

	c.record(ctx, req.Method, time.Since(start), last, err)
	return last, err
}

func (c *Client) attempt(ctx context.Context, req *http.Request, resp **http.Response) error {
	propagateIDs(ctx, req.Header)

	ctx, span := otel.Tracer(tracerScope).Start(ctx, "HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("server.address", req.URL.Host),
			attribute.String("url.path", req.URL.Path),
			attribute.String("peer.service", c.serviceName),
			attribute.Bool("relay.idempotent", req.Header.Get("Idempotency-Key") != ""),
		),
	)
	defer span.End()
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	err := c.doWithRetry(ctx, req.WithContext(ctx), resp)

	if *resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", (*resp).StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func propagateIDs(ctx context.Context, h http.Header) {
	if id, _ := ctx.Value(requestIDKey{}).(string); id != "" {
		h.Set("X-Request-ID", id)
	}
	if id, _ := ctx.Value(correlationIDKey{}).(string); id != "" {
		h.Set("X-Correlation-ID", id)
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Name returns the downstream service identifier.
func (c *Client) Name() string { return c.serviceName }

// State returns the breaker state: "closed", "half-open" or "open".
func (c *Client) State() string { return c.breaker.State().String() }

// HealthCheck answers from the breaker alone and sends nothing. Anything but
// a closed breaker wraps domain.ErrUnavailable.
func (c *Client) HealthCheck(context.Context) error {
	var verdict string
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		verdict = "degraded (circuit breaker half-open)"
	case gobreaker.StateOpen:
		verdict = "failing (circuit breaker open)"
	default:
		verdict = "unknown circuit breaker state " + state.String()
	}
	return fmt.Errorf("%s: %s: %w", c.serviceName, verdict, domain.ErrUnavailable)
}

// CloseIdleConnections drops keep-alive connections held by the transport.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// record runs outside the breaker so rejections are counted too.
func (c *Client) record(ctx context.Context, method string, elapsed time.Duration, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.serviceName),
		telemetry.AttrResult.String(outcome(status, err)),
	)
	c.metrics.ClientRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

func outcome(status int, err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return resultCircuitOpen
	case errors.Is(err, context.Canceled):
		return resultCanceled
	case err == nil && status > 0 && status < http.StatusBadRequest:
		return resultSuccess
	default:
		return resultError
	}
}

// clamp bounds v to the uint32 range.
func clamp(v int) int64 {
	return min(max(int64(v), 0), math.MaxUint32)
}
