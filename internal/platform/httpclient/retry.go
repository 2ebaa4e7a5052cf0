package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
)

// jitterFraction spreads each delay by up to ±25%.
const jitterFraction = 0.25

// retryableStatuses are the responses worth repeating: the provider was
// overloaded, timed out or failed transiently. 501 and 505 never improve.
var retryableStatuses = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

type retryConfig struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// attemptsFor is the number of tries req may get. A POST or PATCH without an
// Idempotency-Key gets exactly one, since repeating it could send the same
// e-mail twice.
func (rc retryConfig) attemptsFor(req *http.Request) int {
	switch req.Method {
	case http.MethodPost, http.MethodPatch:
		if req.Header.Get("Idempotency-Key") == "" {
			return 1
		}
	}
	return rc.maxAttempts
}

// delay is the wait before retry number attempt (1 for the first retry): the
// jittered exponential backoff, or the server's hint when that is longer.
// Both are capped at maxInterval.
func (rc retryConfig) delay(attempt int, hint time.Duration) time.Duration {
	d := float64(rc.initialInterval) * math.Pow(rc.multiplier, float64(attempt-1))
	d = min(d, float64(rc.maxInterval))
	d += d * jitterFraction * (2*rand.Float64() - 1) //nolint:gosec // jitter, not security

	return max(time.Duration(d), min(hint, rc.maxInterval), 0)
}

// doWithRetry sends req until it gets a non-retryable outcome or runs out of
// attempts. The body is buffered so each attempt can replay it. The result is
// written to resp; on exhaustion after a retryable status the last response
// is returned with its body open together with the error.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	attempts := c.retryCfg.attemptsFor(req)
	if attempts <= 0 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", attempts)
	}

	body, err := bufferBody(req)
	if err != nil {
		return err
	}

	var (
		lastErr error
		hint    time.Duration
	)
	for attempt := range attempts {
		if attempt > 0 {
			if err := c.pause(ctx, req, attempt, attempts, c.retryCfg.delay(attempt, hint), lastErr); err != nil {
				return err
			}
		}
		replayBody(req, body)

		r, err := c.httpClient.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return err
			}
			lastErr, hint = err, 0
			continue
		}

		if !retryableStatuses[r.StatusCode] {
			*resp = r
			return nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName)
		hint = retryAfter(r, time.Now())
		if attempt == attempts-1 {
			*resp = r
			return lastErr
		}
		discard(r)
	}
	return lastErr
}

func (c *Client) pause(ctx context.Context, req *http.Request, attempt, attempts int, d time.Duration, lastErr error) error {
	logging.FromContext(ctx).WarnContext(ctx, "retrying mail provider request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", attempts),
		slog.Duration("backoff", d),
		slog.Any("error", lastErr),
	)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func bufferBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer req.Body.Close()

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return b, nil
}

func replayBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// discard drains and closes a response so its connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// isRetryable reports whether a transport error may succeed on a second
// try. Cancellation and certificate problems will not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var (
		verifyErr  *tls.CertificateVerificationError
		unknownCA  x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
	)
	switch {
	case errors.As(err, &verifyErr), errors.As(err, &unknownCA),
		errors.As(err, &hostErr), errors.As(err, &invalidErr):
		return false
	}
	return true
}

// retryAfter reads a Retry-After header on 429 and 503 responses, in either
// delay-seconds or HTTP-date form. Anything else yields zero.
func retryAfter(resp *http.Response, now time.Time) time.Duration {
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return 0
	}
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
