package httpclient_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/httpclient"
)

// provider is a scripted mail API: call n answers statuses[n], and calls past
// the script get the last entry. It records what each call carried.
type provider struct {
	mu       sync.Mutex
	statuses []int
	header   http.Header // sent on every response
	bodies   []string
	requests []http.Header
}

func newProvider(t *testing.T, statuses ...int) (*provider, *httptest.Server) {
	t.Helper()

	p := &provider{statuses: statuses, header: http.Header{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)

		p.mu.Lock()
		n := len(p.bodies)
		p.bodies = append(p.bodies, string(b))
		p.requests = append(p.requests, r.Header.Clone())
		status := p.statuses[min(n, len(p.statuses)-1)]
		for k, vs := range p.header {
			w.Header()[k] = vs
		}
		p.mu.Unlock()

		w.WriteHeader(status)
		_, _ = w.Write([]byte(http.StatusText(status)))
	}))
	t.Cleanup(srv.Close)
	return p, srv
}

func (p *provider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bodies)
}

func testConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
}

func newClient(cfg *config.ClientConfig) *httpclient.Client {
	return httpclient.New(cfg, "mail-api", nil, slog.New(slog.DiscardHandler))
}

// send builds a request against srv and closes whatever response comes back.
// It returns the status (0 without a response) and the error.
func send(t *testing.T, ctx context.Context, c *httpclient.Client, method, url string, key string) (int, string, error) {
	t.Helper()

	var body io.Reader = http.NoBody
	if method == http.MethodPost {
		body = strings.NewReader(`{"to":"ops@example.com"}`)
	}
	req, err := http.NewRequestWithContext(ctx, method, url+"/v1/messages", body)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}

	resp, err := c.Do(ctx, req)
	if resp == nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b), err
}

func TestDo_RetryPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		key        string
		statuses   []int
		wantStatus int
		wantCalls  int
		wantErr    bool
	}{
		{name: "accepted first time", method: http.MethodPost, key: "msg-1", statuses: []int{202}, wantStatus: 202, wantCalls: 1},
		{name: "keyed post retries 5xx", method: http.MethodPost, key: "msg-1", statuses: []int{500, 502, 202}, wantStatus: 202, wantCalls: 3},
		{name: "keyed post retries 429", method: http.MethodPost, key: "msg-1", statuses: []int{429, 202}, wantStatus: 202, wantCalls: 2},
		{name: "unkeyed post is sent once", method: http.MethodPost, statuses: []int{503, 202}, wantStatus: 503, wantCalls: 1, wantErr: true},
		{name: "get retries without a key", method: http.MethodGet, statuses: []int{504, 200}, wantStatus: 200, wantCalls: 2},
		{name: "4xx is final", method: http.MethodPost, key: "msg-1", statuses: []int{422}, wantStatus: 422, wantCalls: 1},
		{name: "501 is final", method: http.MethodGet, statuses: []int{501}, wantStatus: 501, wantCalls: 1},
		{name: "exhausted keeps last response", method: http.MethodGet, statuses: []int{503}, wantStatus: 503, wantCalls: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, srv := newProvider(t, tt.statuses...)
			cfg := testConfig(srv.URL)
			cfg.CircuitBreaker.MaxFailures = 10

			status, body, err := send(t, context.Background(), newClient(cfg), tt.method, srv.URL, tt.key)

			if (err != nil) != tt.wantErr {
				t.Errorf("Do() error = %v, wantErr %v", err, tt.wantErr)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body != http.StatusText(tt.wantStatus) {
				t.Errorf("body = %q, want the final response intact", body)
			}
			if got := p.calls(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestDo_ReplaysBodyOnRetry(t *testing.T) {
	t.Parallel()

	p, srv := newProvider(t, 500, 202)
	if _, _, err := send(t, context.Background(), newClient(testConfig(srv.URL)), http.MethodPost, srv.URL, "msg-7"); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.bodies) != 2 {
		t.Fatalf("calls = %d, want 2", len(p.bodies))
	}
	for i, b := range p.bodies {
		if b != `{"to":"ops@example.com"}` {
			t.Errorf("attempt %d body = %q", i+1, b)
		}
		if got := p.requests[i].Get("Idempotency-Key"); got != "msg-7" {
			t.Errorf("attempt %d Idempotency-Key = %q, want msg-7", i+1, got)
		}
	}
}

func TestDo_PropagatesIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ctx      context.Context
		wantReq  string
		wantCorr string
	}{
		{
			name:     "both set",
			ctx:      httpclient.WithCorrelationID(httpclient.WithRequestID(context.Background(), "req-123"), "corr-456"),
			wantReq:  "req-123",
			wantCorr: "corr-456",
		},
		{name: "none set", ctx: context.Background()},
		{name: "empty id is not sent", ctx: httpclient.WithRequestID(context.Background(), "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, srv := newProvider(t, 200)
			if _, _, err := send(t, tt.ctx, newClient(testConfig(srv.URL)), http.MethodGet, srv.URL, ""); err != nil {
				t.Fatalf("Do() error = %v", err)
			}

			p.mu.Lock()
			h := p.requests[0]
			p.mu.Unlock()

			if got := h.Get("X-Request-ID"); got != tt.wantReq {
				t.Errorf("X-Request-ID = %q, want %q", got, tt.wantReq)
			}
			if got := h.Get("X-Correlation-ID"); got != tt.wantCorr {
				t.Errorf("X-Correlation-ID = %q, want %q", got, tt.wantCorr)
			}
		})
	}
}

// tripBreaker fails one request against a breaker configured to open after a
// single failure.
func tripBreaker(t *testing.T, breakerTimeout time.Duration) (*httpclient.Client, *provider, string) {
	t.Helper()

	p, srv := newProvider(t, 500)
	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.CircuitBreaker.Timeout = breakerTimeout
	cfg.Retry.MaxAttempts = 1

	c := newClient(cfg)
	_, _, _ = send(t, context.Background(), c, http.MethodGet, srv.URL, "")
	return c, p, srv.URL
}

func TestDo_OpenBreakerRejectsWithoutSending(t *testing.T) {
	t.Parallel()

	c, p, url := tripBreaker(t, time.Minute)

	status, _, err := send(t, context.Background(), c, http.MethodGet, url, "")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Do() error = %v, want gobreaker.ErrOpenState", err)
	}
	if status != 0 {
		t.Errorf("status = %d, want no response", status)
	}
	if got := p.calls(); got != 1 {
		t.Errorf("calls = %d, want 1 (rejected call never sent)", got)
	}
	if got := c.State(); got != "open" {
		t.Errorf("State() = %q, want open", got)
	}
}

func TestDo_BreakerRecovers(t *testing.T) {
	t.Parallel()

	c, p, url := tripBreaker(t, 50*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	p.mu.Lock()
	p.statuses = []int{200}
	p.mu.Unlock()

	status, _, err := send(t, context.Background(), c, http.MethodGet, url, "")
	if err != nil {
		t.Fatalf("Do() error = %v, want the half-open probe to pass", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if got := c.State(); got != "closed" {
		t.Errorf("State() = %q, want closed", got)
	}
}

func TestDo_CancellationDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	_, srv := newProvider(t, 200)
	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	c := newClient(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for range 3 {
		if _, _, err := send(t, ctx, c, http.MethodGet, srv.URL, ""); !errors.Is(err, context.Canceled) {
			t.Fatalf("Do() error = %v, want context.Canceled", err)
		}
	}
	if got := c.State(); got != "closed" {
		t.Errorf("State() = %q, want closed after canceled calls", got)
	}
}

func TestDo_RetryAfterHonored(t *testing.T) {
	t.Parallel()

	p, srv := newProvider(t, 429, 202)
	p.header.Set("Retry-After", "1")

	cfg := testConfig(srv.URL)
	cfg.Retry.MaxInterval = 2 * time.Second

	start := time.Now()
	status, _, err := send(t, context.Background(), newClient(cfg), http.MethodPost, srv.URL, "msg-1")
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 900*time.Millisecond {
		t.Errorf("elapsed = %v, want at least the 1s Retry-After", elapsed)
	}
	if status != http.StatusAccepted {
		t.Errorf("status = %d, want 202", status)
	}
}

func TestDo_RateLimitWaitBoundByContext(t *testing.T) {
	t.Parallel()

	_, srv := newProvider(t, 200)
	cfg := testConfig(srv.URL)
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.1, BurstSize: 1}
	c := newClient(cfg)

	if _, _, err := send(t, context.Background(), c, http.MethodGet, srv.URL, ""); err != nil {
		t.Fatalf("first Do() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err := send(t, ctx, c, http.MethodGet, srv.URL, "")
	if err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("second Do() error = %v, want a rate limit wait error", err)
	}
}

func TestClient_HealthCheck(t *testing.T) {
	t.Parallel()

	t.Run("closed", func(t *testing.T) {
		t.Parallel()

		if err := newClient(testConfig("http://localhost")).HealthCheck(context.Background()); err != nil {
			t.Errorf("HealthCheck() = %v, want nil", err)
		}
	})

	t.Run("open", func(t *testing.T) {
		t.Parallel()

		c, _, _ := tripBreaker(t, time.Minute)
		err := c.HealthCheck(context.Background())
		if !errors.Is(err, domain.ErrUnavailable) {
			t.Errorf("HealthCheck() = %v, want wrapped ErrUnavailable", err)
		}
		if err == nil || !strings.Contains(err.Error(), "failing") {
			t.Errorf("HealthCheck() = %v, want it to say failing", err)
		}
	})

	t.Run("half-open", func(t *testing.T) {
		t.Parallel()

		c, _, _ := tripBreaker(t, 50*time.Millisecond)
		time.Sleep(80 * time.Millisecond)

		err := c.HealthCheck(context.Background())
		if err == nil || !strings.Contains(err.Error(), "degraded") {
			t.Errorf("HealthCheck() = %v, want it to say degraded", err)
		}
	})
}

func TestClient_Accessors(t *testing.T) {
	t.Parallel()

	c := newClient(testConfig("http://provider.test"))
	c.CloseIdleConnections()

	if got := c.Name(); got != "mail-api" {
		t.Errorf("Name() = %q, want mail-api", got)
	}
	if got := c.BaseURL(); got != "http://provider.test" {
		t.Errorf("BaseURL() = %q", got)
	}
	if got := c.State(); got != "closed" {
		t.Errorf("State() = %q, want closed", got)
	}
}
