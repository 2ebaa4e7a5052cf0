package mail_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/clients/mail"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
)

const testAPIKey = "test-key"

func testConfig(baseURL string) config.MailConfig {
	return config.MailConfig{
		From:   "relay@example.com",
		APIKey: testAPIKey,
		Client: config.ClientConfig{
			BaseURL: baseURL,
			Timeout: 2 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     1,
				InitialInterval: 10 * time.Millisecond,
				MaxInterval:     10 * time.Millisecond,
				Multiplier:      1,
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   1,
				Timeout:       time.Minute,
				HalfOpenLimit: 1,
			},
		},
	}
}

func newTestMessage() *message.Message {
	return message.New("ada@example.com", "hello", "body", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestTransport_Name(t *testing.T) {
	t.Parallel()

	if got := mail.New(testConfig("http://localhost"), nil, nil).Name(); got != domain.DependencyMail {
		t.Errorf("Name() = %q, want %q", got, domain.DependencyMail)
	}
}

func TestTransport_ProbeDeep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"healthy", http.StatusOK, `{"status":"ok"}`, false},
		{"degraded body", http.StatusOK, `{"status":"degraded"}`, true},
		{"server error", http.StatusServiceUnavailable, `{}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("path = %q, want /health", r.URL.Path)
				}
				if got := r.Header.Get("X-API-Key"); got != testAPIKey {
					t.Errorf("X-API-Key = %q, want %q", got, testAPIKey)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			err := mail.New(testConfig(srv.URL), nil, nil).ProbeDeep(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("ProbeDeep() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	msg := newTestMessage()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/messages" {
			t.Errorf("request = %s %s, want POST /v1/messages", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Idempotency-Key"); got != msg.ID {
			t.Errorf("Idempotency-Key = %q, want %q", got, msg.ID)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["from"] != "relay@example.com" || body["to"] != msg.To || body["text"] != msg.Body {
			t.Errorf("body = %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"prov-1"}`))
	}))
	t.Cleanup(srv.Close)

	if err := mail.New(testConfig(srv.URL), nil, nil).Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
}

func TestTransport_SendRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"recipient suppressed"}`))
	}))
	t.Cleanup(srv.Close)

	err := mail.New(testConfig(srv.URL), nil, nil).Send(context.Background(), newTestMessage())
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Send() error = %v, want ErrValidation", err)
	}
}

func TestTransport_ProbeOnceFollowsBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	tr := mail.New(testConfig(srv.URL), nil, nil)
	ctx := context.Background()

	if err := tr.ProbeOnce(ctx); err != nil {
		t.Fatalf("ProbeOnce() on fresh transport = %v, want nil", err)
	}
	if err := tr.Send(ctx, newTestMessage()); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("Send() error = %v, want ErrUnavailable", err)
	}

	before := calls.Load()
	if err := tr.ProbeOnce(ctx); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("ProbeOnce() after trip = %v, want ErrUnavailable", err)
	}
	if calls.Load() != before {
		t.Error("ProbeOnce() made a network call")
	}
}

func TestTransport_Close(t *testing.T) {
	t.Parallel()

	tr := mail.New(testConfig("http://localhost"), nil, nil)
	ctx := context.Background()

	if err := tr.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := tr.Close(ctx); !errors.Is(err, domain.ErrClosed) {
		t.Errorf("second Close() = %v, want ErrClosed", err)
	}
	if err := tr.Send(ctx, newTestMessage()); !errors.Is(err, domain.ErrClosed) {
		t.Errorf("Send() after Close = %v, want ErrClosed", err)
	}
	if err := tr.ProbeDeep(ctx); !errors.Is(err, domain.ErrClosed) {
		t.Errorf("ProbeDeep() after Close = %v, want ErrClosed", err)
	}
}
