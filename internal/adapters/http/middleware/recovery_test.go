package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(new(bytes.Buffer), nil))
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		handler       http.HandlerFunc
		wantStatus    int
		wantProblem   bool
		wantBody      string
		wantRecovered bool
	}{
		{
			name: "no panic passes through",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte("queued"))
			},
			wantStatus: http.StatusAccepted,
			wantBody:   "queued",
		},
		{
			name:          "string panic",
			handler:       func(http.ResponseWriter, *http.Request) { panic("store exploded") },
			wantStatus:    http.StatusInternalServerError,
			wantProblem:   true,
			wantRecovered: true,
		},
		{
			name:          "non-string panic",
			handler:       func(http.ResponseWriter, *http.Request) { panic(42) },
			wantStatus:    http.StatusInternalServerError,
			wantProblem:   true,
			wantRecovered: true,
		},
		{
			name: "panic after response started keeps original status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte("partial"))
				panic("late panic")
			},
			wantStatus:    http.StatusAccepted,
			wantBody:      "partial",
			wantRecovered: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := metrics.New()
			handler := middleware.Recovery(discardLogger(), m)(tt.handler)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/messages", http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if tt.wantProblem {
				if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
					t.Errorf("Content-Type = %q, want application/problem+json", ct)
				}
				if got := rec.Header().Get("Connection"); got != "close" {
					t.Errorf("Connection = %q, want close", got)
				}
				var body map[string]any
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decoding body: %v", err)
				}
				if detail, _ := body["detail"].(string); detail != "an internal error occurred" {
					t.Errorf("detail = %q, want generic internal detail", detail)
				}
			}

			want := ""
			if tt.wantRecovered {
				want = `
# HELP mail_relay_http_requests_interrupted_total Requests cut short by a recovered panic or the request deadline
# TYPE mail_relay_http_requests_interrupted_total counter
mail_relay_http_requests_interrupted_total{reason="panic"} 1
`
			}
			if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(want),
				"mail_relay_http_requests_interrupted_total"); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRecovery_LogsPanicWithStack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Recovery(testLogger(&buf), nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("test panic value")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/log-test", http.NoBody))

	out := buf.String()
	for _, want := range []string{"panic recovered", "test panic value", "goroutine", "/log-test"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

func TestRecovery_ReraisesAbortHandler(t *testing.T) {
	t.Parallel()

	handler := middleware.Recovery(discardLogger(), nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if v := recover(); v != http.ErrAbortHandler { //nolint:errorlint // identity check
			t.Errorf("recovered %v, want http.ErrAbortHandler", v)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	t.Error("ServeHTTP returned normally, want re-panic")
}
