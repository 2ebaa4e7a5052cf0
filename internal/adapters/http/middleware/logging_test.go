package middleware_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
)

// logLines decodes JSON log output into one map per record.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("decoding log line %q: %v", sc.Text(), err)
		}
		lines = append(lines, m)
	}
	return lines
}

func completion(t *testing.T, lines []map[string]any) map[string]any {
	t.Helper()

	for _, l := range lines {
		if l["msg"] == "request completed" {
			return l
		}
	}
	t.Fatalf("no completion line in %v", lines)
	return nil
}

func TestLogging_CompletionLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		minLevel  slog.Level
		wantLevel string
		wantLine  bool
	}{
		{name: "accepted", path: "/api/v1/messages", status: http.StatusAccepted, wantLevel: "INFO", wantLine: true},
		{name: "client error", path: "/api/v1/messages", status: http.StatusBadRequest, wantLevel: "WARN", wantLine: true},
		{name: "gate rejection", path: "/api/v1/messages", status: http.StatusServiceUnavailable, wantLevel: "ERROR", wantLine: true},
		{name: "readiness poll is quiet", path: "/health/ready", status: http.StatusOK, minLevel: slog.LevelInfo, wantLine: false},
		{name: "not ready poll is quiet", path: "/health/ready", status: http.StatusServiceUnavailable, minLevel: slog.LevelInfo, wantLevel: "ERROR", wantLine: true},
		{name: "scrape is debug", path: "/metrics", status: http.StatusOK, minLevel: slog.LevelDebug, wantLevel: "DEBUG", wantLine: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: tt.minLevel}))

			handler := middleware.Logging(logger, "/health", "/metrics")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			var found map[string]any
			for _, l := range logLines(t, &buf) {
				if l["msg"] == "request completed" {
					found = l
				}
			}
			if !tt.wantLine {
				if found != nil {
					t.Errorf("unexpected completion line: %v", found)
				}
				return
			}
			if found == nil {
				t.Fatal("no completion line")
			}
			if found["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", found["level"], tt.wantLevel)
			}
			if status, _ := found["status"].(float64); int(status) != tt.status {
				t.Errorf("status = %v, want %d", found["status"], tt.status)
			}
		})
	}
}

func TestLogging_CompletionFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middleware.RequestID(), middleware.CorrelationID(), middleware.Logging(logger))
	r.Get("/api/v1/messages/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"42"}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages/42", http.NoBody)
	req.Header.Set("X-Request-ID", "req-log-test")
	req.Header.Set("X-Correlation-ID", "corr-log-test")
	r.ServeHTTP(httptest.NewRecorder(), req)

	line := completion(t, logLines(t, &buf))
	want := map[string]any{
		"request_id":     "req-log-test",
		"correlation_id": "corr-log-test",
		"method":         "GET",
		"path":           "/api/v1/messages/42",
		"route":          "/api/v1/messages/{id}",
		"bytes":          float64(11),
	}
	for k, v := range want {
		if line[k] != v {
			t.Errorf("%s = %v, want %v", k, line[k], v)
		}
	}
	if _, ok := line["duration"]; !ok {
		t.Error("completion line missing duration")
	}
}

func TestLogging_DebugStartRedactsHeaders(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Logging(testLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", http.NoBody)
	req.Header.Set("Authorization", "Bearer hunter2")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "request started") {
		t.Error("debug output missing request started")
	}
	if strings.Contains(out, "hunter2") {
		t.Error("credential leaked into request log")
	}
	if !strings.Contains(out, "headers.Authorization=[REDACTED]") {
		t.Errorf("redacted header missing from output: %s", out)
	}
}

func TestLogging_StoresLoggerInContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.RequestID()(
		middleware.Logging(testLogger(&buf))(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			logging.FromContext(r.Context()).Info("delivery scheduled")
		})),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", http.NoBody)
	req.Header.Set("X-Request-ID", "ctx-logger-test")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "delivery scheduled") {
		t.Error("handler log not captured by the request logger")
	}
	if !strings.Contains(out, "request_id=ctx-logger-test") {
		t.Error("handler log missing request_id")
	}
}
