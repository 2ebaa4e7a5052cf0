package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/middleware"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// captureIDs runs RequestID then CorrelationID and returns the IDs the
// handler saw along with the recorder.
func captureIDs(t *testing.T, header http.Header) (reqID, corrID string, rec *httptest.ResponseRecorder) {
	t.Helper()

	handler := middleware.RequestID()(middleware.CorrelationID()(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			reqID = middleware.RequestIDFromContext(r.Context())
			corrID = middleware.CorrelationIDFromContext(r.Context())
		}),
	))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", http.NoBody)
	for k, v := range header {
		req.Header[k] = v
	}
	handler.ServeHTTP(rec, req)
	return reqID, corrID, rec
}

func TestRequestID_InboundHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inbound  string
		wantKeep bool
	}{
		{name: "absent", inbound: "", wantKeep: false},
		{name: "well formed", inbound: "relay-req-42", wantKeep: true},
		{name: "at length limit", inbound: strings.Repeat("a", 128), wantKeep: true},
		{name: "oversized", inbound: strings.Repeat("a", 129), wantKeep: false},
		{name: "contains space", inbound: "two words", wantKeep: false},
		{name: "control character", inbound: "id\x07bell", wantKeep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := http.Header{}
			if tt.inbound != "" {
				h.Set("X-Request-ID", tt.inbound)
			}
			reqID, _, rec := captureIDs(t, h)

			if tt.wantKeep {
				if reqID != tt.inbound {
					t.Errorf("request ID = %q, want %q", reqID, tt.inbound)
				}
			} else if !uuidPattern.MatchString(reqID) {
				t.Errorf("request ID = %q, want generated UUID v4", reqID)
			}
			if got := rec.Header().Get("X-Request-ID"); got != reqID {
				t.Errorf("response X-Request-ID = %q, want %q", got, reqID)
			}
		})
	}
}

func TestRequestID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 100 {
		id, _, _ := captureIDs(t, nil)
		seen[id] = true
	}
	if len(seen) != 100 {
		t.Errorf("unique IDs = %d, want 100", len(seen))
	}
}

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	t.Run("reuses inbound header", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		h.Set("X-Correlation-ID", "campaign-7")
		_, corrID, rec := captureIDs(t, h)

		if corrID != "campaign-7" {
			t.Errorf("correlation ID = %q, want %q", corrID, "campaign-7")
		}
		if got := rec.Header().Get("X-Correlation-ID"); got != "campaign-7" {
			t.Errorf("response X-Correlation-ID = %q, want %q", got, "campaign-7")
		}
	})

	t.Run("falls back to request ID", func(t *testing.T) {
		t.Parallel()

		reqID, corrID, _ := captureIDs(t, nil)
		if corrID == "" || corrID != reqID {
			t.Errorf("correlation ID = %q, want request ID %q", corrID, reqID)
		}
	})

	t.Run("rejects oversized inbound header", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		h.Set("X-Correlation-ID", strings.Repeat("c", 300))
		reqID, corrID, _ := captureIDs(t, h)
		if corrID != reqID {
			t.Errorf("correlation ID = %q, want request ID %q", corrID, reqID)
		}
	})
}

func TestIDsFromContext_Empty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		t.Errorf("RequestIDFromContext = %q, want empty", id)
	}
	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		t.Errorf("CorrelationIDFromContext = %q, want empty", id)
	}

	ctx = middleware.WithCorrelationID(middleware.WithRequestID(ctx, "r-1"), "c-1")
	if got := middleware.RequestIDFromContext(ctx); got != "r-1" {
		t.Errorf("RequestIDFromContext = %q, want r-1", got)
	}
	if got := middleware.CorrelationIDFromContext(ctx); got != "c-1" {
		t.Errorf("CorrelationIDFromContext = %q, want c-1", got)
	}
}
