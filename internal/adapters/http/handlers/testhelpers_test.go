package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
)

const testMessageID = "b5d1c1d6-5f3c-4a7e-9a55-1f0e1c3d2b10"

var submittedAt = time.Date(2026, time.February, 12, 15, 4, 5, 0, time.UTC)

// messageRequest is GET /api/v1/messages/{id} with the route parameter
// already resolved, as chi would hand it to the handler.
func messageRequest(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/messages/"+id, http.NoBody)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func queuedMessage() message.Message {
	return message.Message{
		ID:        testMessageID,
		To:        "ada@example.com",
		Subject:   "Invoice",
		Body:      "Please find attached.",
		Status:    message.StatusQueued,
		CreatedAt: submittedAt,
		UpdatedAt: submittedAt,
	}
}

func encodeBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("encoding request body: %v", err)
	}
	return bytes.NewReader(b)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()

	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
