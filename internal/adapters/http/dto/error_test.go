package dto_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
)

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{name: "shutting down", err: domain.ErrShuttingDown, wantStatus: 503, wantDetail: "service is shutting down"},
		{name: "not ready", err: domain.ErrNotReady, wantStatus: 503, wantDetail: "service is not ready"},
		{name: "validation", err: &domain.ValidationError{Fields: map[string]string{"to": "is required"}}, wantStatus: 400},
		{name: "not found", err: domain.ErrNotFound, wantStatus: 404, wantDetail: domain.ErrNotFound.Error()},
		{name: "forbidden", err: domain.ErrForbidden, wantStatus: 403, wantDetail: domain.ErrForbidden.Error()},
		{name: "conflict", err: domain.ErrConflict, wantStatus: 409, wantDetail: domain.ErrConflict.Error()},
		{name: "provider unavailable", err: domain.ErrUnavailable, wantStatus: 502, wantDetail: "an internal error occurred"},
		{name: "deadline", err: domain.ErrTimeout, wantStatus: 504, wantDetail: "request deadline exceeded"},
		{
			name:       "wrapped sentinel keeps its status and text",
			err:        fmt.Errorf("message 42: %w", domain.ErrNotFound),
			wantStatus: 404,
			wantDetail: "message 42: " + domain.ErrNotFound.Error(),
		},
		{
			name:       "wrapped unavailable hides the cause",
			err:        fmt.Errorf("enqueue delivery: %w", errors.Join(domain.ErrUnavailable, errors.New("claim job: database is locked (/var/lib/relay/queue.db)"))),
			wantStatus: 502,
			wantDetail: "an internal error occurred",
		},
		{
			name:       "wrapped deadline keeps only the sentinel text",
			err:        fmt.Errorf("send message 42: %w", domain.ErrTimeout),
			wantStatus: 504,
			wantDetail: domain.ErrTimeout.Error(),
		},
		{
			name:       "wrapped shutdown keeps only the sentinel text",
			err:        fmt.Errorf("submit: %w", domain.ErrShuttingDown),
			wantStatus: 503,
			wantDetail: "service is shutting down",
		},
		{
			name:       "unmapped error is hidden",
			err:        errors.New("sql: database is locked"),
			wantStatus: 500,
			wantDetail: "an internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			dto.WriteErrorResponse(rec, httptest.NewRequest(http.MethodPost, "/api/v1/messages", http.NoBody), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != dto.ProblemContentType {
				t.Errorf("Content-Type = %q, want %q", ct, dto.ProblemContentType)
			}

			var got dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("body status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Title != http.StatusText(tt.wantStatus) {
				t.Errorf("title = %q, want %q", got.Title, http.StatusText(tt.wantStatus))
			}
			if got.Type != "about:blank" {
				t.Errorf("type = %q, want about:blank", got.Type)
			}
			if tt.wantDetail != "" && got.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", got.Detail, tt.wantDetail)
			}
		})
	}
}

func TestNewErrorResponse_ValidationFieldsSorted(t *testing.T) {
	t.Parallel()

	verr := &domain.ValidationError{Fields: map[string]string{
		"to":      "must be a valid address",
		"subject": "is required",
		"body":    "is required",
	}}
	got := dto.NewErrorResponse(httptest.NewRequest(http.MethodPost, "/api/v1/messages", http.NoBody), verr)

	var locations []string
	for _, d := range got.Errors {
		locations = append(locations, d.Location)
	}
	want := []string{"body.body", "body.subject", "body.to"}
	if !slices.Equal(locations, want) {
		t.Errorf("locations = %v, want %v", locations, want)
	}
	if got.Errors[2].Message != "must be a valid address" {
		t.Errorf("to message = %q", got.Errors[2].Message)
	}
}

func TestNewErrorResponse_NoFieldsOutsideValidation(t *testing.T) {
	t.Parallel()

	got := dto.NewErrorResponse(httptest.NewRequest(http.MethodGet, "/api/v1/messages/1", http.NoBody), domain.ErrNotFound)
	if got.Errors != nil {
		t.Errorf("Errors = %v, want nil", got.Errors)
	}
}

func TestNewErrorResponse_Instance(t *testing.T) {
	t.Parallel()

	inbound := httptest.NewRequest(http.MethodGet, "/api/v1/messages?status=queued", http.NoBody)
	if got := dto.NewErrorResponse(inbound, domain.ErrNotReady).Instance; got != "/api/v1/messages?status=queued" {
		t.Errorf("inbound Instance = %q", got)
	}

	// Requests built in-process have no RequestURI.
	built, _ := http.NewRequest(http.MethodGet, "http://relay.test/api/v1/messages/7", http.NoBody)
	if got := dto.NewErrorResponse(built, domain.ErrNotFound).Instance; got != "/api/v1/messages/7" {
		t.Errorf("built Instance = %q, want /api/v1/messages/7", got)
	}
}
