package dto

import (
	"cmp"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
)

// ProblemContentType is the RFC 9457 media type for error bodies.
const ProblemContentType = "application/problem+json"

// detailInternal stands in for the text of every 5xx error, so a failing
// dependency never leaks its error to the client.
const detailInternal = "an internal error occurred"

// publicServerErrors are the 5xx sentinels whose own text is safe to send.
// Only the sentinel's text is used, never the chain that wraps it.
var publicServerErrors = []error{
	domain.ErrShuttingDown,
	domain.ErrNotReady,
	domain.ErrTimeout,
}

// statusFor lists domain errors in match order. The first sentinel found in
// the chain decides the status; anything unlisted is a 500.
var statusFor = []struct {
	err    error
	status int
}{
	{domain.ErrShuttingDown, http.StatusServiceUnavailable},
	{domain.ErrNotReady, http.StatusServiceUnavailable},
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnavailable, http.StatusBadGateway},
	{domain.ErrTimeout, http.StatusGatewayTimeout},
}

// ErrorResponse is an RFC 9457 problem details body. Only status, title and
// detail (plus per-field validation messages) ever describe the failure.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is one rejected field of a message submission.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// NewErrorResponse builds the problem body for err as answered to r.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := domainErrorToStatus(err)

	resp := ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detailInternal,
		Instance: r.RequestURI,
	}
	if resp.Instance == "" && r.URL != nil {
		resp.Instance = r.URL.RequestURI()
	}
	resp.Detail = detailFor(err, status)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = fieldDetails(verr.Fields)
	}
	return resp
}

// WriteErrorResponse sends err as application/problem+json.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewErrorResponse(r, err)

	w.Header().Set("Content-Type", ProblemContentType)
	w.WriteHeader(resp.Status)

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing problem response",
			slog.Int("status", resp.Status),
			slog.Any("error", encErr),
		)
	}
}

func domainErrorToStatus(err error) int {
	for _, m := range statusFor {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func detailFor(err error, status int) string {
	if status < http.StatusInternalServerError {
		return err.Error()
	}
	for _, public := range publicServerErrors {
		if errors.Is(err, public) {
			return public.Error()
		}
	}
	return detailInternal
}

// fieldDetails orders validation messages by field so bodies are stable.
func fieldDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		details = append(details, ErrorDetail{Location: "body." + field, Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return details
}
