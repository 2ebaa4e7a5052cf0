package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
)

// parseMessageID reads a UUID route parameter.
func parseMessageID(r *http.Request, param string) (string, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", &domain.ValidationError{
			Fields: map[string]string{param: "must be a valid UUID"},
		}
	}
	return id.String(), nil
}

// parseMessageFilter reads the status and limit query parameters.
func parseMessageFilter(r *http.Request) (message.Filter, error) {
	q := r.URL.Query()
	filter := message.Filter{Status: message.Status(q.Get("status"))}
	fields := make(map[string]string)

	if filter.Status != "" && !filter.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", filter.Status)
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields["limit"] = "must be a positive integer"
		}
		filter.Limit = n
	}

	if len(fields) > 0 {
		return message.Filter{}, &domain.ValidationError{Fields: fields}
	}
	return filter, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing response", slog.Any("error", err))
	}
}

// maxSubmissionBytes bounds a message submission body.
const maxSubmissionBytes = 1 << 20

// bodyProblem explains a body that could not be decoded.
func bodyProblem(err error) string {
	var (
		tooLarge *http.MaxBytesError
		syntax   *json.SyntaxError
		typeErr  *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &tooLarge):
		return fmt.Sprintf("must not exceed %d bytes", tooLarge.Limit)
	case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
		return "invalid JSON"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %q must be a %s", typeErr.Field, typeErr.Type)
	case errors.Is(err, io.EOF):
		return "must not be empty"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return "invalid JSON"
	}
}

type validatable interface {
	Validate() error
}

// decodeAndValidate reads a single JSON object into dst and validates it.
// Unknown fields and trailing data are rejected. On failure it writes a 400
// problem response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil && dec.More() {
		err = errors.New("json: trailing data")
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": bodyProblem(err)},
		})
		return false
	}

	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
