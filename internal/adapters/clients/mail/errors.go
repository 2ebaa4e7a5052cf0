package mail

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
)

const maxErrorBodySize = 1 << 20

// problemDetail is the RFC 9457 body the provider returns on errors.
type problemDetail struct {
	Detail string        `json:"detail"`
	Errors []errorDetail `json:"errors"`
}

type errorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// TranslateHTTPError maps a provider error response to a domain error.
// Rejections of the message itself (400, 413, 422) become validation errors
// and are not worth retrying; throttling and server faults become
// domain.ErrUnavailable.
func TranslateHTTPError(resp *http.Response) error {
	pd := parseProblemDetail(resp)

	detail := pd.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch code := resp.StatusCode; {
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity,
		code == http.StatusRequestEntityTooLarge:
		if len(pd.Errors) > 0 {
			return toValidationError(pd.Errors)
		}
		return fmt.Errorf("mail provider rejected message: %s: %w", detail, domain.ErrValidation)

	case code == http.StatusNotFound:
		return fmt.Errorf("mail provider: %s: %w", detail, domain.ErrNotFound)

	case code == http.StatusConflict:
		return fmt.Errorf("mail provider: %s: %w", detail, domain.ErrConflict)

	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("mail provider credentials: %s: %w", detail, domain.ErrForbidden)

	case code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		return fmt.Errorf("mail provider: %s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("mail provider: unexpected status %d: %s", code, detail)
	}
}

func parseProblemDetail(resp *http.Response) problemDetail {
	if resp.Body == nil {
		return problemDetail{}
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
		return problemDetail{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return problemDetail{}
	}

	var pd problemDetail
	if err := json.Unmarshal(body, &pd); err != nil {
		return problemDetail{}
	}
	return pd
}

// toValidationError strips the "body." location prefix to get field names.
func toValidationError(details []errorDetail) *domain.ValidationError {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		fields[strings.TrimPrefix(d.Location, "body.")] = d.Message
	}
	return &domain.ValidationError{Fields: fields}
}
