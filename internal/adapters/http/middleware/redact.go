package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

const redacted = "[REDACTED]"

// credentialHeaders are always redacted (lowercase names).
var credentialHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
}

// credentialMarkers redact any header whose lowercase name contains one of
// them, which covers X-Api-Key, X-Mail-Api-Key, X-Auth-Token and the like.
var credentialMarkers = []string{"api-key", "apikey", "token", "secret", "password", "signature"}

// RedactHeaders returns headers as a "headers" log group with sorted keys.
// Credential-bearing headers are replaced by "[REDACTED]"; repeated values
// are joined with a comma.
func RedactHeaders(headers http.Header) slog.Attr {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		v := strings.Join(headers[k], ",")
		if isCredentialHeader(k) {
			v = redacted
		}
		attrs = append(attrs, slog.String(k, v))
	}
	return slog.Group("headers", attrs...)
}

func isCredentialHeader(name string) bool {
	lower := strings.ToLower(name)
	if credentialHeaders[lower] {
		return true
	}
	return slices.ContainsFunc(credentialMarkers, func(m string) bool {
		return strings.Contains(lower, m)
	})
}
