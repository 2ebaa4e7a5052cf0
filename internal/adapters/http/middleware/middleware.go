// Package middleware holds the relay's HTTP middleware.
//
// Every route passes through, outermost first:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging
//
// The message API then adds Gate → ResetOnServerError → Timeout. The gate's
// own 503 responses never reset the data store, while a 504 from Timeout or
// a panic on its way to Recovery does. Probes of /health and /metrics are
// never gated.
package middleware

import "net/http"

// statusRecorder remembers the status and size of a response as it passes
// through. Only the first WriteHeader counts, matching net/http.
type statusRecorder struct {
	http.ResponseWriter
	status    int
	committed bool
	bytes     int64
}

// recordStatus wraps w, reusing w itself when an outer middleware has already
// wrapped the same writer.
func recordStatus(w http.ResponseWriter) *statusRecorder {
	if sr, ok := w.(*statusRecorder); ok {
		return sr
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.committed {
		return
	}
	sr.status = code
	sr.committed = true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.committed = true
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func (sr *statusRecorder) serverError() bool {
	return sr.status >= http.StatusInternalServerError
}
