package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-mail-relay/internal/platform/telemetry"
)

const tracerScope = "github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/middleware"

// OpenTelemetry opens a server span per request, continuing any W3C trace
// the caller sent, and records the server request instruments. m may be nil.
//
// The span starts out named after the method alone and is renamed to
// "METHOD route" once chi has matched, so message IDs never reach span
// names or metric labels. Unmatched paths keep the bare method.
func OpenTelemetry(m *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := otel.Tracer(tracerScope).Start(ctx, r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			sr := recordStatus(w)
			next.ServeHTTP(sr, r.WithContext(ctx))

			route := routePattern(r)
			if route != "" {
				span.SetName(r.Method + " " + route)
				span.SetAttributes(attribute.String("http.route", route))
			}
			span.SetAttributes(
				attribute.Int("http.response.status_code", sr.status),
				attribute.Int64("http.response.body.size", sr.bytes),
			)
			if id := RequestIDFromContext(r.Context()); id != "" {
				span.SetAttributes(attribute.String("relay.request_id", id))
			}
			if sr.serverError() {
				span.SetStatus(codes.Error, http.StatusText(sr.status))
			}

			if m == nil {
				return
			}
			result := "success"
			if sr.status >= http.StatusBadRequest {
				result = "error"
			}
			attrs := metric.WithAttributes(
				telemetry.AttrHTTPMethod.String(r.Method),
				telemetry.AttrHTTPRoute.String(route),
				telemetry.AttrHTTPStatus.Int(sr.status),
				telemetry.AttrResult.String(result),
			)
			m.ServerRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
			m.ServerRequestTotal.Add(ctx, 1, attrs)
		})
	}
}

// routePattern returns the chi route that matched r, or "" outside a chi
// router or for unmatched paths.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
