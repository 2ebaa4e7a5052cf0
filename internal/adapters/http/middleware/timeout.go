package middleware

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
)

// Timeout bounds each request at d. The handler runs on its own goroutine
// against a buffered writer and sees the deadline on its context.
//
// If the handler finishes first its buffered response is sent as is, and a
// panic is re-raised on the serving goroutine so Recovery handles it. If the
// deadline passes first the client gets a 504 problem+json and anything the
// handler writes afterwards is dropped. A request canceled by the client gets
// no response at all. m may be nil.
func Timeout(d time.Duration, m *metrics.Lifecycle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			buf := &deferredResponse{header: make(http.Header)}
			done := make(chan struct{})
			var panicked any

			go func() {
				defer close(done)
				defer func() {
					if v := recover(); v != nil {
						panicked = v
						if buf.expired() {
							logging.FromContext(ctx).ErrorContext(ctx, "handler panicked after request deadline",
								slog.Any("panic", v),
								slog.String("path", r.URL.Path),
							)
						}
					}
				}()
				next.ServeHTTP(buf, r)
			}()

			select {
			case <-done:
				if panicked != nil {
					panic(panicked)
				}
				buf.sendTo(w)
			case <-ctx.Done():
				buf.expire()
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return
				}
				m.IncInterrupted(metrics.InterruptTimeout)
				logging.FromContext(ctx).WarnContext(ctx, "request deadline exceeded",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", d),
				)
				dto.WriteErrorResponse(w, r, domain.ErrTimeout)
			}
		})
	}
}

// deferredResponse holds a handler's response until Timeout decides whether
// to send it. After expire every write fails with http.ErrHandlerTimeout.
type deferredResponse struct {
	mu      sync.Mutex
	header  http.Header
	body    []byte
	status  int
	timeout bool
}

func (d *deferredResponse) Header() http.Header {
	return d.header
}

func (d *deferredResponse) WriteHeader(code int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status == 0 && !d.timeout {
		d.status = code
	}
}

func (d *deferredResponse) Write(b []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timeout {
		return 0, http.ErrHandlerTimeout
	}
	if d.status == 0 {
		d.status = http.StatusOK
	}
	d.body = append(d.body, b...)
	return len(b), nil
}

func (d *deferredResponse) expire() {
	d.mu.Lock()
	d.timeout = true
	d.mu.Unlock()
}

func (d *deferredResponse) expired() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timeout
}

// sendTo copies the buffered response to w. Only called once the handler
// goroutine has returned.
func (d *deferredResponse) sendTo(w http.ResponseWriter) {
	maps.Copy(w.Header(), d.header)
	if d.status != 0 {
		w.WriteHeader(d.status)
	}
	if len(d.body) > 0 {
		_, _ = w.Write(d.body)
	}
}
