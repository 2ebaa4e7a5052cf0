package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
)

// errPanic is what clients see for a recovered panic. The panic value and
// stack only go to the log.
var errPanic = errors.New("handler panicked")

// Recovery turns a handler panic into a logged, counted 500 problem+json.
// The connection is closed afterwards because the handler may have left
// shared state half-updated. http.ErrAbortHandler is re-raised untouched.
// If the response has already started, only the log entry and the counter
// are emitted. m may be nil.
func Recovery(logger *slog.Logger, m *metrics.Lifecycle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := recordStatus(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity, as net/http does
					panic(v)
				}

				m.IncInterrupted(metrics.InterruptPanic)
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				if sr.committed {
					return
				}
				sr.Header().Set("Connection", "close")
				dto.WriteErrorResponse(sr, r, errPanic)
			}()

			next.ServeHTTP(sr, r)
		})
	}
}
