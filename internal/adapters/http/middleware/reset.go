package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// ResetOnServerError returns middleware that drops the data store's pooled
// connections after any response with a 5xx status, unless shutdown has
// begun. A panic from next counts as a 500: the pool is reset and the panic
// carries on to Recovery. http.ErrAbortHandler is not a server error. The
// response itself is left untouched. m may be nil.
func ResetOnServerError(store ports.ConnectionResetter, gate ports.Gate, m *metrics.Lifecycle) func(http.Handler) http.Handler {
	reset := func(r *http.Request, status int) {
		if gate.Evaluate() == domain.DecisionShutdown {
			return
		}
		store.ResetConnection()
		m.IncConnectionReset()
		logging.FromContext(r.Context()).WarnContext(r.Context(), "reset data store connections after server error",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
		)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := recordStatus(w)

			defer func() {
				if v := recover(); v != nil {
					if v != http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity, as net/http does
						reset(r, http.StatusInternalServerError)
					}
					panic(v)
				}
			}()

			next.ServeHTTP(sr, r)

			if sr.serverError() {
				reset(r, sr.status)
			}
		})
	}
}
