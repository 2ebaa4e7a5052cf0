package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// DefaultRetryAfter is the Retry-After hint sent with gate rejections.
const DefaultRetryAfter = 5 * time.Second

// Gate returns middleware that admits requests only while the service is
// ready and not shutting down. Rejections are 503 problem+json responses
// carrying a Retry-After hint; shutdown rejections also ask the client to
// close the connection so keep-alive sockets drain off this instance.
// m may be nil.
func Gate(gate ports.Gate, m *metrics.Lifecycle) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(DefaultRetryAfter / time.Second))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := gate.Evaluate()
			if decision == domain.DecisionAdmit {
				next.ServeHTTP(w, r)
				return
			}

			m.IncGateRejection(decision)

			w.Header().Set("Retry-After", retryAfter)
			if decision == domain.DecisionShutdown {
				w.Header().Set("Connection", "close")
			}
			dto.WriteErrorResponse(w, r, decision.Err())
		})
	}
}
