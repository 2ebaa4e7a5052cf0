package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
)

const statusOK = "ok"

// SnapshotSource supplies a consistent copy of the readiness model.
type SnapshotSource interface {
	Snapshot() domain.HealthSnapshot
}

// PhaseSource reports the shutdown state machine's phase.
type PhaseSource interface {
	Phase() domain.Phase
}

// HealthHandler handles liveness and readiness HTTP endpoints.
type HealthHandler struct {
	model SnapshotSource
	phase PhaseSource
}

// NewHealthHandler creates a HealthHandler reading from the readiness model
// and the shutdown coordinator.
func NewHealthHandler(model SnapshotSource, phase PhaseSource) *HealthHandler {
	return &HealthHandler{model: model, phase: phase}
}

// Liveness handles GET /health/live. Always returns 200 OK.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": statusOK})
}

// Readiness handles GET /health/ready. It never probes; it reports the last
// committed snapshot. Returns 200 only when the gate would admit.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	snap := h.model.Snapshot()

	code := http.StatusOK
	if snap.Decision() != domain.DecisionAdmit {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, r, code, dto.ToReadinessResponse(snap, h.phase.Phase()))
}
