// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/ladder/internal/app"
)

// ReplayDependencies defines the interface for replay operations.
type ReplayDependencies interface {
	Replay(ctx context.Context) app.ReplayReport
}

// ReplayHandler handles replay requests.
type ReplayHandler struct {
	deps ReplayDependencies
}

// NewReplayHandler creates a new replay handler.
func NewReplayHandler(deps ReplayDependencies) *ReplayHandler {
	return &ReplayHandler{deps: deps}
}

// HandleReplay handles POST /replay requests: rebuild all rating state from
// the ledger.
func (h *ReplayHandler) HandleReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Replay(r.Context()))
}
