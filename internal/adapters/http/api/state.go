// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/domain/model"
)

// StateDependencies defines the interface for snapshot operations.
type StateDependencies interface {
	ExportState(ctx context.Context) model.State
	ImportState(ctx context.Context, state model.State) (app.ReplayReport, error)
}

// StateStore persists snapshots between runs.
type StateStore interface {
	Save(ctx context.Context, state model.State) error
	Load(ctx context.Context) (model.State, error)
}

// StateHandler handles snapshot export, import and persistence requests.
type StateHandler struct {
	deps  StateDependencies
	store StateStore
}

// NewStateHandler creates a new state handler.
func NewStateHandler(deps StateDependencies, store StateStore) *StateHandler {
	return &StateHandler{deps: deps, store: store}
}

// HandleState handles GET and PUT /state requests.
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.ExportState(r.Context()))

	case http.MethodPut:
		var state model.State
		if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		report, err := h.deps.ImportState(r.Context(), state)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)

	default:
		http.NotFound(w, r)
	}
}

// HandleSave handles POST /state/save requests: persist the current
// snapshot to the configured store.
func (h *StateHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store", ErrNoStore)
		return
	}
	if err := h.store.Save(r.Context(), h.deps.ExportState(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// HandleLoad handles POST /state/load requests: replace the session with
// the persisted snapshot and replay it.
func (h *StateHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store", ErrNoStore)
		return
	}
	state, err := h.store.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	report, err := h.deps.ImportState(r.Context(), state)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
