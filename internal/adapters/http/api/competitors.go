// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/ladder/internal/app"
)

// CompetitorDependencies defines the interface for registry operations.
type CompetitorDependencies interface {
	RegisterCompetitor(ctx context.Context, name string) (app.CompetitorInfo, error)
	RemoveCompetitor(ctx context.Context, name string) error
	RenameCompetitor(ctx context.Context, oldName, newName string) (app.CompetitorInfo, error)
	GetCompetitor(ctx context.Context, name string) (app.CompetitorInfo, error)
	ListCompetitors(ctx context.Context) []app.CompetitorInfo
}

// CompetitorsHandler handles competitor registry requests.
type CompetitorsHandler struct {
	deps CompetitorDependencies
}

// NewCompetitorsHandler creates a new competitors handler.
func NewCompetitorsHandler(deps CompetitorDependencies) *CompetitorsHandler {
	return &CompetitorsHandler{deps: deps}
}

// HandleCollection handles POST and GET /competitors requests.
func (h *CompetitorsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRegister(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *CompetitorsHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req competitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	info, err := h.deps.RegisterCompetitor(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (h *CompetitorsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.ListCompetitors(r.Context()))
}

// HandleItem handles GET, PUT and DELETE /competitors/{name} requests.
func (h *CompetitorsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	// Extract path parameter after /competitors/
	name := strings.TrimPrefix(r.URL.Path, "/competitors/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		info, err := h.deps.GetCompetitor(r.Context(), name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, info)

	case http.MethodPut:
		var req competitorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		info, err := h.deps.RenameCompetitor(r.Context(), name, req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, info)

	case http.MethodDelete:
		if err := h.deps.RemoveCompetitor(r.Context(), name); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})

	default:
		http.NotFound(w, r)
	}
}
