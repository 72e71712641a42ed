// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/domain/model"
)

// MatchDependencies defines the interface for match ledger operations.
type MatchDependencies interface {
	RecordMatch(ctx context.Context, c1, c2 string, outcome model.Outcome, playedAt time.Time) (app.MatchResult, error)
	Matches(ctx context.Context) []model.MatchState
}

// MatchesHandler handles match ledger requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleMatches handles POST and GET /matches requests.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRecord(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Matches(r.Context()))
	default:
		http.NotFound(w, r)
	}
}

func (h *MatchesHandler) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	// validate() vouched for the formats already.
	outcome, _ := model.ParseOutcome(req.Outcome)
	var playedAt time.Time
	if req.PlayedAt != "" {
		playedAt, _ = time.Parse(time.RFC3339, req.PlayedAt)
	}

	result, err := h.deps.RecordMatch(r.Context(), req.Competitor1, req.Competitor2, outcome, playedAt)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
