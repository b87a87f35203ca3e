package api

import (
	"net/http"
)

// BattersHandler serves the batter list and info box.
type BattersHandler struct {
	deps BatterDependencies
}

// NewBattersHandler creates a new batters handler.
func NewBattersHandler(deps BatterDependencies) *BattersHandler {
	return &BattersHandler{deps: deps}
}

// HandleList handles GET /batters requests.
func (h *BattersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_batters"
	batters, err := h.deps.Batters(r.Context())
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, batters)
}

// HandleSummary handles GET /batters/{batter}/summary requests.
func (h *BattersHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	f, err := ParseFilter(r)
	if err != nil {
		writeFailure(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	summary, err := h.deps.Summary(r.Context(), f)
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleProgression handles GET /batters/{batter}/progression requests.
// balls_from and balls_to bound the balls-faced table.
func (h *BattersHandler) HandleProgression(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_progression"
	f, err := ParseFilter(r)
	if err != nil {
		writeFailure(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	window, err := ParseWindow(r)
	if err != nil {
		writeFailure(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.Progression(r.Context(), f, window)
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}
