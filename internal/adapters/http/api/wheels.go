package api

import (
	"net/http"
	"strings"

	"github.com/okian/crease/internal/domain/wheel"
)

const svgSuffix = ".svg"

// WheelsHandler serves wagon wheels as JSON figures or SVG documents.
type WheelsHandler struct {
	deps WheelDependencies
}

// NewWheelsHandler creates a new wheels handler.
func NewWheelsHandler(deps WheelDependencies) *WheelsHandler {
	return &WheelsHandler{deps: deps}
}

// HandleWheels handles GET /batters/{batter}/wheels requests. Warnings are
// part of a 200 response.
func (h *WheelsHandler) HandleWheels(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_wheels"
	f, err := ParseFilter(r)
	if err != nil {
		writeFailure(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	set, err := h.deps.Wheels(r.Context(), f)
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// HandleWheelSVG handles GET /batters/{batter}/wheels/{kind}.svg requests.
func (h *WheelsHandler) HandleWheelSVG(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_wheel_svg"
	file := r.PathValue("file")
	if !strings.HasSuffix(file, svgSuffix) {
		writeFailure(w, r, NewKind(op, ErrNotFound))
		return
	}
	kind, ok := wheel.ParseKind(strings.TrimSuffix(file, svgSuffix))
	if !ok {
		writeFailure(w, r, NewKind(op, ErrNotFound))
		return
	}
	f, err := ParseFilter(r)
	if err != nil {
		writeFailure(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	doc, err := h.deps.Wheel(r.Context(), f, kind)
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
