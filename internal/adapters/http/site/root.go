// Package site serves the server-rendered wagon wheel dashboard.
package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/okian/crease/internal/adapters/http/api"
	repository "github.com/okian/crease/internal/adapters/repository"
	"github.com/okian/crease/internal/domain/batting"
	"github.com/okian/crease/internal/domain/types"
)

// Error constants
var (
	ErrRender = errors.New("page render failed")
)

// Dependencies are the reads the pages need.
type Dependencies interface {
	Batters(ctx context.Context) ([]types.Batter, error)
	Summary(ctx context.Context, f repository.Filter) (types.BatterSummary, error)
	Wheels(ctx context.Context, f repository.Filter) (types.WheelSet, error)
	Progression(ctx context.Context, f repository.Filter, window batting.Window) (types.Progression, error)
}

// Register attaches the dashboard pages and stylesheet to mux.
func Register(_ context.Context, mux *http.ServeMux, deps Dependencies) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewRootHandler(deps)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
	mux.HandleFunc("GET /{$}", api.MetricsMiddleware(h.HandleRoot, "site_root"))
	mux.HandleFunc("GET /batter/{batter}", api.MetricsMiddleware(h.HandleBatter, "site_batter"))
}

// RootHandler renders the dashboard pages.
type RootHandler struct {
	deps Dependencies
}

// NewRootHandler creates a new root handler
func NewRootHandler(deps Dependencies) *RootHandler {
	return &RootHandler{deps: deps}
}

// HandleRoot handles GET / requests with the batter list.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	batters, err := h.deps.Batters(r.Context())
	if err != nil {
		http.Error(w, "could not load batters", http.StatusInternalServerError)
		return
	}
	templ.Handler(IndexPage(batters)).ServeHTTP(w, r)
}

// HandleBatter handles GET /batter/{batter} requests.
func (h *RootHandler) HandleBatter(w http.ResponseWriter, r *http.Request) {
	f, err := api.ParseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	window, err := api.ParseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	summary, err := h.deps.Summary(r.Context(), f)
	if err != nil {
		writePageError(w, err)
		return
	}
	wheels, err := h.deps.Wheels(r.Context(), f)
	if err != nil {
		writePageError(w, err)
		return
	}
	progression, err := h.deps.Progression(r.Context(), f, window)
	if err != nil {
		writePageError(w, err)
		return
	}
	page := BatterPage(BatterPageData{
		Summary:     summary,
		Wheels:      wheels,
		Progression: progression,
		Query:       r.URL.Query(),
	})
	templ.Handler(page, templ.WithErrorHandler(func(*http.Request, error) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
		})
	})).ServeHTTP(w, r)
}

func writePageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "batter not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrInvalidFilter):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "could not load batter", http.StatusInternalServerError)
	}
}
