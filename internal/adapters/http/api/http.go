// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	repository "github.com/okian/crease/internal/adapters/repository"
	"github.com/okian/crease/internal/domain/batting"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/internal/domain/wheel"
	"github.com/okian/crease/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	BatterDependencies
	WheelDependencies
}

// BatterDependencies lists batters and builds their info box.
type BatterDependencies interface {
	Batters(ctx context.Context) ([]types.Batter, error)
	Summary(ctx context.Context, f repository.Filter) (types.BatterSummary, error)
	Progression(ctx context.Context, f repository.Filter, window batting.Window) (types.Progression, error)
}

// WheelDependencies builds and renders wagon wheels.
type WheelDependencies interface {
	Wheels(ctx context.Context, f repository.Filter) (types.WheelSet, error)
	Wheel(ctx context.Context, f repository.Filter, kind wheel.Kind) ([]byte, error)
}

// Server wires HTTP routes for the JSON and SVG API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	battersHandler *BattersHandler
	wheelsHandler  *WheelsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		battersHandler: NewBattersHandler(deps),
		wheelsHandler:  NewWheelsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /batters", MetricsMiddleware(s.battersHandler.HandleList, "batters"))
	mux.HandleFunc("GET /batters/{batter}/summary", MetricsMiddleware(s.battersHandler.HandleSummary, "summary"))
	mux.HandleFunc("GET /batters/{batter}/progression", MetricsMiddleware(s.battersHandler.HandleProgression, "progression"))
	mux.HandleFunc("GET /batters/{batter}/wheels", MetricsMiddleware(s.wheelsHandler.HandleWheels, "wheels"))
	mux.HandleFunc("GET /batters/{batter}/wheels/{file}", MetricsMiddleware(s.wheelsHandler.HandleWheelSVG, "wheel_svg"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure picks status and code from the error kind. Internal causes
// are logged with the request id and replaced by the status text.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	st, code := status(err)
	if st >= http.StatusInternalServerError {
		logger.Get().Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("requestId", RequestIDFrom(r.Context())),
			logger.Error(err))
		writeError(w, st, code, nil)
		return
	}
	writeError(w, st, code, err)
}
