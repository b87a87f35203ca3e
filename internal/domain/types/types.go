// Package types contains the read shapes shared by the service and its HTTP adapters.
package types

import (
	"github.com/okian/crease/internal/domain/batting"
	"github.com/okian/crease/internal/domain/geometry"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/wheel"
)

// Batter is one selectable batter and their stance.
type Batter struct {
	Name       string           `json:"name"`
	Hand       model.Handedness `json:"hand"`
	Deliveries int              `json:"deliveries"`
}

// BatterSummary is the info box for a batter under the active filters.
type BatterSummary struct {
	Batter   string           `json:"batter"`
	Hand     model.Handedness `json:"hand"`
	Fixtures []string         `json:"fixtures"`
	batting.Summary
}

// Wheel is one rendered figure.
type Wheel struct {
	Kind   wheel.Kind   `json:"kind"`
	Figure wheel.Figure `json:"figure"`
	SVG    string       `json:"svg"`
}

// WheelSet is everything the page shows below the info box. When Warnings
// is non-empty Wheels is empty.
type WheelSet struct {
	Batter      string                 `json:"batter"`
	Hand        model.Handedness       `json:"hand"`
	Warnings    []string               `json:"warnings"`
	Wheels      []Wheel                `json:"wheels"`
	Sectors     []geometry.SectorStats `json:"sectors"`
	SkippedRows int                    `json:"skipped_rows"`
}

// Wheel returns the wheel of the given kind, if rendered.
func (ws WheelSet) Wheel(kind wheel.Kind) (Wheel, bool) {
	for _, w := range ws.Wheels {
		if w.Kind == kind {
			return w, true
		}
	}
	return Wheel{}, false
}

// Progression is the innings-progression view: the filtered deliveries
// summarised per over, per ball within the over, and per ball faced inside
// Window.
type Progression struct {
	Batter     string           `json:"batter"`
	Hand       model.Handedness `json:"hand"`
	Window     batting.Window   `json:"window"`
	Overs      []batting.Group  `json:"overs"`
	Balls      []batting.Group  `json:"balls"`
	BallsFaced []batting.Group  `json:"balls_faced"`
}
