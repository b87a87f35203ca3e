// Package geometry converts shot records into render-frame angles, radial
// distances and per-sector aggregates.
//
// Two angle frames are involved. The field frame is the one the tracking feed
// records shots in. The render frame is a polar plot with 0° pointing east and
// angles increasing anti-clockwise. All functions are pure.
package geometry

import (
	"math"

	"github.com/okian/crease/internal/domain/model"
)

// Full turn and the render-frame offset of the field frame's zero direction.
const (
	fullTurn        = 360.0
	renderOffset    = 90.0
	leftSectorShift = 90.0
)

// DefaultBoundaryReference is the shot distance treated as reaching the
// boundary rope when normalising caught-out magnitudes.
const DefaultBoundaryReference = 167.0

// AdjustDisplayAngle maps a field-frame shot angle to the render frame for
// per-shot rays (boundaries and caught-out wheels).
//
// The field angle is already an absolute field direction, so the stance does
// not change the result. It differs from AdjustSectorDisplayAngle on purpose
// and the two must not be merged.
func AdjustDisplayAngle(domainAngle *float64, _ model.Handedness) (float64, bool) {
	if domainAngle == nil || math.IsNaN(*domainAngle) {
		return 0, false
	}
	return wrap(renderOffset - *domainAngle), true
}

// AdjustSectorDisplayAngle maps a field-frame angle to the render frame for
// sector boundary rays and sector labels on the scoring-areas wheel.
// Left-handed stances are rotated a further 90° anti-clockwise.
func AdjustSectorDisplayAngle(domainAngle *float64, hand model.Handedness) (float64, bool) {
	if domainAngle == nil || math.IsNaN(*domainAngle) {
		return 0, false
	}
	base := wrap(renderOffset - *domainAngle)
	if hand == model.Left {
		return wrap(base + leftSectorShift), true
	}
	return base, true
}

// NormalizedMagnitude scales a shot distance into [0, 1] against the
// boundary reference. Distances at or beyond the reference clamp to 1.
// A non-positive reference falls back to DefaultBoundaryReference.
func NormalizedMagnitude(magnitude, reference float64) float64 {
	if reference <= 0 {
		reference = DefaultBoundaryReference
	}
	if magnitude <= 0 || math.IsNaN(magnitude) {
		return 0
	}
	return math.Min(magnitude, reference) / reference
}

// wrap reduces x into [0, 360).
func wrap(x float64) float64 {
	r := math.Mod(x, fullTurn)
	if r < 0 {
		r += fullTurn
	}
	if r >= fullTurn {
		r -= fullTurn
	}
	// Normalise -0 so callers comparing against 0 behave.
	if r == 0 {
		return 0
	}
	return r
}
