package wheel

import (
	"fmt"
	"math"

	"github.com/okian/crease/internal/domain/geometry"
	"github.com/okian/crease/internal/domain/model"
)

// Runs that count as a boundary.
const (
	runsFour = 4
	runsSix  = 6
)

// caughtDismissals are the dismissal types plotted on the caught-out wheel.
var caughtDismissals = map[string]struct{}{
	"Caught":     {},
	"CaughtSub":  {},
	"Caught Out": {},
}

// IsCaught reports whether d was a caught dismissal.
func IsCaught(d *model.Delivery) bool {
	if d.DismissalType == nil {
		return false
	}
	_, ok := caughtDismissals[*d.DismissalType]
	return ok
}

// Boundaries draws every four and six as a full-length ray. The legend counts
// all boundaries, including those without a tracked angle.
func Boundaries(deliveries []model.Delivery, hand model.Handedness) Figure {
	fig := Figure{
		Kind:     KindBoundaries,
		Limit:    rayLimit,
		Boundary: boundaryCircle(boundariesFill),
	}

	var fours, sixes []Ray
	nFours, nSixes := 0, 0
	for i := range deliveries {
		d := &deliveries[i]
		var style Style
		switch d.RunsScored {
		case runsFour:
			nFours++
			style = fourStyle
		case runsSix:
			nSixes++
			style = sixStyle
		default:
			continue
		}
		angle, ok := geometry.AdjustDisplayAngle(d.ShotAngle, hand)
		if !ok {
			continue
		}
		ray := Ray{Angle: angle, From: 0, To: boundaryR, Style: style}
		if d.RunsScored == runsFour {
			fours = append(fours, ray)
		} else {
			sixes = append(sixes, ray)
		}
	}

	// Sixes are drawn last so they sit on top.
	fig.Rays = make([]Ray, 0, len(fours)+len(sixes))
	fig.Rays = append(fig.Rays, fours...)
	fig.Rays = append(fig.Rays, sixes...)
	fig.Legend = []LegendEntry{
		{Text: fmt.Sprintf("4s (%d)", nFours), Color: fourStyle.Color},
		{Text: fmt.Sprintf("6s (%d)", nSixes), Color: sixStyle.Color},
	}
	return fig
}

// CaughtOut draws each caught dismissal as a ray whose length is the shot
// distance against reference. Dismissals missing angle or distance, or
// carrying NaN for either, are counted in the title but not drawn.
func CaughtOut(deliveries []model.Delivery, hand model.Handedness, reference float64) Figure {
	fig := Figure{
		Kind:     KindCaughtOut,
		Limit:    rayLimit,
		Boundary: boundaryCircle(caughtFill),
		Rays:     []Ray{},
	}

	total := 0
	for i := range deliveries {
		d := &deliveries[i]
		if !IsCaught(d) {
			continue
		}
		total++
		if d.ShotMagnitude == nil || math.IsNaN(*d.ShotMagnitude) {
			continue
		}
		angle, ok := geometry.AdjustDisplayAngle(d.ShotAngle, hand)
		if !ok {
			continue
		}
		fig.Rays = append(fig.Rays, Ray{
			Angle: angle,
			From:  0,
			To:    geometry.NormalizedMagnitude(*d.ShotMagnitude, reference),
			Style: caughtStyle,
		})
	}
	fig.Title = fmt.Sprintf("Total: %d dismissals", total)
	return fig
}

// ScoringAreas draws the eight sector boundaries and a stats label in each
// sector. The returned stats are the ones printed in the labels. Strategies
// default to geometry.DefaultOutsStrategies.
func ScoringAreas(deliveries []model.Delivery, hand model.Handedness, strategies ...geometry.OutsStrategy) (Figure, []geometry.SectorStats) {
	stats := geometry.ScoringAreas(deliveries, strategies...)
	fig := Figure{
		Kind:     KindScoringAreas,
		Limit:    scoringLimit,
		Boundary: boundaryCircle(scoringFill),
		Rays:     []Ray{},
	}
	if len(deliveries) == 0 {
		return fig, stats
	}

	for _, st := range stats {
		for _, edge := range []float64{st.Sector.Start, st.Sector.End} {
			if edge >= 360 {
				edge = 0
			}
			angle, ok := geometry.AdjustSectorDisplayAngle(&edge, hand)
			if !ok {
				continue
			}
			fig.Rays = append(fig.Rays, Ray{Angle: angle, From: 0, To: boundaryR, Style: sectorStyle})
		}

		// Midpoint is taken in the field frame, then transformed.
		mid := st.Sector.Mid()
		angle, ok := geometry.AdjustSectorDisplayAngle(&mid, hand)
		if !ok {
			continue
		}
		fig.Labels = append(fig.Labels, Label{
			Angle:  angle,
			Radius: labelRadius,
			Lines:  SectorLabel(st),
			Color:  labelColor,
			Size:   labelSize,
		})
	}
	return fig, stats
}

// SectorLabel formats the text printed inside a sector.
func SectorLabel(st geometry.SectorStats) []string {
	avg := "-"
	if st.Average != nil {
		avg = fmt.Sprintf("%.2f", *st.Average)
	}
	return []string{
		fmt.Sprintf("%d balls", st.Balls),
		fmt.Sprintf("%d runs", st.Runs),
		"Avg " + avg,
		fmt.Sprintf("SR %.2f", st.StrikeRate),
		fmt.Sprintf("%.1f%% of runs", st.PercentOfTotalRuns),
	}
}
