// Package batting computes the headline batting figures shown next to the
// wagon wheels.
package batting

import (
	"github.com/okian/crease/internal/domain/geometry"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/wheel"
)

// Summary is the raw-stat box for one batter under the active filters.
type Summary struct {
	Runs         int      `json:"runs"`
	Balls        int      `json:"balls"`
	Outs         int      `json:"outs"`
	Fours        int      `json:"fours"`
	Sixes        int      `json:"sixes"`
	Dots         int      `json:"dots"`
	Average      *float64 `json:"average"`
	StrikeRate   float64  `json:"strike_rate"`
	BoundaryPct  float64  `json:"boundary_pct"`
	DotBallPct   float64  `json:"dot_ball_pct"`
	TrackedShots int      `json:"tracked_shots"` // deliveries with a shot angle
	CaughtOuts   int      `json:"caught_outs"`
}

// Summarize computes a Summary. Dismissals are counted with the same
// strategy order as the scoring-areas wheel.
func Summarize(deliveries []model.Delivery, strategies ...geometry.OutsStrategy) Summary {
	return summarize(deliveries, geometry.SelectOuts(deliveries, strategies...))
}

func summarize(deliveries []model.Delivery, outs geometry.OutsCounter) Summary {
	var s Summary
	s.Balls = len(deliveries)
	for i := range deliveries {
		d := &deliveries[i]
		s.Runs += d.RunsScored
		switch d.RunsScored {
		case 0:
			s.Dots++
		case 4:
			s.Fours++
		case 6:
			s.Sixes++
		}
		if d.HasShotAngle() {
			s.TrackedShots++
		}
		if wheel.IsCaught(d) {
			s.CaughtOuts++
		}
	}

	s.Outs = outs(deliveries)
	if s.Outs > 0 {
		avg := float64(s.Runs) / float64(s.Outs)
		s.Average = &avg
	}
	s.StrikeRate = geometry.Ratio(s.Runs, s.Balls) * 100
	s.BoundaryPct = geometry.Ratio(s.Fours+s.Sixes, s.Balls) * 100
	s.DotBallPct = geometry.Ratio(s.Dots, s.Balls) * 100
	return s
}
