package geometry

import "github.com/okian/crease/internal/domain/model"

// SectorStats aggregates the deliveries whose shot angle falls in one sector.
type SectorStats struct {
	Sector             Sector   `json:"sector"`
	Balls              int      `json:"balls"`
	Runs               int      `json:"runs"`
	Outs               int      `json:"outs"`
	Average            *float64 `json:"average"` // nil when Outs == 0
	StrikeRate         float64  `json:"strike_rate"`
	PercentOfTotalRuns float64  `json:"percent_of_total_runs"`
}

// OutsCounter counts dismissals in a set of deliveries.
type OutsCounter func(deliveries []model.Delivery) int

// OutsStrategy decides from the full delivery set whether it can count
// dismissals. It returns false when the set does not carry its field.
type OutsStrategy func(all []model.Delivery) (OutsCounter, bool)

// DefaultOutsStrategies is the order in which dismissals are counted:
// the explicit out flag first, then a non-empty dismissal type.
var DefaultOutsStrategies = []OutsStrategy{ExplicitOutFlag, DismissalRecorded}

// ExplicitOutFlag applies when any delivery carries an out flag and counts
// deliveries flagged out.
func ExplicitOutFlag(all []model.Delivery) (OutsCounter, bool) {
	for i := range all {
		if all[i].IsOut != nil {
			return countFlagged, true
		}
	}
	return nil, false
}

// DismissalRecorded applies when any delivery carries a dismissal type and
// counts deliveries whose type is non-empty.
func DismissalRecorded(all []model.Delivery) (OutsCounter, bool) {
	for i := range all {
		if all[i].DismissalType != nil {
			return countDismissals, true
		}
	}
	return nil, false
}

// SelectOuts runs strategies in order and returns the first applicable
// counter. When none applies every set counts zero outs.
func SelectOuts(all []model.Delivery, strategies ...OutsStrategy) OutsCounter {
	if len(strategies) == 0 {
		strategies = DefaultOutsStrategies
	}
	for _, s := range strategies {
		if c, ok := s(all); ok {
			return c
		}
	}
	return func([]model.Delivery) int { return 0 }
}

func countFlagged(ds []model.Delivery) int {
	n := 0
	for i := range ds {
		if ds[i].IsOut != nil && *ds[i].IsOut {
			n++
		}
	}
	return n
}

func countDismissals(ds []model.Delivery) int {
	n := 0
	for i := range ds {
		if ds[i].DismissalType != nil && *ds[i].DismissalType != "" {
			n++
		}
	}
	return n
}

// TotalRuns sums runs over every delivery, with or without a shot angle.
func TotalRuns(deliveries []model.Delivery) int {
	total := 0
	for i := range deliveries {
		total += deliveries[i].RunsScored
	}
	return total
}

// ScoringAreas bins deliveries into the eight sectors by field-frame shot
// angle and computes per-sector stats. Percentages use the run total of the
// whole input as denominator. Deliveries without an angle only contribute to
// that total.
func ScoringAreas(deliveries []model.Delivery, strategies ...OutsStrategy) []SectorStats {
	sectors := Sectors()
	buckets := make([][]model.Delivery, SectorCount)
	for i := range deliveries {
		a := deliveries[i].ShotAngle
		if a == nil {
			continue
		}
		if idx, ok := SectorOf(*a); ok {
			buckets[idx] = append(buckets[idx], deliveries[i])
		}
	}

	outs := SelectOuts(deliveries, strategies...)
	total := TotalRuns(deliveries)

	out := make([]SectorStats, SectorCount)
	for i, sec := range sectors {
		out[i] = Aggregate(sec, buckets[i], outs, total)
	}
	return out
}

// Aggregate computes SectorStats for deliveries already known to fall in sec.
func Aggregate(sec Sector, deliveries []model.Delivery, outs OutsCounter, totalRuns int) SectorStats {
	st := SectorStats{Sector: sec, Balls: len(deliveries)}
	st.Runs = TotalRuns(deliveries)
	if st.Balls > 0 && outs != nil {
		st.Outs = outs(deliveries)
	}
	if st.Outs > 0 {
		avg := float64(st.Runs) / float64(st.Outs)
		st.Average = &avg
	}
	st.StrikeRate = Ratio(st.Runs, st.Balls) * 100
	st.PercentOfTotalRuns = Ratio(st.Runs, totalRuns) * 100
	return st
}

// Ratio returns num/den, or 0 when den is zero.
func Ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
