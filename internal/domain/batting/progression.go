package batting

import (
	"slices"

	"github.com/okian/crease/internal/domain/geometry"
	"github.com/okian/crease/internal/domain/model"
)

// BallsPerOver bounds the ball-in-over table. Wides and no-balls that push
// the ball number past six are left out of it.
const BallsPerOver = 6

// Window is an inclusive range of balls faced in an innings.
type Window struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// DefaultWindow covers the first twenty balls of an innings.
var DefaultWindow = Window{From: 1, To: 20}

// Normalize fills an unset bound from DefaultWindow and clamps From to 1.
// A reversed window is swapped.
func (w Window) Normalize() Window {
	if w.To <= 0 {
		w.To = max(DefaultWindow.To, w.From)
	}
	w.From = max(w.From, 1)
	if w.From > w.To {
		w.From, w.To = w.To, w.From
	}
	return w
}

// Group is the Summary of the deliveries sharing one key: an over number,
// a ball within the over, or the n-th ball a batter faced in an innings.
type Group struct {
	Key int `json:"key"`
	Summary
}

// ByOver summarises deliveries per over, in ascending over order.
func ByOver(deliveries []model.Delivery, strategies ...geometry.OutsStrategy) []Group {
	return groupBy(deliveries, func(d *model.Delivery) (int, bool) {
		return d.Over, true
	}, strategies)
}

// ByBall summarises deliveries per ball within the over, keeping balls 1
// to BallsPerOver.
func ByBall(deliveries []model.Delivery, strategies ...geometry.OutsStrategy) []Group {
	return groupBy(deliveries, func(d *model.Delivery) (int, bool) {
		return d.Ball, d.Ball >= 1 && d.Ball <= BallsPerOver
	}, strategies)
}

// ByBallFaced summarises deliveries by how many balls the batter had faced
// in that innings, counting from 1, for counts in [from, to]. Deliveries
// must be ordered by fixture, innings, over and ball, which is the order
// the store returns them in.
func ByBallFaced(deliveries []model.Delivery, from, to int, strategies ...geometry.OutsStrategy) []Group {
	type inningsKey struct {
		fixture string
		innings int
		batter  string
	}
	faced := make(map[inningsKey]int)
	nth := make([]int, len(deliveries))
	for i := range deliveries {
		d := &deliveries[i]
		k := inningsKey{d.FixtureID, d.Innings, d.Batter}
		faced[k]++
		nth[i] = faced[k]
	}

	idx := 0
	return groupBy(deliveries, func(*model.Delivery) (int, bool) {
		n := nth[idx]
		idx++
		return n, n >= from && n <= to
	}, strategies)
}

// groupBy visits deliveries in order. Outs are counted with the strategy
// chosen for the whole set so every row of a table agrees with the info box.
func groupBy(deliveries []model.Delivery, key func(*model.Delivery) (int, bool), strategies []geometry.OutsStrategy) []Group {
	outs := geometry.SelectOuts(deliveries, strategies...)
	buckets := make(map[int][]model.Delivery)
	for i := range deliveries {
		k, ok := key(&deliveries[i])
		if !ok {
			continue
		}
		buckets[k] = append(buckets[k], deliveries[i])
	}

	out := make([]Group, 0, len(buckets))
	for k, ds := range buckets {
		out = append(out, Group{Key: k, Summary: summarize(ds, outs)})
	}
	slices.SortFunc(out, func(a, b Group) int { return a.Key - b.Key })
	return out
}
