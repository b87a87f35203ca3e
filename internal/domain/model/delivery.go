// Package model contains domain models passed between layers.
package model

// Delivery is one ball-by-ball row for a batter.
// Optional tracking fields are nil when the feed did not record them.
type Delivery struct {
	ID        int64
	FixtureID string // match identifier
	Innings   int
	Over      int
	Ball      int // ball within the over, 1-based
	Batter    string
	Hand      Handedness
	Bowler    string

	RunsScored    int
	ShotAngle     *float64 // degrees, field frame [0, 360)
	ShotMagnitude *float64 // distance travelled
	DismissalType *string  // e.g. "Caught", "Bowled"
	IsOut         *bool
}

// HasShotAngle reports whether the delivery carries a tracked shot direction.
func (d *Delivery) HasShotAngle() bool {
	return d.ShotAngle != nil
}

// Float returns a pointer to v, for building optional fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
