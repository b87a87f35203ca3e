// Package repository stores ball-by-ball deliveries and answers the filtered
// reads the dashboard needs.
package repository

import (
	"context"

	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/types"
)

// Filter narrows the deliveries returned for a batter.
// Zero values mean "no constraint".
type Filter struct {
	Batter     string
	FixtureIDs []string
	Innings    int
	OverFrom   int
	OverTo     int
}

// Store provides read/write access to delivery rows.
type Store interface {
	// Migrate creates the schema if it does not exist.
	Migrate(ctx context.Context) error

	// Insert appends deliveries and returns how many rows were written.
	Insert(ctx context.Context, deliveries []model.Delivery) (int, error)

	// Batters lists every batter with at least one delivery, sorted by name.
	Batters(ctx context.Context) ([]types.Batter, error)

	// Hand returns the batter's stance.
	// Returns ErrNotFound if the batter is unknown.
	Hand(ctx context.Context, batter string) (model.Handedness, error)

	// Fixtures lists the fixture ids a batter appears in.
	Fixtures(ctx context.Context, batter string) ([]string, error)

	// Deliveries returns the batter's deliveries in match order.
	Deliveries(ctx context.Context, f Filter) ([]model.Delivery, error)

	// Count returns the number of stored deliveries.
	Count(ctx context.Context) int

	Close() error
}
