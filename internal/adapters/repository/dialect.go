package repository

import (
	"fmt"
	"strconv"
	"strings"

	// Registered database/sql drivers.
	_ "github.com/glebarez/go-sqlite"
	_ "github.com/lib/pq"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// dialect holds the per-database differences in SQL text.
type dialect struct {
	driver   string
	idColumn string
	// numbered placeholders ($1, $2 ...) instead of ?
	numbered bool
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite:
		return dialect{driver: driver, idColumn: "id INTEGER PRIMARY KEY AUTOINCREMENT"}, nil
	case DriverPostgres:
		return dialect{driver: driver, idColumn: "id BIGSERIAL PRIMARY KEY", numbered: true}, nil
	default:
		return dialect{}, fmt.Errorf("%w: %q", ErrDriver, driver)
	}
}

// rebind rewrites ? placeholders for drivers that number them.
// Queries built by this package never contain a literal '?'.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS deliveries (
			` + d.idColumn + `,
			fixture_id     TEXT NOT NULL,
			innings        INTEGER NOT NULL DEFAULT 1,
			over_number    INTEGER NOT NULL DEFAULT 0,
			ball_number    INTEGER NOT NULL DEFAULT 0,
			batter         TEXT NOT NULL,
			batter_hand    TEXT NOT NULL,
			bowler         TEXT NOT NULL DEFAULT '',
			runs_scored    INTEGER NOT NULL DEFAULT 0,
			shot_angle     DOUBLE PRECISION,
			shot_magnitude DOUBLE PRECISION,
			dismissal_type TEXT,
			is_out         BOOLEAN
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deliveries_batter ON deliveries (batter, fixture_id, innings)`,
	}
}
