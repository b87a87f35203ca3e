package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultQueryTimeout = 5 * time.Second
	defaultMaxOpenConns = 10
	connMaxLifetime     = 5 * time.Minute
)

const deliveryColumns = `id, fixture_id, innings, over_number, ball_number, batter, batter_hand, bowler,
	runs_scored, shot_angle, shot_magnitude, dismissal_type, is_out`

// SQLStore implements Store on database/sql.
type SQLStore struct {
	db           *sql.DB
	dialect      dialect
	queryTimeout time.Duration
	maxOpenConns int
}

// Open connects to driver/dsn and verifies the connection.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*SQLStore, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	s := &SQLStore{
		dialect:      d,
		queryTimeout: defaultQueryTimeout,
		maxOpenConns: defaultMaxOpenConns,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		s.maxOpenConns = 1
	}
	db.SetMaxOpenConns(s.maxOpenConns)
	db.SetMaxIdleConns(s.maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	s.db = db
	return s, nil
}

// Driver returns the database/sql driver name in use.
func (s *SQLStore) Driver() string {
	return s.dialect.driver
}

// Migrate creates the schema if it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	defer observe("migrate", time.Now())
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	for _, stmt := range s.dialect.schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			metrics.RecordStoreError("migrate")
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Insert appends deliveries in a single transaction.
func (s *SQLStore) Insert(ctx context.Context, deliveries []model.Delivery) (int, error) {
	if len(deliveries) == 0 {
		return 0, nil
	}
	defer observe("insert", time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordStoreError("insert")
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.dialect.rebind(`INSERT INTO deliveries
		(fixture_id, innings, over_number, ball_number, batter, batter_hand, bowler,
		 runs_scored, shot_angle, shot_magnitude, dismissal_type, is_out)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		metrics.RecordStoreError("insert")
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range deliveries {
		d := &deliveries[i]
		if _, err := stmt.ExecContext(ctx,
			d.FixtureID, d.Innings, d.Over, d.Ball, d.Batter, d.Hand.String(), d.Bowler,
			d.RunsScored, d.ShotAngle, d.ShotMagnitude, d.DismissalType, d.IsOut,
		); err != nil {
			metrics.RecordStoreError("insert")
			return 0, fmt.Errorf("insert delivery %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		metrics.RecordStoreError("insert")
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return len(deliveries), nil
}

// Batters lists every batter, sorted by name.
func (s *SQLStore) Batters(ctx context.Context) ([]types.Batter, error) {
	defer observe("batters", time.Now())
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT batter, MIN(batter_hand), COUNT(*) FROM deliveries GROUP BY batter ORDER BY batter`)
	if err != nil {
		metrics.RecordStoreError("batters")
		return nil, fmt.Errorf("query batters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []types.Batter{}
	for rows.Next() {
		var (
			b    types.Batter
			hand string
		)
		if err := rows.Scan(&b.Name, &hand, &b.Deliveries); err != nil {
			metrics.RecordStoreError("batters")
			return nil, fmt.Errorf("scan batter: %w", err)
		}
		if b.Hand, err = model.ParseHandedness(hand); err != nil {
			return nil, fmt.Errorf("batter %q: %w", b.Name, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreError("batters")
		return nil, fmt.Errorf("iterate batters: %w", err)
	}
	return out, nil
}

// Hand returns the stance recorded for batter.
func (s *SQLStore) Hand(ctx context.Context, batter string) (model.Handedness, error) {
	defer observe("hand", time.Now())
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var hand string
	err := s.db.QueryRowContext(ctx,
		s.dialect.rebind(`SELECT batter_hand FROM deliveries WHERE batter = ? LIMIT 1`), batter).Scan(&hand)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Right, fmt.Errorf("%w: %s", ErrNotFound, batter)
	}
	if err != nil {
		metrics.RecordStoreError("hand")
		return model.Right, fmt.Errorf("query hand: %w", err)
	}
	return model.ParseHandedness(hand)
}

// Fixtures lists the fixtures a batter appears in, sorted.
func (s *SQLStore) Fixtures(ctx context.Context, batter string) ([]string, error) {
	defer observe("fixtures", time.Now())
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		s.dialect.rebind(`SELECT DISTINCT fixture_id FROM deliveries WHERE batter = ? ORDER BY fixture_id`), batter)
	if err != nil {
		metrics.RecordStoreError("fixtures")
		return nil, fmt.Errorf("query fixtures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			metrics.RecordStoreError("fixtures")
			return nil, fmt.Errorf("scan fixture: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Deliveries returns the filtered deliveries in match order.
func (s *SQLStore) Deliveries(ctx context.Context, f Filter) ([]model.Delivery, error) {
	query, args, err := s.buildDeliveriesQuery(f)
	if err != nil {
		return nil, err
	}
	defer observe("deliveries", time.Now())
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordStoreError("deliveries")
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.Delivery{}
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			metrics.RecordStoreError("deliveries")
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreError("deliveries")
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}
	return out, nil
}

func (s *SQLStore) buildDeliveriesQuery(f Filter) (string, []any, error) {
	if strings.TrimSpace(f.Batter) == "" {
		return "", nil, fmt.Errorf("%w: batter is required", ErrInvalidFilter)
	}
	if f.Innings < 0 || f.OverFrom < 0 || f.OverTo < 0 {
		return "", nil, fmt.Errorf("%w: negative bound", ErrInvalidFilter)
	}
	if f.OverTo > 0 && f.OverFrom > f.OverTo {
		return "", nil, fmt.Errorf("%w: over_from %d after over_to %d", ErrInvalidFilter, f.OverFrom, f.OverTo)
	}

	var b strings.Builder
	b.WriteString("SELECT " + deliveryColumns + " FROM deliveries WHERE batter = ?")
	args := []any{f.Batter}
	if len(f.FixtureIDs) > 0 {
		b.WriteString(" AND fixture_id IN (?" + strings.Repeat(", ?", len(f.FixtureIDs)-1) + ")")
		for _, id := range f.FixtureIDs {
			args = append(args, id)
		}
	}
	if f.Innings > 0 {
		b.WriteString(" AND innings = ?")
		args = append(args, f.Innings)
	}
	if f.OverFrom > 0 {
		b.WriteString(" AND over_number >= ?")
		args = append(args, f.OverFrom)
	}
	if f.OverTo > 0 {
		b.WriteString(" AND over_number <= ?")
		args = append(args, f.OverTo)
	}
	b.WriteString(" ORDER BY fixture_id, innings, over_number, ball_number, id")
	return s.dialect.rebind(b.String()), args, nil
}

// Count returns the number of stored deliveries, or 0 on error.
func (s *SQLStore) Count(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deliveries`).Scan(&n); err != nil {
		metrics.RecordStoreError("count")
		return 0
	}
	return n
}

// Close releases the connection pool.
func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDelivery(row scanner) (model.Delivery, error) {
	var (
		d         model.Delivery
		hand      string
		angle     sql.NullFloat64
		magnitude sql.NullFloat64
		dismissal sql.NullString
		isOut     sql.NullBool
	)
	if err := row.Scan(&d.ID, &d.FixtureID, &d.Innings, &d.Over, &d.Ball, &d.Batter, &hand, &d.Bowler,
		&d.RunsScored, &angle, &magnitude, &dismissal, &isOut); err != nil {
		return d, fmt.Errorf("scan delivery: %w", err)
	}
	h, err := model.ParseHandedness(hand)
	if err != nil {
		return d, fmt.Errorf("delivery %d: %w", d.ID, err)
	}
	d.Hand = h
	if angle.Valid {
		d.ShotAngle = model.Float(angle.Float64)
	}
	if magnitude.Valid {
		d.ShotMagnitude = model.Float(magnitude.Float64)
	}
	if dismissal.Valid {
		d.DismissalType = model.String(dismissal.String)
	}
	if isOut.Valid {
		d.IsOut = model.Bool(isOut.Bool)
	}
	return d, nil
}

// observe records the latency of one store operation.
func observe(op string, start time.Time) {
	metrics.RecordStoreQueryLatency(op, float64(time.Since(start).Milliseconds()))
}
