// Package service composes the batter page: it loads deliveries from the
// store, builds the three wagon wheels and the info box, and implements the
// dependencies required by the HTTP adapters.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/crease/internal/adapters/repository"
	"github.com/okian/crease/internal/adapters/render"
	"github.com/okian/crease/internal/domain/batting"
	"github.com/okian/crease/internal/domain/geometry"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/internal/domain/wheel"
	"github.com/okian/crease/pkg/logger"
	"github.com/okian/crease/pkg/metrics"
)

// Warnings shown in place of the wheels.
const (
	WarnNoData   = "No data available for wagon wheel visualization."
	WarnNoAngles = "No valid shot angle data for visualization."
)

// Service implements the API and site dependencies.
type Service struct {
	mu sync.RWMutex

	store    repository.Store
	renderer *render.SVGRenderer

	// Configuration
	driver            string
	dsn               string
	boundaryReference float64
	wheelSize         int
	scoringWheelSize  int
	strategies        []geometry.OutsStrategy

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects an already opened store. Start then skips Open but
// still runs Migrate, and Stop closes it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStoreDSN sets the driver and DSN opened by Start.
func WithStoreDSN(driver, dsn string) Option {
	return func(s *Service) {
		if driver != "" && dsn != "" {
			s.driver = driver
			s.dsn = dsn
		}
	}
}

// WithBoundaryReference sets the shot distance drawn at the boundary circle.
func WithBoundaryReference(distance float64) Option {
	return func(s *Service) {
		if distance > 0 {
			s.boundaryReference = distance
		}
	}
}

// WithWheelSizes sets the SVG canvas sizes for the standard and scoring-areas wheels.
func WithWheelSizes(size, scoringSize int) Option {
	return func(s *Service) {
		if size > 0 {
			s.wheelSize = size
		}
		if scoringSize > 0 {
			s.scoringWheelSize = scoringSize
		}
	}
}

// WithOutsStrategies replaces the dismissal counting order. The default is
// geometry.DefaultOutsStrategies.
func WithOutsStrategies(strategies ...geometry.OutsStrategy) Option {
	return func(s *Service) {
		if len(strategies) > 0 {
			s.strategies = strategies
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		driver:            repository.DriverSQLite,
		dsn:               ":memory:",
		boundaryReference: geometry.DefaultBoundaryReference,
		wheelSize:         600,
		scoringWheelSize:  800,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens and migrates the store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "starting wagon wheel service...")

	if s.store == nil {
		store, err := repository.Open(ctx, s.driver, s.dsn)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
		s.logger.Info(ctx, "store opened", logger.String("driver", s.driver))
	}
	if err := s.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}

	s.renderer = render.NewSVGRenderer(
		render.WithSize(s.wheelSize),
		render.WithScoringSize(s.scoringWheelSize),
	)

	s.started = true
	s.logger.Info(ctx, "wagon wheel service started",
		logger.Float64("boundaryReference", s.boundaryReference),
		logger.Int("wheelSize", s.wheelSize),
		logger.Int("scoringWheelSize", s.scoringWheelSize),
	)
	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping wagon wheel service...")
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
	}
	s.store = nil
	s.started = false
	s.logger.Info(context.Background(), "wagon wheel service stopped")
}

func (s *Service) ready() (repository.Store, *render.SVGRenderer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.renderer, nil
}

// Import appends deliveries to the store.
func (s *Service) Import(ctx context.Context, deliveries []model.Delivery) (int, error) {
	store, _, err := s.ready()
	if err != nil {
		return 0, err
	}
	n, err := store.Insert(ctx, deliveries)
	if err != nil {
		return 0, err
	}
	metrics.UpdateDeliveriesTotal(store.Count(ctx))
	return n, nil
}

// Batters lists selectable batters.
func (s *Service) Batters(ctx context.Context) ([]types.Batter, error) {
	store, _, err := s.ready()
	if err != nil {
		return nil, err
	}
	return store.Batters(ctx)
}

// Summary returns the info box for the filtered deliveries.
func (s *Service) Summary(ctx context.Context, f repository.Filter) (types.BatterSummary, error) {
	store, _, err := s.ready()
	if err != nil {
		return types.BatterSummary{}, err
	}
	hand, err := store.Hand(ctx, f.Batter)
	if err != nil {
		return types.BatterSummary{}, err
	}
	fixtures, err := store.Fixtures(ctx, f.Batter)
	if err != nil {
		return types.BatterSummary{}, err
	}
	deliveries, err := store.Deliveries(ctx, f)
	if err != nil {
		return types.BatterSummary{}, err
	}
	metrics.RecordSummary()
	return types.BatterSummary{
		Batter:   f.Batter,
		Hand:     hand,
		Fixtures: fixtures,
		Summary:  batting.Summarize(deliveries, s.strategies...),
	}, nil
}

// Progression summarises the filtered deliveries per over, per ball within
// the over, and per ball faced inside window.
func (s *Service) Progression(ctx context.Context, f repository.Filter, window batting.Window) (types.Progression, error) {
	store, _, err := s.ready()
	if err != nil {
		return types.Progression{}, err
	}
	hand, err := store.Hand(ctx, f.Batter)
	if err != nil {
		return types.Progression{}, err
	}
	deliveries, err := store.Deliveries(ctx, f)
	if err != nil {
		return types.Progression{}, err
	}
	window = window.Normalize()
	metrics.RecordProgression()
	return types.Progression{
		Batter:     f.Batter,
		Hand:       hand,
		Window:     window,
		Overs:      batting.ByOver(deliveries, s.strategies...),
		Balls:      batting.ByBall(deliveries, s.strategies...),
		BallsFaced: batting.ByBallFaced(deliveries, window.From, window.To, s.strategies...),
	}, nil
}

// shots is the angle-tracked subset of a filtered delivery set.
type shots struct {
	hand     model.Handedness
	tracked  []model.Delivery
	skipped  int
	warnings []string
}

func (s *Service) loadShots(ctx context.Context, store repository.Store, f repository.Filter) (shots, error) {
	hand, err := store.Hand(ctx, f.Batter)
	if err != nil {
		return shots{}, err
	}
	deliveries, err := store.Deliveries(ctx, f)
	if err != nil {
		return shots{}, err
	}
	out := shots{hand: hand}
	if len(deliveries) == 0 {
		out.warnings = []string{WarnNoData}
		metrics.RecordPageWarning("no_data")
		return out, nil
	}

	out.tracked = make([]model.Delivery, 0, len(deliveries))
	for i := range deliveries {
		if deliveries[i].HasShotAngle() {
			out.tracked = append(out.tracked, deliveries[i])
		}
	}
	out.skipped = len(deliveries) - len(out.tracked)
	if len(out.tracked) == 0 {
		out.warnings = []string{WarnNoAngles}
		metrics.RecordPageWarning("no_angles")
		return out, nil
	}
	metrics.RecordSkippedRows(out.skipped)
	return out, nil
}

func (s *Service) figure(kind wheel.Kind, sh shots) (wheel.Figure, []geometry.SectorStats) {
	switch kind {
	case wheel.KindBoundaries:
		return wheel.Boundaries(sh.tracked, sh.hand), nil
	case wheel.KindCaughtOut:
		return wheel.CaughtOut(sh.tracked, sh.hand, s.boundaryReference), nil
	default:
		return wheel.ScoringAreas(sh.tracked, sh.hand, s.strategies...)
	}
}

func (s *Service) render(ctx context.Context, r *render.SVGRenderer, fig wheel.Figure) ([]byte, error) {
	start := time.Now()
	b, err := r.Bytes(fig)
	if err != nil {
		metrics.RecordWheelRenderError(string(fig.Kind))
		s.logger.Error(ctx, "render wheel failed", logger.String("kind", string(fig.Kind)), logger.Error(err))
		return nil, err
	}
	metrics.RecordWheelRender(string(fig.Kind), float64(time.Since(start).Microseconds())/1000)
	return b, nil
}

// Wheels builds and renders all three wheels. An empty delivery set, or one
// with no shot angles, yields a warning instead of wheels.
func (s *Service) Wheels(ctx context.Context, f repository.Filter) (types.WheelSet, error) {
	store, r, err := s.ready()
	if err != nil {
		return types.WheelSet{}, err
	}
	sh, err := s.loadShots(ctx, store, f)
	if err != nil {
		return types.WheelSet{}, err
	}
	ws := types.WheelSet{
		Batter:      f.Batter,
		Hand:        sh.hand,
		Warnings:    []string{},
		Wheels:      []types.Wheel{},
		Sectors:     []geometry.SectorStats{},
		SkippedRows: sh.skipped,
	}
	if len(sh.warnings) > 0 {
		ws.Warnings = sh.warnings
		return ws, nil
	}

	for _, kind := range wheel.Kinds() {
		fig, sectors := s.figure(kind, sh)
		b, err := s.render(ctx, r, fig)
		if err != nil {
			return types.WheelSet{}, err
		}
		if sectors != nil {
			ws.Sectors = sectors
		}
		ws.Wheels = append(ws.Wheels, types.Wheel{Kind: kind, Figure: fig, SVG: string(b)})
	}
	s.logger.Debug(ctx, "wheels rendered",
		logger.String("batter", f.Batter),
		logger.Int("tracked", len(sh.tracked)),
		logger.Int("skipped", sh.skipped),
	)
	return ws, nil
}

// Wheel renders a single wheel as SVG. It returns wheel.ErrNoData wrapping
// the warning text when Wheels would have shown a warning.
func (s *Service) Wheel(ctx context.Context, f repository.Filter, kind wheel.Kind) ([]byte, error) {
	store, r, err := s.ready()
	if err != nil {
		return nil, err
	}
	sh, err := s.loadShots(ctx, store, f)
	if err != nil {
		return nil, err
	}
	if len(sh.warnings) > 0 {
		return nil, fmt.Errorf("%w: %s", wheel.ErrNoData, sh.warnings[0])
	}
	fig, _ := s.figure(kind, sh)
	return s.render(ctx, r, fig)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"driver":            s.driver,
		"boundaryReference": s.boundaryReference,
		"wheelSize":         s.wheelSize,
		"scoringWheelSize":  s.scoringWheelSize,
	}

	if s.started {
		ctx := context.Background()
		deliveries := s.store.Count(ctx)
		stats["deliveries"] = deliveries
		metrics.UpdateDeliveriesTotal(deliveries)

		if batters, err := s.store.Batters(ctx); err == nil {
			stats["batters"] = len(batters)
			metrics.UpdateBattersTotal(len(batters))
		}
	}
	return stats
}
