package ingest

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/pkg/logger"
)

// Defaults for synthetic data.
const (
	defaultFixtures = 10
	defaultOvers    = 20
	defaultWorkers  = 4
	ballsPerOver    = 6
)

// Probabilities used when simulating a delivery.
const (
	dismissalChance   = 0.04
	untrackedChance   = 0.05
	leftAloneChance   = 0.5 // of dot balls, no shot played
	boundaryReference = 167.0
)

// Profile is a generated batter.
type Profile struct {
	Name string
	Hand model.Handedness
}

// DefaultProfiles is the lineup used when none is configured.
var DefaultProfiles = []Profile{
	{Name: "A. Opener", Hand: model.Right},
	{Name: "B. Anchor", Hand: model.Left},
	{Name: "C. Finisher", Hand: model.Right},
	{Name: "D. Sweeper", Hand: model.Left},
}

type runsWeight struct {
	runs   int
	weight float64
}

var runsDistribution = []runsWeight{
	{0, 0.40}, {1, 0.30}, {2, 0.10}, {3, 0.02}, {4, 0.12}, {6, 0.06},
}

var dismissals = []runsWeight{
	// runs doubles as an index into dismissalTypes
	{0, 0.55}, {1, 0.2}, {2, 0.15}, {3, 0.1},
}

var dismissalTypes = []string{"Caught", "Bowled", "LBW", "Run Out"}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithFixtures sets the number of simulated matches.
func WithFixtures(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.fixtures = n
		}
	}
}

// WithOvers sets the overs faced per fixture.
func WithOvers(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.overs = n
		}
	}
}

// WithWorkers sets the number of goroutines generating fixtures.
func WithWorkers(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithProfiles replaces the batting lineup.
func WithProfiles(p ...Profile) GeneratorOption {
	return func(g *Generator) {
		if len(p) > 0 {
			g.profiles = p
		}
	}
}

// WithSeed makes the generated deliveries reproducible. Fixture ids are
// always random.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) { g.seed = seed }
}

// Generator simulates ball-by-ball data for local development.
type Generator struct {
	fixtures int
	overs    int
	workers  int
	profiles []Profile
	seed     uint64
}

// NewGenerator returns a Generator with defaults applied.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		fixtures: defaultFixtures,
		overs:    defaultOvers,
		workers:  defaultWorkers,
		profiles: DefaultProfiles,
		seed:     rand.Uint64(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds every fixture concurrently and returns the deliveries in
// fixture order.
func (g *Generator) Generate(ctx context.Context) ([]model.Delivery, error) {
	logger.Get().Info(ctx, "generating deliveries",
		logger.Int("fixtures", g.fixtures),
		logger.Int("overs", g.overs),
		logger.Int("batters", len(g.profiles)))

	fixtureIDs := make([]string, g.fixtures)
	for i := range fixtureIDs {
		fixtureIDs[i] = uuid.New().String()
	}

	type fixtureResult struct {
		index      int
		deliveries []model.Delivery
		err        error
	}
	results := make(chan fixtureResult, g.fixtures)
	jobs := make(chan int)

	workers := min(g.workers, g.fixtures)
	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results <- fixtureResult{index: i, err: err}
					continue
				}
				results <- fixtureResult{index: i, deliveries: g.fixture(i, fixtureIDs[i])}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for i := 0; i < g.fixtures; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	perFixture := make([][]model.Delivery, g.fixtures)
	for received := 0; received < g.fixtures; received++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case r := <-results:
			if r.err != nil {
				return nil, fmt.Errorf("generate fixture %d: %w", r.index, r.err)
			}
			perFixture[r.index] = r.deliveries
		}
	}

	out := make([]model.Delivery, 0, g.fixtures*g.overs*ballsPerOver)
	for _, ds := range perFixture {
		out = append(out, ds...)
	}
	logger.Get().Info(ctx, "generated deliveries", logger.Int("count", len(out)))
	return out, nil
}

// fixture simulates one innings. Each fixture has its own random stream so
// the output does not depend on worker scheduling.
func (g *Generator) fixture(index int, id string) []model.Delivery {
	rng := rand.New(rand.NewPCG(g.seed, uint64(index)))
	out := make([]model.Delivery, 0, g.overs*ballsPerOver)
	striker := 0
	for over := 1; over <= g.overs; over++ {
		bowler := fmt.Sprintf("Bowler %d", (over-1)%5+1)
		for ball := 1; ball <= ballsPerOver; ball++ {
			p := g.profiles[striker%len(g.profiles)]
			d := simulate(rng)
			d.FixtureID = id
			d.Innings = 1
			d.Over = over
			d.Ball = ball
			d.Batter = p.Name
			d.Hand = p.Hand
			d.Bowler = bowler
			out = append(out, d)

			if (d.IsOut != nil && *d.IsOut) || d.RunsScored%2 == 1 {
				striker++
			}
		}
		striker++
	}
	return out
}

func simulate(rng *rand.Rand) model.Delivery {
	var d model.Delivery
	if rng.Float64() < dismissalChance {
		kind := dismissalTypes[pick(rng, dismissals)]
		d.DismissalType = model.String(kind)
		d.IsOut = model.Bool(true)
		if kind == "Caught" {
			d.ShotAngle = model.Float(rng.Float64() * 360)
			d.ShotMagnitude = model.Float(20 + rng.Float64()*60)
		}
		return d
	}

	d.IsOut = model.Bool(false)
	d.RunsScored = pick(rng, runsDistribution)
	if d.RunsScored == 0 && rng.Float64() < leftAloneChance {
		return d
	}
	if rng.Float64() < untrackedChance {
		return d
	}
	d.ShotAngle = model.Float(rng.Float64() * 360)
	d.ShotMagnitude = model.Float(magnitude(rng, d.RunsScored))
	return d
}

// pick returns the runs value of a weighted choice.
func pick(rng *rand.Rand, table []runsWeight) int {
	x := rng.Float64()
	var acc float64
	for _, w := range table {
		acc += w.weight
		if x < acc {
			return w.runs
		}
	}
	return table[len(table)-1].runs
}

func magnitude(rng *rand.Rand, runs int) float64 {
	switch runs {
	case 0:
		return 5 + rng.Float64()*25
	case 1:
		return 20 + rng.Float64()*40
	case 2, 3:
		return 50 + rng.Float64()*60
	case 4:
		return boundaryReference - 20 + rng.Float64()*20
	default:
		return boundaryReference + rng.Float64()*40
	}
}
