package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/crease/internal/app"
	repository "github.com/okian/crease/internal/adapters/repository"
	"github.com/okian/crease/internal/domain/batting"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/wheel"
	. "github.com/smartystreets/goconvey/convey"
)

func seed() []model.Delivery {
	return []model.Delivery{
		{FixtureID: "m1", Innings: 1, Over: 1, Ball: 1, Batter: "Smith", Hand: model.Right,
			RunsScored: 4, ShotAngle: model.Float(30), ShotMagnitude: model.Float(160)},
		{FixtureID: "m1", Innings: 1, Over: 1, Ball: 2, Batter: "Smith", Hand: model.Right,
			RunsScored: 6, ShotAngle: model.Float(100), ShotMagnitude: model.Float(200)},
		{FixtureID: "m1", Innings: 1, Over: 1, Ball: 3, Batter: "Smith", Hand: model.Right,
			RunsScored: 0, ShotAngle: model.Float(200), ShotMagnitude: model.Float(40),
			DismissalType: model.String("Caught"), IsOut: model.Bool(true)},
		{FixtureID: "m1", Innings: 1, Over: 2, Ball: 1, Batter: "Smith", Hand: model.Right,
			RunsScored: 1},
		{FixtureID: "m1", Innings: 1, Over: 2, Ball: 2, Batter: "Smith", Hand: model.Right,
			RunsScored: 2, ShotAngle: model.Float(10)},
		{FixtureID: "m2", Innings: 1, Over: 5, Ball: 1, Batter: "Jones", Hand: model.Left,
			RunsScored: 1},
	}
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a started service with seeded deliveries", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc := service.New(service.WithStoreDSN(repository.DriverSQLite, ":memory:"))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		n, err := svc.Import(ctx, seed())
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 6)

		Convey("When listing batters", func() {
			batters, err := svc.Batters(ctx)

			Convey("Then both are returned", func() {
				So(err, ShouldBeNil)
				So(batters, ShouldHaveLength, 2)
				So(svc.GetStats()["deliveries"], ShouldEqual, 6)
			})
		})

		Convey("When summarizing a batter", func() {
			sum, err := svc.Summary(ctx, repository.Filter{Batter: "Smith"})

			Convey("Then every delivery counts, tracked or not", func() {
				So(err, ShouldBeNil)
				So(sum.Hand, ShouldEqual, model.Right)
				So(sum.Fixtures, ShouldResemble, []string{"m1"})
				So(sum.Runs, ShouldEqual, 13)
				So(sum.Balls, ShouldEqual, 5)
				So(sum.Outs, ShouldEqual, 1)
				So(*sum.Average, ShouldEqual, 13)
				So(sum.StrikeRate, ShouldAlmostEqual, 260, 1e-9)
				So(sum.TrackedShots, ShouldEqual, 4)
				So(sum.CaughtOuts, ShouldEqual, 1)
			})
		})

		Convey("When building the innings progression", func() {
			p, err := svc.Progression(ctx, repository.Filter{Batter: "Smith"}, batting.Window{From: 2, To: 3})

			Convey("Then overs and balls are summarised in order", func() {
				So(err, ShouldBeNil)
				So(p.Hand, ShouldEqual, model.Right)
				So(p.Overs, ShouldHaveLength, 2)
				So(p.Overs[0].Key, ShouldEqual, 1)
				So(p.Overs[0].Runs, ShouldEqual, 10)
				So(p.Overs[0].Outs, ShouldEqual, 1)
				So(p.Overs[1].Runs, ShouldEqual, 3)
				So(p.Overs[1].Average, ShouldBeNil)
				So(p.Balls, ShouldHaveLength, 3)
				So(p.Balls[0].Runs, ShouldEqual, 5)
				So(p.Balls[1].Runs, ShouldEqual, 8)
			})

			Convey("Then only balls faced inside the window are kept", func() {
				So(p.Window, ShouldResemble, batting.Window{From: 2, To: 3})
				So(p.BallsFaced, ShouldHaveLength, 2)
				So(p.BallsFaced[0].Key, ShouldEqual, 2)
				So(p.BallsFaced[0].Runs, ShouldEqual, 6)
				So(p.BallsFaced[1].Key, ShouldEqual, 3)
				So(p.BallsFaced[1].Outs, ShouldEqual, 1)
			})
		})

		Convey("When building the wheels", func() {
			ws, err := svc.Wheels(ctx, repository.Filter{Batter: "Smith"})

			Convey("Then rows without an angle are dropped first", func() {
				So(err, ShouldBeNil)
				So(ws.Warnings, ShouldBeEmpty)
				So(ws.SkippedRows, ShouldEqual, 1)
				So(ws.Wheels, ShouldHaveLength, 3)
			})

			Convey("Then each wheel carries its figure and SVG", func() {
				b, ok := ws.Wheel(wheel.KindBoundaries)
				So(ok, ShouldBeTrue)
				So(b.Figure.Legend[0].Text, ShouldEqual, "4s (1)")
				So(b.Figure.Legend[1].Text, ShouldEqual, "6s (1)")
				So(b.SVG, ShouldContainSubstring, "<svg")

				c, ok := ws.Wheel(wheel.KindCaughtOut)
				So(ok, ShouldBeTrue)
				So(c.Figure.Title, ShouldEqual, "Total: 1 dismissals")
				So(c.Figure.Rays, ShouldHaveLength, 1)
			})

			Convey("Then sector stats use the tracked run total", func() {
				So(ws.Sectors, ShouldHaveLength, 8)
				So(ws.Sectors[0].Balls, ShouldEqual, 2)
				So(ws.Sectors[0].Runs, ShouldEqual, 6)
				So(ws.Sectors[0].PercentOfTotalRuns, ShouldEqual, 50)
				So(ws.Sectors[2].Runs, ShouldEqual, 6)
				So(ws.Sectors[4].Outs, ShouldEqual, 1)
				So(*ws.Sectors[4].Average, ShouldEqual, 0)
			})
		})

		Convey("When the filter matches nothing", func() {
			ws, err := svc.Wheels(ctx, repository.Filter{Batter: "Smith", FixtureIDs: []string{"m9"}})

			Convey("Then the no-data warning is shown instead of wheels", func() {
				So(err, ShouldBeNil)
				So(ws.Warnings, ShouldResemble, []string{service.WarnNoData})
				So(ws.Wheels, ShouldBeEmpty)
			})
		})

		Convey("When no delivery carries a shot angle", func() {
			ws, err := svc.Wheels(ctx, repository.Filter{Batter: "Jones"})
			_, svgErr := svc.Wheel(ctx, repository.Filter{Batter: "Jones"}, wheel.KindBoundaries)

			Convey("Then the no-angle warning is shown instead of wheels", func() {
				So(err, ShouldBeNil)
				So(ws.Hand, ShouldEqual, model.Left)
				So(ws.Warnings, ShouldResemble, []string{service.WarnNoAngles})
				So(ws.Wheels, ShouldBeEmpty)
				So(errors.Is(svgErr, wheel.ErrNoData), ShouldBeTrue)
			})
		})

		Convey("When rendering a single wheel", func() {
			b, err := svc.Wheel(ctx, repository.Filter{Batter: "Smith"}, wheel.KindScoringAreas)

			Convey("Then an SVG document is returned", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, "<svg")
				So(string(b), ShouldContainSubstring, "50.0% of runs")
			})
		})

		Convey("When the batter is unknown", func() {
			_, errWheels := svc.Wheels(ctx, repository.Filter{Batter: "Nobody"})
			_, errSummary := svc.Summary(ctx, repository.Filter{Batter: "Nobody"})
			_, errProgression := svc.Progression(ctx, repository.Filter{Batter: "Nobody"}, batting.Window{})

			Convey("Then ErrNotFound is surfaced", func() {
				So(errors.Is(errWheels, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(errSummary, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(errProgression, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}
