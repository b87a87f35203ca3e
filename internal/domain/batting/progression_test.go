package batting_test

import (
	"testing"

	"github.com/okian/crease/internal/domain/batting"
	"github.com/okian/crease/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func delivery(fixture string, over, ball, runs int, out bool) model.Delivery {
	return model.Delivery{
		FixtureID:  fixture,
		Innings:    1,
		Over:       over,
		Ball:       ball,
		Batter:     "A Batter",
		RunsScored: runs,
		IsOut:      model.Bool(out),
	}
}

func TestByOver(t *testing.T) {
	Convey("Given deliveries spread over two overs, stored out of order", t, func() {
		ds := []model.Delivery{
			delivery("m1", 3, 1, 4, false),
			delivery("m1", 3, 2, 0, true),
			delivery("m1", 1, 1, 1, false),
			delivery("m1", 1, 2, 6, false),
			delivery("m1", 1, 3, 0, false),
		}

		Convey("When grouping by over", func() {
			groups := batting.ByOver(ds)

			Convey("Then there is one row per over in ascending order", func() {
				So(len(groups), ShouldEqual, 2)
				So(groups[0].Key, ShouldEqual, 1)
				So(groups[1].Key, ShouldEqual, 3)
			})

			Convey("Then each row carries the summary of its own deliveries", func() {
				So(groups[0].Runs, ShouldEqual, 7)
				So(groups[0].Balls, ShouldEqual, 3)
				So(groups[0].Outs, ShouldEqual, 0)
				So(groups[0].Average, ShouldBeNil)
				So(groups[0].StrikeRate, ShouldAlmostEqual, 700.0/3, 1e-9)
				So(groups[1].Outs, ShouldEqual, 1)
				So(*groups[1].Average, ShouldEqual, 4.0)
				So(groups[1].DotBallPct, ShouldAlmostEqual, 50.0, 1e-9)
			})
		})
	})

	Convey("Given no deliveries", t, func() {
		Convey("Then grouping yields an empty, non-nil table", func() {
			groups := batting.ByOver(nil)
			So(groups, ShouldNotBeNil)
			So(groups, ShouldBeEmpty)
		})
	})
}

func TestByBall(t *testing.T) {
	Convey("Given an over with an extra seventh ball and a zero ball number", t, func() {
		ds := []model.Delivery{
			delivery("m1", 0, 1, 1, false),
			delivery("m1", 0, 2, 4, false),
			delivery("m1", 1, 2, 2, false),
			delivery("m1", 0, 7, 1, false),
			delivery("m1", 0, 0, 1, false),
		}

		Convey("When grouping by ball", func() {
			groups := batting.ByBall(ds)

			Convey("Then only balls one to six are kept", func() {
				So(len(groups), ShouldEqual, 2)
				So(groups[0].Key, ShouldEqual, 1)
				So(groups[1].Key, ShouldEqual, 2)
				So(groups[1].Runs, ShouldEqual, 6)
				So(groups[1].Balls, ShouldEqual, 2)
				So(groups[1].BoundaryPct, ShouldAlmostEqual, 50.0, 1e-9)
			})
		})
	})
}

func TestByBallFaced(t *testing.T) {
	Convey("Given two innings of three balls each", t, func() {
		ds := []model.Delivery{
			delivery("m1", 0, 1, 0, false),
			delivery("m1", 0, 2, 4, false),
			delivery("m1", 0, 3, 1, true),
			delivery("m2", 5, 1, 2, false),
			delivery("m2", 5, 2, 6, false),
			delivery("m2", 5, 3, 0, false),
		}

		Convey("When grouping the first two balls faced", func() {
			groups := batting.ByBallFaced(ds, 1, 2)

			Convey("Then the n-th ball of each innings shares a row", func() {
				So(len(groups), ShouldEqual, 2)
				So(groups[0].Key, ShouldEqual, 1)
				So(groups[0].Balls, ShouldEqual, 2)
				So(groups[0].Runs, ShouldEqual, 2)
				So(groups[0].DotBallPct, ShouldAlmostEqual, 50.0, 1e-9)
				So(groups[1].Key, ShouldEqual, 2)
				So(groups[1].Runs, ShouldEqual, 10)
				So(groups[1].BoundaryPct, ShouldAlmostEqual, 100.0, 1e-9)
			})
		})

		Convey("When the window starts past the shortest innings", func() {
			groups := batting.ByBallFaced(ds, 4, 10)

			Convey("Then there are no rows", func() {
				So(groups, ShouldBeEmpty)
			})
		})

		Convey("When the window covers the dismissal ball", func() {
			groups := batting.ByBallFaced(ds, 3, 3)

			Convey("Then the out is counted with the whole set's strategy", func() {
				So(len(groups), ShouldEqual, 1)
				So(groups[0].Outs, ShouldEqual, 1)
				So(*groups[0].Average, ShouldEqual, 1.0)
			})
		})
	})
}

func TestWindowNormalize(t *testing.T) {
	Convey("Given ball-faced windows from query input", t, func() {
		cases := []struct {
			in, want batting.Window
		}{
			{batting.Window{}, batting.DefaultWindow},
			{batting.Window{From: 0, To: 12}, batting.Window{From: 1, To: 12}},
			{batting.Window{From: 30}, batting.Window{From: 30, To: 30}},
			{batting.Window{From: 5}, batting.Window{From: 5, To: 20}},
			{batting.Window{From: 9, To: 3}, batting.Window{From: 3, To: 9}},
		}

		Convey("Then they normalise to a usable range", func() {
			for _, c := range cases {
				So(c.in.Normalize(), ShouldResemble, c.want)
			}
		})
	})
}
