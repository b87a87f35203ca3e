package batting_test

import (
	"testing"

	"github.com/okian/crease/internal/domain/batting"
	"github.com/okian/crease/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSummarize(t *testing.T) {
	Convey("Given a short innings", t, func() {
		ds := []model.Delivery{
			{RunsScored: 0, IsOut: model.Bool(false)},
			{RunsScored: 4, ShotAngle: model.Float(30), IsOut: model.Bool(false)},
			{RunsScored: 6, ShotAngle: model.Float(200), IsOut: model.Bool(false)},
			{RunsScored: 1, ShotAngle: model.Float(100), IsOut: model.Bool(false)},
			{RunsScored: 0, ShotAngle: model.Float(120), IsOut: model.Bool(true), DismissalType: model.String("Caught")},
		}

		Convey("When summarising", func() {
			s := batting.Summarize(ds)

			Convey("Then the headline figures should be computed", func() {
				So(s.Runs, ShouldEqual, 11)
				So(s.Balls, ShouldEqual, 5)
				So(s.Outs, ShouldEqual, 1)
				So(*s.Average, ShouldEqual, 11.0)
				So(s.StrikeRate, ShouldAlmostEqual, 220.0, 1e-9)
				So(s.BoundaryPct, ShouldAlmostEqual, 40.0, 1e-9)
				So(s.DotBallPct, ShouldAlmostEqual, 40.0, 1e-9)
				So(s.TrackedShots, ShouldEqual, 4)
				So(s.CaughtOuts, ShouldEqual, 1)
			})
		})
	})

	Convey("Given no deliveries", t, func() {
		s := batting.Summarize(nil)

		Convey("Then every figure should be zero and the average undefined", func() {
			So(s.Balls, ShouldEqual, 0)
			So(s.Average, ShouldBeNil)
			So(s.StrikeRate, ShouldEqual, 0)
			So(s.BoundaryPct, ShouldEqual, 0)
		})
	})
}
