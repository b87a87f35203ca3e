package ingest_test

import (
	"context"
	"testing"

	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/ingest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	initLogger()

	Convey("Given a seeded generator", t, func() {
		ctx := context.Background()
		gen := ingest.NewGenerator(
			ingest.WithFixtures(3),
			ingest.WithOvers(4),
			ingest.WithWorkers(2),
			ingest.WithSeed(42),
		)

		ds, err := gen.Generate(ctx)
		So(err, ShouldBeNil)

		Convey("Then every ball of every fixture is produced in order", func() {
			So(ds, ShouldHaveLength, 3*4*6)

			fixtures := map[string]bool{}
			for i, d := range ds {
				fixtures[d.FixtureID] = true
				So(d.Innings, ShouldEqual, 1)
				So(d.Over, ShouldEqual, (i%24)/6+1)
				So(d.Ball, ShouldEqual, i%6+1)
			}
			So(fixtures, ShouldHaveLength, 3)
		})

		Convey("Then rows are plausible", func() {
			for _, d := range ds {
				So(d.Batter, ShouldNotBeEmpty)
				So(d.Hand.Valid(), ShouldBeTrue)
				So(d.RunsScored, ShouldBeIn, []int{0, 1, 2, 3, 4, 6})
				if d.ShotAngle != nil {
					So(*d.ShotAngle, ShouldBeBetweenOrEqual, 0.0, 360.0)
					So(d.ShotMagnitude, ShouldNotBeNil)
				}
				if d.IsOut != nil && *d.IsOut {
					So(d.DismissalType, ShouldNotBeNil)
					So(d.RunsScored, ShouldEqual, 0)
				}
			}
		})

		Convey("Then the same seed reproduces the deliveries", func() {
			again, err := ingest.NewGenerator(
				ingest.WithFixtures(3),
				ingest.WithOvers(4),
				ingest.WithWorkers(3),
				ingest.WithSeed(42),
			).Generate(ctx)
			So(err, ShouldBeNil)
			for i := range ds {
				again[i].FixtureID = ds[i].FixtureID
			}
			So(again, ShouldResemble, ds)
		})
	})

	Convey("Given a custom lineup", t, func() {
		gen := ingest.NewGenerator(
			ingest.WithFixtures(1),
			ingest.WithOvers(2),
			ingest.WithProfiles(ingest.Profile{Name: "Solo", Hand: model.Left}),
		)
		ds, err := gen.Generate(context.Background())

		Convey("Then only that batter faces", func() {
			So(err, ShouldBeNil)
			for _, d := range ds {
				So(d.Batter, ShouldEqual, "Solo")
				So(d.Hand, ShouldEqual, model.Left)
			}
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ingest.NewGenerator(ingest.WithFixtures(50)).Generate(ctx)

		Convey("Then generation stops with the context error", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
