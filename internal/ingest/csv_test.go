package ingest_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/ingest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReadCSV(t *testing.T) {
	Convey("Given a snake_case export", t, func() {
		in := `fixture_id,innings,over,ball,batter,batter_hand,bowler,runs_scored,shot_angle,shot_magnitude,dismissal_type,is_out
m1,1,1,1,Smith,Right,Khan,4,30.5,160,,false
m1,1,1,2,Smith,Right,Khan,0,,,Bowled,true
`
		ds, err := ingest.ReadCSV(strings.NewReader(in))

		Convey("Then every row is parsed", func() {
			So(err, ShouldBeNil)
			So(ds, ShouldHaveLength, 2)

			first := ds[0]
			So(first.FixtureID, ShouldEqual, "m1")
			So(first.Over, ShouldEqual, 1)
			So(first.Ball, ShouldEqual, 1)
			So(first.Batter, ShouldEqual, "Smith")
			So(first.Hand, ShouldEqual, model.Right)
			So(first.Bowler, ShouldEqual, "Khan")
			So(first.RunsScored, ShouldEqual, 4)
			So(*first.ShotAngle, ShouldEqual, 30.5)
			So(*first.ShotMagnitude, ShouldEqual, 160.0)
			So(first.DismissalType, ShouldBeNil)
			So(*first.IsOut, ShouldBeFalse)
		})

		Convey("Then empty cells leave optional fields unset", func() {
			So(err, ShouldBeNil)
			second := ds[1]
			So(second.HasShotAngle(), ShouldBeFalse)
			So(second.ShotMagnitude, ShouldBeNil)
			So(*second.DismissalType, ShouldEqual, "Bowled")
			So(*second.IsOut, ShouldBeTrue)
		})
	})

	Convey("Given a camelCase export with reordered and extra columns", t, func() {
		in := "\ufefffixtureId,batter,batterHand,runsScored,shotAngle,dismissalType,venue\n" +
			"x9,Patel,Left,6.0,nan,Caught,Lord's\n\n"
		ds, err := ingest.ReadCSV(strings.NewReader(in))

		Convey("Then aliases map onto the known columns", func() {
			So(err, ShouldBeNil)
			So(ds, ShouldHaveLength, 1)
			So(ds[0].FixtureID, ShouldEqual, "x9")
			So(ds[0].Hand, ShouldEqual, model.Left)
			So(ds[0].RunsScored, ShouldEqual, 6)
			So(ds[0].ShotAngle, ShouldBeNil)
			So(*ds[0].DismissalType, ShouldEqual, "Caught")
			So(ds[0].IsOut, ShouldBeNil)
		})
	})

	Convey("Given malformed input", t, func() {
		Convey("When the input is empty", func() {
			_, err := ingest.ReadCSV(strings.NewReader(""))
			So(errors.Is(err, ingest.ErrEmptyInput), ShouldBeTrue)
		})

		Convey("When a required column is missing", func() {
			_, err := ingest.ReadCSV(strings.NewReader("batter,runs_scored\nSmith,1\n"))
			So(errors.Is(err, ingest.ErrMissingColumn), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "batter_hand")
		})

		Convey("When a row has a bad value", func() {
			in := "batter,batter_hand,runs_scored\nSmith,Right,1\nSmith,Right,four\n"
			_, err := ingest.ReadCSV(strings.NewReader(in))
			So(errors.Is(err, ingest.ErrInvalidRow), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "line 3")
		})

		Convey("When runs are negative", func() {
			in := "batter,batter_hand,runs_scored\nSmith,Right,-1\n"
			_, err := ingest.ReadCSV(strings.NewReader(in))
			So(errors.Is(err, ingest.ErrInvalidRow), ShouldBeTrue)
		})

		Convey("When the hand is unknown", func() {
			in := "batter,batter_hand,runs_scored\nSmith,Both,1\n"
			_, err := ingest.ReadCSV(strings.NewReader(in))
			So(errors.Is(err, model.ErrUnknownHand), ShouldBeTrue)
		})
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given deliveries with and without tracking data", t, func() {
		ds := []model.Delivery{
			{FixtureID: "m1", Innings: 1, Over: 3, Ball: 4, Batter: "Smith", Hand: model.Left, Bowler: "Khan",
				RunsScored: 4, ShotAngle: model.Float(12.25), ShotMagnitude: model.Float(170),
				IsOut: model.Bool(false)},
			{FixtureID: "m1", Innings: 1, Over: 3, Ball: 5, Batter: "Smith", Hand: model.Left, Bowler: "Khan",
				DismissalType: model.String("LBW"), IsOut: model.Bool(true)},
		}

		var buf bytes.Buffer
		So(ingest.WriteCSV(&buf, ds), ShouldBeNil)

		Convey("Then the header and rows are written", func() {
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldHaveLength, 3)
			So(lines[0], ShouldEqual, strings.Join(ingest.Header, ","))
			So(lines[1], ShouldEqual, "m1,1,3,4,Smith,Left,Khan,4,12.25,170,,false")
			So(lines[2], ShouldEqual, "m1,1,3,5,Smith,Left,Khan,0,,,LBW,true")
		})

		Convey("Then ReadCSV reads the file back", func() {
			back, err := ingest.ReadCSV(&buf)
			So(err, ShouldBeNil)
			So(back, ShouldResemble, ds)
		})
	})
}
