package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/crease/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestHandedness(t *testing.T) {
	convey.Convey("Given handedness labels from ball-by-ball feeds", t, func() {
		convey.Convey("When parsing known labels", func() {
			for in, want := range map[string]model.Handedness{
				"Right": model.Right, "right": model.Right, " RHB ": model.Right, "R": model.Right,
				"Right-Handed": model.Right,
				"Left": model.Left, "LHB": model.Left, "l": model.Left, "left-handed": model.Left,
			} {
				got, err := model.ParseHandedness(in)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, want)
			}
		})

		convey.Convey("When parsing an unknown label", func() {
			_, err := model.ParseHandedness("switch")
			convey.So(errors.Is(err, model.ErrUnknownHand), convey.ShouldBeTrue)
		})

		convey.Convey("When formatting", func() {
			convey.So(model.Right.String(), convey.ShouldEqual, "Right")
			convey.So(model.Left.String(), convey.ShouldEqual, "Left")
			convey.So(model.Handedness(7).String(), convey.ShouldEqual, "Handedness(7)")
			convey.So(model.Handedness(7).Valid(), convey.ShouldBeFalse)
		})

		convey.Convey("When used as text", func() {
			b, err := model.Left.MarshalText()
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, "Left")

			var h model.Handedness
			convey.So(h.UnmarshalText([]byte("RHB")), convey.ShouldBeNil)
			convey.So(h, convey.ShouldEqual, model.Right)

			_, err = model.Handedness(-1).MarshalText()
			convey.So(errors.Is(err, model.ErrUnknownHand), convey.ShouldBeTrue)
			convey.So(h.UnmarshalText([]byte("?")), convey.ShouldNotBeNil)
		})
	})
}

func TestDelivery(t *testing.T) {
	convey.Convey("Given deliveries with optional tracking fields", t, func() {
		tracked := model.Delivery{RunsScored: 4, ShotAngle: model.Float(0)}
		untracked := model.Delivery{RunsScored: 1}

		convey.Convey("Then a zero angle still counts as tracked", func() {
			convey.So(tracked.HasShotAngle(), convey.ShouldBeTrue)
			convey.So(untracked.HasShotAngle(), convey.ShouldBeFalse)
		})

		convey.Convey("Then pointer helpers copy their argument", func() {
			v := 12.5
			p := model.Float(v)
			v = 0
			convey.So(*p, convey.ShouldEqual, 12.5)
			convey.So(*model.Bool(true), convey.ShouldBeTrue)
			convey.So(*model.String("Caught"), convey.ShouldEqual, "Caught")
		})
	})
}
