package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given a logger initialized with the text handler", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf)), ShouldBeNil)
		defer func() { So(Sync(), ShouldBeNil) }()

		Convey("When logging at info level", func() {
			Get().Info(context.Background(), "wheel rendered", String("kind", "boundaries"), Int("rays", 4))

			Convey("Then the record carries fields and a source location", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "wheel rendered")
				So(out, ShouldContainSubstring, "kind=boundaries")
				So(out, ShouldContainSubstring, "rays=4")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging below the current level", func() {
			Get().Debug(context.Background(), "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			Get().Debug(context.Background(), "visible", Bool("cached", false))

			Convey("Then debug records appear", func() {
				So(buf.String(), ShouldContainSubstring, "visible")
				So(buf.String(), ShouldContainSubstring, "cached=false")
			})
		})
	})
}

func TestLoggerJSON(t *testing.T) {
	Convey("Given a logger initialized with the json handler", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat("JSON"), WithWriter(&buf)), ShouldBeNil)

		Convey("When a named logger writes a record", func() {
			Named("store").Warn(context.Background(), "slow query", Duration("took", 2*time.Second))

			Convey("Then fields are grouped under the logger name", func() {
				var rec map[string]any
				So(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "slow query")
				So(rec["level"], ShouldEqual, "WARN")
				group, ok := rec["store"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(group, ShouldContainKey, "took")
				So(strings.HasPrefix(group["source"].(string), "logger_test.go"), ShouldBeTrue)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		So(Init(WithWriter(&bytes.Buffer{})), ShouldBeNil)

		Convey("Then known names are accepted", func() {
			for _, lvl := range []string{"debug", "info", "", "warn", "WARNING", " error "} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then unknown names are rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
