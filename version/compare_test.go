package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare orders versions numerically", t, func() {
		for _, c := range []struct {
			a, b string
			want int
		}{
			{"0.3.1", "0.3.1", 0},
			{"v0.3.1", "0.3.1", 0},
			{"0.10.0", "0.9.9", 1},
			{"1.0.0", "0.99.99", 1},
			{"0.3.0", "0.3.1", -1},
			{"1.4", "1.4.0", 0},
			{"1.5", "1.4.9", 1},
		} {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}
	})

	Convey("Prereleases sort before their release", t, func() {
		got, err := Compare("0.4.0-rc.1", "0.4.0")
		So(err, ShouldBeNil)
		So(got, ShouldEqual, -1)

		got, err = Compare("0.4.0-rc.2", "0.4.0-rc.1")
		So(err, ShouldBeNil)
		So(got, ShouldEqual, 1)

		got, err = Compare("0.4.0-rc.1", "0.3.9")
		So(err, ShouldBeNil)
		So(got, ShouldEqual, 1)
	})

	Convey("Garbage is an error", t, func() {
		for _, tag := range []string{"latest", "1", "1.2.3.4", "1.x.0", "1.-2.0"} {
			_, err := Compare(tag, "0.3.1")
			So(err, ShouldNotBeNil)
		}
	})

	Convey("Release links point at the tag", t, func() {
		So(ReleaseURL("1.2.3"), ShouldEqual, "https://github.com/reelfeed/reelfeed/releases/tag/v1.2.3")
	})
}
