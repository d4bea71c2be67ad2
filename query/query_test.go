package query

import (
	"testing"

	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/reelfeed/reelfeed/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given remembered queries", t, func() {
		viper.Set(key.PexelsQuerySuggestions, true)

		So(Remember("Ocean waves", 1), ShouldBeNil)
		So(Remember("ocean sunset", 10), ShouldBeNil)

		Convey("Suggestions are ordered by rank", func() {
			s := SuggestMany("ocean")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "ocean sunset")
		})

		Convey("Suggest returns the best match", func() {
			So(Suggest("wav").MustGet(), ShouldEqual, "ocean waves")
			So(Suggest("zzzz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Blank queries are not remembered", func() {
			So(Remember("   ", 5), ShouldBeNil)
			So(SuggestMany(""), ShouldNotContain, "")
		})

		Convey("Suggestions can be turned off", func() {
			viper.Set(key.PexelsQuerySuggestions, false)
			So(SuggestMany("ocean"), ShouldBeEmpty)
		})

		Convey("Input is sanitized", func() {
			So(sanitize("  FOREST  "), ShouldEqual, "forest")
		})
	})
}
