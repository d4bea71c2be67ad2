package config

import (
	"testing"
	"time"

	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/reelfeed/reelfeed/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.SourceKind), ShouldEqual, "pexels")
			So(viper.GetInt(key.PlayerSkipSeconds), ShouldEqual, 10)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("feed.settle_delay")
			So(result, ShouldEqual, "feed_settle_delay")
		})
	})
}

func TestDuration(t *testing.T) {
	Convey("Given the duration-valued keys", t, func() {
		_ = Setup()

		Convey("Defaults parse into durations", func() {
			So(Duration(key.FeedSettleDelay), ShouldEqual, 300*time.Millisecond)
			So(Duration(key.PlayerProgressInterval), ShouldEqual, time.Second)
		})

		Convey("Garbage falls back to the registered default", func() {
			viper.Set(key.FeedFetchTimeout, "soon")
			So(Duration(key.FeedFetchTimeout), ShouldEqual, 15*time.Second)
			viper.Set(key.FeedFetchTimeout, Default[key.FeedFetchTimeout].Value)
		})

		Convey("Negative values clamp to zero", func() {
			viper.Set(key.TUIWheelSettle, "-1s")
			So(Duration(key.TUIWheelSettle), ShouldEqual, 0)
			viper.Set(key.TUIWheelSettle, Default[key.TUIWheelSettle].Value)
		})

		Convey("Unknown keys are zero", func() {
			So(Duration("does.not.exist"), ShouldEqual, 0)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PexelsQuery]

		Convey("Env is prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "REELFEED_PEXELS_QUERY")
		})

		Convey("Pretty mentions the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.PexelsQuery)
		})
	})
}
