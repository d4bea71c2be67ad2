package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/reelfeed/reelfeed/constant"
	"github.com/reelfeed/reelfeed/key"
	"github.com/spf13/viper"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildInfo(t *testing.T) {
	Convey("Given a player binary that is not installed", t, func() {
		viper.Set(key.PlayerBinary, "mpv-that-does-not-exist")
		defer viper.Set(key.PlayerBinary, "mpv")

		info := currentBuildInfo()

		Convey("The build metadata is reported", func() {
			So(info.App, ShouldEqual, constant.Reelfeed)
			So(info.Version, ShouldEqual, constant.Version)
			So(info.Config, ShouldEqual, configFilePath())
		})

		Convey("The player is flagged as missing", func() {
			So(info.Player, ShouldEqual, "mpv-that-does-not-exist (not found)")
		})

		Convey("The template renders every field", func() {
			var buf bytes.Buffer
			So(versionTemplate.Execute(&buf, info), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, constant.Version)
			So(buf.String(), ShouldContainSubstring, "mpv-that-does-not-exist (not found)")
		})

		Convey("JSON uses snake case keys", func() {
			raw, err := json.Marshal(info)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)
			So(decoded["built_at"], ShouldEqual, info.BuiltAt)
			So(decoded["player"], ShouldEqual, info.Player)
		})
	})
}
