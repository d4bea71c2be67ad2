package cmd

import (
	"errors"
	"testing"

	"github.com/reelfeed/reelfeed/constant"
	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/pexels"
	"github.com/reelfeed/reelfeed/playlist"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

func TestNewSource(t *testing.T) {
	Convey("newSource", t, func() {
		viper.Set(key.PexelsAPIKey, "")
		viper.Set(key.SourcePlaylist, "")

		Convey("Builds a Pexels client when a key is configured", func() {
			viper.Set(key.SourceKind, "Pexels")
			viper.Set(key.PexelsAPIKey, "secret")
			viper.Set(key.PexelsQuery, "mountains")

			source, label, err := newSource()
			So(err, ShouldBeNil)
			So(source, ShouldHaveSameTypeAs, &pexels.Client{})
			So(label, ShouldEqual, "mountains")
		})

		Convey("Fails without a Pexels key", func() {
			viper.Set(key.SourceKind, sourcePexels)

			_, _, err := newSource()
			So(errors.Is(err, pexels.ErrNoKey), ShouldBeTrue)
		})

		Convey("Builds a playlist source", func() {
			viper.Set(key.SourceKind, sourcePlaylist)
			viper.Set(key.SourcePlaylist, "/videos.toml")

			source, label, err := newSource()
			So(err, ShouldBeNil)
			So(source, ShouldHaveSameTypeAs, &playlist.Source{})
			So(label, ShouldEqual, "/videos.toml")
		})

		Convey("Requires a playlist path", func() {
			viper.Set(key.SourceKind, sourcePlaylist)

			_, _, err := newSource()
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects unknown sources", func() {
			viper.Set(key.SourceKind, "vimeo")

			_, _, err := newSource()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "pexels, playlist")
		})
	})
}

func TestNewPositionStore(t *testing.T) {
	Convey("newPositionStore follows history.save_positions", t, func() {
		viper.Set(key.HistorySavePositions, false)
		So(newPositionStore(), ShouldBeNil)

		viper.Set(key.HistorySavePositions, true)
		So(newPositionStore(), ShouldNotBeNil)
	})
}

func TestInstallCommand(t *testing.T) {
	Convey("installCommand", t, func() {
		So(installCommand(constant.Darwin), ShouldEqual, "brew install mpv")
		So(installCommand(constant.Windows), ShouldEqual, "scoop install mpv")
		So(installCommand("plan9"), ShouldBeEmpty)
	})
}
