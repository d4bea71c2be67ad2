package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/reelfeed/reelfeed/config"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestBubble() (*statefulBubble, *fakeFactory, *queueLoop) {
	factory := &fakeFactory{}
	loop := &queueLoop{}

	b := newBubble(&Options{Source: staticSource{}, Factory: factory.create})
	b.attach(loop)
	b.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	return b, factory, loop
}

func apply(b *statefulBubble, result feed.FetchResult) tea.Cmd {
	_, cmd := b.Update(runMsg{fn: func() { b.controller.Apply(result) }})
	return cmd
}

func TestBubble(t *testing.T) {
	Convey("Given the feed screen", t, func() {
		b, factory, loop := newTestBubble()

		Convey("It starts loading", func() {
			So(b.state, ShouldEqual, loadingState)
			So(b.View(), ShouldContainSubstring, "Loading")
		})

		Convey("The window is sized in pixels", func() {
			So(b.window.region.Width, ShouldEqual, b.width*b.cellWidth)
			So(b.window.region.Height, ShouldEqual, b.height*b.cellHeight)
		})

		Convey("A failed load shows the empty screen with the error", func() {
			cmd := apply(b, feed.FetchFailure(errors.New("status 401")))
			So(b.state, ShouldEqual, emptyState)
			So(cmd, ShouldNotBeNil)
			So(b.View(), ShouldContainSubstring, "status 401")
		})

		Convey("An empty load shows the empty screen", func() {
			apply(b, feed.Fetched(nil))
			So(b.state, ShouldEqual, emptyState)
		})

		Convey("When three videos load and settle", func() {
			apply(b, feed.Fetched(videos(3)))
			loop.fire()

			So(b.state, ShouldEqual, feedState)
			first := b.controller.Primary()
			So(first, ShouldNotBeNil)
			So(b.View(), ShouldContainSubstring, "Video A")

			Convey("j plays the next video", func() {
				b.Update(keyPress("j"))

				So(b.window.Page(), ShouldEqual, 1)
				So(b.controller.Primary(), ShouldEqual, b.window.Visible())
				So(first.State(), ShouldEqual, feed.Paused)
				So(factory.playing(), ShouldHaveLength, 1)
				So(b.View(), ShouldContainSubstring, "2/3")
			})

			Convey("k at the top changes nothing", func() {
				b.Update(keyPress("k"))
				So(b.controller.Primary(), ShouldEqual, first)
			})

			Convey("space pauses and resumes", func() {
				b.Update(keyPress(" "))
				So(first.State(), ShouldEqual, feed.Paused)
				b.Update(keyPress(" "))
				So(first.State(), ShouldEqual, feed.Playing)
			})

			Convey("The wheel switches only once it settles", func() {
				_, cmd := b.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
				So(cmd, ShouldNotBeNil)
				So(b.controller.Primary(), ShouldEqual, first)

				stale := wheelSettledMsg{seq: b.wheelSeq}
				b.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})

				b.Update(stale)
				So(b.controller.Primary(), ShouldEqual, first)

				b.Update(wheelSettledMsg{seq: b.wheelSeq})
				So(b.window.Page(), ShouldEqual, 2)
				So(b.controller.Primary(), ShouldEqual, b.window.Visible())
				So(factory.playing(), ShouldHaveLength, 1)
			})

			Convey("The index jumps to the chosen video", func() {
				b.Update(keyPress("tab"))
				So(b.state, ShouldEqual, indexState)
				So(b.View(), ShouldContainSubstring, "Videos")

				b.Update(keyPress("j"))
				b.Update(keyPress("j"))
				b.Update(keyPress("enter"))

				So(b.state, ShouldEqual, feedState)
				So(b.window.Page(), ShouldEqual, 2)
				So(b.controller.Primary(), ShouldEqual, b.window.Visible())
			})

			Convey("q closes every engine", func() {
				_, cmd := b.Update(keyPress("q"))
				So(cmd, ShouldNotBeNil)
				So(factory.open(), ShouldBeEmpty)
			})

			Convey("An unknown duration shows a placeholder", func() {
				So(strings.Contains(b.View(), "--:--"), ShouldBeTrue)
			})
		})
	})
}

func TestPercentKey(t *testing.T) {
	Convey("Digits map to tenths", t, func() {
		f, ok := percentKey("5")
		So(ok, ShouldBeTrue)
		So(f, ShouldEqual, 0.5)

		f, ok = percentKey("0")
		So(ok, ShouldBeTrue)
		So(f, ShouldEqual, 0)

		_, ok = percentKey("x")
		So(ok, ShouldBeFalse)
	})
}
