package tui

import (
	"testing"
	"time"

	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/player"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestWindow(prefetch int) (*window, *feed.Controller, *fakeFactory, *queueLoop) {
	factory := &fakeFactory{}
	loop := &queueLoop{}
	controller := feed.NewController(staticSource{}, loop, nil, feed.Options{SettleDelay: time.Millisecond})
	w := newWindow(controller, feed.SlotOptions{Factory: factory.create, Loop: loop}, prefetch)
	return w, controller, factory, loop
}

func TestWindow(t *testing.T) {
	Convey("Given a window with one page of prefetch", t, func() {
		w, controller, factory, loop := newTestWindow(1)
		w.Resize(feed.Region{Width: 720, Height: 405})

		Convey("The pool has three slots", func() {
			So(w.pool, ShouldHaveLength, 3)
		})

		Convey("An empty feed shows nothing", func() {
			controller.Apply(feed.Fetched(nil))
			So(w.VisibleIndices(), ShouldBeEmpty)
			So(w.SlotAt(0), ShouldBeNil)
			So(w.Scroll(1), ShouldBeFalse)
		})

		Convey("When five videos load", func() {
			controller.Apply(feed.Fetched(videos(5)))

			Convey("The first page and its neighbour are bound", func() {
				So(w.VisibleIndices(), ShouldResemble, []int{0})
				So(w.assigned, ShouldHaveLength, 2)
				So(factory.open(), ShouldHaveLength, 2)
			})

			Convey("Only the visible slot gets the screen", func() {
				So(factory.engines[0].region, ShouldResemble, player.Geometry{Width: 720, Height: 405})
				So(factory.engines[1].region.Empty(), ShouldBeTrue)
			})

			Convey("The first video plays once the load settles", func() {
				loop.fire()
				So(controller.Primary(), ShouldEqual, w.Visible())
				So(factory.playing(), ShouldHaveLength, 1)
			})

			Convey("Scrolling keeps the pool bounded", func() {
				loop.fire()
				for i := 0; i < 4; i++ {
					So(w.Scroll(1), ShouldBeTrue)
					controller.DidEndDragging(false)

					So(len(factory.open()), ShouldBeLessThanOrEqualTo, 3)
					So(factory.playing(), ShouldHaveLength, 1)
					So(controller.Primary(), ShouldEqual, w.Visible())
				}

				So(w.Page(), ShouldEqual, 4)
				So(w.Scroll(1), ShouldBeFalse)
				_, ok := w.assigned[2]
				So(ok, ShouldBeFalse)
			})

			Convey("Jumping far rebinds around the target", func() {
				So(w.JumpTo(3), ShouldBeTrue)
				So(w.assigned, ShouldHaveLength, 3)
				for _, i := range []int{2, 3, 4} {
					_, ok := w.assigned[i]
					So(ok, ShouldBeTrue)
				}
			})

			Convey("Jumps are clamped", func() {
				So(w.JumpTo(99), ShouldBeTrue)
				So(w.Page(), ShouldEqual, 4)
				So(w.JumpTo(-5), ShouldBeTrue)
				So(w.Page(), ShouldEqual, 0)
			})

			Convey("Reloading starts over at the top", func() {
				w.JumpTo(2)
				controller.Apply(feed.Fetched(videos(2)))

				So(w.Page(), ShouldEqual, 0)
				So(w.Count(), ShouldEqual, 2)
				So(factory.open(), ShouldHaveLength, 2)
			})
		})
	})

	Convey("Without prefetch only the visible page is bound", t, func() {
		w, controller, factory, _ := newTestWindow(0)
		controller.Apply(feed.Fetched(videos(3)))

		So(w.pool, ShouldHaveLength, 1)
		w.Scroll(1)
		So(factory.open(), ShouldHaveLength, 1)
		So(factory.open()[0].url, ShouldEqual, "https://videos.example.com/b.mp4")
	})
}
