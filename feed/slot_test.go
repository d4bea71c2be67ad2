package feed

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/reelfeed/reelfeed/player"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestSlot(factory *fakeFactory, loop *manualLoop) *Slot {
	return NewSlot(SlotOptions{Factory: factory.create, Loop: loop})
}

func TestSlotLifecycle(t *testing.T) {
	Convey("Given an unbound slot", t, func() {
		factory := &fakeFactory{duration: 100}
		loop := newManualLoop()
		slot := newTestSlot(factory, loop)

		Convey("Transport controls report that it is unbound", func() {
			So(slot.State(), ShouldEqual, Unbound)
			So(slot.Play(), ShouldEqual, ErrUnbound)
			So(slot.SkipForward(10), ShouldEqual, ErrUnbound)
			So(slot.Scrub(0.5), ShouldEqual, ErrUnbound)
			So(slot.ToggleOnTap(), ShouldBeNil)
		})

		Convey("Teardown is a no-op", func() {
			So(slot.Teardown, ShouldNotPanic)
			So(slot.State(), ShouldEqual, Unbound)
		})

		Convey("When it is configured", func() {
			slot.Resize(Region{Width: 640, Height: 360})
			So(slot.Configure(items(1)[0], nil), ShouldBeNil)
			engine := factory.last()

			Convey("It is paused with one observer, attached to its region", func() {
				So(slot.State(), ShouldEqual, Paused)
				So(engine.observers, ShouldHaveLength, 1)
				So(engine.attached, ShouldResemble, []player.Geometry{{Width: 640, Height: 360}})
				So(engine.plays, ShouldEqual, 0)
			})

			Convey("The total label is primed from the engine", func() {
				So(slot.Display().Total, ShouldEqual, "01:40")
			})

			Convey("Play, Pause and Stop drive the engine", func() {
				So(slot.Play(), ShouldBeNil)
				So(slot.State(), ShouldEqual, Playing)
				So(engine.paused, ShouldBeFalse)

				So(slot.Stop(), ShouldBeNil)
				So(slot.State(), ShouldEqual, Paused)
				So(engine.paused, ShouldBeTrue)
			})

			Convey("Tapping toggles playback", func() {
				So(slot.ToggleOnTap(), ShouldBeNil)
				So(slot.State(), ShouldEqual, Playing)
				So(slot.ToggleOnTap(), ShouldBeNil)
				So(slot.State(), ShouldEqual, Paused)
			})

			Convey("Teardown releases everything and is idempotent", func() {
				slot.Teardown()
				slot.Teardown()

				So(slot.State(), ShouldEqual, Unbound)
				So(engine.observers, ShouldBeEmpty)
				So(engine.paused, ShouldBeTrue)
				So(engine.detached, ShouldBeTrue)
				So(engine.closed, ShouldBeTrue)
				_, bound := slot.Item()
				So(bound, ShouldBeFalse)
			})

			Convey("Resize refits the engine", func() {
				slot.Resize(Region{X: 5, Width: 100, Height: 50})
				So(engine.attached, ShouldHaveLength, 2)
				So(slot.Region().X, ShouldEqual, 5)
			})
		})

		Convey("When the factory fails", func() {
			factory.err = errors.New("mpv not found")

			Convey("The slot stays unbound", func() {
				So(slot.Configure(items(1)[0], nil), ShouldNotBeNil)
				So(slot.State(), ShouldEqual, Unbound)
			})
		})

		Convey("When resuming is enabled", func() {
			slot = NewSlot(SlotOptions{Factory: factory.create, Loop: loop, Resume: true})
			item := items(1)[0]
			item.LastPosition = 42 * time.Second

			So(slot.Configure(item, nil), ShouldBeNil)

			Convey("It seeks to the last position", func() {
				So(factory.last().seeks, ShouldResemble, []float64{42})
				So(slot.Display().Elapsed, ShouldEqual, "00:42")
			})
		})
	})
}

func TestSlotSeeking(t *testing.T) {
	Convey("Given a bound slot with a known duration of 100s", t, func() {
		factory := &fakeFactory{duration: 100}
		slot := newTestSlot(factory, newManualLoop())
		So(slot.Configure(items(1)[0], nil), ShouldBeNil)
		engine := factory.last()

		Convey("Skipping back from 3s lands on 0", func() {
			engine.position = 3
			So(slot.SkipBackward(10), ShouldBeNil)
			So(engine.seeks, ShouldResemble, []float64{0})
		})

		Convey("Skipping forward from 98s lands on the duration", func() {
			engine.position = 98
			So(slot.SkipForward(10), ShouldBeNil)
			So(engine.seeks, ShouldResemble, []float64{100})
		})

		Convey("Skipping inside the bounds is exact", func() {
			engine.position = 40
			So(slot.SkipForward(10), ShouldBeNil)
			So(slot.SkipBackward(25), ShouldBeNil)
			So(engine.seeks, ShouldResemble, []float64{50, 25})
		})

		Convey("Skipping while the position is unknown does nothing", func() {
			engine.positionErr = errors.New("property unavailable")
			So(slot.SkipForward(10), ShouldBeNil)
			engine.positionErr = nil
			engine.position = math.NaN()
			So(slot.SkipBackward(10), ShouldBeNil)
			So(engine.seeks, ShouldBeEmpty)
		})

		Convey("Scrubbing to half seeks to 50s", func() {
			So(slot.Scrub(0.5), ShouldBeNil)
			So(engine.seeks, ShouldResemble, []float64{50})
		})

		Convey("Scrub fractions are clamped", func() {
			So(slot.Scrub(1.5), ShouldBeNil)
			So(slot.Scrub(-1), ShouldBeNil)
			So(engine.seeks, ShouldResemble, []float64{100, 0})
		})
	})

	Convey("Given a bound slot with an unknown duration", t, func() {
		factory := &fakeFactory{}
		slot := newTestSlot(factory, newManualLoop())
		So(slot.Configure(items(1)[0], nil), ShouldBeNil)
		engine := factory.last()

		Convey("Skipping is clamped only at zero", func() {
			engine.position = 3
			So(slot.SkipBackward(10), ShouldBeNil)
			engine.position = 500
			So(slot.SkipForward(10), ShouldBeNil)
			So(engine.seeks, ShouldResemble, []float64{0, 510})
		})

		Convey("Scrubbing does nothing", func() {
			So(slot.Scrub(0.5), ShouldBeNil)
			So(engine.seeks, ShouldBeEmpty)
		})

		Convey("Duration errors count as unknown", func() {
			engine.durationErr = errors.New("property unavailable")
			So(slot.Scrub(0.5), ShouldBeNil)
			So(engine.seeks, ShouldBeEmpty)
		})

		Convey("The total label stays unset", func() {
			So(slot.Display().Total, ShouldBeEmpty)
		})
	})
}

func TestSlotProgress(t *testing.T) {
	Convey("Given a bound slot with a sink", t, func() {
		factory := &fakeFactory{}
		loop := newManualLoop()
		slot := newTestSlot(factory, loop)

		var received []time.Duration
		sink := func(d time.Duration) { received = append(received, d) }
		So(slot.Configure(items(1)[0], sink), ShouldBeNil)
		engine := factory.last()

		Convey("Ticks only apply once they reach the loop", func() {
			engine.tick(5, 10)
			So(slot.Display().Fraction, ShouldEqual, 0)
			So(loop.drain(), ShouldEqual, 1)

			So(slot.Display().Fraction, ShouldEqual, 0.5)
			So(slot.Display().Elapsed, ShouldEqual, "00:05")
			So(slot.Display().Total, ShouldEqual, "00:10")
			So(received, ShouldResemble, []time.Duration{5 * time.Second})
		})

		Convey("Degenerate durations leave the display untouched", func() {
			before := slot.Display()

			for _, duration := range []float64{math.NaN(), 0, math.Inf(1), -3} {
				engine.tick(7, duration)
			}
			loop.drain()

			So(slot.Display(), ShouldResemble, before)

			Convey("But the elapsed position still reaches the sink", func() {
				So(received, ShouldHaveLength, 4)
				So(received[0], ShouldEqual, 7*time.Second)
			})
		})

		Convey("Non-finite positions are not forwarded", func() {
			engine.tick(math.NaN(), 10)
			loop.drain()
			So(received, ShouldBeEmpty)
		})

		Convey("After rebinding", func() {
			stale := engine.observer()
			slot.Teardown()

			var fresh []time.Duration
			So(slot.Configure(items(2)[1], func(d time.Duration) { fresh = append(fresh, d) }), ShouldBeNil)
			next := factory.last()

			Convey("Only the new engine observes", func() {
				So(engine.observers, ShouldBeEmpty)
				So(next.observers, ShouldHaveLength, 1)
			})

			Convey("A tick from the old binding is dropped", func() {
				stale(player.Progress{Position: 9, Duration: 10})
				loop.drain()

				So(slot.Display().Fraction, ShouldEqual, 0)
				So(fresh, ShouldBeEmpty)
				So(received, ShouldBeEmpty)
			})

			Convey("A tick queued before teardown is dropped too", func() {
				next.tick(1, 10)
				slot.Teardown()
				So(slot.Configure(items(3)[2], nil), ShouldBeNil)
				loop.drain()

				So(fresh, ShouldBeEmpty)
				So(slot.Display().Fraction, ShouldEqual, 0)
			})
		})

		Convey("Engine failures are recorded for the current binding only", func() {
			engine.onFailure(errors.New("loading failed"))
			loop.drain()
			So(slot.Failed(), ShouldNotBeNil)

			report := engine.onFailure
			slot.Teardown()
			So(slot.Configure(items(1)[0], nil), ShouldBeNil)
			report(errors.New("late"))
			loop.drain()
			So(slot.Failed(), ShouldBeNil)
		})
	})
}
