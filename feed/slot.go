package feed

import (
	"fmt"
	"math"
	"time"

	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/player"
	"github.com/reelfeed/reelfeed/util"
	"github.com/samber/lo"
)

// State of a Slot.
type State int

const (
	Unbound State = iota
	Paused
	Playing
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unbound"
	}
}

// Display is what a slot shows next to its video.
type Display struct {
	// Fraction of the video played, in [0, 1].
	Fraction float64
	Elapsed  string
	// Total is empty while the duration is unknown.
	Total string
}

// SlotOptions configures every slot of a surface.
type SlotOptions struct {
	Factory          player.Factory
	Loop             Loop
	ProgressInterval time.Duration
	// Resume seeks to the item's last position when binding.
	Resume bool
}

// Slot owns one playback engine at a time. It knows nothing about other
// slots; the Coordinator decides which one plays.
type Slot struct {
	options SlotOptions

	engine    player.Engine
	region    Region
	observer  player.Observer
	observing bool
	// generation changes on every bind and teardown so that progress ticks
	// still queued for a previous binding are dropped.
	generation uint64

	state   State
	item    Item
	sink    PositionSink
	display Display
	failed  error
}

// NewSlot returns an unbound slot.
func NewSlot(options SlotOptions) *Slot {
	if options.ProgressInterval <= 0 {
		options.ProgressInterval = time.Second
	}
	return &Slot{options: options}
}

// Configure binds item to the slot. Any previous binding is torn down first.
// On error the slot stays unbound.
func (s *Slot) Configure(item Item, sink PositionSink) error {
	s.Teardown()

	engine, err := s.options.Factory(item.SourceURL, item.Title)
	if err != nil {
		return fmt.Errorf("configure %q: %w", item.Title, err)
	}

	s.generation++
	generation := s.generation

	s.engine = engine
	s.item = item
	s.sink = sink
	s.state = Paused
	s.display = Display{Elapsed: util.FormatClock(item.LastPosition.Seconds())}

	if err := engine.Attach(s.region); err != nil {
		log.With(log.Fields{"title": item.Title}).Warnf("attach: %v", err)
	}

	s.observer = engine.AddPeriodicObserver(s.options.ProgressInterval, func(p player.Progress) {
		s.options.Loop.Post(func() { s.tick(generation, p) })
	})
	s.observing = true

	if notifier, ok := engine.(player.FailureNotifier); ok {
		notifier.OnFailure(func(err error) {
			s.options.Loop.Post(func() { s.fail(generation, err) })
		})
	}

	if duration, err := engine.Duration(); err == nil && util.IsFinitePositive(duration) {
		s.display.Total = util.FormatClock(duration)
	}

	if s.options.Resume && item.LastPosition > 0 {
		if err := engine.Seek(item.LastPosition.Seconds()); err != nil {
			log.With(log.Fields{"title": item.Title}).Warnf("resume: %v", err)
		}
	}

	return nil
}

// Teardown releases the engine. It is safe to call on an unbound slot.
func (s *Slot) Teardown() {
	s.generation++

	if s.engine == nil {
		s.state = Unbound
		return
	}

	if s.observing {
		s.engine.RemoveObserver(s.observer)
		s.observing = false
	}

	fields := log.Fields{"title": s.item.Title}
	if err := s.engine.Pause(); err != nil {
		log.With(fields).Debugf("pause on teardown: %v", err)
	}
	if err := s.engine.Detach(); err != nil {
		log.With(fields).Debugf("detach on teardown: %v", err)
	}
	if err := s.engine.Close(); err != nil {
		log.With(fields).Debugf("close on teardown: %v", err)
	}

	s.engine = nil
	s.item = Item{}
	s.sink = nil
	s.state = Unbound
	s.display = Display{}
	s.failed = nil
}

// Play starts playback.
func (s *Slot) Play() error {
	if s.engine == nil {
		return ErrUnbound
	}
	if err := s.engine.Play(); err != nil {
		return fmt.Errorf("play %q: %w", s.item.Title, err)
	}
	s.state = Playing
	return nil
}

// Pause stops playback, keeping the position.
func (s *Slot) Pause() error {
	if s.engine == nil {
		return ErrUnbound
	}
	if err := s.engine.Pause(); err != nil {
		return fmt.Errorf("pause %q: %w", s.item.Title, err)
	}
	s.state = Paused
	return nil
}

// Stop is Pause.
func (s *Slot) Stop() error {
	return s.Pause()
}

// ToggleOnTap flips between playing and paused following the engine's own
// pause state. It does nothing on an unbound slot.
func (s *Slot) ToggleOnTap() error {
	if s.engine == nil {
		return nil
	}

	paused, err := s.engine.Paused()
	if err != nil {
		paused = s.state != Playing
	}

	if paused {
		return s.Play()
	}
	return s.Pause()
}

func (s *Slot) SkipBackward(seconds float64) error {
	return s.skip(-seconds)
}

func (s *Slot) SkipForward(seconds float64) error {
	return s.skip(seconds)
}

func (s *Slot) skip(delta float64) error {
	if s.engine == nil {
		return ErrUnbound
	}

	// Without a position there is nothing to skip from, e.g. while mpv is
	// still probing the file.
	position, err := s.engine.Position()
	if err != nil || math.IsNaN(position) || math.IsInf(position, 0) {
		log.With(log.Fields{"title": s.item.Title}).Debugf("skip ignored, position unknown: %v", err)
		return nil
	}

	target := math.Max(position+delta, 0)
	if duration, err := s.engine.Duration(); err == nil && util.IsFinitePositive(duration) {
		target = lo.Clamp(position+delta, 0, duration)
	}

	return s.engine.Seek(target)
}

// Scrub seeks to fraction of the duration. fraction is clamped to [0, 1].
// Nothing happens while the duration is unknown.
func (s *Slot) Scrub(fraction float64) error {
	if s.engine == nil {
		return ErrUnbound
	}
	if math.IsNaN(fraction) {
		return nil
	}

	duration, err := s.engine.Duration()
	if err != nil || !util.IsFinitePositive(duration) {
		return nil
	}

	return s.engine.Seek(lo.Clamp(fraction, 0, 1) * duration)
}

// Resize moves the slot to region and refits the engine output.
func (s *Slot) Resize(region Region) {
	s.region = region
	if s.engine == nil {
		return
	}
	if err := s.engine.Attach(region); err != nil {
		log.With(log.Fields{"title": s.item.Title}).Warnf("resize: %v", err)
	}
}

func (s *Slot) tick(generation uint64, p player.Progress) {
	if generation != s.generation || s.engine == nil {
		return
	}

	finite := !math.IsNaN(p.Position) && !math.IsInf(p.Position, 0)

	if finite && util.IsFinitePositive(p.Duration) {
		position := lo.Clamp(p.Position, 0, p.Duration)
		s.display.Fraction = position / p.Duration
		s.display.Elapsed = util.FormatClock(position)
		s.display.Total = util.FormatClock(p.Duration)
	}

	if finite && s.sink != nil {
		s.sink(time.Duration(math.Max(p.Position, 0) * float64(time.Second)))
	}
}

func (s *Slot) fail(generation uint64, err error) {
	if generation != s.generation || s.engine == nil {
		return
	}

	s.failed = err
	log.With(log.Fields{"title": s.item.Title, "url": s.item.SourceURL}).Errorf("playback failed: %v", err)
}

func (s *Slot) State() State {
	return s.state
}

// Item returns the bound item.
func (s *Slot) Item() (Item, bool) {
	return s.item, s.engine != nil
}

func (s *Slot) Display() Display {
	return s.display
}

func (s *Slot) Region() Region {
	return s.region
}

// Failed returns the playback error reported by the engine, if any.
func (s *Slot) Failed() error {
	return s.failed
}
