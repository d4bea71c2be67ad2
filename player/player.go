// Package player defines the playback engine abstraction used by feed slots.
// The production implementation drives mpv through its JSON-IPC interface.
package player

import "time"

// Geometry is the screen region an engine renders into, in pixels.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the region has no visible area.
func (g Geometry) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Progress is one sample taken by a periodic observer. Duration is NaN while
// the engine does not know it yet (warm-up, live streams).
type Progress struct {
	Position float64
	Duration float64
}

// Observer identifies a periodic observer registration.
type Observer uint64

// Engine is a single playback engine bound to one media source.
// Positions and durations are in seconds.
type Engine interface {
	Play() error
	Pause() error
	Paused() (bool, error)

	Position() (float64, error)
	Duration() (float64, error)
	Seek(seconds float64) error

	// Attach fits the engine's output to the given region. It may be called
	// again whenever the region changes.
	Attach(region Geometry) error
	// Detach stops rendering to the attached region.
	Detach() error

	// AddPeriodicObserver calls fn roughly every interval until removed.
	// fn runs on an engine-owned goroutine.
	AddPeriodicObserver(interval time.Duration, fn func(Progress)) Observer
	RemoveObserver(o Observer)

	// Close releases the engine. It is safe to call more than once.
	Close() error
}

// FailureNotifier is implemented by engines that can report an unplayable source.
type FailureNotifier interface {
	OnFailure(fn func(error))
}

// Factory creates a new engine targeting url. title is informational.
type Factory func(url, title string) (Engine, error)
