package tui

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/player"
)

type fakeEngine struct {
	url      string
	paused   bool
	region   player.Geometry
	closed   bool
	observer func(player.Progress)
}

func (f *fakeEngine) Play() error                { f.paused = false; return nil }
func (f *fakeEngine) Pause() error               { f.paused = true; return nil }
func (f *fakeEngine) Paused() (bool, error)      { return f.paused, nil }
func (f *fakeEngine) Position() (float64, error) { return 0, nil }
func (f *fakeEngine) Duration() (float64, error) { return math.NaN(), nil }
func (f *fakeEngine) Seek(float64) error         { return nil }
func (f *fakeEngine) Attach(g player.Geometry) error {
	f.region = g
	return nil
}
func (f *fakeEngine) Detach() error {
	f.region = player.Geometry{}
	return nil
}
func (f *fakeEngine) AddPeriodicObserver(_ time.Duration, fn func(player.Progress)) player.Observer {
	f.observer = fn
	return 1
}
func (f *fakeEngine) RemoveObserver(player.Observer) { f.observer = nil }
func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

type fakeFactory struct {
	engines []*fakeEngine
}

func (f *fakeFactory) create(url, _ string) (player.Engine, error) {
	engine := &fakeEngine{url: url, paused: true}
	f.engines = append(f.engines, engine)
	return engine, nil
}

// open returns the engines that have not been closed.
func (f *fakeFactory) open() []*fakeEngine {
	var open []*fakeEngine
	for _, e := range f.engines {
		if !e.closed {
			open = append(open, e)
		}
	}
	return open
}

func (f *fakeFactory) playing() []*fakeEngine {
	var playing []*fakeEngine
	for _, e := range f.open() {
		if !e.paused {
			playing = append(playing, e)
		}
	}
	return playing
}

type queueLoop struct {
	mu     sync.Mutex
	queue  []func()
	timers []func()
}

func (l *queueLoop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, fn)
}

func (l *queueLoop) After(_ time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timers = append(l.timers, fn)
}

func (l *queueLoop) fire() {
	l.mu.Lock()
	timers := l.timers
	l.timers = nil
	l.mu.Unlock()

	for _, fn := range timers {
		fn()
	}
}

type staticSource struct {
	items []feed.Item
}

func (s staticSource) Fetch(context.Context) feed.FetchResult {
	return feed.Fetched(s.items)
}

func videos(n int) []feed.Item {
	out := make([]feed.Item, n)
	for i := range out {
		out[i] = feed.Item{
			Title:     "Video " + string(rune('A'+i)),
			SourceURL: "https://videos.example.com/" + string(rune('a'+i)) + ".mp4",
		}
	}
	return out
}
