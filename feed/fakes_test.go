package feed

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/reelfeed/reelfeed/player"
)

type fakeEngine struct {
	url    string
	paused bool

	position    float64
	duration    float64
	durationErr error
	pauseErr    error
	positionErr error

	plays, pauses int
	seeks         []float64
	attached      []player.Geometry
	detached      bool
	closed        bool

	observers map[player.Observer]func(player.Progress)
	next      player.Observer
	onFailure func(error)
}

func newFakeEngine(url string) *fakeEngine {
	return &fakeEngine{
		url:       url,
		paused:    true,
		duration:  math.NaN(),
		observers: make(map[player.Observer]func(player.Progress)),
	}
}

func (f *fakeEngine) Play() error {
	f.plays++
	f.paused = false
	return nil
}

func (f *fakeEngine) Pause() error {
	f.pauses++
	if f.pauseErr != nil {
		return f.pauseErr
	}
	f.paused = true
	return nil
}

func (f *fakeEngine) Paused() (bool, error) { return f.paused, nil }

func (f *fakeEngine) Position() (float64, error) {
	if f.positionErr != nil {
		return 0, f.positionErr
	}
	return f.position, nil
}

func (f *fakeEngine) Duration() (float64, error) {
	if f.durationErr != nil {
		return 0, f.durationErr
	}
	return f.duration, nil
}

func (f *fakeEngine) Seek(seconds float64) error {
	f.seeks = append(f.seeks, seconds)
	f.position = seconds
	return nil
}

func (f *fakeEngine) Attach(region player.Geometry) error {
	f.attached = append(f.attached, region)
	return nil
}

func (f *fakeEngine) Detach() error {
	f.detached = true
	return nil
}

func (f *fakeEngine) AddPeriodicObserver(_ time.Duration, fn func(player.Progress)) player.Observer {
	f.next++
	f.observers[f.next] = fn
	return f.next
}

func (f *fakeEngine) RemoveObserver(o player.Observer) {
	delete(f.observers, o)
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

func (f *fakeEngine) OnFailure(fn func(error)) {
	f.onFailure = fn
}

// observer returns the single registered observer, or nil.
func (f *fakeEngine) observer() func(player.Progress) {
	for _, fn := range f.observers {
		return fn
	}
	return nil
}

// tick reports progress to every observer, like the engine's ticker would.
func (f *fakeEngine) tick(position, duration float64) {
	for _, fn := range f.observers {
		fn(player.Progress{Position: position, Duration: duration})
	}
}

type fakeFactory struct {
	engines  []*fakeEngine
	duration float64
	err      error
}

func (f *fakeFactory) create(url, _ string) (player.Engine, error) {
	if f.err != nil {
		return nil, f.err
	}
	engine := newFakeEngine(url)
	if f.duration != 0 {
		engine.duration = f.duration
	}
	f.engines = append(f.engines, engine)
	return engine, nil
}

func (f *fakeFactory) last() *fakeEngine {
	return f.engines[len(f.engines)-1]
}

type timer struct {
	delay time.Duration
	fn    func()
}

// manualLoop queues posted work until the test drains it.
type manualLoop struct {
	mu     sync.Mutex
	queue  []func()
	timers []timer
	posted chan struct{}
}

func newManualLoop() *manualLoop {
	return &manualLoop{posted: make(chan struct{}, 128)}
}

func (l *manualLoop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.posted <- struct{}{}:
	default:
	}
}

func (l *manualLoop) After(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timers = append(l.timers, timer{delay: d, fn: fn})
}

// drain runs queued work, including work queued while draining.
func (l *manualLoop) drain() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return ran
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
		ran++
	}
}

// await blocks until something was posted, then drains.
func (l *manualLoop) await() error {
	select {
	case <-l.posted:
		l.drain()
		return nil
	case <-time.After(2 * time.Second):
		return errors.New("nothing was posted")
	}
}

// fire runs every pending timer.
func (l *manualLoop) fire() {
	l.mu.Lock()
	timers := l.timers
	l.timers = nil
	l.mu.Unlock()

	for _, t := range timers {
		t.fn()
	}
}

func (l *manualLoop) pendingTimers() []timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]timer(nil), l.timers...)
}

// fakeSurface binds one slot per requested index, without a pool limit.
type fakeSurface struct {
	controller *Controller
	options    SlotOptions
	slots      map[int]*Slot
	visible    []int
	reloads    []int
}

func newFakeSurface(controller *Controller, options SlotOptions) *fakeSurface {
	s := &fakeSurface{
		controller: controller,
		options:    options,
		slots:      make(map[int]*Slot),
	}
	controller.SetSurface(s)
	return s
}

func (s *fakeSurface) VisibleIndices() []int {
	return s.visible
}

func (s *fakeSurface) SlotAt(i int) *Slot {
	if slot, ok := s.slots[i]; ok {
		return slot
	}

	slot := NewSlot(s.options)
	if err := s.controller.Bind(slot, i); err != nil {
		return nil
	}
	s.slots[i] = slot
	return slot
}

func (s *fakeSurface) Reload(n int) {
	for i, slot := range s.slots {
		s.controller.Recycle(slot)
		delete(s.slots, i)
	}
	s.reloads = append(s.reloads, n)
}

type fakeSource struct {
	result FetchResult
	calls  int
}

func (s *fakeSource) Fetch(ctx context.Context) FetchResult {
	s.calls++
	return s.result
}

// gatedSource blocks every Fetch until the test releases that call.
type gatedSource struct {
	mu      sync.Mutex
	calls   []chan FetchResult
	started chan struct{}
}

func newGatedSource() *gatedSource {
	return &gatedSource{started: make(chan struct{}, 8)}
}

func (s *gatedSource) Fetch(ctx context.Context) FetchResult {
	gate := make(chan FetchResult, 1)
	s.mu.Lock()
	s.calls = append(s.calls, gate)
	s.mu.Unlock()
	s.started <- struct{}{}

	select {
	case result := <-gate:
		return result
	case <-ctx.Done():
		return FetchFailure(ctx.Err())
	}
}

// waitStarted blocks until n more fetches are in flight.
func (s *gatedSource) waitStarted(n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-s.started:
		case <-time.After(2 * time.Second):
			return errors.New("fetch never started")
		}
	}
	return nil
}

func (s *gatedSource) release(call int, result FetchResult) {
	s.mu.Lock()
	gate := s.calls[call]
	s.mu.Unlock()
	gate <- result
}

type memoryStore struct {
	positions map[string]time.Duration
	saves     int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{positions: make(map[string]time.Duration)}
}

func (m *memoryStore) Position(item Item) (time.Duration, bool) {
	p, ok := m.positions[item.Key()]
	return p, ok
}

func (m *memoryStore) Save(items ...Item) error {
	m.saves++
	for _, item := range items {
		m.positions[item.Key()] = item.LastPosition
	}
	return nil
}

func items(n int) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = Item{
			ID:        string(rune('a' + i)),
			Title:     "Video " + string(rune('A'+i)),
			SourceURL: "https://videos.example.com/" + string(rune('a'+i)) + ".mp4",
		}
	}
	return out
}
