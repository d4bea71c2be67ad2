package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/reelfeed/reelfeed/log"
	"github.com/samber/lo"
)

// Options tunes a Controller.
type Options struct {
	// SettleDelay is how long to wait after a load before choosing what plays.
	SettleDelay time.Duration
	// FetchTimeout bounds a single catalog fetch. Zero means no limit.
	FetchTimeout time.Duration
	// SaveInterval is the least time between two writes of one item's
	// position to the store while it plays. Zero saves only on recycle and close.
	SaveInterval time.Duration
}

// Controller ties loading, binding and scroll events to playback.
// Every method must be called on the loop.
type Controller struct {
	source      Source
	surface     Surface
	loop        Loop
	store       PositionStore
	coordinator *Coordinator
	catalog     *Catalog
	options     Options

	// bound maps each configured slot to the catalog index it shows.
	bound map[*Slot]int

	// saved is when each index last reached the store from its sink.
	saved map[int]time.Time
	now   func() time.Time

	loads   uint64
	loading bool
	err     error
}

// NewController creates a controller. store may be nil.
func NewController(source Source, loop Loop, store PositionStore, options Options) *Controller {
	return &Controller{
		source:      source,
		loop:        loop,
		store:       store,
		coordinator: NewCoordinator(),
		catalog:     &Catalog{},
		options:     options,
		bound:       make(map[*Slot]int),
		saved:       make(map[int]time.Time),
		now:         time.Now,
	}
}

// SetSurface connects the surface the controller drives.
func (c *Controller) SetSurface(surface Surface) {
	c.surface = surface
}

// Load fetches the catalog off the loop and applies it once it arrives.
// Only the result of the latest Load is applied.
func (c *Controller) Load(ctx context.Context) {
	c.loads++
	load := c.loads
	c.loading = true

	go func() {
		if c.options.FetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.options.FetchTimeout)
			defer cancel()
		}

		result := c.source.Fetch(ctx)

		c.loop.Post(func() {
			if load != c.loads {
				return
			}
			c.Apply(result)
		})
	}()
}

// Apply replaces the catalog with the fetched items. A failed or empty
// result leaves the feed empty. It is not retried.
func (c *Controller) Apply(result FetchResult) {
	c.loading = false

	for slot := range c.bound {
		c.Recycle(slot)
	}

	items, err := result.Get()
	c.err = err
	switch {
	case err != nil:
		log.Errorf("feed: load failed: %v", err)
		items = nil
	case len(items) == 0:
		log.Warn("feed: source returned no videos")
	default:
		log.Infof("feed: loaded %d videos", len(items))
	}

	c.catalog.Replace(items)
	c.saved = make(map[int]time.Time)
	c.restorePositions()

	if c.surface != nil {
		c.surface.Reload(c.catalog.Len())
	}

	if c.catalog.Len() > 0 {
		c.loop.After(c.options.SettleDelay, c.PlayVisible)
	}
}

func (c *Controller) restorePositions() {
	if c.store == nil {
		return
	}

	for i, item := range c.catalog.Items() {
		if position, ok := c.store.Position(item); ok {
			c.catalog.SetLastPosition(i, position)
		}
	}
}

// Bind configures slot with the item at index. Any other slot showing that
// index is recycled first.
func (c *Controller) Bind(slot *Slot, index int) error {
	item, ok := c.catalog.At(index)
	if !ok {
		return fmt.Errorf("bind: index %d out of range [0, %d)", index, c.catalog.Len())
	}

	for other, i := range c.bound {
		if i == index && other != slot {
			c.Recycle(other)
		}
	}

	if _, ok := c.bound[slot]; ok {
		c.Recycle(slot)
	}

	if err := slot.Configure(item, c.sink(index)); err != nil {
		log.With(log.Fields{"index": index, "url": item.SourceURL}).Errorf("bind: %v", err)
		return err
	}

	c.bound[slot] = index
	return nil
}

// Recycle releases slot so the surface can reuse it.
func (c *Controller) Recycle(slot *Slot) {
	if index, ok := c.bound[slot]; ok {
		delete(c.bound, slot)
		c.persist(index)
	}

	c.coordinator.Release(slot)
	slot.Teardown()
}

// sink writes elapsed positions into the catalog and, at most once per
// SaveInterval, into the store.
func (c *Controller) sink(index int) PositionSink {
	write := c.catalog.Sink(index)

	return func(elapsed time.Duration) {
		write(elapsed)

		if c.store == nil || c.options.SaveInterval <= 0 {
			return
		}

		now := c.now()
		if last, ok := c.saved[index]; ok && now.Sub(last) < c.options.SaveInterval {
			return
		}
		c.saved[index] = now
		c.persist(index)
	}
}

func (c *Controller) persist(indices ...int) {
	if c.store == nil || len(indices) == 0 {
		return
	}

	items := lo.FilterMap(indices, func(i int, _ int) (Item, bool) {
		return c.catalog.At(i)
	})

	if err := c.store.Save(items...); err != nil {
		log.Warnf("feed: save positions: %v", err)
	}
}

// DidSettleAfterScroll is called when a scroll has come to rest.
func (c *Controller) DidSettleAfterScroll() {
	c.PlayVisible()
}

// DidEndDragging is called when the user lets go of the feed. While the
// feed keeps decelerating nothing changes; DidSettleAfterScroll follows.
func (c *Controller) DidEndDragging(decelerate bool) {
	if !decelerate {
		c.PlayVisible()
	}
}

// PlayVisible makes the slot at the first visible index the primary one.
func (c *Controller) PlayVisible() {
	c.coordinator.SetPrimary(c.visibleSlot())
}

func (c *Controller) visibleSlot() *Slot {
	if c.surface == nil {
		return nil
	}

	visible := c.surface.VisibleIndices()
	if len(visible) == 0 {
		return nil
	}

	return c.surface.SlotAt(visible[0])
}

// Tap toggles the visible slot, or makes it primary if something else plays.
func (c *Controller) Tap() {
	c.coordinator.Tap(c.visibleSlot())
}

// Skip moves the visible slot by delta, backwards when negative.
func (c *Controller) Skip(delta time.Duration) error {
	slot := c.visibleSlot()
	if slot == nil {
		return ErrUnbound
	}

	if delta < 0 {
		return slot.SkipBackward(-delta.Seconds())
	}
	return slot.SkipForward(delta.Seconds())
}

// Scrub seeks the visible slot to fraction of its duration.
func (c *Controller) Scrub(fraction float64) error {
	slot := c.visibleSlot()
	if slot == nil {
		return ErrUnbound
	}
	return slot.Scrub(fraction)
}

// Close stops playback, saves every bound position and releases all slots.
func (c *Controller) Close() {
	c.coordinator.SetPrimary(nil)

	indices := lo.Values(c.bound)
	for slot := range c.bound {
		delete(c.bound, slot)
		slot.Teardown()
	}

	c.persist(indices...)
}

func (c *Controller) Catalog() *Catalog {
	return c.catalog
}

// Primary returns the slot currently chosen to play.
func (c *Controller) Primary() *Slot {
	return c.coordinator.Current()
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Err returns the error of the last load, if it failed.
func (c *Controller) Err() error {
	return c.err
}
