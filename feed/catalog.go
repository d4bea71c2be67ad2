package feed

import "time"

// PositionSink receives the elapsed playback position of one bound item.
type PositionSink func(elapsed time.Duration)

// Catalog is the ordered list of items of the current session.
// It is only ever replaced as a whole.
type Catalog struct {
	items []Item
}

// Replace swaps the whole catalog for a copy of items.
func (c *Catalog) Replace(items []Item) {
	c.items = make([]Item, len(items))
	copy(c.items, items)
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// At returns the item at index i.
func (c *Catalog) At(i int) (Item, bool) {
	if i < 0 || i >= len(c.items) {
		return Item{}, false
	}
	return c.items[i], true
}

// Items returns a copy of every item.
func (c *Catalog) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// SetLastPosition records the playback position of the item at index i.
// Out of range indices are ignored and reported as false.
func (c *Catalog) SetLastPosition(i int, position time.Duration) bool {
	if i < 0 || i >= len(c.items) {
		return false
	}
	c.items[i].LastPosition = position
	return true
}

// Sink returns a PositionSink writing into the item at index i.
func (c *Catalog) Sink(i int) PositionSink {
	return func(elapsed time.Duration) {
		c.SetLastPosition(i, elapsed)
	}
}
