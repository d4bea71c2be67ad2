package feed

import (
	"time"

	"github.com/reelfeed/reelfeed/player"
)

// Loop is the single logical thread every feed type runs on.
// Post and After may be called from any goroutine except the loop itself.
type Loop interface {
	Post(fn func())
	After(d time.Duration, fn func())
}

// Surface is the virtualized view holding the slots.
type Surface interface {
	// VisibleIndices lists the catalog indices on screen, topmost first.
	VisibleIndices() []int
	// SlotAt returns the slot bound to index i, binding one if needed.
	// It returns nil when no slot can be provided.
	SlotAt(i int) *Slot
	// Reload discards every binding and lays out n items.
	Reload(n int)
}

// Region is where a slot renders, in pixels.
type Region = player.Geometry
