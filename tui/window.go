package tui

import (
	"github.com/reelfeed/reelfeed/feed"
	"github.com/samber/lo"
)

// window is the virtualized surface of the feed: one page is visible and a
// fixed pool of slots is bound to the pages around it.
type window struct {
	controller *feed.Controller
	prefetch   int

	pool     []*feed.Slot
	assigned map[int]*feed.Slot

	page, count int
	region      feed.Region
}

func newWindow(controller *feed.Controller, options feed.SlotOptions, prefetch int) *window {
	prefetch = lo.Max([]int{prefetch, 0})

	w := &window{
		controller: controller,
		prefetch:   prefetch,
		pool:       make([]*feed.Slot, 1+2*prefetch),
		assigned:   make(map[int]*feed.Slot),
	}

	for i := range w.pool {
		w.pool[i] = feed.NewSlot(options)
	}

	controller.SetSurface(w)
	return w
}

// VisibleIndices implements feed.Surface.
func (w *window) VisibleIndices() []int {
	if w.count == 0 {
		return nil
	}
	return []int{w.page}
}

// SlotAt implements feed.Surface.
func (w *window) SlotAt(i int) *feed.Slot {
	if i < 0 || i >= w.count {
		return nil
	}

	if slot, ok := w.assigned[i]; ok {
		return slot
	}

	return w.bind(i)
}

// Reload implements feed.Surface.
func (w *window) Reload(n int) {
	for i, slot := range w.assigned {
		w.controller.Recycle(slot)
		delete(w.assigned, i)
	}

	w.count = n
	w.page = 0
	w.rebalance()
}

// Scroll moves by delta pages and reports whether the page changed.
func (w *window) Scroll(delta int) bool {
	return w.JumpTo(w.page + delta)
}

// JumpTo shows page i, clamped to the feed.
func (w *window) JumpTo(i int) bool {
	if w.count == 0 {
		return false
	}

	i = lo.Clamp(i, 0, w.count-1)
	if i == w.page {
		return false
	}

	w.page = i
	w.rebalance()
	return true
}

// Resize sets the on-screen region of the visible page.
func (w *window) Resize(region feed.Region) {
	w.region = region
	w.layout()
}

func (w *window) Page() int {
	return w.page
}

func (w *window) Count() int {
	return w.count
}

// Visible returns the slot on the visible page, if one is bound.
func (w *window) Visible() *feed.Slot {
	return w.assigned[w.page]
}

func (w *window) inRange(i int) bool {
	return i >= w.page-w.prefetch && i <= w.page+w.prefetch
}

// rebalance recycles slots that left the prefetch range and binds free
// slots to the pages that entered it, the visible page first.
func (w *window) rebalance() {
	for i, slot := range w.assigned {
		if !w.inRange(i) {
			w.controller.Recycle(slot)
			delete(w.assigned, i)
		}
	}

	if w.count > 0 {
		order := []int{w.page}
		for d := 1; d <= w.prefetch; d++ {
			order = append(order, w.page+d, w.page-d)
		}

		for _, i := range order {
			if i < 0 || i >= w.count {
				continue
			}
			if _, ok := w.assigned[i]; !ok {
				w.bind(i)
			}
		}
	}

	w.layout()
}

func (w *window) bind(i int) *feed.Slot {
	slot, ok := lo.Find(w.pool, func(s *feed.Slot) bool {
		return !lo.Contains(lo.Values(w.assigned), s)
	})
	if !ok {
		return nil
	}

	if i == w.page {
		slot.Resize(w.region)
	} else {
		slot.Resize(feed.Region{})
	}

	if err := w.controller.Bind(slot, i); err != nil {
		return nil
	}

	w.assigned[i] = slot
	return slot
}

// layout gives the visible slot the screen region and every other slot none.
func (w *window) layout() {
	for i, slot := range w.assigned {
		if i == w.page {
			slot.Resize(w.region)
		} else {
			slot.Resize(feed.Region{})
		}
	}
}
