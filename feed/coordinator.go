package feed

import (
	"errors"

	"github.com/reelfeed/reelfeed/log"
)

// Coordinator owns the reference to the playing slot. Going through it is
// the only way slots start playing, so at most one plays at a time.
type Coordinator struct {
	current *Slot
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Current returns the primary slot, or nil.
func (c *Coordinator) Current() *Slot {
	return c.current
}

// SetPrimary stops the current slot and plays candidate instead.
// A nil candidate stops playback. Setting the same slot again does nothing.
func (c *Coordinator) SetPrimary(candidate *Slot) {
	if candidate == c.current {
		return
	}

	if c.current != nil {
		stop(c.current)
	}

	c.current = candidate

	if candidate != nil {
		report("play", candidate.Play())
	}
}

// Tap toggles slot when it is the primary one and makes it primary otherwise.
func (c *Coordinator) Tap(slot *Slot) {
	if slot == nil {
		return
	}

	if slot == c.current {
		report("toggle", slot.ToggleOnTap())
		return
	}

	c.SetPrimary(slot)
}

// Release stops slot and forgets it if it is the primary one.
func (c *Coordinator) Release(slot *Slot) {
	if slot == nil || slot != c.current {
		return
	}

	stop(slot)
	c.current = nil
}

// stop pauses slot. An engine that refuses to pause may still be playing,
// so it is torn down rather than left running outside the coordinator.
func stop(slot *Slot) {
	err := slot.Stop()
	if err == nil || errors.Is(err, ErrUnbound) {
		return
	}

	report("stop", err)
	slot.Teardown()
}

func report(action string, err error) {
	if err != nil && !errors.Is(err, ErrUnbound) {
		log.Warnf("coordinator %s: %v", action, err)
	}
}
