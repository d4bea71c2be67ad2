// Package feed coordinates a paged feed of videos so that exactly one of
// them, the one on the visible page, is playing at any time.
package feed

import "time"

// Item is one entry of the feed. Title and SourceURL never change after load;
// LastPosition is written through the position sink installed at bind time.
type Item struct {
	// ID is the source-specific identifier. It may be empty.
	ID           string
	Title        string
	SourceURL    string
	LastPosition time.Duration
	// Duration is what the source advertises, if anything. Playback never relies on it.
	Duration time.Duration
}

// Key identifies the item across sessions.
func (i Item) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.SourceURL
}
