package inline

import (
	"encoding/json"
	"time"

	"github.com/reelfeed/reelfeed/feed"
)

// Entry is one catalog item as printed by the inline mode.
type Entry struct {
	// Index is the position of the item in the full catalog.
	Index int    `json:"index"`
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	// Duration is the length advertised by the source, in seconds. Zero when unknown.
	Duration float64 `json:"duration"`
	// LastPosition is the remembered playback position, in seconds.
	LastPosition float64 `json:"last_position"`

	item feed.Item
}

// Output is the JSON document written by FormatJSON.
type Output struct {
	Source string   `json:"source"`
	Result []*Entry `json:"result"`
}

func newEntry(index int, item feed.Item) *Entry {
	return &Entry{
		Index:        index,
		ID:           item.Key(),
		Title:        item.Title,
		URL:          item.SourceURL,
		Duration:     seconds(item.Duration),
		LastPosition: seconds(item.LastPosition),
		item:         item,
	}
}

func seconds(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return d.Seconds()
}

func asJson(entries []*Entry, label string) ([]byte, error) {
	if entries == nil {
		entries = []*Entry{}
	}

	return json.Marshal(&Output{
		Source: label,
		Result: entries,
	})
}
