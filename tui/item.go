package tui

import (
	"fmt"
	"time"

	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/icon"
	"github.com/reelfeed/reelfeed/style"
	"github.com/reelfeed/reelfeed/util"
)

// listItem is one video in the index list.
type listItem struct {
	index   int
	item    feed.Item
	current bool
}

func (t *listItem) Title() string {
	title := fmt.Sprintf("%d. %s", t.index+1, t.item.Title)
	if t.current {
		title = fmt.Sprintf("%s %s", title, style.Fg(style.PlayingColor)(icon.Get(icon.Video)))
	}
	return title
}

func (t *listItem) Description() string {
	var position string
	if t.item.LastPosition > 0 {
		position = "at " + util.FormatClock(t.item.LastPosition.Seconds())
	}

	if t.item.Duration > 0 {
		if position != "" {
			position += " of "
		}
		position += t.item.Duration.Round(time.Second).String()
	}

	if position == "" {
		return style.Faint(t.item.SourceURL)
	}
	return position
}

func (t *listItem) FilterValue() string {
	return t.item.Title
}
