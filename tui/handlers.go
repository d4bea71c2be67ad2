package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/internal/ui"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/open"
)

// wheelSettledMsg fires once the wheel has been still for the settle period.
type wheelSettledMsg struct {
	seq int
}

// load starts fetching the catalog. The result arrives as a runMsg.
func (b *statefulBubble) load() tea.Cmd {
	b.setState(loadingState)
	b.controller.Load(b.ctx)
	return b.spinnerC.Tick
}

// synced moves between loading, empty and feed once posted work has run.
func (b *statefulBubble) synced() tea.Cmd {
	if b.state != loadingState || b.controller.Loading() {
		return nil
	}

	if b.controller.Catalog().Len() == 0 {
		b.setState(emptyState)
		if err := b.controller.Err(); err != nil {
			return ui.Notify("%s", err)
		}
		return nil
	}

	b.setState(feedState)
	return nil
}

// scrolled reports a scroll gesture to the controller. Keys end the gesture
// at rest; the wheel keeps decelerating until the settle timer fires.
func (b *statefulBubble) scrolled(moved, decelerate bool) tea.Cmd {
	if !moved {
		return nil
	}

	b.controller.DidEndDragging(decelerate)
	if !decelerate {
		return nil
	}

	b.wheelSeq++
	seq := b.wheelSeq
	return tea.Tick(b.wheelSettle, func(time.Time) tea.Msg {
		return wheelSettledMsg{seq: seq}
	})
}

func (b *statefulBubble) report(action string, err error) tea.Cmd {
	if err == nil || errors.Is(err, feed.ErrUnbound) {
		return nil
	}
	log.Warnf("%s: %v", action, err)
	return ui.Notify("%s failed", action)
}

func (b *statefulBubble) openVisible() tea.Cmd {
	item, ok := b.controller.Catalog().At(b.window.Page())
	if !ok {
		return nil
	}

	if err := open.Start(item.SourceURL); err != nil {
		return b.report("open", err)
	}
	return ui.Notify("Opened %s", item.Title)
}

func (b *statefulBubble) showIndex() tea.Cmd {
	items := make([]list.Item, 0, b.controller.Catalog().Len())
	for i, item := range b.controller.Catalog().Items() {
		items = append(items, &listItem{index: i, item: item, current: i == b.window.Page()})
	}

	cmd := b.indexC.SetItems(items)
	b.indexC.ResetFilter()
	b.indexC.Select(b.window.Page())
	b.setState(indexState)
	return cmd
}

func (b *statefulBubble) quit() tea.Cmd {
	b.controller.Close()
	return tea.Quit
}

func percentKey(s string) (float64, bool) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 0 || n > 9 {
		return 0, false
	}
	return float64(n) / 10, true
}
