package tui

import (
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, handled := b.notifier.Update(msg); handled {
		return b, cmd
	}

	switch msg := msg.(type) {
	case runMsg:
		msg.fn()
		return b, b.synced()
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case spinner.TickMsg:
		if b.state != loadingState {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, b.quit()
		}
	}

	switch b.state {
	case feedState:
		return b.updateFeed(msg)
	case indexState:
		return b.updateIndex(msg)
	case emptyState:
		return b.updateEmpty(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateFeed(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wheelSettledMsg:
		if msg.seq == b.wheelSeq {
			b.controller.DidSettleAfterScroll()
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			return b, b.scrolled(b.window.Scroll(1), true)
		case tea.MouseButtonWheelUp:
			return b, b.scrolled(b.window.Scroll(-1), true)
		case tea.MouseButtonLeft:
			b.controller.Tap()
		}
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, b.quit()
		case bubblesKey.Matches(msg, b.keymap.next):
			return b, b.scrolled(b.window.Scroll(1), false)
		case bubblesKey.Matches(msg, b.keymap.prev):
			return b, b.scrolled(b.window.Scroll(-1), false)
		case bubblesKey.Matches(msg, b.keymap.top):
			return b, b.scrolled(b.window.JumpTo(0), false)
		case bubblesKey.Matches(msg, b.keymap.bottom):
			return b, b.scrolled(b.window.JumpTo(b.window.Count()-1), false)
		case bubblesKey.Matches(msg, b.keymap.tap):
			b.controller.Tap()
		case bubblesKey.Matches(msg, b.keymap.skipBack):
			return b, b.report("rewind", b.controller.Skip(-b.skip))
		case bubblesKey.Matches(msg, b.keymap.skipForward):
			return b, b.report("forward", b.controller.Skip(b.skip))
		case bubblesKey.Matches(msg, b.keymap.scrub):
			if fraction, ok := percentKey(msg.String()); ok {
				return b, b.report("seek", b.controller.Scrub(fraction))
			}
		case bubblesKey.Matches(msg, b.keymap.reload):
			return b, b.load()
		case bubblesKey.Matches(msg, b.keymap.openURL):
			return b, b.openVisible()
		case bubblesKey.Matches(msg, b.keymap.index):
			return b, b.showIndex()
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		}
	}

	return b, nil
}

func (b *statefulBubble) updateIndex(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && b.indexC.FilterState() != list.Filtering {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.setState(feedState)
			if item, ok := b.indexC.SelectedItem().(*listItem); ok {
				return b, b.scrolled(b.window.JumpTo(item.index), false)
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back) && b.indexC.FilterState() == list.Unfiltered:
			b.setState(feedState)
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.indexC, cmd = b.indexC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateEmpty(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.reload):
			return b, b.load()
		case bubblesKey.Matches(msg, b.keymap.quit), strings.EqualFold(msg.String(), "esc"):
			return b, b.quit()
		}
	}
	return b, nil
}
