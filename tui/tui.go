// Package tui is the terminal feed: one video per page, scrolled with the
// keyboard or the mouse wheel, with mpv rendering the visible one.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/player"
)

// Options are the collaborators of the feed screen.
type Options struct {
	Source  feed.Source
	Store   feed.PositionStore
	Factory player.Factory
}

// Run shows the feed until the user quits. Every engine is closed on return.
func Run(options *Options) error {
	bubble := newBubble(options)
	program := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion())
	bubble.attach(programLoop{program: program})

	_, err := program.Run()
	bubble.controller.Close()
	return err
}
