package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// runMsg carries work posted to the feed loop. Update runs it.
type runMsg struct {
	fn func()
}

// programLoop implements feed.Loop on top of the bubbletea event loop.
type programLoop struct {
	program *tea.Program
}

// Post blocks until the program accepts the message, so it must not be
// called from Update.
func (l programLoop) Post(fn func()) {
	l.program.Send(runMsg{fn: fn})
}

func (l programLoop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}
