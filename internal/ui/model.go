// Package ui shows short-lived notifications at the bottom of the screen.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/reelfeed/reelfeed/style"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Model holds the current notification.
type Model struct {
	notification string
	// seq identifies the latest notification so that an older clear does
	// not erase a newer one.
	seq int
}

type notifyMsg string

type clearMsg struct {
	seq int
}

// Notify returns a command that shows a notification.
func Notify(format string, args ...interface{}) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return notifyMsg(text)
	}
}

// Update handles notification messages and reports whether msg was one.
func (m *Model) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case notifyMsg:
		m.seq++
		m.notification = string(msg)
		seq := m.seq
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return clearMsg{seq: seq}
		}), true
	case clearMsg:
		if msg.seq == m.seq {
			m.notification = ""
		}
		return nil, true
	}
	return nil, false
}

// Current returns the visible notification, if any.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
