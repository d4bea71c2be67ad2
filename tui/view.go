package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/icon"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/style"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case feedState:
		output = b.viewFeed()
	case emptyState:
		output = b.viewEmpty()
	case indexState:
		output = listExtraPaddingStyle.Render(b.indexC.View())
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(true, []string{
		style.Title("Loading"),
		"",
		b.spinnerC.View() + " Fetching videos...",
	})
}

func (b *statefulBubble) viewEmpty() string {
	lines := []string{
		style.ErrorTitle("No videos"),
		"",
	}

	if err := b.controller.Err(); err != nil {
		lines = append(lines, icon.Get(icon.Fail)+" "+wrap.String(err.Error(), b.width))
	} else {
		lines = append(lines, "The source returned nothing to play.")
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewFeed() string {
	item, _ := b.controller.Catalog().At(b.window.Page())
	slot := b.window.Visible()

	lines := []string{
		style.Title("reelfeed") + " " + style.Faint(fmt.Sprintf("%d/%d", b.window.Page()+1, b.window.Count())),
		"",
		style.Truncate(b.width)(statusIcon(slot) + " " + style.Bold(item.Title)),
	}

	if viper.GetBool(key.TUIShowURLs) {
		lines = append(lines, style.Truncate(b.width)(style.Faint(item.SourceURL)))
	}

	lines = append(lines, "", b.viewProgress(slot))

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewProgress(slot *feed.Slot) string {
	if slot == nil {
		return style.Fg(style.ErrorColor)("Could not start the player")
	}

	if err := slot.Failed(); err != nil {
		return style.Fg(style.ErrorColor)(wrap.String("Unplayable: "+err.Error(), b.width))
	}

	display := slot.Display()
	total := display.Total
	if total == "" {
		total = "--:--"
	}

	return fmt.Sprintf("%s %s / %s",
		b.progressC.ViewAs(display.Fraction),
		display.Elapsed,
		style.Faint(total),
	)
}

func statusIcon(slot *feed.Slot) string {
	switch {
	case slot == nil, slot.Failed() != nil:
		return style.Fg(style.ErrorColor)(icon.Get(icon.Broken))
	case slot.State() == feed.Playing:
		return style.Fg(style.PlayingColor)(icon.Get(icon.Play))
	default:
		return style.Fg(style.PausedColor)(icon.Get(icon.Pause))
	}
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
