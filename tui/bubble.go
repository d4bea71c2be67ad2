package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/reelfeed/reelfeed/config"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/internal/ui"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/style"
	"github.com/reelfeed/reelfeed/util"
	"github.com/spf13/viper"
)

// statefulBubble is the feed screen. It owns the controller and the window
// and is the only goroutine that touches them.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	indexC    list.Model
	notifier  *ui.Model

	ctx        context.Context
	controller *feed.Controller
	window     *window

	// wheelSeq tags settle timers so that only the last wheel event settles.
	wheelSeq    int
	wheelSettle time.Duration
	skip        time.Duration
	cellWidth   int
	cellHeight  int

	width, height int

	options *Options
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// attach wires the bubble to the feed loop. It must run before the program starts.
func (b *statefulBubble) attach(loop feed.Loop) {
	b.controller = feed.NewController(b.options.Source, loop, b.options.Store, feed.Options{
		SettleDelay:  config.Duration(key.FeedSettleDelay),
		FetchTimeout: config.Duration(key.FeedFetchTimeout),
		SaveInterval: config.Duration(key.HistorySaveInterval),
	})

	b.window = newWindow(b.controller, feed.SlotOptions{
		Factory:          b.options.Factory,
		Loop:             loop,
		ProgressInterval: config.Duration(key.PlayerProgressInterval),
		Resume:           viper.GetBool(key.FeedResume),
	}, viper.GetInt(key.FeedPrefetch))

	if b.width > 0 && b.height > 0 {
		b.window.Resize(b.region())
	}
}

// region converts the terminal size from cells to the pixels mpv expects.
func (b *statefulBubble) region() feed.Region {
	return feed.Region{
		Width:  b.width * b.cellWidth,
		Height: b.height * b.cellHeight,
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.indexC.SetSize(width-xx, height-yy)
	b.indexC.Help.Width = width - xx
	b.progressC.Width = util.Min(b.width, 80)
	b.helpC.Width = b.width

	if b.window != nil {
		b.window.Resize(b.region())
	}
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		keymap:      keymap,
		notifier:    &ui.Model{},
		ctx:         context.Background(),
		wheelSettle: config.Duration(key.TUIWheelSettle),
		skip:        time.Duration(viper.GetInt(key.PlayerSkipSeconds)) * time.Second,
		cellWidth:   util.Max(viper.GetInt(key.TUICellWidth), 1),
		cellHeight:  util.Max(viper.GetInt(key.TUICellHeight), 1),
		options:     options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.progressC = progress.New(progress.WithSolidFill(string(style.AccentColor)), progress.WithoutPercentage())

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.indexC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.indexC.Title = "Videos"
	bubble.indexC.Styles.Title = lipgloss.NewStyle().Foreground(style.Surface).Background(style.AccentColor).Padding(0, 1)
	bubble.indexC.KeyMap = keymap.forList()
	bubble.indexC.AdditionalShortHelpKeys = func() []bubblesKey.Binding {
		return []bubblesKey.Binding{keymap.confirm, keymap.back}
	}
	bubble.indexC.SetStatusBarItemName("video", "videos")
	bubble.indexC.SetShowPagination(false)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(loadingState)
	return &bubble
}
