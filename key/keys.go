// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog Source - these keys select where the feed gets its videos from.
const (
	SourceKind     = "source.kind"
	SourcePlaylist = "source.playlist"
)

// Pexels Catalog - these keys configure the Pexels video search source.
const (
	PexelsAPIKey   = "pexels.api_key"
	PexelsQuery    = "pexels.query"
	PexelsPerPage  = "pexels.per_page"
	PexelsQuality  = "pexels.quality"
	PexelsCacheTTL = "pexels.cache_ttl"

	PexelsQuerySuggestions = "pexels.query_suggestions"
)

// Feed Behaviour - these keys tune loading, settling and resuming.
const (
	FeedSettleDelay  = "feed.settle_delay"
	FeedFetchTimeout = "feed.fetch_timeout"
	FeedResume       = "feed.resume"
	FeedPrefetch     = "feed.prefetch"
)

// Media Playback - these keys configure the mpv engines backing each slot.
const (
	PlayerBinary           = "player.binary"
	PlayerMuted            = "player.muted"
	PlayerLoop             = "player.loop"
	PlayerSkipSeconds      = "player.skip_seconds"
	PlayerProgressInterval = "player.progress_interval"
)

// Terminal User Interface (TUI) - these keys define how the feed is laid out on screen.
const (
	TUICellWidth   = "tui.cell_width"
	TUICellHeight  = "tui.cell_height"
	TUIWheelSettle = "tui.wheel_settle"
	TUIShowURLs    = "tui.show_urls"
)

// History Tracking - these keys configure persistence of playback positions.
const (
	HistorySavePositions = "history.save_positions"
	HistorySaveInterval  = "history.save_interval"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
