// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/reelfeed/reelfeed/color"
	"github.com/reelfeed/reelfeed/constant"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Reelfeed + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.SourceKind, "pexels", "Catalog source for the feed.\nAvailable options are: pexels, playlist")
	register(key.SourcePlaylist, "", "Path to a TOML playlist file, used when source.kind is playlist")
	register(key.PexelsAPIKey, "", "Pexels API key.\nLeave empty to read it from the system keyring (see \"reelfeed auth\")")
	register(key.PexelsQuery, "nature", "Search query used to build the feed")
	register(key.PexelsPerPage, 10, "Number of videos to request per feed load (1-80)")
	register(key.PexelsQuality, "hd", "Preferred video file quality.\nAvailable options are: hd, sd, uhd")
	register(key.PexelsCacheTTL, "10m", "How long a fetched catalog is reused before asking Pexels again.\nSet to 0s to disable")
	register(key.PexelsQuerySuggestions, true, "Remember search queries and suggest them when completing --query")
	register(key.FeedSettleDelay, "300ms", "Delay after the catalog loads before the first visible video starts")
	register(key.FeedFetchTimeout, "15s", "Give up on a catalog fetch after this long.\nSet to 0s to wait forever")
	register(key.FeedResume, true, "Resume videos from their last known position")
	register(key.FeedPrefetch, 1, "Number of neighbouring videos kept loaded above and below the visible one")
	register(key.PlayerBinary, "mpv", "Path or name of the mpv executable")
	register(key.PlayerMuted, true, "Start videos muted")
	register(key.PlayerLoop, true, "Loop the visible video when it reaches the end")
	register(key.PlayerSkipSeconds, 10, "Seconds to jump when skipping backward or forward")
	register(key.PlayerProgressInterval, "1s", "How often playback progress is reported")
	register(key.TUICellWidth, 9, "Width of a terminal cell in pixels, used to size video windows")
	register(key.TUICellHeight, 18, "Height of a terminal cell in pixels, used to size video windows")
	register(key.TUIWheelSettle, "250ms", "Quiet period after the last mouse wheel event before the scroll counts as settled")
	register(key.TUIShowURLs, false, "Show the source URL under the video title")
	register(key.HistorySavePositions, true, "Remember playback positions between runs")
	register(key.HistorySaveInterval, "5s", "How often the position of the playing video is saved.\nSet to 0s to save only when leaving a video")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
