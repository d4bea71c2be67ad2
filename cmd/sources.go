package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/reelfeed/reelfeed/auth"
	"github.com/reelfeed/reelfeed/color"
	"github.com/reelfeed/reelfeed/config"
	"github.com/reelfeed/reelfeed/constant"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/history"
	"github.com/reelfeed/reelfeed/icon"
	"github.com/reelfeed/reelfeed/key"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/pexels"
	"github.com/reelfeed/reelfeed/playlist"
	"github.com/reelfeed/reelfeed/query"
	"github.com/reelfeed/reelfeed/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	sourcePexels   = "pexels"
	sourcePlaylist = "playlist"
)

var sourceKinds = []string{sourcePexels, sourcePlaylist}

// newSource builds the configured catalog source and a label describing it.
func newSource() (feed.Source, string, error) {
	switch kind := strings.ToLower(viper.GetString(key.SourceKind)); kind {
	case sourcePexels:
		apiKey, ok := auth.ResolveKey()
		if !ok {
			field := config.Default[key.PexelsAPIKey]
			return nil, "", fmt.Errorf("%w: run \"%s auth set\" or export %s", pexels.ErrNoKey, constant.Reelfeed, field.Env())
		}

		q := viper.GetString(key.PexelsQuery)
		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %v", err)
		}

		return pexels.New(pexels.Options{
			APIKey:   apiKey,
			Query:    q,
			PerPage:  lo.Clamp(viper.GetInt(key.PexelsPerPage), 1, 80),
			Quality:  viper.GetString(key.PexelsQuality),
			CacheTTL: config.Duration(key.PexelsCacheTTL),
		}), q, nil
	case sourcePlaylist:
		path := viper.GetString(key.SourcePlaylist)
		if path == "" {
			return nil, "", errors.New("no playlist file given, set " + key.SourcePlaylist + " or pass --playlist")
		}
		return playlist.New(path), path, nil
	default:
		return nil, "", fmt.Errorf("unknown source %q, available: %s", kind, strings.Join(sourceKinds, ", "))
	}
}

// newPositionStore returns nil when positions should not be remembered.
func newPositionStore() feed.PositionStore {
	if !viper.GetBool(key.HistorySavePositions) {
		return nil
	}
	return history.NewStore()
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.SetOut(os.Stdout)
}

// sourcesCmd shows which catalog sources exist and whether they are usable.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Display the available catalog sources",
	Run: func(cmd *cobra.Command, args []string) {
		current := strings.ToLower(viper.GetString(key.SourceKind))

		for _, kind := range sourceKinds {
			marker := " "
			if kind == current {
				marker = style.Fg(color.Green)("*")
			}

			var status string
			switch kind {
			case sourcePexels:
				if _, ok := auth.ResolveKey(); ok {
					status = style.Fg(color.Green)("api key set")
				} else {
					status = style.Fg(color.Red)("no api key")
				}
			case sourcePlaylist:
				if path := viper.GetString(key.SourcePlaylist); path != "" {
					status = style.Faint(path)
				} else {
					status = style.Fg(color.Red)("no playlist file")
				}
			}

			cmd.Printf("%s %s %s\n", marker, style.Bold(kind), status)
		}

		if !lo.Contains(sourceKinds, current) {
			cmd.Printf("\n%s %s is not a known source\n", icon.Get(icon.Fail), current)
		}
	},
}
