// Package inline prints the feed catalog without starting the interactive
// feed, for scripts and quick inspection.
package inline

import (
	"context"
	"fmt"
	"os"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/playlist"
	"github.com/samber/lo"
)

// Run fetches the catalog once and writes it in the requested format.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Format == "" {
		options.Format = FormatPlain
	}

	items, err := options.Source.Fetch(ctx).Get()
	if err != nil {
		return err
	}

	entries := make([]*Entry, len(items))
	for i, item := range items {
		if options.Store != nil {
			if position, ok := options.Store.Position(item); ok {
				item.LastPosition = position
			}
		}
		entries[i] = newEntry(i, item)
	}

	entries = narrow(entries, options)
	log.With(log.Fields{"total": len(items), "shown": len(entries)}).Debugf("inline: catalog narrowed")

	switch options.Format {
	case FormatJSON:
		data, err := asJson(entries, options.Label)
		if err != nil {
			return err
		}
		_, err = options.Out.Write(append(data, '\n'))
		return err
	case FormatPlaylist:
		return playlist.Encode(options.Out, lo.Map(entries, func(e *Entry, _ int) feed.Item {
			return e.item
		}))
	case FormatTable:
		_, err := fmt.Fprintln(options.Out, renderTable(entries, options.Width, options.Colored))
		return err
	default:
		for _, e := range entries {
			if _, err := fmt.Fprintf(options.Out, "%s\t%s\n", e.Title, e.URL); err != nil {
				return err
			}
		}
		return nil
	}
}

func narrow(entries []*Entry, options *Options) []*Entry {
	if options.Filter != "" {
		entries = lo.Filter(entries, func(e *Entry, _ int) bool {
			return fuzzy.MatchFold(options.Filter, e.Title) || fuzzy.MatchFold(options.Filter, e.ID)
		})
	}

	if options.Selector.IsPresent() {
		entries = options.Selector.MustGet()(entries)
	}

	return entries
}
