// Package playlist provides the feed catalog from a local TOML file:
//
//	[[video]]
//	title = "Waves"
//	url = "https://example.com/waves.mp4"
package playlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/util"
)

// Entry is one [[video]] table.
type Entry struct {
	ID    string `toml:"id,omitempty"`
	Title string `toml:"title"`
	URL   string `toml:"url"`
	// Seconds is the advertised duration. It is informational.
	Seconds int `toml:"seconds,omitempty"`
}

type document struct {
	Videos []Entry `toml:"video"`
}

// Source is a feed.Source reading a playlist file.
type Source struct {
	Path string
}

func New(path string) *Source {
	return &Source{Path: path}
}

// Fetch implements feed.Source. A missing file is a fetch failure and
// invalid TOML a parse failure.
func (s *Source) Fetch(ctx context.Context) feed.FetchResult {
	if err := ctx.Err(); err != nil {
		return feed.FetchFailure(err)
	}

	if s.Path == "" {
		return feed.FetchFailure(errors.New("playlist path is not set"))
	}

	file, err := filesystem.API().Open(s.Path)
	if err != nil {
		return feed.FetchFailure(fmt.Errorf("open playlist: %w", err))
	}
	defer util.Ignore(file.Close)

	items, err := Decode(file)
	if err != nil {
		return feed.ParseFailure(err)
	}

	log.With(log.Fields{"path": s.Path, "videos": len(items)}).Infof("playlist: loaded")
	return feed.Fetched(items)
}

// Decode reads a playlist. Entries without a URL are an error; entries
// without a title are named after their position.
func Decode(r io.Reader) ([]feed.Item, error) {
	var doc document
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse playlist: %w", err)
	}

	items := make([]feed.Item, 0, len(doc.Videos))
	for i, entry := range doc.Videos {
		link := strings.TrimSpace(entry.URL)
		if link == "" {
			return nil, fmt.Errorf("parse playlist: video %d has no url", i+1)
		}

		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = fmt.Sprintf("Video %d", i+1)
		}

		items = append(items, feed.Item{
			ID:        entry.ID,
			Title:     title,
			SourceURL: link,
			Duration:  time.Duration(entry.Seconds) * time.Second,
		})
	}

	return items, nil
}

// Encode writes items as a playlist that Decode reads back.
func Encode(w io.Writer, items []feed.Item) error {
	doc := document{Videos: make([]Entry, len(items))}
	for i, item := range items {
		doc.Videos[i] = Entry{
			ID:      item.ID,
			Title:   item.Title,
			URL:     item.SourceURL,
			Seconds: int(item.Duration / time.Second),
		}
	}

	return toml.NewEncoder(w).Encode(doc)
}
