package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Format selects how the catalog is written.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatPlaylist Format = "playlist"
)

// AvailableFormats lists every Format in the order shown in help.
func AvailableFormats() []string {
	return []string{string(FormatPlain), string(FormatTable), string(FormatJSON), string(FormatPlaylist)}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(AvailableFormats(), string(f)) {
		return "", fmt.Errorf("unknown format %q, available: %s", s, strings.Join(AvailableFormats(), ", "))
	}
	return f, nil
}

// Selector narrows the catalog down to the entries worth printing.
type Selector func(entries []*Entry) []*Entry

type Options struct {
	Out    io.Writer
	Source feed.Source
	// Store restores remembered positions into the output. May be nil.
	Store feed.PositionStore
	// Label names the catalog in JSON output, e.g. the search query.
	Label    string
	Format   Format
	Selector mo.Option[Selector]
	// Filter keeps only entries whose title fuzzy-matches it.
	Filter string
	// Width caps the table width. Zero leaves it unbounded.
	Width   int
	Colored bool
}

// ParseSelector understands "first", "last", "all", a single index ("3"),
// an inclusive range ("1-5") and a title substring ("@beach@").
func ParseSelector(description string) (Selector, error) {
	description = strings.TrimSpace(description)

	switch description {
	case "all", "":
		return func(entries []*Entry) []*Entry {
			return entries
		}, nil
	case "first":
		return func(entries []*Entry) []*Entry {
			if len(entries) == 0 {
				return entries
			}
			return entries[:1]
		}, nil
	case "last":
		return func(entries []*Entry) []*Entry {
			if len(entries) == 0 {
				return entries
			}
			return entries[len(entries)-1:]
		}, nil
	}

	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(entries []*Entry) []*Entry {
			return lo.Filter(entries, func(e *Entry, _ int) bool {
				return strings.Contains(strings.ToLower(e.Title), sub)
			})
		}, nil
	}

	if from, to, found := strings.Cut(description, "-"); found {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid range: %s", description)
		}

		return func(entries []*Entry) []*Entry {
			first := util.Min(start, uint64(len(entries)))
			last := util.Min(end+1, uint64(len(entries)))
			if first >= last {
				return []*Entry{}
			}
			return entries[first:last]
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(entries []*Entry) []*Entry {
			if uint64(len(entries)) <= idx {
				return []*Entry{}
			}
			return []*Entry{entries[idx]}
		}, nil
	}

	return nil, fmt.Errorf("invalid selector: %s", description)
}
