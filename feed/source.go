package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/mo"
)

var (
	// ErrFetch marks a catalog that could not be retrieved.
	ErrFetch = errors.New("fetch failed")
	// ErrParse marks a catalog that was retrieved but could not be decoded.
	ErrParse = errors.New("parse failed")
	// ErrUnbound is returned by transport controls on a slot without media.
	ErrUnbound = errors.New("slot is not bound")
)

// FetchResult is the outcome of a catalog fetch: the items, or an error
// wrapping ErrFetch or ErrParse.
type FetchResult = mo.Result[[]Item]

// Fetched is a successful FetchResult.
func Fetched(items []Item) FetchResult {
	return mo.Ok(items)
}

// FetchFailure wraps err as a fetch failure.
func FetchFailure(err error) FetchResult {
	return mo.Err[[]Item](fmt.Errorf("%w: %w", ErrFetch, err))
}

// ParseFailure wraps err as a parse failure.
func ParseFailure(err error) FetchResult {
	return mo.Err[[]Item](fmt.Errorf("%w: %w", ErrParse, err))
}

// Source provides the catalog. Fetch blocks and is always called off the loop.
type Source interface {
	Fetch(ctx context.Context) FetchResult
}

// PositionStore persists playback positions between sessions.
type PositionStore interface {
	// Position returns the stored position of item, if any.
	Position(item Item) (time.Duration, bool)
	Save(items ...Item) error
}
