// Package history remembers where each video was left off across sessions.
package history

import (
	"fmt"
	"time"

	"github.com/metafates/gache"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/reelfeed/reelfeed/where"
)

// SavedPosition is one remembered playback position.
type SavedPosition struct {
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Seconds   float64   `json:"seconds"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *SavedPosition) String() string {
	return fmt.Sprintf("%s @ %s", s.Title, time.Duration(s.Seconds*float64(time.Second)).Round(time.Second))
}

// Store is a feed.PositionStore persisted with gache.
type Store struct {
	cacher *gache.Cache[map[string]*SavedPosition]
}

// NewStore opens the store at where.History().
func NewStore() *Store {
	return NewStoreAt(where.History())
}

// NewStoreAt opens a store at path.
func NewStoreAt(path string) *Store {
	return &Store{
		cacher: gache.New[map[string]*SavedPosition](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Get returns every saved position by key.
func (s *Store) Get() (map[string]*SavedPosition, error) {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedPosition), nil
	}
	return cached, nil
}

// Position implements feed.PositionStore.
func (s *Store) Position(item feed.Item) (time.Duration, bool) {
	saved, err := s.Get()
	if err != nil {
		return 0, false
	}

	record, ok := saved[item.Key()]
	if !ok || record.Seconds <= 0 {
		return 0, false
	}
	return time.Duration(record.Seconds * float64(time.Second)), true
}

// Save implements feed.PositionStore. Items that never played are skipped,
// but an item rewound to the start replaces its earlier position.
func (s *Store) Save(items ...feed.Item) error {
	saved, err := s.Get()
	if err != nil {
		return err
	}

	changed := false
	for _, item := range items {
		if item.Key() == "" {
			continue
		}

		if item.LastPosition <= 0 {
			if _, ok := saved[item.Key()]; ok {
				delete(saved, item.Key())
				changed = true
			}
			continue
		}

		saved[item.Key()] = &SavedPosition{
			Key:       item.Key(),
			Title:     item.Title,
			URL:       item.SourceURL,
			Seconds:   item.LastPosition.Seconds(),
			UpdatedAt: time.Now(),
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return s.cacher.Set(saved)
}

// Remove forgets the position saved under key.
func (s *Store) Remove(key string) error {
	saved, err := s.Get()
	if err != nil {
		return err
	}

	delete(saved, key)
	return s.cacher.Set(saved)
}

// Clear forgets every position.
func (s *Store) Clear() error {
	return s.cacher.Set(make(map[string]*SavedPosition))
}
