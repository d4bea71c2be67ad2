// Package pexels provides the feed catalog from the Pexels video search API.
package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/reelfeed/reelfeed/constant"
	"github.com/reelfeed/reelfeed/feed"
	"github.com/reelfeed/reelfeed/internal/cache"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/network"
	"github.com/reelfeed/reelfeed/util"
	"github.com/samber/lo"
)

// DefaultBaseURL is the public Pexels API.
const DefaultBaseURL = "https://api.pexels.com"

// ErrNoKey is returned when no API key is configured.
var ErrNoKey = errors.New("pexels api key is not set")

// Options configures a Client.
type Options struct {
	APIKey  string
	Query   string
	PerPage int
	// Quality selects which rendition of each video is used, e.g. "hd" or "sd".
	Quality string
	// CacheTTL keeps successful responses on disk. Zero disables caching.
	CacheTTL time.Duration

	BaseURL    string
	HTTPClient *http.Client
}

// Client is a feed.Source backed by Pexels.
type Client struct {
	options Options
}

// New returns a client, filling in defaults for empty options.
func New(options Options) *Client {
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	if options.HTTPClient == nil {
		options.HTTPClient = network.Client
	}
	if options.PerPage <= 0 {
		options.PerPage = 10
	}
	if options.Quality == "" {
		options.Quality = "hd"
	}
	return &Client{options: options}
}

type response struct {
	Videos []video `json:"videos"`
}

type video struct {
	ID         int    `json:"id"`
	URL        string `json:"url"`
	Duration   int    `json:"duration"`
	VideoFiles []file `json:"video_files"`
}

type file struct {
	Quality string `json:"quality"`
	Link    string `json:"link"`
}

// Fetch implements feed.Source.
func (c *Client) Fetch(ctx context.Context) feed.FetchResult {
	if c.options.APIKey == "" {
		return feed.FetchFailure(ErrNoKey)
	}

	key := cache.Key(c.options.BaseURL, c.options.Query, strconv.Itoa(c.options.PerPage))

	var resp response
	if cache.Read(key, c.options.CacheTTL, &resp) {
		log.With(log.Fields{"query": c.options.Query}).Debugf("pexels: using cached response")
		return feed.Fetched(c.items(resp))
	}

	body, err := c.get(ctx)
	if err != nil {
		return feed.FetchFailure(err)
	}

	if err := json.Unmarshal(body, &resp); err != nil {
		return feed.ParseFailure(err)
	}

	if c.options.CacheTTL > 0 {
		if err := cache.Write(key, resp); err != nil {
			log.Warnf("pexels: cache response: %v", err)
		}
	}

	return feed.Fetched(c.items(resp))
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	query := url.Values{}
	query.Set("query", c.options.Query)
	query.Set("per_page", strconv.Itoa(c.options.PerPage))

	endpoint := fmt.Sprintf("%s/videos/search?%s", c.options.BaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.options.APIKey)
	req.Header.Set("User-Agent", constant.UserAgent)

	log.With(log.Fields{"query": c.options.Query, "per_page": c.options.PerPage}).Infof("pexels: searching videos")

	res, err := c.options.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(res.Body.Close)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("pexels: unexpected status %s", res.Status)
	}

	return io.ReadAll(res.Body)
}

// items keeps every video that has a rendition of the configured quality.
func (c *Client) items(resp response) []feed.Item {
	return lo.FilterMap(resp.Videos, func(v video, _ int) (feed.Item, bool) {
		f, ok := lo.Find(v.VideoFiles, func(f file) bool {
			return f.Quality == c.options.Quality && f.Link != ""
		})
		if !ok {
			return feed.Item{}, false
		}

		if _, err := url.Parse(f.Link); err != nil {
			return feed.Item{}, false
		}

		return feed.Item{
			ID:        "pexels:" + strconv.Itoa(v.ID),
			Title:     fmt.Sprintf("Video %d", v.ID),
			SourceURL: f.Link,
			Duration:  time.Duration(v.Duration) * time.Second,
		}, true
	})
}
