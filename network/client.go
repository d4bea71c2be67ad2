// Package network holds the HTTP client shared by catalog sources and the release check.
package network

import (
	"net/http"
	"time"
)

// Client is shared so that connections to the catalog API are reused
// across reloads. Requests should still carry their own context deadline.
var Client = &http.Client{
	Timeout:   30 * time.Second,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 90 * time.Second
	t.ResponseHeaderTimeout = 15 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}
