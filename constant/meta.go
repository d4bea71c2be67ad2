// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Reelfeed is the canonical application identifier used for filesystem paths and CLI branding.
	Reelfeed = "reelfeed"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is the HTTP User-Agent sent to catalog sources.
	UserAgent = Reelfeed + "/" + Version
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
