// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/reelfeed/reelfeed/constant"
	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable used to override the default configuration directory.
const EnvConfigPath = "REELFEED_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the primary configuration directory.
// REELFEED_CONFIG_PATH takes precedence over the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Reelfeed))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Reelfeed))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the file holding remembered playback positions.
func History() string {
	return filepath.Join(Config(), "positions.json")
}

// Responses resolves the directory caching catalog API responses.
func Responses() string {
	return ensureDir(filepath.Join(Cache(), "responses"))
}

// Temp resolves a volatile directory for mpv IPC sockets and other transient artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Reelfeed))
}

// Sockets resolves the directory holding the mpv IPC sockets of this process.
// Each running reelfeed owns the subdirectory of Temp named after its pid.
func Sockets() string {
	return ensureDir(filepath.Join(Temp(), strconv.Itoa(os.Getpid())))
}

// Queries resolves the file holding previously used search queries.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}
