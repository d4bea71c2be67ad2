// Package cache keeps decoded API responses on disk for a limited time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/where"
)

// Key derives a stable file name from the parts of a request.
func Key(parts ...string) string {
	normalized := strings.ToLower(strings.Join(parts, "\x1f"))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry for key into target when it exists and is younger than ttl.
func Read(key string, ttl time.Duration, target interface{}) bool {
	if ttl <= 0 {
		return false
	}

	path := filepath.Join(where.Responses(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > ttl {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.Debugf("cache: discarding %s: %v", key, err)
		return false
	}
	return true
}

// Write stores data under key.
func Write(key string, data interface{}) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return filesystem.WriteAtomic(filepath.Join(where.Responses(), key), encoded)
}

// CollectGarbage removes entries older than ttl in the background.
func CollectGarbage(ttl time.Duration) {
	go func() {
		_ = filesystem.API().Walk(where.Responses(), func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if time.Since(info.ModTime()) > ttl {
				_ = filesystem.API().Remove(path)
			}
			return nil
		})
	}()
}

// Clear removes every entry.
func Clear() error {
	return filesystem.API().RemoveAll(where.Responses())
}
