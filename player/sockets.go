package player

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/reelfeed/reelfeed/filesystem"
	"github.com/reelfeed/reelfeed/log"
	"github.com/reelfeed/reelfeed/where"
)

// SweepSockets removes the socket directories of reelfeed processes that are
// no longer running. Directories of live processes are left alone.
func SweepSockets() {
	removed, err := sweepSockets(where.Temp(), processAlive)
	if err != nil {
		log.Warnf("sweeping stale sockets: %v", err)
		return
	}
	if len(removed) > 0 {
		log.With(log.Fields{"dirs": removed}).Debugf("removed stale socket directories")
	}
}

func sweepSockets(root string, alive func(pid int) bool) ([]string, error) {
	fs := filesystem.API()
	entries, err := fs.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 || pid == os.Getpid() || alive(pid) {
			continue
		}

		path := filepath.Join(root, entry.Name())
		if err := fs.RemoveAll(path); err != nil {
			return removed, err
		}
		removed = append(removed, path)
	}

	return removed, nil
}
