// Package cache implements a time-boxed on-disk store for raw API response
// payloads. Each key maps to one file under the cache directory; freshness is
// derived from the file's modification time against a configured TTL.
//
// Cache failures are never fatal: a read or write error degrades to a miss so
// the caller falls back to the network.
package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Cache is a file-per-key response cache. Entries are overwritten on every
// Put and never proactively deleted, only treated as stale once their age
// exceeds the TTL.
type Cache struct {
	dir string
	ttl time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// New creates a cache rooted at dir with the given TTL. The directory is
// created if it does not exist; a failure there is deferred to the first
// Get/Put, which degrade to misses.
func New(dir string, ttl time.Duration) *Cache {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("Failed to create cache directory", "dir", dir, "error", err)
	}
	return &Cache{
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached payload for key if present and fresh. Stale,
// missing or unreadable entries all report a miss.
func (c *Cache) Get(key string) ([]byte, bool) {
	path := filepath.Join(c.dir, key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	if c.now().Sub(info.ModTime()) > c.ttl {
		slog.Debug("Cache entry expired", "key", key)
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Failed to read cache entry", "key", key, "error", err)
		return nil, false
	}

	slog.Debug("Using cached response", "key", key)
	return data, true
}

// Put stores payload under key, overwriting any previous entry. Write
// errors are logged and swallowed.
func (c *Cache) Put(key string, payload []byte) {
	path := filepath.Join(c.dir, key)

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		slog.Warn("Failed to write cache entry", "key", key, "error", err)
		return
	}
	slog.Debug("Saved response to cache", "key", key)
}
