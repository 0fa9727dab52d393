package tle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// ErrCacheMiss is returned by Cache.Load when no fresh copy exists.
var ErrCacheMiss = errors.New("tle: cache miss")

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Cache keeps downloaded TLE text on disk, one file per source name
// (a group such as "stations" or "catnr-25544").
type Cache struct {
	dir    string
	maxAge time.Duration
}

// NewCache stores files in dir. Files older than maxAge are treated as
// missing; maxAge <= 0 disables expiry.
func NewCache(dir string, maxAge time.Duration) *Cache {
	return &Cache{dir: dir, maxAge: maxAge}
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.dir, unsafeName.ReplaceAllString(name, "_")+".txt")
}

// Load returns the cached data for name and when it was written.
func (c *Cache) Load(name string, now time.Time) ([]byte, time.Time, error) {
	p := c.path(name)
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, ErrCacheMiss
		}
		return nil, time.Time{}, fmt.Errorf("stat cache file: %w", err)
	}

	written := info.ModTime()
	if c.maxAge > 0 && now.Sub(written) > c.maxAge {
		return nil, written, ErrCacheMiss
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading cache file: %w", err)
	}
	return data, written, nil
}

// Write replaces the cached data for name. The file is written to a temp
// name first so readers never see a partial file.
func (c *Cache) Write(name string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".tle-*")
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming cache file: %w", err)
	}
	return nil
}
