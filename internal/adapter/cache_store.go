package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "colfmt.dev/pkg/colfmt/internal/model"
)

// cacheVersion is bumped whenever the meaning of cached entries changes.
// Caches written by another version are ignored.
const cacheVersion = 1

// CacheEntry records the state of a file after colfmt last left it formatted.
type CacheEntry struct {
	Hash string `yaml:"hash"`
	// Settings fingerprints the options the file was formatted with.
	Settings string `yaml:"settings,omitempty"`
}

// Cache maps an operation and a full path to the state of that file.
type Cache struct {
	Version int                                   `yaml:"version"`
	Entries map[m.Operation]map[string]CacheEntry `yaml:"entries"`
}

// NewCache returns an empty cache of the current version.
func NewCache() *Cache {
	return &Cache{Version: cacheVersion, Entries: map[m.Operation]map[string]CacheEntry{}}
}

// Fresh reports whether source is recorded with the same hash and settings.
func (c *Cache) Fresh(op m.Operation, source m.Source, settings string) bool {
	if source.Origin == nil {
		return false
	}

	entry, ok := c.Entries[op][string(source.Origin.FullPath)]

	return ok && entry.Hash == source.Origin.Hash && entry.Settings == settings
}

// Put records the formatted state of a file.
func (c *Cache) Put(op m.Operation, path m.Path, hash, settings string) {
	if c.Entries == nil {
		c.Entries = map[m.Operation]map[string]CacheEntry{}
	}

	if c.Entries[op] == nil {
		c.Entries[op] = map[string]CacheEntry{}
	}

	c.Entries[op][string(path)] = CacheEntry{Hash: hash, Settings: settings}
}

// Forget drops every entry of path.
func (c *Cache) Forget(path m.Path) {
	for _, entries := range c.Entries {
		delete(entries, string(path))
	}
}

// CacheStore persists the incremental cache between runs.
type CacheStore interface {
	Load(path m.Path) (*Cache, error)
	Save(path m.Path, cache *Cache) error
}

// YAMLCacheStore keeps the cache in a YAML file.
type YAMLCacheStore struct{}

// NewCacheStore constructs a YAMLCacheStore.
func NewCacheStore() *YAMLCacheStore {
	return &YAMLCacheStore{}
}

// Load reads the cache at path. A missing file, or one written by another
// cache version, yields an empty cache.
func (s *YAMLCacheStore) Load(path m.Path) (*Cache, error) {
	data, err := os.ReadFile(string(path))
	if errors.Is(err, fs.ErrNotExist) {
		return NewCache(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}

	cache := NewCache()
	if err := yaml.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("parse cache %s: %w", path, err)
	}

	if cache.Version != cacheVersion {
		slog.Info("discarding cache of another version", "path", path, "version", cache.Version)
		return NewCache(), nil
	}

	if cache.Entries == nil {
		cache.Entries = map[m.Operation]map[string]CacheEntry{}
	}

	return cache, nil
}

// Save writes the cache to path, creating parent directories as needed.
func (s *YAMLCacheStore) Save(path m.Path, cache *Cache) error {
	if cache == nil {
		cache = NewCache()
	}

	cache.Version = cacheVersion

	data, err := yaml.Marshal(cache)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write cache %s: %w", path, err)
	}

	slog.Debug("saved cache", "path", path)

	return nil
}
