package state

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/skydz/manifest/internal/dropzone"
)

// Cache persists the snapshot as a single JSON document. It is an advisory
// local copy only; when the remote service is reachable it is the source of
// truth and the cache is overwritten on every refresh.
type Cache struct {
	path string
}

// NewCache returns a cache backed by the given file path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Read returns the raw cached document.
func (c *Cache) Read() ([]byte, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	return data, nil
}

// Write serializes the snapshot to the cache file, creating parent
// directories as needed.
func (c *Cache) Write(snap dropzone.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}
