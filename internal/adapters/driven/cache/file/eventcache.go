// Package file provides the JSON-file implementation of the event cache.
// The backing store is a single pretty-printed JSON object mapping
// canonical record keys to ISO dates, kept diff-friendly by Go's sorted
// map key marshalling.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/gigsheet-cli/internal/core/domain"
	"github.com/custodia-labs/gigsheet-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.EventCache = (*Cache)(nil)

// Cache is a file-backed event cache. Single-writer within one process;
// concurrent processes over the same path must be serialized by the caller.
type Cache struct {
	path string
	data map[string]string
}

// Open loads the cache at path, creating an empty store when none exists.
// Corrupt content is reset to empty rather than failing the run; the
// returned outcome makes that recovery observable to the caller.
func Open(path string) (*Cache, driven.CacheOutcome, error) {
	c := &Cache{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := c.save(); err != nil {
			return nil, driven.CacheFresh, fmt.Errorf("create cache file: %w", err)
		}
		return c, driven.CacheFresh, nil
	case err != nil:
		return nil, driven.CacheFresh, fmt.Errorf("read cache file: %w", err)
	}

	if err := json.Unmarshal(raw, &c.data); err != nil {
		c.data = make(map[string]string)
		return c, driven.CacheRecovered, nil
	}
	return c, driven.CacheLoaded, nil
}

// FilterNew returns the subsequence of events whose key is not yet stored.
// Pure and order-preserving.
func (c *Cache) FilterNew(events []domain.EventRecord) []domain.EventRecord {
	var out []domain.EventRecord
	for _, event := range events {
		if _, ok := c.data[event.Key()]; !ok {
			out = append(out, event)
		}
	}
	return out
}

// Record upserts each event's key with its ISO date and rewrites the
// whole backing file once. Full rewrite over append: correctness over
// efficiency, the store stays small.
func (c *Cache) Record(events []domain.EventRecord) error {
	for _, event := range events {
		c.data[event.Key()] = event.Date.Format(domain.DateLayout)
	}
	return c.save()
}

// Len returns how many keys are stored.
func (c *Cache) Len() int {
	return len(c.data)
}

func (c *Cache) save() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}
