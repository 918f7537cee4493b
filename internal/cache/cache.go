// Package cache memoizes scoring results on disk, keyed by the content of
// the dossier that produced them. Scoring is pure, so a cached result is
// valid as long as the input bytes and the scorer version are unchanged.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// Cache is a file-backed result store. A disabled cache is a valid no-op
// value: every Get misses and every Set succeeds silently.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

type entry struct {
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	Data      []byte    `json:"data"`
}

// New creates a cache rooted at dir. Entries older than ttl are evicted on
// read; a non-positive ttl keeps entries forever.
func New(dir string, ttl time.Duration, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl, enabled: true}, nil
}

// HashBytes returns the hex BLAKE3 digest of data.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Key builds a cache key from its parts: typically a result kind, an input
// digest and a scorer version, so any of the three changing misses cleanly.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Get returns the stored payload for key, or false on miss, expiry or any
// read problem. Cache read failures are never surfaced as errors.
func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}
	data, err := os.ReadFile(c.keyPath(key))
	if err != nil {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil || e.Key != key {
		return nil, false
	}
	if c.ttl > 0 && time.Since(e.Timestamp) > c.ttl {
		os.Remove(c.keyPath(key))
		return nil, false
	}
	return e.Data, true
}

// Set stores payload under key.
func (c *Cache) Set(key string, data []byte) error {
	if !c.enabled {
		return nil
	}
	raw, err := json.Marshal(entry{Key: key, Timestamp: time.Now(), Data: data})
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(key), raw, 0o600)
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	return os.RemoveAll(c.dir)
}

// keyPath hashes the key into a filename so keys need no escaping.
func (c *Cache) keyPath(key string) string {
	sum := blake3.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}
