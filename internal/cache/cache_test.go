package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), time.Hour, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	key := Key("smartscore", HashBytes([]byte(`{"project_nature":"logement"}`)), "1.3.0")
	if _, ok := c.Get(key); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	if err := c.Set(key, []byte("payload")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, ok := c.Get(key)
	if !ok || string(got) != "payload" {
		t.Fatalf("Get() = %q, %v", got, ok)
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache", "dir")
	if _, err := New(dir, time.Hour, true); err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("New() should create the cache directory")
	}
}

func TestCacheExpiry(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), time.Nanosecond, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := c.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry must miss")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), 0, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := c.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok := c.Get("k"); !ok {
		t.Error("entry with zero TTL must not expire")
	}
}

func TestClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := New(dir, time.Hour, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(k, []byte("data")); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("Clear() should remove the cache directory")
	}
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c, err := New("", 0, false)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := c.Set("key", []byte("data")); err != nil {
		t.Errorf("Set() on disabled cache should not error: %v", err)
	}
	if _, ok := c.Get("key"); ok {
		t.Error("Get() on disabled cache should always miss")
	}
	if err := c.Clear(); err != nil {
		t.Errorf("Clear() on disabled cache should not error: %v", err)
	}
}

func TestHashBytes(t *testing.T) {
	if HashBytes([]byte("hello")) != HashBytes([]byte("hello")) {
		t.Error("identical bytes must hash identically")
	}
	if HashBytes([]byte("hello")) == HashBytes([]byte("world")) {
		t.Error("different bytes must hash differently")
	}
}

func TestKeyPathHandlesSpecialCharacters(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), time.Hour, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	keys := []string{
		"/path/to/dossier.json",
		"key:with:colons",
		"key with spaces",
		"unicode/étude/test",
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			if err := c.Set(key, []byte("data for "+key)); err != nil {
				t.Fatalf("Set(%q) error: %v", key, err)
			}
			got, ok := c.Get(key)
			if !ok || string(got) != "data for "+key {
				t.Errorf("Get(%q) = %q, %v", key, got, ok)
			}
		})
	}
}
