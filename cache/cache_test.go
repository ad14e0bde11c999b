package cache

import (
	"path/filepath"
	"testing"
)

func useTempCache(t *testing.T) {
	t.Helper()
	oldPath, oldCache := CACHE_PATH, cache
	CACHE_PATH = filepath.Join(t.TempDir(), "cache.json")
	cache = nil
	t.Cleanup(func() {
		CACHE_PATH, cache = oldPath, oldCache
	})
}

func TestSetGetRoundTrip(t *testing.T) {
	useTempCache(t)
	if err := SetCache("abi-1-0xABC", `[{"type":"function"}]`); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	value, found := GetCache("abi-1-0xABC")
	if !found {
		t.Fatal("expected a hit")
	}
	if value != `[{"type":"function"}]` {
		t.Errorf("got %q", value)
	}
}

func TestKeysAreCaseInsensitive(t *testing.T) {
	useTempCache(t)
	if err := SetCache("ABI-1-0xAbCd", "v"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, found := GetCache("abi-1-0xabcd"); !found {
		t.Error("lookup must not be case sensitive")
	}
}

func TestColdCacheMisses(t *testing.T) {
	useTempCache(t)
	if _, found := GetCache("never-set"); found {
		t.Error("expected a miss on a cold cache")
	}
}

func TestCacheSurvivesReload(t *testing.T) {
	useTempCache(t)
	if err := SetCache("k", "v"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// drop the in-memory copy; the next read must come from disk
	cache = nil
	value, found := GetCache("k")
	if !found || value != "v" {
		t.Errorf("got %q, %v", value, found)
	}
}
