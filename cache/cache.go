// Package cache is a tiny JSON-file key-value store under ~/.abiscope, used
// by the CLI to remember verified registry ABIs between runs. The resolver
// itself never touches it; everything inside one resolution call is
// request-scoped.
package cache

import (
	"encoding/json"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
)

var (
	CACHE_PATH string = filepath.Join(getHomeDir(), ".abiscope", "cache.json")
	cache      *simpleCache
	mu         sync.Mutex
)

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		log.Fatal(err)
	}
	return usr.HomeDir
}

type simpleCache struct {
	Data map[string]string `json:"Data"`
}

func (c *simpleCache) Persist() error {
	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(CACHE_PATH), 0o755); err != nil {
		return err
	}
	return os.WriteFile(CACHE_PATH, jsonData, 0o644)
}

func loadSimpleCache() *simpleCache {
	if cache != nil {
		return cache
	}
	cache = &simpleCache{
		Data: map[string]string{},
	}
	content, err := os.ReadFile(CACHE_PATH)
	if err != nil {
		// a missing or unreadable cache file just means a cold cache
		return cache
	}
	err = json.Unmarshal(content, cache)
	if err != nil {
		return cache
	}
	return cache
}

func GetCache(key string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()

	value, found := loadSimpleCache().Data[strings.ToLower(key)]
	if !found {
		return "", false
	}
	return value, true
}

func SetCache(key, value string) error {
	mu.Lock()
	defer mu.Unlock()
	c := loadSimpleCache()
	c.Data[strings.ToLower(key)] = value
	return c.Persist()
}
