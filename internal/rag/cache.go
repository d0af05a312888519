package rag

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Cache stores embeddings keyed by content hash. It is injected into the
// index so tests never touch real disk or an embedding service.
type Cache interface {
	Get(key string) ([]float32, bool)
	Put(key string, vec []float32)
}

// CacheKey hashes document text into a stable cache key.
func CacheKey(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string][]float32
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string][]float32{}}
}

func (c *MemoryCache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.data[key]
	return vec, ok
}

func (c *MemoryCache) Put(key string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = vec
}

// FileCache persists embeddings as one JSON file per key, surviving restarts
// so re-ingestion does not re-embed unchanged documents.
type FileCache struct {
	dir string
}

func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) Get(key string) ([]float32, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, key+".json"))
	if err != nil {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, false
	}
	return vec, true
}

func (c *FileCache) Put(key string, vec []float32) {
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	// Best effort; a failed cache write only costs a re-embed later.
	_ = os.WriteFile(filepath.Join(c.dir, key+".json"), data, 0o644)
}
