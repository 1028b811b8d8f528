package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// memoryCache is a process-local expiring LRU.
type memoryCache struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryCache(cfg Config) (Cache, error) {
	size := cfg.Size
	if size <= 0 {
		size = 256
	}
	return &memoryCache{
		inner: lru.NewLRU[string, []byte](size, nil, cfg.TTL),
	}, nil
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	return m.inner.Get(key)
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte) {
	m.inner.Add(key, value)
}

func (m *memoryCache) Len(context.Context) int {
	return m.inner.Len()
}

func (m *memoryCache) Close() error {
	return nil
}
