package cache

import "context"

// instrumentedCache counts hits, misses and writes for its group.
type instrumentedCache struct {
	inner Cache
	group string
}

func (c *instrumentedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, ok := c.inner.Get(ctx, key)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return val, ok
}

func (c *instrumentedCache) Set(ctx context.Context, key string, value []byte) {
	c.inner.Set(ctx, key, value)
	WritesTotal.WithLabelValues(c.group).Inc()
}

func (c *instrumentedCache) Len(ctx context.Context) int {
	return c.inner.Len(ctx)
}

func (c *instrumentedCache) Close() error {
	return c.inner.Close()
}
