// Package cache stores raw AJAX responses so repeated lookups of the same
// artist do not spend rate limit budget.
package cache

import "context"

// Cache is a byte-value store with expiring entries.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte)

	// Len reports the number of live entries.
	Len(ctx context.Context) int

	// Close releases connections held by the backend.
	Close() error
}

// noopCache never stores anything. It backs the "none" provider so callers can
// always hold a non-nil Cache.
type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noopCache) Set(context.Context, string, []byte)        {}
func (noopCache) Len(context.Context) int                    { return 0 }
func (noopCache) Close() error                               { return nil }
