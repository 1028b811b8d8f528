package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProviderNone disables caching.
const ProviderNone = "none"

// Config selects and sizes a cache backend.
type Config struct {
	// Size is the maximum number of entries kept by the memory provider.
	Size int

	// TTL is how long an entry stays valid.
	TTL time.Duration

	// RedisAddress, RedisPassword and RedisDB configure the redis provider.
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// KeyPrefix namespaces keys in shared backends. Defaults to "whatapi:".
	KeyPrefix string

	// Group, when set, wraps the cache with hit/miss counters labelled by it.
	Group string

	Logger zerolog.Logger
}

// Provider builds a Cache from config.
type Provider func(cfg Config) (Cache, error)

var (
	mu        sync.RWMutex
	providers = map[string]Provider{
		ProviderNone: func(Config) (Cache, error) { return noopCache{}, nil },
	}
)

// Register makes a provider available under name. It panics on duplicates.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New builds the named cache. An empty name selects ProviderNone.
func New(name string, cfg Config) (Cache, error) {
	if name == "" {
		name = ProviderNone
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "whatapi:"
	}

	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	c, err := p(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Group == "" || name == ProviderNone {
		return c, nil
	}
	return &instrumentedCache{inner: c, group: cfg.Group}, nil
}

// RegisteredProviders returns the sorted provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
