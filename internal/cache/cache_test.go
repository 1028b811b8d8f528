package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func counterValue(cv *prometheus.CounterVec, label string) float64 {
	var m dto.Metric
	if err := cv.WithLabelValues(label).Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, err := New("memory", Config{Size: 10, TTL: time.Hour})
	if err != nil {
		t.Fatalf("New memory cache: %v", err)
	}
	defer c.Close()

	if val, ok := c.Get(ctx, "artist:1"); ok || val != nil {
		t.Fatalf("Expected miss, got %q", val)
	}

	c.Set(ctx, "artist:1", []byte(`{"id":1}`))
	val, ok := c.Get(ctx, "artist:1")
	if !ok {
		t.Fatal("Expected hit for artist:1")
	}
	if string(val) != `{"id":1}` {
		t.Fatalf("Unexpected value %s", val)
	}
	if c.Len(ctx) != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len(ctx))
	}
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c, err := New("memory", Config{Size: 2, TTL: time.Hour})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))
	c.Get(ctx, "a")
	c.Set(ctx, "c", []byte("3"))

	if _, ok := c.Get(ctx, "b"); ok {
		t.Error("Expected b to be evicted")
	}
	if _, ok := c.Get(ctx, "a"); !ok {
		t.Error("Expected a to survive")
	}
}

func TestMemoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	c, err := New("memory", Config{Size: 10, TTL: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	c.Set(ctx, "k", []byte("v"))
	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestNew_EmptyProviderIsNoop(t *testing.T) {
	ctx := context.Background()
	c, err := New("", Config{Group: "ignored"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Set(ctx, "k", []byte("v"))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Noop cache must never hit")
	}
	if c.Len(ctx) != 0 {
		t.Error("Noop cache must be empty")
	}
	if _, instrumented := c.(*instrumentedCache); instrumented {
		t.Error("Noop cache should not be instrumented")
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New("memcached", Config{}); err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestRegisteredProviders(t *testing.T) {
	names := RegisteredProviders()
	want := []string{"memory", "none", "redis"}
	if len(names) != len(want) {
		t.Fatalf("Expected providers %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected providers %v, got %v", want, names)
			break
		}
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	Register("memory", newMemoryCache)
}

func TestInstrumentedCache_CountsHitsAndMisses(t *testing.T) {
	ctx := context.Background()
	c, err := New("memory", Config{Size: 10, TTL: time.Hour, Group: "test-artist"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	hits := counterValue(HitsTotal, "test-artist")
	misses := counterValue(MissesTotal, "test-artist")
	writes := counterValue(WritesTotal, "test-artist")

	c.Get(ctx, "k")
	c.Set(ctx, "k", []byte("v"))
	c.Get(ctx, "k")
	c.Get(ctx, "k")

	if got := counterValue(HitsTotal, "test-artist") - hits; got != 2 {
		t.Errorf("Expected 2 hits, got %.0f", got)
	}
	if got := counterValue(MissesTotal, "test-artist") - misses; got != 1 {
		t.Errorf("Expected 1 miss, got %.0f", got)
	}
	if got := counterValue(WritesTotal, "test-artist") - writes; got != 1 {
		t.Errorf("Expected 1 write, got %.0f", got)
	}
}

func TestRedisCache_InvalidAddress(t *testing.T) {
	_, err := New("redis", Config{TTL: time.Hour, RedisAddress: "localhost:59999", Logger: zerolog.Nop()})
	if err == nil {
		t.Fatal("Expected error when connecting to invalid Redis address")
	}
}

// The remaining Redis tests need a live server; set REDIS_ADDRESS to run them.
func newTestRedisCache(t *testing.T, ttl time.Duration) Cache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("Skipping Redis tests: set REDIS_ADDRESS to enable")
	}

	flush := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer flush.Close()
	if err := flush.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("Failed to flush Redis test DB: %v", err)
	}

	c, err := New("redis", Config{TTL: ttl, RedisAddress: addr, RedisDB: 15, KeyPrefix: "whatapi-test:", Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("New redis cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_GetSetLen(t *testing.T) {
	ctx := context.Background()
	c := newTestRedisCache(t, time.Minute)

	if _, ok := c.Get(ctx, "artist:7"); ok {
		t.Fatal("Expected miss")
	}
	c.Set(ctx, "artist:7", []byte("payload"))
	c.Set(ctx, "artist:8", []byte("payload"))

	val, ok := c.Get(ctx, "artist:7")
	if !ok || string(val) != "payload" {
		t.Fatalf("Expected hit with payload, got %q %v", val, ok)
	}
	if n := c.Len(ctx); n != 2 {
		t.Errorf("Expected 2 entries, got %d", n)
	}
}

func TestRedisCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := newTestRedisCache(t, 100*time.Millisecond)

	c.Set(ctx, "k", []byte("v"))
	time.Sleep(300 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Expected entry to expire")
	}
}
