package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/regform/pkg/cache"
)

type bucketState struct {
	mu         sync.Mutex
	tokens     int
	lastRefill time.Time
}

func (b *bucketState) consume(now time.Time, tokens int, cfg Config) (int, time.Time, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.lastRefill); elapsed >= cfg.RefillInterval {
		// capped so a long idle period cannot overflow
		intervals := min(int64(elapsed/cfg.RefillInterval), int64(cfg.Capacity/cfg.RefillRate+1))
		b.tokens = min(b.tokens+int(intervals)*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = now
	}

	resetAt := b.lastRefill.Add(cfg.RefillInterval)
	if b.tokens < tokens {
		return b.tokens - tokens, resetAt, nil
	}
	b.tokens -= tokens
	return b.tokens, resetAt, nil
}

// MemoryStore keeps buckets in a bounded LRU. A bucket idle long enough to
// be full again is dropped, so no cleanup goroutine is needed.
type MemoryStore struct {
	buckets *cache.LRU[string, *bucketState]
	now     func() time.Time
}

type MemoryStoreOption func(*memoryStoreConfig)

type memoryStoreConfig struct {
	now func() time.Time
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(c *memoryStoreConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemoryStore tracks at most cfg.MaxKeys keys; zero means 10000.
func NewMemoryStore(cfg Config, opts ...MemoryStoreOption) *MemoryStore {
	mc := &memoryStoreConfig{now: time.Now}
	for _, opt := range opts {
		opt(mc)
	}

	maxKeys := cfg.MaxKeys
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &MemoryStore{
		buckets: cache.NewLRU(maxKeys,
			cache.WithTTL[string, *bucketState](cfg.idleAfter()),
			cache.WithClock[string, *bucketState](mc.now),
		),
		now: mc.now,
	}
}

func (ms *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	now := ms.now()
	b, _ := ms.buckets.GetOrPut(key, func() *bucketState {
		return &bucketState{tokens: cfg.Capacity, lastRefill: now}
	})
	return b.consume(now, tokens, cfg)
}

func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.buckets.Remove(key)
	return nil
}

// Len returns the number of tracked keys.
func (ms *MemoryStore) Len() int {
	return ms.buckets.Len()
}
