package ratecache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

const availableKey = "available_currencies"

// pairKey builds the directional cache key for a currency pair. Codes are
// uppercased by callers; A→B and B→A are distinct entries.
func pairKey(from, to string) string {
	return fmt.Sprintf("exchange_rate_%s_%s", from, to)
}

type rateEntry struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

type snapshotEntry struct {
	rates     map[string]decimal.Decimal
	expiresAt time.Time
}

// MemoryRateCache is an in-process ports.RateCache. Entries expire passively:
// a lookup past the TTL is a miss, no eviction pass runs. Each entry (value +
// expiry) is written atomically under the lock, so a racing reader sees
// either the old entry or the new one, never a half-written pair.
type MemoryRateCache struct {
	mu        sync.RWMutex
	rates     map[string]rateEntry
	available *snapshotEntry
	now       func() time.Time
}

// Option configures a MemoryRateCache.
type Option func(*MemoryRateCache)

// WithClock overrides the cache's time source. Used by tests to walk
// entries across their TTL boundary.
func WithClock(now func() time.Time) Option {
	return func(c *MemoryRateCache) {
		c.now = now
	}
}

// NewMemoryRateCache creates an empty in-process rate cache.
func NewMemoryRateCache(opts ...Option) *MemoryRateCache {
	c := &MemoryRateCache{
		rates: make(map[string]rateEntry),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryRateCache) GetRate(_ context.Context, from, to string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.rates[pairKey(from, to)]
	if !ok || !c.now().Before(entry.expiresAt) {
		return decimal.Zero, false
	}
	return entry.rate, true
}

func (c *MemoryRateCache) SetRate(_ context.Context, from, to string, rate decimal.Decimal, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rates[pairKey(from, to)] = rateEntry{
		rate:      rate,
		expiresAt: c.now().Add(ttl),
	}
}

func (c *MemoryRateCache) GetAvailable(_ context.Context) (map[string]decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.available == nil || !c.now().Before(c.available.expiresAt) {
		return nil, false
	}

	// Copied out so callers cannot mutate the cached snapshot.
	rates := make(map[string]decimal.Decimal, len(c.available.rates))
	for code, rate := range c.available.rates {
		rates[code] = rate
	}
	return rates, true
}

func (c *MemoryRateCache) SetAvailable(_ context.Context, rates map[string]decimal.Decimal, ttl time.Duration) {
	snapshot := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		snapshot[code] = rate
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.available = &snapshotEntry{
		rates:     snapshot,
		expiresAt: c.now().Add(ttl),
	}
}

var _ ports.RateCache = (*MemoryRateCache)(nil)
