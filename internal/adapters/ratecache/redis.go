package ratecache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

// RedisRateCache is a Redis-backed ports.RateCache for multi-instance
// deployments. Rates are stored as decimal strings so no float precision is
// lost on the round trip; the snapshot is one JSON hash under a single key.
// Redis failures degrade to cache misses: the cache must never change the
// correctness of a conversion, only its latency.
type RedisRateCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisRateCache creates a rate cache on an existing Redis client.
func NewRedisRateCache(client *redis.Client, logger *slog.Logger) *RedisRateCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRateCache{client: client, logger: logger}
}

func (c *RedisRateCache) GetRate(ctx context.Context, from, to string) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, pairKey(from, to)).Result()
	if err == redis.Nil {
		return decimal.Zero, false
	}
	if err != nil {
		c.logger.Warn("redis rate lookup failed, treating as miss", slog.String("error", err.Error()))
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(val)
	if err != nil {
		c.logger.Warn("redis held an unparseable rate, treating as miss",
			slog.String("key", pairKey(from, to)), slog.String("value", val))
		return decimal.Zero, false
	}
	return rate, true
}

func (c *RedisRateCache) SetRate(ctx context.Context, from, to string, rate decimal.Decimal, ttl time.Duration) {
	if err := c.client.Set(ctx, pairKey(from, to), rate.String(), ttl).Err(); err != nil {
		c.logger.Warn("failed to cache rate in redis", slog.String("error", err.Error()))
	}
}

func (c *RedisRateCache) GetAvailable(ctx context.Context) (map[string]decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, availableKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("redis snapshot lookup failed, treating as miss", slog.String("error", err.Error()))
		return nil, false
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(val), &raw); err != nil {
		c.logger.Warn("redis held an unparseable snapshot, treating as miss", slog.String("error", err.Error()))
		return nil, false
	}
	rates := make(map[string]decimal.Decimal, len(raw))
	for code, s := range raw {
		rate, err := decimal.NewFromString(s)
		if err != nil {
			c.logger.Warn("redis snapshot entry unparseable, treating as miss",
				slog.String("code", code), slog.String("value", s))
			return nil, false
		}
		rates[code] = rate
	}
	return rates, true
}

func (c *RedisRateCache) SetAvailable(ctx context.Context, rates map[string]decimal.Decimal, ttl time.Duration) {
	raw := make(map[string]string, len(rates))
	for code, rate := range rates {
		raw[code] = rate.String()
	}
	payload, err := json.Marshal(raw)
	if err != nil {
		c.logger.Warn("failed to encode snapshot for redis", slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, availableKey, payload, ttl).Err(); err != nil {
		c.logger.Warn("failed to cache snapshot in redis", slog.String("error", err.Error()))
	}
}

var _ ports.RateCache = (*RedisRateCache)(nil)
