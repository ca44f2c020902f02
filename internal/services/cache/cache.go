// Package cache provides a result cache for cost breakdowns.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"car-cost-engine/internal/models"
)

// ResultCache stores calculated breakdowns keyed by the input digest. The
// engine is deterministic, so a hit is always a valid answer for the same
// input and tables.
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.CostBreakdown, bool)
	Set(ctx context.Context, key string, breakdown *models.CostBreakdown) error
}

// Key derives the cache key for an input: a SHA-256 digest of its canonical
// JSON form.
func Key(in *models.CalculatorInput) string {
	data, err := json.Marshal(in)
	if err != nil {
		// CalculatorInput contains only marshalable fields; this cannot
		// happen for real inputs, but an unusable key must miss, not panic.
		return ""
	}
	sum := sha256.Sum256(data)
	return "breakdown:" + hex.EncodeToString(sum[:])
}

// RedisCache is the Redis-backed ResultCache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis at the given address.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached breakdown for a key. Any Redis or decode error
// counts as a miss; the caller recomputes.
func (c *RedisCache) Get(ctx context.Context, key string) (*models.CostBreakdown, bool) {
	if key == "" {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var breakdown models.CostBreakdown
	if err := json.Unmarshal(data, &breakdown); err != nil {
		return nil, false
	}

	return &breakdown, true
}

// Set stores a breakdown under the key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, breakdown *models.CostBreakdown) error {
	if key == "" {
		return nil
	}

	data, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
