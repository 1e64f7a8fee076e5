package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dormlife/backend/internal/domain/school"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStatsCache implements StatsCache using Redis. Suitable for
// deployments running more than one instance.
type RedisStatsCache struct {
	client *redis.Client
}

// NewRedisStatsCache creates a stats cache backed by an existing Redis client
func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

// Get returns the cached stats for a school, or (nil, nil) on a miss
func (c *RedisStatsCache) Get(ctx context.Context, schoolID uuid.UUID) (*school.Stats, error) {
	payload, err := c.client.Get(ctx, statsKey(schoolID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached stats: %w", err)
	}

	var stats school.Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		// A corrupt entry is treated as a miss and dropped
		_ = c.client.Del(ctx, statsKey(schoolID)).Err()
		return nil, nil
	}
	return &stats, nil
}

// Set stores the stats with a TTL
func (c *RedisStatsCache) Set(ctx context.Context, schoolID uuid.UUID, stats *school.Stats, ttl time.Duration) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if err := c.client.Set(ctx, statsKey(schoolID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %w", err)
	}
	return nil
}

// Invalidate drops the cached stats for a school
func (c *RedisStatsCache) Invalidate(ctx context.Context, schoolID uuid.UUID) error {
	if err := c.client.Del(ctx, statsKey(schoolID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached stats: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}

var _ StatsCache = (*RedisStatsCache)(nil)
