package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisVoteGuard implements VoteGuard using Redis SETNX, so the mark and the
// already-voted answer are a single atomic operation shared across instances
type RedisVoteGuard struct {
	client *redis.Client
}

// NewRedisVoteGuard creates a vote guard backed by an existing Redis client
func NewRedisVoteGuard(client *redis.Client) *RedisVoteGuard {
	return &RedisVoteGuard{client: client}
}

// MarkVoted records a vote for the day. Returns true if this was the first
// mark, false if the user was already recorded.
func (g *RedisVoteGuard) MarkVoted(ctx context.Context, userID, zoneID uuid.UUID, day time.Time, ttl time.Duration) (bool, error) {
	result, err := g.client.SetNX(ctx, voteKey(userID, zoneID, day), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark vote: %w", err)
	}
	return result, nil
}

// HasVoted reports whether a vote is recorded for the day
func (g *RedisVoteGuard) HasVoted(ctx context.Context, userID, zoneID uuid.UUID, day time.Time) (bool, error) {
	exists, err := g.client.Exists(ctx, voteKey(userID, zoneID, day)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check vote mark: %w", err)
	}
	return exists > 0, nil
}

// Close closes the underlying Redis client
func (g *RedisVoteGuard) Close() error {
	return g.client.Close()
}

var _ VoteGuard = (*RedisVoteGuard)(nil)
