// Package cache provides Redis-backed caches with in-memory fallbacks for
// single-instance deployments.
package cache

import (
	"context"
	"time"

	"github.com/dormlife/backend/internal/domain/school"
	"github.com/google/uuid"
)

// StatsCache caches computed school statistics. The aggregates behind
// school.Stats span several tables, so dashboard reads go through here first.
type StatsCache interface {
	// Get returns the cached stats for a school, or (nil, nil) on a miss
	Get(ctx context.Context, schoolID uuid.UUID) (*school.Stats, error)

	// Set stores the stats with a TTL
	Set(ctx context.Context, schoolID uuid.UUID, stats *school.Stats, ttl time.Duration) error

	// Invalidate drops the cached stats for a school
	Invalidate(ctx context.Context, schoolID uuid.UUID) error

	Close() error
}

const statsKeyPrefix = "stats:school:"

func statsKey(schoolID uuid.UUID) string {
	return statsKeyPrefix + schoolID.String()
}
