package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dormlife/backend/internal/domain/school"
	"github.com/google/uuid"
)

type statsEntry struct {
	stats     school.Stats
	expiresAt time.Time
}

// InMemoryStatsCache implements StatsCache using a map. Suitable for
// single-instance deployments and testing.
type InMemoryStatsCache struct {
	mu        sync.RWMutex
	entries   map[string]statsEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryStatsCache creates an in-memory stats cache with a background
// cleanup goroutine
func NewInMemoryStatsCache() *InMemoryStatsCache {
	cache := &InMemoryStatsCache{
		entries:  make(map[string]statsEntry),
		stopChan: make(chan struct{}),
	}

	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// Get returns the cached stats for a school, or (nil, nil) on a miss
func (c *InMemoryStatsCache) Get(ctx context.Context, schoolID uuid.UUID) (*school.Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[statsKey(schoolID)]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, nil
	}

	stats := e.stats
	return &stats, nil
}

// Set stores the stats with a TTL
func (c *InMemoryStatsCache) Set(ctx context.Context, schoolID uuid.UUID, stats *school.Stats, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[statsKey(schoolID)] = statsEntry{
		stats:     *stats,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Invalidate drops the cached stats for a school
func (c *InMemoryStatsCache) Invalidate(ctx context.Context, schoolID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, statsKey(schoolID))
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryStatsCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryStatsCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryStatsCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries in the cache (for testing)
func (c *InMemoryStatsCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ StatsCache = (*InMemoryStatsCache)(nil)
