package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type voteEntry struct {
	expiresAt time.Time
}

// InMemoryVoteGuard implements VoteGuard using a map. State is not shared
// across instances, which is fine because the database index still rejects
// duplicate votes.
type InMemoryVoteGuard struct {
	mu        sync.RWMutex
	entries   map[string]voteEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryVoteGuard creates an in-memory vote guard with a background
// cleanup goroutine
func NewInMemoryVoteGuard() *InMemoryVoteGuard {
	guard := &InMemoryVoteGuard{
		entries:  make(map[string]voteEntry),
		stopChan: make(chan struct{}),
	}

	guard.wg.Add(1)
	go guard.cleanupLoop()

	return guard
}

// MarkVoted records a vote for the day. Returns true if this was the first
// mark, false if the user was already recorded.
func (g *InMemoryVoteGuard) MarkVoted(ctx context.Context, userID, zoneID uuid.UUID, day time.Time, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := voteKey(userID, zoneID, day)
	if e, exists := g.entries[key]; exists && time.Now().Before(e.expiresAt) {
		return false, nil
	}

	g.entries[key] = voteEntry{expiresAt: time.Now().Add(ttl)}
	return true, nil
}

// HasVoted reports whether a vote is recorded for the day
func (g *InMemoryVoteGuard) HasVoted(ctx context.Context, userID, zoneID uuid.UUID, day time.Time) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, exists := g.entries[voteKey(userID, zoneID, day)]
	if !exists || time.Now().After(e.expiresAt) {
		return false, nil
	}
	return true, nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (g *InMemoryVoteGuard) Close() error {
	g.closeOnce.Do(func() {
		close(g.stopChan)
		g.wg.Wait()
	})
	return nil
}

func (g *InMemoryVoteGuard) cleanupLoop() {
	defer g.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			return
		case <-ticker.C:
			g.cleanup()
		}
	}
}

func (g *InMemoryVoteGuard) cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	for key, e := range g.entries {
		if now.After(e.expiresAt) {
			delete(g.entries, key)
		}
	}
}

// Size returns the number of entries in the guard (for testing)
func (g *InMemoryVoteGuard) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

var _ VoteGuard = (*InMemoryVoteGuard)(nil)
