package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// VoteGuard is a fast-path record of who voted in which zone today. The
// database unique index remains the authority on the one-vote-per-day rule;
// the guard only lets the API answer eligibility checks without a query.
type VoteGuard interface {
	// MarkVoted records a vote for the day. Returns true if this was the
	// first mark, false if the user was already recorded.
	MarkVoted(ctx context.Context, userID, zoneID uuid.UUID, day time.Time, ttl time.Duration) (bool, error)

	// HasVoted reports whether a vote is recorded for the day
	HasVoted(ctx context.Context, userID, zoneID uuid.UUID, day time.Time) (bool, error)

	Close() error
}

const voteKeyPrefix = "vote:guard:"

func voteKey(userID, zoneID uuid.UUID, day time.Time) string {
	return voteKeyPrefix + zoneID.String() + ":" + userID.String() + ":" + day.UTC().Format("2006-01-02")
}
