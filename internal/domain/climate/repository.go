package climate

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ZoneRepository defines persistence operations for temperature zones
type ZoneRepository interface {
	Save(ctx context.Context, zone *TemperatureZone) error
	Update(ctx context.Context, zone *TemperatureZone) error
	FindByID(ctx context.Context, id uuid.UUID) (*TemperatureZone, error)

	// FindBySchool returns the school's active zones ordered by name
	FindBySchool(ctx context.Context, schoolID uuid.UUID) ([]TemperatureZone, error)
}

// VoteRepository defines persistence operations for temperature votes
type VoteRepository interface {
	// Insert persists a vote. A duplicate (user, zone, day) insert fails
	// with ErrAlreadyVotedToday.
	Insert(ctx context.Context, vote *TemperatureVote) error

	// HasVotedOn reports whether the user already has a vote for the zone
	// on the given calendar day
	HasVotedOn(ctx context.Context, userID, zoneID uuid.UUID, day time.Time) (bool, error)

	// AverageSince returns the mean vote temperature for the zone since the
	// given instant, or nil when no votes fall in the window
	AverageSince(ctx context.Context, zoneID uuid.UUID, since time.Time) (*float64, error)

	// Stats computes the all-time average, totals, and the sparse trend of
	// daily averages over the trailing week
	Stats(ctx context.Context, zoneID uuid.UUID) (*ZoneStats, error)

	// LastVote returns the user's most recent vote for the zone, or nil
	LastVote(ctx context.Context, userID, zoneID uuid.UUID) (*TemperatureVote, error)
}

// ReadingRepository defines persistence for the append-only temperature history
type ReadingRepository interface {
	Append(ctx context.Context, reading *TemperatureReading) error
	ListByZone(ctx context.Context, zoneID uuid.UUID, limit int) ([]TemperatureReading, error)
}
