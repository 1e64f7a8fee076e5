package climate

import (
	"time"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TemperatureVote is an append-only record of one resident's vote. At most
// one vote may exist per (user, zone, UTC calendar day); the storage layer
// enforces this with a unique constraint, and a violation is the
// authoritative already-voted signal.
type TemperatureVote struct {
	shared.BaseEntity
	UserID      uuid.UUID
	ZoneID      uuid.UUID
	Temperature float64
	VoteWeight  float64
	VoteDay     time.Time
}

// NewVote creates a vote stamped with the current UTC calendar day
func NewVote(userID, zoneID uuid.UUID, temperature float64) *TemperatureVote {
	return &TemperatureVote{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		ZoneID:      zoneID,
		Temperature: temperature,
		VoteWeight:  1.0,
		VoteDay:     VoteDay(time.Now()),
	}
}

// VoteDay truncates a timestamp to its UTC calendar day. The same function
// feeds both the pre-check and the stored constraint column so the two can
// never disagree.
func VoteDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// TrendPoint is one day of the weekly trend. Days with zero votes are
// omitted from the trend rather than reported as zero.
type TrendPoint struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Votes   int64   `json:"votes"`
}

// ZoneStats aggregates voting activity for a zone. AverageVote is nil when
// the zone has no votes at all.
type ZoneStats struct {
	AverageVote   *float64     `json:"averageVote"`
	TotalVotes    int64        `json:"totalVotes"`
	TodayVotes    int64        `json:"todayVotes"`
	LastWeekTrend []TrendPoint `json:"lastWeekTrend"`
}

// TemperatureReading is one append-only row of the zone temperature history,
// written on every sensor/HVAC update.
type TemperatureReading struct {
	ID                uuid.UUID
	ZoneID            uuid.UUID
	Temperature       float64
	TargetTemperature *float64
	RecordedAt        time.Time
}

// NewReading creates a history row for a zone update
func NewReading(zoneID uuid.UUID, temperature float64, target *float64) *TemperatureReading {
	return &TemperatureReading{
		ID:                uuid.New(),
		ZoneID:            zoneID,
		Temperature:       temperature,
		TargetTemperature: target,
		RecordedAt:        time.Now(),
	}
}
