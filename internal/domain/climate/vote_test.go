package climate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteDay(t *testing.T) {
	t.Run("truncates to midnight UTC", func(t *testing.T) {
		ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
		day := VoteDay(ts)

		assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), day)
	})

	t.Run("converts local timestamps to UTC before truncating", func(t *testing.T) {
		// 23:00 in UTC-5 is already 04:00 the next day in UTC.
		loc := time.FixedZone("UTC-5", -5*3600)
		ts := time.Date(2026, 3, 14, 23, 0, 0, 0, loc)

		day := VoteDay(ts)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), day)
	})

	t.Run("same UTC day maps to the same key regardless of zone", func(t *testing.T) {
		utc := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
		tokyo := time.FixedZone("UTC+9", 9*3600)

		assert.Equal(t, VoteDay(utc), VoteDay(utc.In(tokyo)))
	})
}

func TestNewVote(t *testing.T) {
	userID := uuid.New()
	zoneID := uuid.New()

	vote := NewVote(userID, zoneID, 71.5)
	require.NotNil(t, vote)

	assert.Equal(t, userID, vote.UserID)
	assert.Equal(t, zoneID, vote.ZoneID)
	assert.Equal(t, 71.5, vote.Temperature)
	assert.Equal(t, 1.0, vote.VoteWeight)
	assert.NotEmpty(t, vote.ID)
	assert.Equal(t, VoteDay(time.Now()), vote.VoteDay)
}

func TestNewReading(t *testing.T) {
	zoneID := uuid.New()
	target := 72.0

	reading := NewReading(zoneID, 68.5, &target)
	require.NotNil(t, reading)

	assert.Equal(t, zoneID, reading.ZoneID)
	assert.Equal(t, 68.5, reading.Temperature)
	require.NotNil(t, reading.TargetTemperature)
	assert.Equal(t, 72.0, *reading.TargetTemperature)
	assert.NotEmpty(t, reading.ID)
	assert.WithinDuration(t, time.Now(), reading.RecordedAt, time.Minute)
}
