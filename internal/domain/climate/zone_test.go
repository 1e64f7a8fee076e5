package climate

import (
	"testing"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	return derr.Code
}

func TestNewZone(t *testing.T) {
	schoolID := uuid.New()

	t.Run("creates zone with valid inputs", func(t *testing.T) {
		zone, err := NewZone(schoolID, "Floor 3 East", "East wing, third floor", 62, 82, 72)
		require.NoError(t, err)
		require.NotNil(t, zone)

		assert.Equal(t, schoolID, zone.SchoolID)
		assert.Equal(t, "Floor 3 East", zone.Name)
		assert.Equal(t, 72.0, zone.CurrentTemperature)
		assert.Equal(t, 72.0, zone.TargetTemperature)
		assert.Equal(t, 62.0, zone.MinTemperature)
		assert.Equal(t, 82.0, zone.MaxTemperature)
		assert.True(t, zone.Active)
		assert.NotEmpty(t, zone.ID)
		assert.Equal(t, 1, zone.GetVersion())
	})

	t.Run("trims name and description", func(t *testing.T) {
		zone, err := NewZone(schoolID, "  Lobby  ", "  ground floor  ", 60, 80, 70)
		require.NoError(t, err)
		assert.Equal(t, "Lobby", zone.Name)
		assert.Equal(t, "ground floor", zone.Description)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewZone(schoolID, "   ", "", 60, 80, 70)
		require.Error(t, err)
		assert.Equal(t, "INVALID_NAME", domainCode(t, err))
	})

	t.Run("fails when min is not below max", func(t *testing.T) {
		_, err := NewZone(schoolID, "Lobby", "", 80, 80, 80)
		require.Error(t, err)
		assert.Equal(t, "INVALID_BOUNDS", domainCode(t, err))
	})
}

func TestValidateVote(t *testing.T) {
	schoolID := uuid.New()
	zone, err := NewZone(schoolID, "Lobby", "", 62, 82, 72)
	require.NoError(t, err)

	t.Run("accepts vote within bounds", func(t *testing.T) {
		assert.NoError(t, zone.ValidateVote(70))
	})

	t.Run("accepts vote exactly at minimum", func(t *testing.T) {
		assert.NoError(t, zone.ValidateVote(62))
	})

	t.Run("accepts vote exactly at maximum", func(t *testing.T) {
		assert.NoError(t, zone.ValidateVote(82))
	})

	t.Run("rejects vote below minimum", func(t *testing.T) {
		err := zone.ValidateVote(61.9)
		require.Error(t, err)
		assert.Equal(t, "TEMPERATURE_OUT_OF_RANGE", domainCode(t, err))
	})

	t.Run("rejects vote above maximum", func(t *testing.T) {
		err := zone.ValidateVote(82.1)
		require.Error(t, err)
		assert.Equal(t, "TEMPERATURE_OUT_OF_RANGE", domainCode(t, err))
	})
}

func TestApplyVoteAverage(t *testing.T) {
	schoolID := uuid.New()

	t.Run("rounds the average to the nearest degree", func(t *testing.T) {
		zone, err := NewZone(schoolID, "Lobby", "", 62, 82, 72)
		require.NoError(t, err)

		zone.ApplyVoteAverage(70.4)
		assert.Equal(t, 70.0, zone.TargetTemperature)

		zone.ApplyVoteAverage(70.5)
		assert.Equal(t, 71.0, zone.TargetTemperature)
	})

	t.Run("bumps the version", func(t *testing.T) {
		zone, err := NewZone(schoolID, "Lobby", "", 62, 82, 72)
		require.NoError(t, err)

		before := zone.GetVersion()
		zone.ApplyVoteAverage(71)
		assert.Equal(t, before+1, zone.GetVersion())
	})
}

func TestSetTemperatures(t *testing.T) {
	schoolID := uuid.New()

	newZone := func(t *testing.T) *TemperatureZone {
		zone, err := NewZone(schoolID, "Lobby", "", 62, 82, 72)
		require.NoError(t, err)
		return zone
	}

	t.Run("updates both values", func(t *testing.T) {
		zone := newZone(t)
		current, target := 68.5, 71.0

		require.NoError(t, zone.SetTemperatures(&current, &target))
		assert.Equal(t, 68.5, zone.CurrentTemperature)
		assert.Equal(t, 71.0, zone.TargetTemperature)
	})

	t.Run("updates only current when target is nil", func(t *testing.T) {
		zone := newZone(t)
		current := 69.0

		require.NoError(t, zone.SetTemperatures(&current, nil))
		assert.Equal(t, 69.0, zone.CurrentTemperature)
		assert.Equal(t, 72.0, zone.TargetTemperature)
	})

	t.Run("fails when both values are nil", func(t *testing.T) {
		zone := newZone(t)

		err := zone.SetTemperatures(nil, nil)
		require.Error(t, err)
		assert.Equal(t, "NO_FIELDS_TO_UPDATE", domainCode(t, err))
	})
}

func TestDeactivateZone(t *testing.T) {
	zone, err := NewZone(uuid.New(), "Lobby", "", 62, 82, 72)
	require.NoError(t, err)

	zone.Deactivate()
	assert.False(t, zone.Active)
}
