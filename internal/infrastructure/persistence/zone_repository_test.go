package persistence

import (
	"context"
	"testing"

	"github.com/dormlife/backend/internal/domain/climate"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZone(t *testing.T, schoolID uuid.UUID, name string) *climate.TemperatureZone {
	t.Helper()
	zone, err := climate.NewZone(schoolID, name, "", 62, 82, 72)
	require.NoError(t, err)
	return zone
}

func TestZoneRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormZoneRepository(db)
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("save and find by ID", func(t *testing.T) {
		zone := newTestZone(t, schoolID, "Floor 1")
		require.NoError(t, repo.Save(ctx, zone))

		found, err := repo.FindByID(ctx, zone.ID)
		require.NoError(t, err)
		assert.Equal(t, "Floor 1", found.Name)
		assert.Equal(t, 62.0, found.MinTemperature)
		assert.Equal(t, 82.0, found.MaxTemperature)
		assert.True(t, found.Active)
	})

	t.Run("missing zone is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update persists new temperatures", func(t *testing.T) {
		zone := newTestZone(t, schoolID, "Floor 2")
		require.NoError(t, repo.Save(ctx, zone))

		zone.ApplyVoteAverage(70.6)
		require.NoError(t, repo.Update(ctx, zone))

		found, err := repo.FindByID(ctx, zone.ID)
		require.NoError(t, err)
		assert.Equal(t, 71.0, found.TargetTemperature)
		assert.Equal(t, zone.GetVersion(), found.GetVersion())
	})

	t.Run("find by school lists active zones by name", func(t *testing.T) {
		other := uuid.New()
		zoneB := newTestZone(t, other, "B Wing")
		zoneA := newTestZone(t, other, "A Wing")
		inactive := newTestZone(t, other, "Closed Wing")
		inactive.Deactivate()

		require.NoError(t, repo.Save(ctx, zoneB))
		require.NoError(t, repo.Save(ctx, zoneA))
		require.NoError(t, repo.Save(ctx, inactive))

		zones, err := repo.FindBySchool(ctx, other)
		require.NoError(t, err)
		require.Len(t, zones, 2)
		assert.Equal(t, "A Wing", zones[0].Name)
		assert.Equal(t, "B Wing", zones[1].Name)
	})
}

func TestReadingRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormReadingRepository(db)
	ctx := context.Background()
	zoneID := uuid.New()

	t.Run("append and list newest first", func(t *testing.T) {
		target := 72.0
		require.NoError(t, repo.Append(ctx, climate.NewReading(zoneID, 68, &target)))
		require.NoError(t, repo.Append(ctx, climate.NewReading(zoneID, 69, nil)))

		readings, err := repo.ListByZone(ctx, zoneID, 10)
		require.NoError(t, err)
		require.Len(t, readings, 2)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		readings, err := repo.ListByZone(ctx, zoneID, 1)
		require.NoError(t, err)
		assert.Len(t, readings, 1)
	})

	t.Run("other zones are excluded", func(t *testing.T) {
		readings, err := repo.ListByZone(ctx, uuid.New(), 10)
		require.NoError(t, err)
		assert.Empty(t, readings)
	})
}
