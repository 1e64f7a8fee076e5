package persistence

import (
	"testing"

	"github.com/dormlife/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteDB opens an in-memory database with the full schema. SQLite is
// close enough to postgres for repository tests; queries that need postgres
// operators are covered by the integration suite instead.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.SchoolModel{},
		&models.UserModel{},
		&models.TemperatureZoneModel{},
		&models.TemperatureVoteModel{},
		&models.TemperatureReadingModel{},
		&models.MaintenanceRequestModel{},
		&models.RequestCommentModel{},
		&models.AnnouncementModel{},
	))

	return db
}
