package persistence

import (
	"context"

	"github.com/dormlife/backend/internal/domain/climate"
	"github.com/dormlife/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReadingRepository implements climate.ReadingRepository using GORM
type GormReadingRepository struct {
	db *gorm.DB
}

// NewGormReadingRepository creates a new GormReadingRepository
func NewGormReadingRepository(db *gorm.DB) *GormReadingRepository {
	return &GormReadingRepository{db: db}
}

// Append records a temperature reading
func (r *GormReadingRepository) Append(ctx context.Context, reading *climate.TemperatureReading) error {
	model := models.ReadingModelFromDomain(reading)
	return r.db.WithContext(ctx).Create(model).Error
}

// ListByZone returns the zone's most recent readings, newest first
func (r *GormReadingRepository) ListByZone(ctx context.Context, zoneID uuid.UUID, limit int) ([]climate.TemperatureReading, error) {
	if limit <= 0 {
		limit = 100
	}

	var modelList []models.TemperatureReadingModel
	err := r.db.WithContext(ctx).
		Where("zone_id = ?", zoneID).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	readings := make([]climate.TemperatureReading, len(modelList))
	for i := range modelList {
		readings[i] = *modelList[i].ToDomain()
	}
	return readings, nil
}

var _ climate.ReadingRepository = (*GormReadingRepository)(nil)
