package persistence

import (
	"context"
	"errors"

	"github.com/dormlife/backend/internal/domain/climate"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormZoneRepository implements climate.ZoneRepository using GORM
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GormZoneRepository
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// Save creates a new zone
func (r *GormZoneRepository) Save(ctx context.Context, zone *climate.TemperatureZone) error {
	model := models.ZoneModelFromDomain(zone)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing zone
func (r *GormZoneRepository) Update(ctx context.Context, zone *climate.TemperatureZone) error {
	model := models.ZoneModelFromDomain(zone)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a zone by ID
func (r *GormZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*climate.TemperatureZone, error) {
	var model models.TemperatureZoneModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySchool lists a school's active zones ordered by name
func (r *GormZoneRepository) FindBySchool(ctx context.Context, schoolID uuid.UUID) ([]climate.TemperatureZone, error) {
	var modelList []models.TemperatureZoneModel
	err := r.db.WithContext(ctx).
		Where("school_id = ? AND is_active = ?", schoolID, true).
		Order("name ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	zones := make([]climate.TemperatureZone, len(modelList))
	for i := range modelList {
		zones[i] = *modelList[i].ToDomain()
	}
	return zones, nil
}

var _ climate.ZoneRepository = (*GormZoneRepository)(nil)
