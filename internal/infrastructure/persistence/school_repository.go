package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dormlife/backend/internal/domain/school"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSchoolRepository implements school.SchoolRepository using GORM
type GormSchoolRepository struct {
	db *gorm.DB
}

// NewGormSchoolRepository creates a new GormSchoolRepository
func NewGormSchoolRepository(db *gorm.DB) *GormSchoolRepository {
	return &GormSchoolRepository{db: db}
}

// Save creates a new school. A duplicate name surfaces as ErrDuplicateName.
func (r *GormSchoolRepository) Save(ctx context.Context, s *school.School) error {
	model := models.SchoolModelFromDomain(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return school.ErrDuplicateName
		}
		return err
	}
	return nil
}

// Update updates an existing school
func (r *GormSchoolRepository) Update(ctx context.Context, s *school.School) error {
	model := models.SchoolModelFromDomain(s)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a school by ID
func (r *GormSchoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*school.School, error) {
	var model models.SchoolModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all schools ordered by name
func (r *GormSchoolRepository) FindAll(ctx context.Context) ([]school.School, error) {
	var modelList []models.SchoolModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&modelList).Error; err != nil {
		return nil, err
	}

	schools := make([]school.School, len(modelList))
	for i := range modelList {
		schools[i] = *modelList[i].ToDomain()
	}
	return schools, nil
}

// ExistsByName checks if a school with the given name exists
func (r *GormSchoolRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SchoolModel{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateFields applies a whitelisted partial update and stamps updated_at
func (r *GormSchoolRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return shared.ErrInvalidInput
	}

	fields["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&models.SchoolModel{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return school.ErrDuplicateName
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GetStats computes user, request, and vote aggregates for a school
func (r *GormSchoolRepository) GetStats(ctx context.Context, schoolID uuid.UUID) (*school.Stats, error) {
	stats := &school.Stats{}

	err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("school_id = ? AND is_active = ?", schoolID, true).
		Count(&stats.TotalUsers).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.MaintenanceRequestModel{}).
		Where("school_id = ?", schoolID).
		Count(&stats.TotalRequests).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.MaintenanceRequestModel{}).
		Where("school_id = ? AND status IN ?", schoolID, []string{"pending", "in_progress"}).
		Count(&stats.ActiveRequests).Error
	if err != nil {
		return nil, err
	}

	var avg *float64
	err = r.db.WithContext(ctx).
		Model(&models.TemperatureVoteModel{}).
		Select("AVG(temperature_votes.temperature)").
		Joins("JOIN temperature_zones ON temperature_zones.id = temperature_votes.zone_id").
		Where("temperature_zones.school_id = ? AND temperature_votes.created_at >= ?", schoolID, time.Now().Add(-7*24*time.Hour)).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	stats.AverageVote7Day = avg

	return stats, nil
}

var _ school.SchoolRepository = (*GormSchoolRepository)(nil)
