package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save creates a new user. A duplicate email surfaces as ErrDuplicateEmail.
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return identity.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an active user by ID. Returns (nil, nil) when no active
// user matches.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an active user by email, case-insensitively. Returns
// (nil, nil) when no active user matches.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND is_active = ?", strings.ToLower(email), true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVerificationToken finds the user holding a pending verification
// token. Returns (nil, nil) when the token is unknown or already used.
func (r *GormUserRepository) FindByVerificationToken(ctx context.Context, token string) (*identity.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).
		Where("verification_token = ? AND is_active = ?", token, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByResetToken finds the user holding a pending reset token. Returns
// (nil, nil) when the token is unknown or already used.
func (r *GormUserRepository) FindByResetToken(ctx context.Context, token string) (*identity.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).
		Where("reset_token = ? AND is_active = ?", token, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySchool lists a school's active users with pagination
func (r *GormUserRepository) FindBySchool(ctx context.Context, schoolID uuid.UUID, filter shared.Filter) ([]identity.User, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("school_id = ? AND is_active = ?", schoolID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var modelList []models.UserModel
	err := query.
		Order("full_name ASC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]identity.User, len(modelList))
	for i := range modelList {
		users[i] = *modelList[i].ToDomain()
	}
	return users, total, nil
}

// UpdateFields applies a whitelisted partial update and stamps updated_at
func (r *GormUserRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return identity.ErrNoFieldsToUpdate
	}

	fields["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateLastLogin stamps the last login time
func (r *GormUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

// ExistsByEmail checks if a user with the given email exists, regardless of
// active status
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
