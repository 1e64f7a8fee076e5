package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAnnouncementRepository implements facility.AnnouncementRepository using GORM
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository creates a new GormAnnouncementRepository
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Save creates a new announcement
func (r *GormAnnouncementRepository) Save(ctx context.Context, announcement *facility.Announcement) error {
	model := models.AnnouncementModelFromDomain(announcement)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing announcement
func (r *GormAnnouncementRepository) Update(ctx context.Context, announcement *facility.Announcement) error {
	model := models.AnnouncementModelFromDomain(announcement)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an announcement by ID
func (r *GormAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.Announcement, error) {
	var model models.AnnouncementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveBySchool lists active, unexpired announcements for a school,
// newest first. audience narrows the result to announcements targeting that
// group or "all"; an empty audience returns everything.
func (r *GormAnnouncementRepository) FindActiveBySchool(ctx context.Context, schoolID uuid.UUID, audience string) ([]facility.Announcement, error) {
	query := r.db.WithContext(ctx).
		Where("school_id = ? AND is_active = ?", schoolID, true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())

	if audience != "" {
		query = query.Where("target_audience @> ? OR target_audience @> ?",
			`["`+audience+`"]`, `["all"]`)
	}

	var modelList []models.AnnouncementModel
	if err := query.Order("created_at DESC").Find(&modelList).Error; err != nil {
		return nil, err
	}

	announcements := make([]facility.Announcement, len(modelList))
	for i := range modelList {
		announcements[i] = *modelList[i].ToDomain()
	}
	return announcements, nil
}

var _ facility.AnnouncementRepository = (*GormAnnouncementRepository)(nil)
