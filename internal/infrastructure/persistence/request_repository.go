package persistence

import (
	"context"
	"errors"

	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRequestRepository implements facility.RequestRepository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Save creates a new maintenance request
func (r *GormRequestRepository) Save(ctx context.Context, request *facility.MaintenanceRequest) error {
	model := models.RequestModelFromDomain(request)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing request
func (r *GormRequestRepository) Update(ctx context.Context, request *facility.MaintenanceRequest) error {
	model := models.RequestModelFromDomain(request)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a request by ID
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.MaintenanceRequest, error) {
	var model models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySchool lists a school's requests with pagination, newest first.
// Filter.Filters supports "status" and "priority".
func (r *GormRequestRepository) FindBySchool(ctx context.Context, schoolID uuid.UUID, filter shared.Filter) ([]facility.MaintenanceRequest, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequestModel{}).
		Where("school_id = ?", schoolID)

	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if priority, ok := filter.Filters["priority"]; ok && priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var modelList []models.MaintenanceRequestModel
	err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, err
	}

	requests := make([]facility.MaintenanceRequest, len(modelList))
	for i := range modelList {
		requests[i] = *modelList[i].ToDomain()
	}
	return requests, total, nil
}

// IncrementUpvotes atomically bumps the upvote counter
func (r *GormRequestRepository) IncrementUpvotes(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequestModel{}).
		Where("id = ?", id).
		Update("upvotes", gorm.Expr("upvotes + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddComment records a comment on a request
func (r *GormRequestRepository) AddComment(ctx context.Context, comment *facility.RequestComment) error {
	model := models.CommentModelFromDomain(comment)
	return r.db.WithContext(ctx).Create(model).Error
}

// ListComments returns a request's comments in chronological order
func (r *GormRequestRepository) ListComments(ctx context.Context, requestID uuid.UUID) ([]facility.RequestComment, error) {
	var modelList []models.RequestCommentModel
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	comments := make([]facility.RequestComment, len(modelList))
	for i := range modelList {
		comments[i] = *modelList[i].ToDomain()
	}
	return comments, nil
}

var _ facility.RequestRepository = (*GormRequestRepository)(nil)
