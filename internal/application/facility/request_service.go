package facility

import (
	"context"
	"fmt"
	"strings"

	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestService handles maintenance requests, their photos, and comments
type RequestService struct {
	requestRepo facility.RequestRepository
	storage     storage.ObjectStorage
	logger      *zap.Logger
}

// NewRequestService creates a new request service
func NewRequestService(requestRepo facility.RequestRepository, store storage.ObjectStorage, logger *zap.Logger) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		storage:     store,
		logger:      logger,
	}
}

// Create files a new maintenance request. Photos are uploaded to object
// storage and their URLs stored on the request.
func (s *RequestService) Create(ctx context.Context, input CreateRequestInput) (*RequestInfo, error) {
	userID := &input.UserID
	if input.IsAnonymous {
		userID = nil
	}

	request, err := facility.NewRequest(input.SchoolID, userID, input.Title, input.Description, input.Priority, input.IsAnonymous)
	if err != nil {
		return nil, err
	}
	request.CategoryID = input.CategoryID

	for i, photo := range input.Photos {
		key := fmt.Sprintf("requests/%s/%s%s", request.ID, uuid.New(), photoExtension(photo.ContentType))
		url, err := s.storage.Upload(ctx, key, photo.Data, photo.ContentType)
		if err != nil {
			s.logger.Error("failed to upload request photo",
				zap.String("request_id", request.ID.String()),
				zap.Int("photo_index", i),
				zap.Error(err),
			)
			return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to upload photo")
		}
		request.AddPhoto(url)
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("maintenance request created",
		zap.String("request_id", request.ID.String()),
		zap.String("school_id", request.SchoolID.String()),
		zap.String("priority", string(request.Priority)),
		zap.Bool("anonymous", request.IsAnonymous),
	)

	info := NewRequestInfo(request)
	return &info, nil
}

// Get returns a request by ID, scoped to the caller's school
func (s *RequestService) Get(ctx context.Context, schoolID, id uuid.UUID) (*RequestInfo, error) {
	request, err := s.findScoped(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	info := NewRequestInfo(request)
	return &info, nil
}

// List returns a page of a school's requests, optionally filtered by status
// and priority
func (s *RequestService) List(ctx context.Context, input ListRequestsInput) (*RequestListResult, error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	if input.Status != "" {
		if !facility.RequestStatus(input.Status).IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown request status")
		}
		filter.Filters["status"] = input.Status
	}
	if input.Priority != "" {
		if !facility.Priority(input.Priority).IsValid() {
			return nil, shared.NewDomainError("INVALID_PRIORITY", "Unknown request priority")
		}
		filter.Filters["priority"] = input.Priority
	}

	requests, total, err := s.requestRepo.FindBySchool(ctx, input.SchoolID, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]RequestInfo, len(requests))
	for i := range requests {
		infos[i] = NewRequestInfo(&requests[i])
	}

	return &RequestListResult{
		Requests: infos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateStatus transitions a request's status (staff/admin)
func (s *RequestService) UpdateStatus(ctx context.Context, schoolID, id uuid.UUID, status facility.RequestStatus) (*RequestInfo, error) {
	request, err := s.findScoped(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if err := request.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("request status updated",
		zap.String("request_id", request.ID.String()),
		zap.String("status", string(status)),
	)

	info := NewRequestInfo(request)
	return &info, nil
}

// Assign assigns a request to a staff member (staff/admin)
func (s *RequestService) Assign(ctx context.Context, schoolID, id, staffID uuid.UUID) (*RequestInfo, error) {
	request, err := s.findScoped(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	request.Assign(staffID)
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	info := NewRequestInfo(request)
	return &info, nil
}

// Upvote bumps a request's upvote counter. Every call counts; there is no
// per-user deduplication.
func (s *RequestService) Upvote(ctx context.Context, schoolID, id uuid.UUID) (*RequestInfo, error) {
	if _, err := s.findScoped(ctx, schoolID, id); err != nil {
		return nil, err
	}

	if err := s.requestRepo.IncrementUpvotes(ctx, id); err != nil {
		return nil, err
	}

	return s.Get(ctx, schoolID, id)
}

// AddComment records a comment on a request. Comments by staff or admin
// authors are flagged as staff responses.
func (s *RequestService) AddComment(ctx context.Context, schoolID uuid.UUID, input AddCommentInput) (*CommentInfo, error) {
	if _, err := s.findScoped(ctx, schoolID, input.RequestID); err != nil {
		return nil, err
	}

	role := identity.Role(input.AuthorRole)
	isStaff := role == identity.RoleStaff || role == identity.RoleAdmin

	comment, err := facility.NewComment(input.RequestID, input.UserID, input.Comment, isStaff)
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	info := NewCommentInfo(comment)
	return &info, nil
}

// ListComments returns a request's comments in chronological order
func (s *RequestService) ListComments(ctx context.Context, schoolID, requestID uuid.UUID) ([]CommentInfo, error) {
	if _, err := s.findScoped(ctx, schoolID, requestID); err != nil {
		return nil, err
	}

	comments, err := s.requestRepo.ListComments(ctx, requestID)
	if err != nil {
		return nil, err
	}

	infos := make([]CommentInfo, len(comments))
	for i := range comments {
		infos[i] = NewCommentInfo(&comments[i])
	}
	return infos, nil
}

// findScoped loads a request and hides it from other schools
func (s *RequestService) findScoped(ctx context.Context, schoolID, id uuid.UUID) (*facility.MaintenanceRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.SchoolID != schoolID {
		return nil, shared.ErrNotFound
	}
	return request, nil
}

func photoExtension(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
