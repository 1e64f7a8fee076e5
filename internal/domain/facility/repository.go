package facility

import (
	"context"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RequestRepository defines persistence for maintenance requests
type RequestRepository interface {
	Save(ctx context.Context, request *MaintenanceRequest) error
	Update(ctx context.Context, request *MaintenanceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*MaintenanceRequest, error)

	// FindBySchool lists requests for a school. Filter.Filters supports
	// "status" and "priority".
	FindBySchool(ctx context.Context, schoolID uuid.UUID, filter shared.Filter) ([]MaintenanceRequest, int64, error)

	// IncrementUpvotes atomically bumps the upvote counter
	IncrementUpvotes(ctx context.Context, id uuid.UUID) error

	AddComment(ctx context.Context, comment *RequestComment) error
	ListComments(ctx context.Context, requestID uuid.UUID) ([]RequestComment, error)
}

// AnnouncementRepository defines persistence for announcements
type AnnouncementRepository interface {
	Save(ctx context.Context, announcement *Announcement) error
	Update(ctx context.Context, announcement *Announcement) error
	FindByID(ctx context.Context, id uuid.UUID) (*Announcement, error)

	// FindActiveBySchool lists active, unexpired announcements for a school,
	// newest first. audience filters to announcements targeting that group
	// (or "all"); empty audience returns everything.
	FindActiveBySchool(ctx context.Context, schoolID uuid.UUID, audience string) ([]Announcement, error)
}
