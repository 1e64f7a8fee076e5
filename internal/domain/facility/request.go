package facility

import (
	"strings"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Priority levels for maintenance requests and announcements
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid reports whether the priority is a known level
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// RequestStatus represents the workflow state of a maintenance request.
// Transitions are free-form; any known status may follow any other.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusResolved   RequestStatus = "resolved"
	StatusClosed     RequestStatus = "closed"
)

// IsValid reports whether the status is a known state
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// MaintenanceRequest is the aggregate root for a resident-submitted issue.
// UserID is nil when the request was submitted anonymously.
type MaintenanceRequest struct {
	shared.SchoolAggregateRoot
	UserID      *uuid.UUID
	CategoryID  *uuid.UUID
	Title       string
	Description string
	Priority    Priority
	Status      RequestStatus
	IsAnonymous bool
	Photos      []string
	Upvotes     int
	AssignedTo  *uuid.UUID
}

// NewRequest creates a maintenance request in the pending state
func NewRequest(schoolID uuid.UUID, userID *uuid.UUID, title, description string, priority Priority, isAnonymous bool) (*MaintenanceRequest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority must be low, medium, high, or urgent")
	}

	reqUserID := userID
	if isAnonymous {
		reqUserID = nil
	}

	return &MaintenanceRequest{
		SchoolAggregateRoot: shared.NewSchoolAggregateRoot(schoolID),
		UserID:              reqUserID,
		Title:               title,
		Description:         strings.TrimSpace(description),
		Priority:            priority,
		Status:              StatusPending,
		IsAnonymous:         isAnonymous,
		Photos:              make([]string, 0),
	}, nil
}

// SetStatus moves the request to a new workflow state
func (r *MaintenanceRequest) SetStatus(status RequestStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown request status")
	}

	r.Status = status
	r.Touch()
	r.IncrementVersion()

	return nil
}

// Assign assigns the request to a staff member
func (r *MaintenanceRequest) Assign(staffID uuid.UUID) {
	r.AssignedTo = &staffID
	if r.Status == StatusPending {
		r.Status = StatusInProgress
	}
	r.Touch()
	r.IncrementVersion()
}

// Upvote increments the upvote counter. Upvotes are not deduplicated per
// user.
func (r *MaintenanceRequest) Upvote() {
	r.Upvotes++
	r.Touch()
}

// AddPhoto appends a stored photo URL
func (r *MaintenanceRequest) AddPhoto(url string) {
	r.Photos = append(r.Photos, url)
	r.Touch()
}

// RequestComment is a single comment on a maintenance request
type RequestComment struct {
	shared.BaseEntity
	RequestID       uuid.UUID
	UserID          uuid.UUID
	Comment         string
	IsStaffResponse bool
}

// NewComment creates a comment on a request
func NewComment(requestID, userID uuid.UUID, comment string, isStaffResponse bool) (*RequestComment, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot be empty")
	}

	return &RequestComment{
		BaseEntity:      shared.NewBaseEntity(),
		RequestID:       requestID,
		UserID:          userID,
		Comment:         strings.TrimSpace(comment),
		IsStaffResponse: isStaffResponse,
	}, nil
}
