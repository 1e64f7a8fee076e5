package facility

import (
	"time"

	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/google/uuid"
)

// PhotoUpload is one photo attached to a new maintenance request
type PhotoUpload struct {
	Data        []byte
	ContentType string
}

// CreateRequestInput contains the input for creating a maintenance request
type CreateRequestInput struct {
	SchoolID    uuid.UUID
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	Title       string
	Description string
	Priority    facility.Priority
	IsAnonymous bool
	Photos      []PhotoUpload
}

// ListRequestsInput contains the list filters for maintenance requests
type ListRequestsInput struct {
	SchoolID uuid.UUID
	Status   string
	Priority string
	Page     int
	PageSize int
}

// RequestInfo is the maintenance request representation returned by the API.
// UserID is omitted for anonymous requests.
type RequestInfo struct {
	ID          uuid.UUID  `json:"id"`
	SchoolID    uuid.UUID  `json:"schoolId"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	IsAnonymous bool       `json:"isAnonymous"`
	Photos      []string   `json:"photos"`
	Upvotes     int        `json:"upvotes"`
	AssignedTo  *uuid.UUID `json:"assignedTo,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewRequestInfo builds the API representation from a domain request
func NewRequestInfo(r *facility.MaintenanceRequest) RequestInfo {
	return RequestInfo{
		ID:          r.ID,
		SchoolID:    r.SchoolID,
		UserID:      r.UserID,
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    string(r.Priority),
		Status:      string(r.Status),
		IsAnonymous: r.IsAnonymous,
		Photos:      r.Photos,
		Upvotes:     r.Upvotes,
		AssignedTo:  r.AssignedTo,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// RequestListResult is a page of maintenance requests
type RequestListResult struct {
	Requests []RequestInfo `json:"requests"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// AddCommentInput contains the input for commenting on a request
type AddCommentInput struct {
	RequestID  uuid.UUID
	UserID     uuid.UUID
	AuthorRole string
	Comment    string
}

// CommentInfo is the comment representation returned by the API
type CommentInfo struct {
	ID              uuid.UUID `json:"id"`
	RequestID       uuid.UUID `json:"requestId"`
	UserID          uuid.UUID `json:"userId"`
	Comment         string    `json:"comment"`
	IsStaffResponse bool      `json:"isStaffResponse"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewCommentInfo builds the API representation from a domain comment
func NewCommentInfo(c *facility.RequestComment) CommentInfo {
	return CommentInfo{
		ID:              c.ID,
		RequestID:       c.RequestID,
		UserID:          c.UserID,
		Comment:         c.Comment,
		IsStaffResponse: c.IsStaffResponse,
		CreatedAt:       c.CreatedAt,
	}
}

// CreateAnnouncementInput contains the input for creating an announcement
type CreateAnnouncementInput struct {
	SchoolID       uuid.UUID
	AuthorID       uuid.UUID
	Title          string
	Content        string
	Type           facility.AnnouncementType
	Priority       facility.Priority
	TargetAudience []string
	ExpiresAt      *time.Time
}

// UpdateAnnouncementInput contains the update fields for an announcement
type UpdateAnnouncementInput struct {
	Title   string
	Content string
}

// AnnouncementInfo is the announcement representation returned by the API
type AnnouncementInfo struct {
	ID             uuid.UUID  `json:"id"`
	SchoolID       uuid.UUID  `json:"schoolId"`
	AuthorID       *uuid.UUID `json:"authorId,omitempty"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	TargetAudience []string   `json:"targetAudience"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NewAnnouncementInfo builds the API representation from a domain
// announcement
func NewAnnouncementInfo(a *facility.Announcement) AnnouncementInfo {
	return AnnouncementInfo{
		ID:             a.ID,
		SchoolID:       a.SchoolID,
		AuthorID:       a.AuthorID,
		Title:          a.Title,
		Content:        a.Content,
		Type:           string(a.Type),
		Priority:       string(a.Priority),
		TargetAudience: a.TargetAudience,
		ExpiresAt:      a.ExpiresAt,
		CreatedAt:      a.CreatedAt,
	}
}
