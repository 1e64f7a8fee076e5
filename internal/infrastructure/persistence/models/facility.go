package models

import (
	"encoding/json"
	"time"

	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaintenanceRequestModel is the persistence model for maintenance requests
type MaintenanceRequestModel struct {
	SchoolAggregateModel
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text;not null"`
	Priority    string     `gorm:"type:varchar(20);not null;default:'medium';index"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsAnonymous bool       `gorm:"not null;default:false"`
	Photos      string     `gorm:"type:jsonb;default:'[]'"`
	Upvotes     int        `gorm:"not null;default:0"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for MaintenanceRequestModel
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the model to a domain request
func (m *MaintenanceRequestModel) ToDomain() *facility.MaintenanceRequest {
	request := &facility.MaintenanceRequest{
		UserID:      m.UserID,
		CategoryID:  m.CategoryID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    facility.Priority(m.Priority),
		Status:      facility.RequestStatus(m.Status),
		IsAnonymous: m.IsAnonymous,
		Photos:      make([]string, 0),
		Upvotes:     m.Upvotes,
		AssignedTo:  m.AssignedTo,
	}
	m.PopulateSchoolAggregateRoot(&request.SchoolAggregateRoot)

	if m.Photos != "" {
		_ = json.Unmarshal([]byte(m.Photos), &request.Photos)
	}

	return request
}

// RequestModelFromDomain converts a domain request to the persistence model
func RequestModelFromDomain(request *facility.MaintenanceRequest) *MaintenanceRequestModel {
	model := &MaintenanceRequestModel{
		UserID:      request.UserID,
		CategoryID:  request.CategoryID,
		Title:       request.Title,
		Description: request.Description,
		Priority:    string(request.Priority),
		Status:      string(request.Status),
		IsAnonymous: request.IsAnonymous,
		Upvotes:     request.Upvotes,
		AssignedTo:  request.AssignedTo,
	}
	model.FromDomainSchoolAggregateRoot(request.SchoolAggregateRoot)

	if photos, err := json.Marshal(request.Photos); err == nil {
		model.Photos = string(photos)
	} else {
		model.Photos = "[]"
	}

	return model
}

// RequestCommentModel is the persistence model for request comments
type RequestCommentModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	RequestID       uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID `gorm:"type:uuid;not null"`
	Comment         string    `gorm:"type:text;not null"`
	IsStaffResponse bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for RequestCommentModel
func (RequestCommentModel) TableName() string {
	return "request_comments"
}

// ToDomain converts the model to a domain comment
func (m *RequestCommentModel) ToDomain() *facility.RequestComment {
	return &facility.RequestComment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.CreatedAt,
		},
		RequestID:       m.RequestID,
		UserID:          m.UserID,
		Comment:         m.Comment,
		IsStaffResponse: m.IsStaffResponse,
	}
}

// CommentModelFromDomain converts a domain comment to the persistence model
func CommentModelFromDomain(comment *facility.RequestComment) *RequestCommentModel {
	return &RequestCommentModel{
		ID:              comment.ID,
		RequestID:       comment.RequestID,
		UserID:          comment.UserID,
		Comment:         comment.Comment,
		IsStaffResponse: comment.IsStaffResponse,
		CreatedAt:       comment.CreatedAt,
	}
}

// AnnouncementModel is the persistence model for announcements
type AnnouncementModel struct {
	SchoolAggregateModel
	AuthorID       *uuid.UUID `gorm:"type:uuid;index"`
	Title          string     `gorm:"type:varchar(200);not null"`
	Content        string     `gorm:"type:text;not null"`
	Type           string     `gorm:"type:varchar(20);not null;default:'general'"`
	Priority       string     `gorm:"type:varchar(20);not null;default:'medium'"`
	TargetAudience string     `gorm:"type:jsonb;default:'[\"all\"]'"`
	ExpiresAt      *time.Time `gorm:"index"`
	IsActive       bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for AnnouncementModel
func (AnnouncementModel) TableName() string {
	return "announcements"
}

// ToDomain converts the model to a domain announcement
func (m *AnnouncementModel) ToDomain() *facility.Announcement {
	announcement := &facility.Announcement{
		AuthorID:       m.AuthorID,
		Title:          m.Title,
		Content:        m.Content,
		Type:           facility.AnnouncementType(m.Type),
		Priority:       facility.Priority(m.Priority),
		TargetAudience: make([]string, 0),
		ExpiresAt:      m.ExpiresAt,
		Active:         m.IsActive,
	}
	m.PopulateSchoolAggregateRoot(&announcement.SchoolAggregateRoot)

	if m.TargetAudience != "" {
		_ = json.Unmarshal([]byte(m.TargetAudience), &announcement.TargetAudience)
	}

	return announcement
}

// AnnouncementModelFromDomain converts a domain announcement to the persistence model
func AnnouncementModelFromDomain(announcement *facility.Announcement) *AnnouncementModel {
	model := &AnnouncementModel{
		AuthorID:  announcement.AuthorID,
		Title:     announcement.Title,
		Content:   announcement.Content,
		Type:      string(announcement.Type),
		Priority:  string(announcement.Priority),
		ExpiresAt: announcement.ExpiresAt,
		IsActive:  announcement.Active,
	}
	model.FromDomainSchoolAggregateRoot(announcement.SchoolAggregateRoot)

	if audience, err := json.Marshal(announcement.TargetAudience); err == nil {
		model.TargetAudience = string(audience)
	} else {
		model.TargetAudience = `["all"]`
	}

	return model
}
