package facility

import (
	"strings"
	"time"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AnnouncementType categorizes an announcement
type AnnouncementType string

const (
	AnnouncementGeneral     AnnouncementType = "general"
	AnnouncementEmergency   AnnouncementType = "emergency"
	AnnouncementMaintenance AnnouncementType = "maintenance"
	AnnouncementEvent       AnnouncementType = "event"
)

// IsValid reports whether the type is a known category
func (t AnnouncementType) IsValid() bool {
	switch t {
	case AnnouncementGeneral, AnnouncementEmergency, AnnouncementMaintenance, AnnouncementEvent:
		return true
	}
	return false
}

// Announcement is a staff-authored notice for a school's residents
type Announcement struct {
	shared.SchoolAggregateRoot
	AuthorID       *uuid.UUID
	Title          string
	Content        string
	Type           AnnouncementType
	Priority       Priority
	TargetAudience []string
	ExpiresAt      *time.Time
	Active         bool
}

// NewAnnouncement creates an announcement. expiresAt, when set, must be in
// the future.
func NewAnnouncement(schoolID uuid.UUID, authorID *uuid.UUID, title, content string, annType AnnouncementType, priority Priority, audience []string, expiresAt *time.Time) (*Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Content cannot be empty")
	}
	if annType == "" {
		annType = AnnouncementGeneral
	}
	if !annType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown announcement type")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority must be low, medium, high, or urgent")
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Expiry must be in the future")
	}
	if audience == nil {
		audience = []string{"all"}
	}

	return &Announcement{
		SchoolAggregateRoot: shared.NewSchoolAggregateRoot(schoolID),
		AuthorID:            authorID,
		Title:               title,
		Content:             strings.TrimSpace(content),
		Type:                annType,
		Priority:            priority,
		TargetAudience:      audience,
		ExpiresAt:           expiresAt,
		Active:              true,
	}, nil
}

// UpdateContent updates title and content
func (a *Announcement) UpdateContent(title, content string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Content cannot be empty")
	}

	a.Title = title
	a.Content = strings.TrimSpace(content)
	a.Touch()
	a.IncrementVersion()

	return nil
}

// Deactivate hides the announcement
func (a *Announcement) Deactivate() {
	a.Active = false
	a.Touch()
	a.IncrementVersion()
}

// IsExpired reports whether the announcement has passed its expiry
func (a *Announcement) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && now.After(*a.ExpiresAt)
}
