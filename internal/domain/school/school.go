package school

import (
	"strings"

	"github.com/dormlife/backend/internal/domain/shared"
)

// School-specific domain errors
var (
	ErrDuplicateName = shared.NewDomainError("DUPLICATE_NAME", "School name already exists")
)

// School is the aggregate root for a tenant school. All users, zones,
// requests, and announcements are scoped to exactly one school.
type School struct {
	shared.BaseAggregateRoot
	Name     string
	Address  string
	LogoURL  string
	Timezone string
	Settings map[string]interface{}
}

// NewSchool creates a new school. Timezone defaults to UTC when empty.
func NewSchool(name, address, timezone string) (*School, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "School name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "School name cannot exceed 200 characters")
	}
	if timezone == "" {
		timezone = "UTC"
	}

	return &School{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           strings.TrimSpace(address),
		Timezone:          timezone,
		Settings:          make(map[string]interface{}),
	}, nil
}

// Rename changes the school name
func (s *School) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "School name cannot be empty")
	}

	s.Name = name
	s.Touch()
	s.IncrementVersion()

	return nil
}

// SetAddress updates the school address
func (s *School) SetAddress(address string) {
	s.Address = strings.TrimSpace(address)
	s.Touch()
	s.IncrementVersion()
}

// SetLogoURL updates the logo URL
func (s *School) SetLogoURL(logoURL string) {
	s.LogoURL = logoURL
	s.Touch()
	s.IncrementVersion()
}

// SetTimezone updates the school timezone
func (s *School) SetTimezone(timezone string) error {
	if timezone == "" {
		return shared.NewDomainError("INVALID_TIMEZONE", "Timezone cannot be empty")
	}

	s.Timezone = timezone
	s.Touch()
	s.IncrementVersion()

	return nil
}

// SetSettings replaces the settings bag
func (s *School) SetSettings(settings map[string]interface{}) {
	if settings == nil {
		settings = make(map[string]interface{})
	}
	s.Settings = settings
	s.Touch()
	s.IncrementVersion()
}

// Stats holds the computed per-school statistics
type Stats struct {
	TotalUsers      int64    `json:"totalUsers"`
	TotalRequests   int64    `json:"totalRequests"`
	ActiveRequests  int64    `json:"activeRequests"`
	AverageVote7Day *float64 `json:"averageVote7Day"`
}
