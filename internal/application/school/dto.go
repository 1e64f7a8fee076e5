package school

import (
	"time"

	"github.com/dormlife/backend/internal/domain/school"
	"github.com/google/uuid"
)

// CreateSchoolInput contains the input for creating a school
type CreateSchoolInput struct {
	Name     string
	Address  string
	Timezone string
	LogoURL  string
}

// UpdateSchoolInput contains the partial-update fields for a school. Nil
// fields are left unchanged.
type UpdateSchoolInput struct {
	Name     *string
	Address  *string
	LogoURL  *string
	Timezone *string
	Settings map[string]interface{}
}

// SchoolInfo is the full school representation
type SchoolInfo struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Address   string                 `json:"address,omitempty"`
	LogoURL   string                 `json:"logoUrl,omitempty"`
	Timezone  string                 `json:"timezone"`
	Settings  map[string]interface{} `json:"settings,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// SchoolSummary is the public list projection
type SchoolSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	LogoURL string    `json:"logoUrl,omitempty"`
}

// NewSchoolInfo builds the full representation from a domain school
func NewSchoolInfo(s *school.School) SchoolInfo {
	return SchoolInfo{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		LogoURL:   s.LogoURL,
		Timezone:  s.Timezone,
		Settings:  s.Settings,
		CreatedAt: s.CreatedAt,
	}
}

// NewSchoolSummary builds the public projection from a domain school
func NewSchoolSummary(s *school.School) SchoolSummary {
	return SchoolSummary{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
		LogoURL: s.LogoURL,
	}
}
