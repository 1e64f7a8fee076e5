package models

import (
	"encoding/json"

	"github.com/dormlife/backend/internal/domain/school"
)

// SchoolModel is the persistence model for the school aggregate
type SchoolModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Address  string `gorm:"type:varchar(500)"`
	LogoURL  string `gorm:"type:varchar(500)"`
	Timezone string `gorm:"type:varchar(50);not null;default:'UTC'"`
	Settings string `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for SchoolModel
func (SchoolModel) TableName() string {
	return "schools"
}

// ToDomain converts the model to a domain school
func (m *SchoolModel) ToDomain() *school.School {
	s := &school.School{
		Name:     m.Name,
		Address:  m.Address,
		LogoURL:  m.LogoURL,
		Timezone: m.Timezone,
		Settings: make(map[string]interface{}),
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)

	if m.Settings != "" {
		_ = json.Unmarshal([]byte(m.Settings), &s.Settings)
	}

	return s
}

// SchoolModelFromDomain converts a domain school to the persistence model
func SchoolModelFromDomain(s *school.School) *SchoolModel {
	model := &SchoolModel{
		Name:     s.Name,
		Address:  s.Address,
		LogoURL:  s.LogoURL,
		Timezone: s.Timezone,
	}
	model.FromDomainAggregateRoot(s.BaseAggregateRoot)

	if settings, err := json.Marshal(s.Settings); err == nil {
		model.Settings = string(settings)
	} else {
		model.Settings = "{}"
	}

	return model
}
