package models

import (
	"time"

	"github.com/dormlife/backend/internal/domain/climate"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TemperatureZoneModel is the persistence model for temperature zones
type TemperatureZoneModel struct {
	SchoolAggregateModel
	Name               string  `gorm:"type:varchar(200);not null"`
	Description        string  `gorm:"type:varchar(500)"`
	CurrentTemperature float64 `gorm:"not null;default:72"`
	TargetTemperature  float64 `gorm:"not null;default:72"`
	MinTemperature     float64 `gorm:"not null;default:65"`
	MaxTemperature     float64 `gorm:"not null;default:80"`
	IsActive           bool    `gorm:"not null;default:true;index"`
}

// TableName returns the table name for TemperatureZoneModel
func (TemperatureZoneModel) TableName() string {
	return "temperature_zones"
}

// ToDomain converts the model to a domain zone
func (m *TemperatureZoneModel) ToDomain() *climate.TemperatureZone {
	zone := &climate.TemperatureZone{
		Name:               m.Name,
		Description:        m.Description,
		CurrentTemperature: m.CurrentTemperature,
		TargetTemperature:  m.TargetTemperature,
		MinTemperature:     m.MinTemperature,
		MaxTemperature:     m.MaxTemperature,
		Active:             m.IsActive,
	}
	m.PopulateSchoolAggregateRoot(&zone.SchoolAggregateRoot)
	return zone
}

// ZoneModelFromDomain converts a domain zone to the persistence model
func ZoneModelFromDomain(zone *climate.TemperatureZone) *TemperatureZoneModel {
	model := &TemperatureZoneModel{
		Name:               zone.Name,
		Description:        zone.Description,
		CurrentTemperature: zone.CurrentTemperature,
		TargetTemperature:  zone.TargetTemperature,
		MinTemperature:     zone.MinTemperature,
		MaxTemperature:     zone.MaxTemperature,
		IsActive:           zone.Active,
	}
	model.FromDomainSchoolAggregateRoot(zone.SchoolAggregateRoot)
	return model
}

// TemperatureVoteModel is the persistence model for votes. The unique index
// over (user_id, zone_id, vote_day) is the authority on the one-vote-per-day
// rule.
type TemperatureVoteModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_zone_day;index"`
	ZoneID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_zone_day;index"`
	Temperature float64   `gorm:"not null"`
	VoteWeight  float64   `gorm:"not null;default:1.0"`
	VoteDay     time.Time `gorm:"type:date;not null;uniqueIndex:idx_votes_user_zone_day"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for TemperatureVoteModel
func (TemperatureVoteModel) TableName() string {
	return "temperature_votes"
}

// ToDomain converts the model to a domain vote
func (m *TemperatureVoteModel) ToDomain() *climate.TemperatureVote {
	return &climate.TemperatureVote{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.CreatedAt,
		},
		UserID:      m.UserID,
		ZoneID:      m.ZoneID,
		Temperature: m.Temperature,
		VoteWeight:  m.VoteWeight,
		VoteDay:     m.VoteDay,
	}
}

// VoteModelFromDomain converts a domain vote to the persistence model
func VoteModelFromDomain(vote *climate.TemperatureVote) *TemperatureVoteModel {
	return &TemperatureVoteModel{
		ID:          vote.ID,
		UserID:      vote.UserID,
		ZoneID:      vote.ZoneID,
		Temperature: vote.Temperature,
		VoteWeight:  vote.VoteWeight,
		VoteDay:     vote.VoteDay,
		CreatedAt:   vote.CreatedAt,
	}
}

// TemperatureReadingModel is the persistence model for the append-only zone
// temperature history
type TemperatureReadingModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	ZoneID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Temperature       float64   `gorm:"not null"`
	TargetTemperature *float64  `gorm:""`
	RecordedAt        time.Time `gorm:"not null;index"`
}

// TableName returns the table name for TemperatureReadingModel
func (TemperatureReadingModel) TableName() string {
	return "temperature_history"
}

// ToDomain converts the model to a domain reading
func (m *TemperatureReadingModel) ToDomain() *climate.TemperatureReading {
	return &climate.TemperatureReading{
		ID:                m.ID,
		ZoneID:            m.ZoneID,
		Temperature:       m.Temperature,
		TargetTemperature: m.TargetTemperature,
		RecordedAt:        m.RecordedAt,
	}
}

// ReadingModelFromDomain converts a domain reading to the persistence model
func ReadingModelFromDomain(reading *climate.TemperatureReading) *TemperatureReadingModel {
	return &TemperatureReadingModel{
		ID:                reading.ID,
		ZoneID:            reading.ZoneID,
		Temperature:       reading.Temperature,
		TargetTemperature: reading.TargetTemperature,
		RecordedAt:        reading.RecordedAt,
	}
}
