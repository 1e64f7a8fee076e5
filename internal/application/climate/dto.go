package climate

import (
	"time"

	"github.com/dormlife/backend/internal/domain/climate"
	"github.com/google/uuid"
)

// ZoneInfo is the zone representation returned by the API
type ZoneInfo struct {
	ID                 uuid.UUID `json:"id"`
	SchoolID           uuid.UUID `json:"schoolId"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	CurrentTemperature float64   `json:"currentTemperature"`
	TargetTemperature  float64   `json:"targetTemperature"`
	MinTemperature     float64   `json:"minTemperature"`
	MaxTemperature     float64   `json:"maxTemperature"`
}

// NewZoneInfo builds the API representation from a domain zone
func NewZoneInfo(zone *climate.TemperatureZone) ZoneInfo {
	return ZoneInfo{
		ID:                 zone.ID,
		SchoolID:           zone.SchoolID,
		Name:               zone.Name,
		Description:        zone.Description,
		CurrentTemperature: zone.CurrentTemperature,
		TargetTemperature:  zone.TargetTemperature,
		MinTemperature:     zone.MinTemperature,
		MaxTemperature:     zone.MaxTemperature,
	}
}

// CurrentResult is the zone snapshot plus the caller's vote eligibility
type CurrentResult struct {
	Zone           ZoneInfo           `json:"zone"`
	Stats          *climate.ZoneStats `json:"stats"`
	CanVote        bool               `json:"canVote"`
	NextEligibleAt *time.Time         `json:"nextEligibleAt,omitempty"`
	LastVote       *VoteInfo          `json:"lastVote,omitempty"`
}

// SubmitVoteInput contains the input for a temperature vote. A nil ZoneID
// targets the school's first active zone.
type SubmitVoteInput struct {
	UserID      uuid.UUID
	SchoolID    uuid.UUID
	ZoneID      *uuid.UUID
	Temperature float64
}

// VoteInfo is the vote representation returned by the API
type VoteInfo struct {
	ID          uuid.UUID `json:"id"`
	ZoneID      uuid.UUID `json:"zoneId"`
	Temperature float64   `json:"temperature"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewVoteInfo builds the API representation from a domain vote
func NewVoteInfo(vote *climate.TemperatureVote) VoteInfo {
	return VoteInfo{
		ID:          vote.ID,
		ZoneID:      vote.ZoneID,
		Temperature: vote.Temperature,
		CreatedAt:   vote.CreatedAt,
	}
}

// VoteResult is the outcome of a successful vote
type VoteResult struct {
	Vote              VoteInfo  `json:"vote"`
	TargetTemperature float64   `json:"targetTemperature"`
	NextEligibleAt    time.Time `json:"nextEligibleAt"`
}

// ZoneStatsResult pairs a zone with its aggregates
type ZoneStatsResult struct {
	Zone  ZoneInfo           `json:"zone"`
	Stats *climate.ZoneStats `json:"stats"`
}

// UpdateZoneInput contains the sensor/HVAC partial update for a zone. At
// least one of Current and Target must be set.
type UpdateZoneInput struct {
	Current *float64
	Target  *float64
}
