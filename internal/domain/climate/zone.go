package climate

import (
	"fmt"
	"math"
	"strings"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Climate-specific domain errors
var (
	ErrAlreadyVotedToday = shared.NewDomainError("ALREADY_VOTED_TODAY", "You have already voted today")
)

// TemperatureZone is the aggregate root for a building zone whose target
// temperature is driven by resident votes. Temperatures are degrees
// Fahrenheit, stored as float64.
type TemperatureZone struct {
	shared.SchoolAggregateRoot
	Name               string
	Description        string
	CurrentTemperature float64
	TargetTemperature  float64
	MinTemperature     float64
	MaxTemperature     float64
	Active             bool
}

// NewZone creates a new temperature zone for a school
func NewZone(schoolID uuid.UUID, name, description string, minTemp, maxTemp, initialTemp float64) (*TemperatureZone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Zone name cannot be empty")
	}
	if minTemp >= maxTemp {
		return nil, shared.NewDomainError("INVALID_BOUNDS", "Minimum temperature must be below maximum")
	}

	return &TemperatureZone{
		SchoolAggregateRoot: shared.NewSchoolAggregateRoot(schoolID),
		Name:                name,
		Description:         strings.TrimSpace(description),
		CurrentTemperature:  initialTemp,
		TargetTemperature:   initialTemp,
		MinTemperature:      minTemp,
		MaxTemperature:      maxTemp,
		Active:              true,
	}, nil
}

// ValidateVote checks a proposed vote against the zone bounds, inclusive on
// both ends. Must pass before any vote row is persisted.
func (z *TemperatureZone) ValidateVote(temperature float64) error {
	if temperature < z.MinTemperature || temperature > z.MaxTemperature {
		return shared.NewDomainError(
			"TEMPERATURE_OUT_OF_RANGE",
			fmt.Sprintf("Temperature must be between %.0f and %.0f", z.MinTemperature, z.MaxTemperature),
		)
	}
	return nil
}

// ApplyVoteAverage writes back the rolling vote average as the new target,
// rounded to the nearest whole degree. Stats endpoints report the unrounded
// mean; only the write-back rounds.
func (z *TemperatureZone) ApplyVoteAverage(average float64) {
	z.TargetTemperature = math.Round(average)
	z.Touch()
	z.IncrementVersion()
}

// SetTemperatures applies a sensor/HVAC update. Either value may be nil to
// leave the field unchanged.
func (z *TemperatureZone) SetTemperatures(current, target *float64) error {
	if current == nil && target == nil {
		return shared.NewDomainError("NO_FIELDS_TO_UPDATE", "No temperature values provided")
	}
	if current != nil {
		z.CurrentTemperature = *current
	}
	if target != nil {
		z.TargetTemperature = *target
	}
	z.Touch()
	z.IncrementVersion()
	return nil
}

// Deactivate removes the zone from active listings
func (z *TemperatureZone) Deactivate() {
	z.Active = false
	z.Touch()
	z.IncrementVersion()
}
