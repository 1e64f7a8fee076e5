package climate

import (
	"context"
	"errors"
	"time"

	"github.com/dormlife/backend/internal/domain/climate"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// votingWindow is the rolling window used to recompute a zone's target
// temperature after each vote
const votingWindow = 24 * time.Hour

var errNoZones = shared.NewDomainError("NOT_FOUND", "School has no temperature zones")

// ClimateService handles zones, votes, and the temperature history
type ClimateService struct {
	zoneRepo    climate.ZoneRepository
	voteRepo    climate.VoteRepository
	readingRepo climate.ReadingRepository
	voteGuard   cache.VoteGuard
	logger      *zap.Logger
}

// NewClimateService creates a new climate service
func NewClimateService(
	zoneRepo climate.ZoneRepository,
	voteRepo climate.VoteRepository,
	readingRepo climate.ReadingRepository,
	voteGuard cache.VoteGuard,
	logger *zap.Logger,
) *ClimateService {
	return &ClimateService{
		zoneRepo:    zoneRepo,
		voteRepo:    voteRepo,
		readingRepo: readingRepo,
		voteGuard:   voteGuard,
		logger:      logger,
	}
}

// ListZones returns a school's active zones
func (s *ClimateService) ListZones(ctx context.Context, schoolID uuid.UUID) ([]ZoneInfo, error) {
	zones, err := s.zoneRepo.FindBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	infos := make([]ZoneInfo, len(zones))
	for i := range zones {
		infos[i] = NewZoneInfo(&zones[i])
	}
	return infos, nil
}

// GetCurrent returns the zone snapshot, its aggregates, and the caller's vote
// eligibility. A nil zoneID targets the school's first active zone.
func (s *ClimateService) GetCurrent(ctx context.Context, schoolID, userID uuid.UUID, zoneID *uuid.UUID) (*CurrentResult, error) {
	zone, err := s.resolveZone(ctx, schoolID, zoneID)
	if err != nil {
		return nil, err
	}

	stats, err := s.voteRepo.Stats(ctx, zone.ID)
	if err != nil {
		return nil, err
	}

	voted, err := s.hasVotedToday(ctx, userID, zone.ID)
	if err != nil {
		return nil, err
	}

	result := &CurrentResult{
		Zone:    NewZoneInfo(zone),
		Stats:   stats,
		CanVote: !voted,
	}
	if voted {
		next := nextVoteDay(time.Now())
		result.NextEligibleAt = &next
	}

	if lastVote, err := s.voteRepo.LastVote(ctx, userID, zone.ID); err == nil && lastVote != nil {
		info := NewVoteInfo(lastVote)
		result.LastVote = &info
	}

	return result, nil
}

// SubmitVote records a temperature vote and recomputes the zone's target
// temperature from the rolling 24h window. At most one vote per user, zone,
// and UTC calendar day; the database unique index is the final arbiter.
func (s *ClimateService) SubmitVote(ctx context.Context, input SubmitVoteInput) (*VoteResult, error) {
	zone, err := s.resolveZone(ctx, input.SchoolID, input.ZoneID)
	if err != nil {
		return nil, err
	}

	if err := zone.ValidateVote(input.Temperature); err != nil {
		return nil, err
	}

	// Fast path; the insert below still decides authoritatively
	voted, err := s.hasVotedToday(ctx, input.UserID, zone.ID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, climate.ErrAlreadyVotedToday
	}

	vote := climate.NewVote(input.UserID, zone.ID, input.Temperature)
	if err := s.voteRepo.Insert(ctx, vote); err != nil {
		return nil, err
	}

	now := time.Now()
	next := nextVoteDay(now)
	if _, err := s.voteGuard.MarkVoted(ctx, input.UserID, zone.ID, now, time.Until(next)); err != nil {
		s.logger.Warn("failed to mark vote guard", zap.Error(err))
	}

	average, err := s.voteRepo.AverageSince(ctx, zone.ID, now.Add(-votingWindow))
	if err != nil {
		s.logger.Error("failed to compute vote average", zap.String("zone_id", zone.ID.String()), zap.Error(err))
	} else if average != nil {
		zone.ApplyVoteAverage(*average)
		if err := s.zoneRepo.Update(ctx, zone); err != nil {
			s.logger.Error("failed to write back target temperature",
				zap.String("zone_id", zone.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("vote recorded",
		zap.String("user_id", input.UserID.String()),
		zap.String("zone_id", zone.ID.String()),
		zap.Float64("temperature", input.Temperature),
	)

	return &VoteResult{
		Vote:              NewVoteInfo(vote),
		TargetTemperature: zone.TargetTemperature,
		NextEligibleAt:    next,
	}, nil
}

// GetZoneStats returns a zone's aggregates. A nil zoneID targets the
// school's first active zone.
func (s *ClimateService) GetZoneStats(ctx context.Context, schoolID uuid.UUID, zoneID *uuid.UUID) (*ZoneStatsResult, error) {
	zone, err := s.resolveZone(ctx, schoolID, zoneID)
	if err != nil {
		return nil, err
	}

	stats, err := s.voteRepo.Stats(ctx, zone.ID)
	if err != nil {
		return nil, err
	}

	return &ZoneStatsResult{
		Zone:  NewZoneInfo(zone),
		Stats: stats,
	}, nil
}

// GetUserLastVote returns the user's most recent vote for a zone, or nil
func (s *ClimateService) GetUserLastVote(ctx context.Context, userID, zoneID uuid.UUID) (*VoteInfo, error) {
	vote, err := s.voteRepo.LastVote(ctx, userID, zoneID)
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, nil
	}

	info := NewVoteInfo(vote)
	return &info, nil
}

// UpdateZoneTemperature applies a sensor/HVAC update to a zone and appends a
// history reading. At least one of current and target must be provided.
func (s *ClimateService) UpdateZoneTemperature(ctx context.Context, schoolID, zoneID uuid.UUID, input UpdateZoneInput) (*ZoneInfo, error) {
	zone, err := s.zoneRepo.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if zone.SchoolID != schoolID {
		return nil, shared.ErrForbidden
	}

	if err := zone.SetTemperatures(input.Current, input.Target); err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Update(ctx, zone); err != nil {
		return nil, err
	}

	reading := climate.NewReading(zone.ID, zone.CurrentTemperature, input.Target)
	if err := s.readingRepo.Append(ctx, reading); err != nil {
		s.logger.Error("failed to append temperature reading",
			zap.String("zone_id", zone.ID.String()), zap.Error(err))
	}

	info := NewZoneInfo(zone)
	return &info, nil
}

// resolveZone loads the requested zone, or the school's first active zone
// when zoneID is nil. The zone must belong to the school.
func (s *ClimateService) resolveZone(ctx context.Context, schoolID uuid.UUID, zoneID *uuid.UUID) (*climate.TemperatureZone, error) {
	if zoneID != nil {
		zone, err := s.zoneRepo.FindByID(ctx, *zoneID)
		if err != nil {
			return nil, err
		}
		if zone.SchoolID != schoolID || !zone.Active {
			return nil, shared.ErrNotFound
		}
		return zone, nil
	}

	zones, err := s.zoneRepo.FindBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, errNoZones
	}
	return &zones[0], nil
}

// hasVotedToday consults the guard first and falls back to the database
func (s *ClimateService) hasVotedToday(ctx context.Context, userID, zoneID uuid.UUID) (bool, error) {
	now := time.Now()

	if marked, err := s.voteGuard.HasVoted(ctx, userID, zoneID, now); err == nil && marked {
		return true, nil
	}

	voted, err := s.voteRepo.HasVotedOn(ctx, userID, zoneID, now)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return voted, nil
}

// nextVoteDay is the start of the next UTC calendar day
func nextVoteDay(now time.Time) time.Time {
	return climate.VoteDay(now).Add(24 * time.Hour)
}
