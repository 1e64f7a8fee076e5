package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/dormlife/backend/internal/domain/climate"
	"github.com/dormlife/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVoteRepository implements climate.VoteRepository using GORM
type GormVoteRepository struct {
	db *gorm.DB
}

// NewGormVoteRepository creates a new GormVoteRepository
func NewGormVoteRepository(db *gorm.DB) *GormVoteRepository {
	return &GormVoteRepository{db: db}
}

// Insert persists a vote. The unique index over (user_id, zone_id, vote_day)
// rejects a second vote on the same calendar day, which surfaces as
// ErrAlreadyVotedToday.
func (r *GormVoteRepository) Insert(ctx context.Context, vote *climate.TemperatureVote) error {
	model := models.VoteModelFromDomain(vote)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return climate.ErrAlreadyVotedToday
		}
		return err
	}
	return nil
}

// HasVotedOn reports whether the user already voted in the zone on the given
// calendar day
func (r *GormVoteRepository) HasVotedOn(ctx context.Context, userID, zoneID uuid.UUID, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TemperatureVoteModel{}).
		Where("user_id = ? AND zone_id = ? AND vote_day = ?", userID, zoneID, climate.VoteDay(day)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AverageSince returns the mean vote temperature for the zone since the given
// instant, or nil when the window is empty
func (r *GormVoteRepository) AverageSince(ctx context.Context, zoneID uuid.UUID, since time.Time) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.TemperatureVoteModel{}).
		Select("AVG(temperature)").
		Where("zone_id = ? AND created_at >= ?", zoneID, since).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}

// Stats computes the all-time average, totals, and the trailing week's daily
// averages. Days without votes are simply absent from the trend.
func (r *GormVoteRepository) Stats(ctx context.Context, zoneID uuid.UUID) (*climate.ZoneStats, error) {
	stats := &climate.ZoneStats{
		LastWeekTrend: make([]climate.TrendPoint, 0),
	}

	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.TemperatureVoteModel{}).
		Select("AVG(temperature)").
		Where("zone_id = ?", zoneID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	stats.AverageVote = avg

	err = r.db.WithContext(ctx).
		Model(&models.TemperatureVoteModel{}).
		Where("zone_id = ?", zoneID).
		Count(&stats.TotalVotes).Error
	if err != nil {
		return nil, err
	}

	today := climate.VoteDay(time.Now())
	err = r.db.WithContext(ctx).
		Model(&models.TemperatureVoteModel{}).
		Where("zone_id = ? AND vote_day = ?", zoneID, today).
		Count(&stats.TodayVotes).Error
	if err != nil {
		return nil, err
	}

	var rows []struct {
		VoteDay time.Time
		Average float64
		Votes   int64
	}
	weekStart := today.AddDate(0, 0, -6)
	err = r.db.WithContext(ctx).
		Model(&models.TemperatureVoteModel{}).
		Select("vote_day, AVG(temperature) AS average, COUNT(*) AS votes").
		Where("zone_id = ? AND vote_day >= ?", zoneID, weekStart).
		Group("vote_day").
		Order("vote_day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats.LastWeekTrend = append(stats.LastWeekTrend, climate.TrendPoint{
			Date:    row.VoteDay.Format("2006-01-02"),
			Average: row.Average,
			Votes:   row.Votes,
		})
	}

	return stats, nil
}

// LastVote returns the user's most recent vote for the zone, or nil when the
// user has never voted there
func (r *GormVoteRepository) LastVote(ctx context.Context, userID, zoneID uuid.UUID) (*climate.TemperatureVote, error) {
	var model models.TemperatureVoteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND zone_id = ?", userID, zoneID).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ climate.VoteRepository = (*GormVoteRepository)(nil)
