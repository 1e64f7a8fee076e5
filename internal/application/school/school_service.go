package school

import (
	"context"
	"time"

	"github.com/dormlife/backend/internal/domain/school"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statsCacheTTL bounds how stale the dashboard aggregates may be
const statsCacheTTL = 5 * time.Minute

// SchoolService handles school directory operations and cached statistics
type SchoolService struct {
	schoolRepo school.SchoolRepository
	statsCache cache.StatsCache
	logger     *zap.Logger
}

// NewSchoolService creates a new school service
func NewSchoolService(schoolRepo school.SchoolRepository, statsCache cache.StatsCache, logger *zap.Logger) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		statsCache: statsCache,
		logger:     logger,
	}
}

// Create creates a new school. A taken name fails with DuplicateName.
func (s *SchoolService) Create(ctx context.Context, input CreateSchoolInput) (*SchoolInfo, error) {
	exists, err := s.schoolRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, school.ErrDuplicateName
	}

	sc, err := school.NewSchool(input.Name, input.Address, input.Timezone)
	if err != nil {
		return nil, err
	}
	if input.LogoURL != "" {
		sc.SetLogoURL(input.LogoURL)
	}

	if err := s.schoolRepo.Save(ctx, sc); err != nil {
		return nil, err
	}

	s.logger.Info("school created",
		zap.String("school_id", sc.ID.String()),
		zap.String("name", sc.Name),
	)

	info := NewSchoolInfo(sc)
	return &info, nil
}

// Get returns the full record for a school
func (s *SchoolService) Get(ctx context.Context, id uuid.UUID) (*SchoolInfo, error) {
	sc, err := s.schoolRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := NewSchoolInfo(sc)
	return &info, nil
}

// List returns the public projection of all schools
func (s *SchoolService) List(ctx context.Context) ([]SchoolSummary, error) {
	schools, err := s.schoolRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]SchoolSummary, len(schools))
	for i := range schools {
		summaries[i] = NewSchoolSummary(&schools[i])
	}
	return summaries, nil
}

// Update applies a whitelisted partial update
func (s *SchoolService) Update(ctx context.Context, id uuid.UUID, input UpdateSchoolInput) (*SchoolInfo, error) {
	fields := make(map[string]interface{})

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "School name cannot be empty")
		}
		fields["name"] = *input.Name
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if input.LogoURL != nil {
		fields["logo_url"] = *input.LogoURL
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return nil, shared.NewDomainError("INVALID_TIMEZONE", "Unknown timezone")
		}
		fields["timezone"] = *input.Timezone
	}
	if input.Settings != nil {
		sc, err := s.schoolRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		sc.SetSettings(input.Settings)
		if err := s.schoolRepo.Update(ctx, sc); err != nil {
			return nil, err
		}
	}

	if len(fields) > 0 {
		if err := s.schoolRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	} else if input.Settings == nil {
		return nil, shared.NewDomainError("NO_FIELDS_TO_UPDATE", "No fields to update")
	}

	s.logger.Info("school updated", zap.String("school_id", id.String()))

	return s.Get(ctx, id)
}

// GetStats returns the school's dashboard aggregates, cached for a few
// minutes
func (s *SchoolService) GetStats(ctx context.Context, schoolID uuid.UUID) (*school.Stats, error) {
	if cached, err := s.statsCache.Get(ctx, schoolID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("stats cache read failed", zap.Error(err))
	}

	if _, err := s.schoolRepo.FindByID(ctx, schoolID); err != nil {
		return nil, err
	}

	stats, err := s.schoolRepo.GetStats(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	if err := s.statsCache.Set(ctx, schoolID, stats, statsCacheTTL); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}

	return stats, nil
}
