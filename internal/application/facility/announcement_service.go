package facility

import (
	"context"

	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnnouncementService handles school announcements
type AnnouncementService struct {
	announcementRepo facility.AnnouncementRepository
	logger           *zap.Logger
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcementRepo facility.AnnouncementRepository, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// Create publishes a new announcement (staff/admin)
func (s *AnnouncementService) Create(ctx context.Context, input CreateAnnouncementInput) (*AnnouncementInfo, error) {
	announcement, err := facility.NewAnnouncement(
		input.SchoolID,
		&input.AuthorID,
		input.Title,
		input.Content,
		input.Type,
		input.Priority,
		input.TargetAudience,
		input.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	if err := s.announcementRepo.Save(ctx, announcement); err != nil {
		return nil, err
	}

	s.logger.Info("announcement published",
		zap.String("announcement_id", announcement.ID.String()),
		zap.String("school_id", announcement.SchoolID.String()),
		zap.String("type", string(announcement.Type)),
	)

	info := NewAnnouncementInfo(announcement)
	return &info, nil
}

// List returns a school's active, unexpired announcements, optionally
// narrowed to one audience group
func (s *AnnouncementService) List(ctx context.Context, schoolID uuid.UUID, audience string) ([]AnnouncementInfo, error) {
	announcements, err := s.announcementRepo.FindActiveBySchool(ctx, schoolID, audience)
	if err != nil {
		return nil, err
	}

	infos := make([]AnnouncementInfo, len(announcements))
	for i := range announcements {
		infos[i] = NewAnnouncementInfo(&announcements[i])
	}
	return infos, nil
}

// Get returns an announcement by ID, scoped to the caller's school
func (s *AnnouncementService) Get(ctx context.Context, schoolID, id uuid.UUID) (*AnnouncementInfo, error) {
	announcement, err := s.findScoped(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	info := NewAnnouncementInfo(announcement)
	return &info, nil
}

// Update edits an announcement's title and content (staff/admin)
func (s *AnnouncementService) Update(ctx context.Context, schoolID, id uuid.UUID, input UpdateAnnouncementInput) (*AnnouncementInfo, error) {
	announcement, err := s.findScoped(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if err := announcement.UpdateContent(input.Title, input.Content); err != nil {
		return nil, err
	}
	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, err
	}

	info := NewAnnouncementInfo(announcement)
	return &info, nil
}

// Deactivate retires an announcement (staff/admin)
func (s *AnnouncementService) Deactivate(ctx context.Context, schoolID, id uuid.UUID) error {
	announcement, err := s.findScoped(ctx, schoolID, id)
	if err != nil {
		return err
	}

	announcement.Deactivate()
	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return err
	}

	s.logger.Info("announcement deactivated", zap.String("announcement_id", id.String()))
	return nil
}

func (s *AnnouncementService) findScoped(ctx context.Context, schoolID, id uuid.UUID) (*facility.Announcement, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if announcement.SchoolID != schoolID {
		return nil, shared.ErrNotFound
	}
	return announcement, nil
}
