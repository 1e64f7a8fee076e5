package facility

import (
	"context"
	"testing"
	"time"

	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== Mock Repositories ====================

type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) Save(ctx context.Context, announcement *facility.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) Update(ctx context.Context, announcement *facility.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.Announcement, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*facility.Announcement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAnnouncementRepository) FindActiveBySchool(ctx context.Context, schoolID uuid.UUID, audience string) ([]facility.Announcement, error) {
	args := m.Called(ctx, schoolID, audience)
	announcements, _ := args.Get(0).([]facility.Announcement)
	return announcements, args.Error(1)
}

// ==================== Helpers ====================

func newAnnouncementService(t *testing.T) (*AnnouncementService, *MockAnnouncementRepository) {
	t.Helper()
	repo := new(MockAnnouncementRepository)
	return NewAnnouncementService(repo, zap.NewNop()), repo
}

func existingAnnouncement(t *testing.T, schoolID uuid.UUID) *facility.Announcement {
	t.Helper()
	authorID := uuid.New()
	announcement, err := facility.NewAnnouncement(schoolID, &authorID, "Water shutoff", "Tuesday 9-11am",
		facility.AnnouncementMaintenance, facility.PriorityHigh, []string{"students"}, nil)
	require.NoError(t, err)
	return announcement
}

// ==================== Tests ====================

func TestCreateAnnouncement(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()
	authorID := uuid.New()

	t.Run("publishes an announcement", func(t *testing.T) {
		svc, repo := newAnnouncementService(t)
		repo.On("Save", ctx, mock.AnythingOfType("*facility.Announcement")).Return(nil)

		info, err := svc.Create(ctx, CreateAnnouncementInput{
			SchoolID: schoolID,
			AuthorID: authorID,
			Title:    "Fire drill",
			Content:  "Thursday at noon",
			Type:     facility.AnnouncementGeneral,
			Priority: facility.PriorityMedium,
		})

		require.NoError(t, err)
		assert.Equal(t, "Fire drill", info.Title)
		assert.Equal(t, []string{"all"}, info.TargetAudience)
		require.NotNil(t, info.AuthorID)
		assert.Equal(t, authorID, *info.AuthorID)
	})

	t.Run("past expiry never reaches the repository", func(t *testing.T) {
		svc, repo := newAnnouncementService(t)
		yesterday := time.Now().Add(-24 * time.Hour)

		_, err := svc.Create(ctx, CreateAnnouncementInput{
			SchoolID:  schoolID,
			AuthorID:  authorID,
			Title:     "Stale notice",
			Content:   "content",
			Type:      facility.AnnouncementGeneral,
			Priority:  facility.PriorityLow,
			ExpiresAt: &yesterday,
		})

		assert.Equal(t, "INVALID_EXPIRY", domainCode(t, err))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestListAnnouncements(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	svc, repo := newAnnouncementService(t)
	announcement := existingAnnouncement(t, schoolID)
	repo.On("FindActiveBySchool", ctx, schoolID, "students").
		Return([]facility.Announcement{*announcement}, nil)

	infos, err := svc.List(ctx, schoolID, "students")

	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "Water shutoff", infos[0].Title)
}

func TestUpdateAnnouncement(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("edits title and content", func(t *testing.T) {
		svc, repo := newAnnouncementService(t)
		announcement := existingAnnouncement(t, schoolID)
		repo.On("FindByID", ctx, announcement.ID).Return(announcement, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(a *facility.Announcement) bool {
			return a.Title == "Rescheduled" && a.Content == "Wednesday instead"
		})).Return(nil)

		info, err := svc.Update(ctx, schoolID, announcement.ID, UpdateAnnouncementInput{
			Title:   "Rescheduled",
			Content: "Wednesday instead",
		})

		require.NoError(t, err)
		assert.Equal(t, "Rescheduled", info.Title)
	})

	t.Run("announcements from other schools stay hidden", func(t *testing.T) {
		svc, repo := newAnnouncementService(t)
		announcement := existingAnnouncement(t, uuid.New())
		repo.On("FindByID", ctx, announcement.ID).Return(announcement, nil)

		_, err := svc.Update(ctx, schoolID, announcement.ID, UpdateAnnouncementInput{
			Title:   "x",
			Content: "y",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeactivateAnnouncement(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	svc, repo := newAnnouncementService(t)
	announcement := existingAnnouncement(t, schoolID)
	repo.On("FindByID", ctx, announcement.ID).Return(announcement, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(a *facility.Announcement) bool {
		return !a.Active
	})).Return(nil)

	require.NoError(t, svc.Deactivate(ctx, schoolID, announcement.ID))
}
