package persistence

import (
	"context"
	"testing"

	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T, schoolID uuid.UUID, title string, priority facility.Priority) *facility.MaintenanceRequest {
	t.Helper()
	userID := uuid.New()
	req, err := facility.NewRequest(schoolID, &userID, title, "description", priority, false)
	require.NoError(t, err)
	return req
}

func TestRequestRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormRequestRepository(db)
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("save and find by ID round trips photos", func(t *testing.T) {
		req := newTestRequest(t, schoolID, "Broken heater", facility.PriorityHigh)
		req.AddPhoto("https://cdn.example.com/a.jpg")
		require.NoError(t, repo.Save(ctx, req))

		found, err := repo.FindByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, "Broken heater", found.Title)
		assert.Equal(t, facility.PriorityHigh, found.Priority)
		assert.Equal(t, facility.StatusPending, found.Status)
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, found.Photos)
	})

	t.Run("missing request is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update persists status changes", func(t *testing.T) {
		req := newTestRequest(t, schoolID, "Leaky faucet", facility.PriorityLow)
		require.NoError(t, repo.Save(ctx, req))

		require.NoError(t, req.SetStatus(facility.StatusResolved))
		require.NoError(t, repo.Update(ctx, req))

		found, err := repo.FindByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, facility.StatusResolved, found.Status)
	})

	t.Run("increment upvotes is atomic on the row", func(t *testing.T) {
		req := newTestRequest(t, schoolID, "Flickering light", facility.PriorityMedium)
		require.NoError(t, repo.Save(ctx, req))

		require.NoError(t, repo.IncrementUpvotes(ctx, req.ID))
		require.NoError(t, repo.IncrementUpvotes(ctx, req.ID))

		found, err := repo.FindByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Upvotes)
	})

	t.Run("increment on a missing request is not found", func(t *testing.T) {
		err := repo.IncrementUpvotes(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestRequestRepositoryFindBySchool(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormRequestRepository(db)
	ctx := context.Background()
	schoolID := uuid.New()

	pending := newTestRequest(t, schoolID, "Pending issue", facility.PriorityHigh)
	require.NoError(t, repo.Save(ctx, pending))

	resolved := newTestRequest(t, schoolID, "Resolved issue", facility.PriorityLow)
	require.NoError(t, resolved.SetStatus(facility.StatusResolved))
	require.NoError(t, repo.Save(ctx, resolved))

	require.NoError(t, repo.Save(ctx, newTestRequest(t, uuid.New(), "Other school", facility.PriorityLow)))

	t.Run("lists only the school's requests", func(t *testing.T) {
		requests, total, err := repo.FindBySchool(ctx, schoolID, shared.Filter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, requests, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 10, Filters: map[string]interface{}{"status": "resolved"}}
		requests, total, err := repo.FindBySchool(ctx, schoolID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, requests, 1)
		assert.Equal(t, "Resolved issue", requests[0].Title)
	})

	t.Run("filters by priority", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 10, Filters: map[string]interface{}{"priority": "high"}}
		_, total, err := repo.FindBySchool(ctx, schoolID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func TestRequestRepositoryComments(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormRequestRepository(db)
	ctx := context.Background()

	req := newTestRequest(t, uuid.New(), "Broken heater", facility.PriorityHigh)
	require.NoError(t, repo.Save(ctx, req))

	first, err := facility.NewComment(req.ID, uuid.New(), "Me too", false)
	require.NoError(t, err)
	require.NoError(t, repo.AddComment(ctx, first))

	second, err := facility.NewComment(req.ID, uuid.New(), "Parts ordered", true)
	require.NoError(t, err)
	require.NoError(t, repo.AddComment(ctx, second))

	comments, err := repo.ListComments(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Me too", comments[0].Comment)
	assert.True(t, comments[1].IsStaffResponse)

	none, err := repo.ListComments(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAnnouncementRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormAnnouncementRepository(db)
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("save and find by ID round trips audience", func(t *testing.T) {
		ann, err := facility.NewAnnouncement(schoolID, nil, "Water shutoff", "Tuesday 9-11am",
			facility.AnnouncementMaintenance, facility.PriorityHigh, []string{"students"}, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, ann))

		found, err := repo.FindByID(ctx, ann.ID)
		require.NoError(t, err)
		assert.Equal(t, "Water shutoff", found.Title)
		assert.Equal(t, []string{"students"}, found.TargetAudience)
		assert.True(t, found.Active)
	})

	t.Run("missing announcement is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update persists deactivation", func(t *testing.T) {
		ann, err := facility.NewAnnouncement(schoolID, nil, "Old notice", "content",
			facility.AnnouncementGeneral, facility.PriorityLow, nil, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, ann))

		ann.Deactivate()
		require.NoError(t, repo.Update(ctx, ann))

		found, err := repo.FindByID(ctx, ann.ID)
		require.NoError(t, err)
		assert.False(t, found.Active)
	})

	// FindActiveBySchool's audience filter uses a jsonb containment operator
	// and is exercised against a real postgres in the integration suite.
}
