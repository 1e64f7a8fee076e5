package facility

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnnouncement(t *testing.T) {
	schoolID := uuid.New()
	authorID := uuid.New()

	t.Run("creates active announcement", func(t *testing.T) {
		ann, err := NewAnnouncement(schoolID, &authorID, "Water shutoff", "North tower, Tuesday 9-11am", AnnouncementMaintenance, PriorityHigh, []string{"students"}, nil)
		require.NoError(t, err)
		require.NotNil(t, ann)

		assert.Equal(t, schoolID, ann.SchoolID)
		assert.Equal(t, AnnouncementMaintenance, ann.Type)
		assert.Equal(t, PriorityHigh, ann.Priority)
		assert.Equal(t, []string{"students"}, ann.TargetAudience)
		assert.True(t, ann.Active)
		assert.Nil(t, ann.ExpiresAt)
	})

	t.Run("defaults type, priority, and audience", func(t *testing.T) {
		ann, err := NewAnnouncement(schoolID, &authorID, "Hello", "Welcome back", "", "", nil, nil)
		require.NoError(t, err)

		assert.Equal(t, AnnouncementGeneral, ann.Type)
		assert.Equal(t, PriorityMedium, ann.Priority)
		assert.Equal(t, []string{"all"}, ann.TargetAudience)
	})

	t.Run("accepts a future expiry", func(t *testing.T) {
		expires := time.Now().Add(48 * time.Hour)
		ann, err := NewAnnouncement(schoolID, &authorID, "Event", "Movie night Friday", AnnouncementEvent, PriorityLow, nil, &expires)
		require.NoError(t, err)
		require.NotNil(t, ann.ExpiresAt)
	})

	t.Run("rejects an expiry in the past", func(t *testing.T) {
		expires := time.Now().Add(-time.Hour)
		_, err := NewAnnouncement(schoolID, &authorID, "Event", "content", AnnouncementEvent, PriorityLow, nil, &expires)
		require.Error(t, err)
		assert.Equal(t, "INVALID_EXPIRY", domainCode(t, err))
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewAnnouncement(schoolID, &authorID, " ", "content", AnnouncementGeneral, PriorityLow, nil, nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_TITLE", domainCode(t, err))
	})

	t.Run("fails with empty content", func(t *testing.T) {
		_, err := NewAnnouncement(schoolID, &authorID, "Title", "  ", AnnouncementGeneral, PriorityLow, nil, nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_CONTENT", domainCode(t, err))
	})

	t.Run("fails with unknown type", func(t *testing.T) {
		_, err := NewAnnouncement(schoolID, &authorID, "Title", "content", AnnouncementType("gossip"), PriorityLow, nil, nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_TYPE", domainCode(t, err))
	})
}

func TestAnnouncementUpdateContent(t *testing.T) {
	ann, err := NewAnnouncement(uuid.New(), nil, "Title", "content", AnnouncementGeneral, PriorityLow, nil, nil)
	require.NoError(t, err)

	require.NoError(t, ann.UpdateContent("New title", "New content"))
	assert.Equal(t, "New title", ann.Title)
	assert.Equal(t, "New content", ann.Content)

	err = ann.UpdateContent("", "still content")
	require.Error(t, err)
	assert.Equal(t, "INVALID_TITLE", domainCode(t, err))
	assert.Equal(t, "New title", ann.Title)
}

func TestAnnouncementDeactivate(t *testing.T) {
	ann, err := NewAnnouncement(uuid.New(), nil, "Title", "content", AnnouncementGeneral, PriorityLow, nil, nil)
	require.NoError(t, err)

	ann.Deactivate()
	assert.False(t, ann.Active)
}

func TestAnnouncementIsExpired(t *testing.T) {
	now := time.Now()
	expires := now.Add(time.Hour)
	ann, err := NewAnnouncement(uuid.New(), nil, "Title", "content", AnnouncementGeneral, PriorityLow, nil, &expires)
	require.NoError(t, err)

	assert.False(t, ann.IsExpired(now))
	assert.True(t, ann.IsExpired(now.Add(2*time.Hour)))
}
