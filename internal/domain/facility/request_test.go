package facility

import (
	"testing"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	return derr.Code
}

func TestNewRequest(t *testing.T) {
	schoolID := uuid.New()
	userID := uuid.New()

	t.Run("creates request in pending state", func(t *testing.T) {
		req, err := NewRequest(schoolID, &userID, "Broken heater", "Room 214 heater is stuck on high", PriorityHigh, false)
		require.NoError(t, err)
		require.NotNil(t, req)

		assert.Equal(t, schoolID, req.SchoolID)
		require.NotNil(t, req.UserID)
		assert.Equal(t, userID, *req.UserID)
		assert.Equal(t, "Broken heater", req.Title)
		assert.Equal(t, PriorityHigh, req.Priority)
		assert.Equal(t, StatusPending, req.Status)
		assert.False(t, req.IsAnonymous)
		assert.Empty(t, req.Photos)
		assert.Zero(t, req.Upvotes)
		assert.Nil(t, req.AssignedTo)
	})

	t.Run("defaults empty priority to medium", func(t *testing.T) {
		req, err := NewRequest(schoolID, &userID, "Leaky faucet", "Drips all night", "", false)
		require.NoError(t, err)
		assert.Equal(t, PriorityMedium, req.Priority)
	})

	t.Run("drops the user ID for anonymous requests", func(t *testing.T) {
		req, err := NewRequest(schoolID, &userID, "Noise complaint", "Loud music past midnight", PriorityLow, true)
		require.NoError(t, err)
		assert.Nil(t, req.UserID)
		assert.True(t, req.IsAnonymous)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewRequest(schoolID, &userID, "  ", "desc", PriorityLow, false)
		require.Error(t, err)
		assert.Equal(t, "INVALID_TITLE", domainCode(t, err))
	})

	t.Run("fails with overlong title", func(t *testing.T) {
		long := make([]byte, 201)
		for i := range long {
			long[i] = 'x'
		}
		_, err := NewRequest(schoolID, &userID, string(long), "desc", PriorityLow, false)
		require.Error(t, err)
		assert.Equal(t, "INVALID_TITLE", domainCode(t, err))
	})

	t.Run("fails with empty description", func(t *testing.T) {
		_, err := NewRequest(schoolID, &userID, "Broken heater", "   ", PriorityLow, false)
		require.Error(t, err)
		assert.Equal(t, "INVALID_DESCRIPTION", domainCode(t, err))
	})

	t.Run("fails with unknown priority", func(t *testing.T) {
		_, err := NewRequest(schoolID, &userID, "Broken heater", "desc", Priority("critical"), false)
		require.Error(t, err)
		assert.Equal(t, "INVALID_PRIORITY", domainCode(t, err))
	})
}

func TestRequestStatusChanges(t *testing.T) {
	newReq := func(t *testing.T) *MaintenanceRequest {
		userID := uuid.New()
		req, err := NewRequest(uuid.New(), &userID, "Broken heater", "desc", PriorityMedium, false)
		require.NoError(t, err)
		return req
	}

	t.Run("moves between any known states", func(t *testing.T) {
		req := newReq(t)

		require.NoError(t, req.SetStatus(StatusInProgress))
		require.NoError(t, req.SetStatus(StatusResolved))
		require.NoError(t, req.SetStatus(StatusClosed))
		require.NoError(t, req.SetStatus(StatusPending))
		assert.Equal(t, StatusPending, req.Status)
	})

	t.Run("rejects unknown states", func(t *testing.T) {
		req := newReq(t)

		err := req.SetStatus(RequestStatus("archived"))
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATUS", domainCode(t, err))
		assert.Equal(t, StatusPending, req.Status)
	})

	t.Run("assignment moves pending requests to in_progress", func(t *testing.T) {
		req := newReq(t)
		staffID := uuid.New()

		req.Assign(staffID)
		require.NotNil(t, req.AssignedTo)
		assert.Equal(t, staffID, *req.AssignedTo)
		assert.Equal(t, StatusInProgress, req.Status)
	})

	t.Run("assignment leaves non-pending status alone", func(t *testing.T) {
		req := newReq(t)
		require.NoError(t, req.SetStatus(StatusResolved))

		req.Assign(uuid.New())
		assert.Equal(t, StatusResolved, req.Status)
	})
}

func TestUpvoteAndPhotos(t *testing.T) {
	userID := uuid.New()
	req, err := NewRequest(uuid.New(), &userID, "Broken heater", "desc", PriorityMedium, false)
	require.NoError(t, err)

	req.Upvote()
	req.Upvote()
	assert.Equal(t, 2, req.Upvotes)

	req.AddPhoto("https://cdn.example.com/photos/a.jpg")
	req.AddPhoto("https://cdn.example.com/photos/b.jpg")
	assert.Len(t, req.Photos, 2)
}

func TestNewComment(t *testing.T) {
	requestID := uuid.New()
	userID := uuid.New()

	t.Run("creates comment", func(t *testing.T) {
		comment, err := NewComment(requestID, userID, "  On it, parts ordered.  ", true)
		require.NoError(t, err)
		require.NotNil(t, comment)

		assert.Equal(t, requestID, comment.RequestID)
		assert.Equal(t, userID, comment.UserID)
		assert.Equal(t, "On it, parts ordered.", comment.Comment)
		assert.True(t, comment.IsStaffResponse)
	})

	t.Run("fails with blank comment", func(t *testing.T) {
		_, err := NewComment(requestID, userID, "   ", false)
		require.Error(t, err)
		assert.Equal(t, "INVALID_COMMENT", domainCode(t, err))
	})
}
