package persistence

import (
	"context"
	"testing"

	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUser(t *testing.T, schoolID uuid.UUID, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(schoolID, email, "password123", "Test User", identity.RoleStudent, bcrypt.MinCost)
	require.NoError(t, err)
	return user
}

func TestUserRepositorySaveAndFind(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("save and find by ID", func(t *testing.T) {
		user := newTestUser(t, schoolID, "alice@example.edu")
		require.NoError(t, repo.Save(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "alice@example.edu", found.Email)
		assert.Equal(t, schoolID, found.SchoolID)
		assert.Equal(t, identity.RoleStudent, found.Role)
		assert.True(t, found.VerifyPassword("password123"))
		assert.Equal(t, identity.DefaultPreferences(), found.Preferences)
	})

	t.Run("missing ID returns nil without error", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate email surfaces as ErrDuplicateEmail", func(t *testing.T) {
		first := newTestUser(t, schoolID, "dup@example.edu")
		require.NoError(t, repo.Save(ctx, first))

		second := newTestUser(t, schoolID, "dup@example.edu")
		err := repo.Save(ctx, second)
		assert.ErrorIs(t, err, identity.ErrDuplicateEmail)
	})

	t.Run("find by email is case insensitive", func(t *testing.T) {
		user := newTestUser(t, schoolID, "bob@example.edu")
		require.NoError(t, repo.Save(ctx, user))

		found, err := repo.FindByEmail(ctx, "BOB@Example.EDU")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
	})
}

func TestUserRepositoryActiveFilter(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := newTestUser(t, uuid.New(), "carol@example.edu")
	require.NoError(t, repo.Save(ctx, user))
	require.NoError(t, user.Deactivate())
	require.NoError(t, repo.Update(ctx, user))

	t.Run("deactivated users are invisible to lookups", func(t *testing.T) {
		byID, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, byID)

		byEmail, err := repo.FindByEmail(ctx, "carol@example.edu")
		require.NoError(t, err)
		assert.Nil(t, byEmail)
	})

	t.Run("existence check still sees the email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "carol@example.edu")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestUserRepositoryTokenLookups(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := newTestUser(t, uuid.New(), "dave@example.edu")
	user.SetVerificationToken("verify-abc")
	require.NoError(t, repo.Save(ctx, user))

	t.Run("find by verification token", func(t *testing.T) {
		found, err := repo.FindByVerificationToken(ctx, "verify-abc")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("unknown token is a miss", func(t *testing.T) {
		found, err := repo.FindByVerificationToken(ctx, "no-such-token")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("verification clears the token lookup", func(t *testing.T) {
		user.MarkVerified()
		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByVerificationToken(ctx, "verify-abc")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestUserRepositoryUpdateFields(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := newTestUser(t, uuid.New(), "erin@example.edu")
	require.NoError(t, repo.Save(ctx, user))

	t.Run("applies a partial update", func(t *testing.T) {
		err := repo.UpdateFields(ctx, user.ID, map[string]interface{}{
			"full_name":   "Erin Updated",
			"room_number": "214B",
		})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Erin Updated", found.FullName)
		assert.Equal(t, "214B", found.RoomNumber)
	})

	t.Run("empty field map is rejected", func(t *testing.T) {
		err := repo.UpdateFields(ctx, user.ID, map[string]interface{}{})
		assert.ErrorIs(t, err, identity.ErrNoFieldsToUpdate)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		err := repo.UpdateFields(ctx, uuid.New(), map[string]interface{}{"full_name": "Ghost"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserRepositoryFindBySchool(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()
	schoolID := uuid.New()

	for _, email := range []string{"a@example.edu", "b@example.edu", "c@example.edu"} {
		require.NoError(t, repo.Save(ctx, newTestUser(t, schoolID, email)))
	}
	require.NoError(t, repo.Save(ctx, newTestUser(t, uuid.New(), "other@example.edu")))

	users, total, err := repo.FindBySchool(ctx, schoolID, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)

	page2, _, err := repo.FindBySchool(ctx, schoolID, shared.Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}
