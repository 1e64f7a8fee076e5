package identity

import (
	"testing"
	"time"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Low cost keeps bcrypt fast in tests.
const testBcryptCost = bcrypt.MinCost

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	return derr.Code
}

func TestNewUser(t *testing.T) {
	schoolID := uuid.New()

	t.Run("creates user with valid inputs", func(t *testing.T) {
		user, err := NewUser(schoolID, "alice@example.edu", "password123", "Alice Smith", RoleStudent, testBcryptCost)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, schoolID, user.SchoolID)
		assert.Equal(t, "alice@example.edu", user.Email)
		assert.Equal(t, "Alice Smith", user.FullName)
		assert.Equal(t, RoleStudent, user.Role)
		assert.True(t, user.Active)
		assert.False(t, user.IsVerified)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.Equal(t, DefaultPreferences(), user.Preferences)
	})

	t.Run("normalizes email to lowercase and trims whitespace", func(t *testing.T) {
		user, err := NewUser(schoolID, "  Alice@Example.EDU  ", "password123", "Alice", RoleStudent, testBcryptCost)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.edu", user.Email)
	})

	t.Run("defaults empty role to student", func(t *testing.T) {
		user, err := NewUser(schoolID, "bob@example.edu", "password123", "Bob", "", testBcryptCost)
		require.NoError(t, err)
		assert.Equal(t, RoleStudent, user.Role)
	})

	t.Run("publishes a registered event", func(t *testing.T) {
		user, err := NewUser(schoolID, "carol@example.edu", "password123", "Carol", RoleStudent, testBcryptCost)
		require.NoError(t, err)
		require.Len(t, user.GetDomainEvents(), 1)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewUser(schoolID, "", "password123", "Alice", RoleStudent, testBcryptCost)
		require.Error(t, err)
		assert.Equal(t, "INVALID_EMAIL", domainCode(t, err))
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		for _, email := range []string{"not-an-email", "missing@tld", "@example.edu", "a b@example.edu"} {
			_, err := NewUser(schoolID, email, "password123", "Alice", RoleStudent, testBcryptCost)
			require.Error(t, err, "email %q", email)
			assert.Equal(t, "INVALID_EMAIL", domainCode(t, err))
		}
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser(schoolID, "alice@example.edu", "short", "Alice", RoleStudent, testBcryptCost)
		require.Error(t, err)
		assert.Equal(t, "INVALID_PASSWORD", domainCode(t, err))
	})

	t.Run("fails with overlong password", func(t *testing.T) {
		long := make([]byte, 129)
		for i := range long {
			long[i] = 'a'
		}
		_, err := NewUser(schoolID, "alice@example.edu", string(long), "Alice", RoleStudent, testBcryptCost)
		require.Error(t, err)
		assert.Equal(t, "INVALID_PASSWORD", domainCode(t, err))
	})

	t.Run("fails with blank full name", func(t *testing.T) {
		_, err := NewUser(schoolID, "alice@example.edu", "password123", "   ", RoleStudent, testBcryptCost)
		require.Error(t, err)
		assert.Equal(t, "INVALID_FULL_NAME", domainCode(t, err))
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser(schoolID, "alice@example.edu", "password123", "Alice", Role("janitor"), testBcryptCost)
		require.Error(t, err)
		assert.Equal(t, "INVALID_ROLE", domainCode(t, err))
	})
}

func TestVerifyPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", RoleStudent, testBcryptCost)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("password123"))
	assert.False(t, user.VerifyPassword("wrong-password"))
	assert.False(t, user.VerifyPassword(""))
}

func TestSetPassword(t *testing.T) {
	t.Run("replaces the hash and clears any pending reset", func(t *testing.T) {
		user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", RoleStudent, testBcryptCost)
		require.NoError(t, err)

		user.SetResetToken("reset-token", time.Now().Add(time.Hour))
		require.NotNil(t, user.ResetToken)

		require.NoError(t, user.SetPassword("newpassword456", testBcryptCost))

		assert.True(t, user.VerifyPassword("newpassword456"))
		assert.False(t, user.VerifyPassword("password123"))
		assert.Nil(t, user.ResetToken)
		assert.Nil(t, user.ResetTokenExpires)
	})

	t.Run("rejects invalid passwords", func(t *testing.T) {
		user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", RoleStudent, testBcryptCost)
		require.NoError(t, err)

		err = user.SetPassword("short", testBcryptCost)
		require.Error(t, err)
		assert.Equal(t, "INVALID_PASSWORD", domainCode(t, err))
		assert.True(t, user.VerifyPassword("password123"))
	})
}

func TestVerificationFlow(t *testing.T) {
	user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", RoleStudent, testBcryptCost)
	require.NoError(t, err)

	user.SetVerificationToken("verify-token")
	require.NotNil(t, user.VerificationToken)
	assert.Equal(t, "verify-token", *user.VerificationToken)
	assert.False(t, user.IsVerified)

	user.MarkVerified()
	assert.True(t, user.IsVerified)
	assert.Nil(t, user.VerificationToken)
}

func TestCanResetPassword(t *testing.T) {
	now := time.Now()

	t.Run("true while the token has not expired", func(t *testing.T) {
		user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", RoleStudent, testBcryptCost)
		require.NoError(t, err)

		user.SetResetToken("reset-token", now.Add(time.Hour))
		assert.True(t, user.CanResetPassword(now))
	})

	t.Run("false once the token has expired", func(t *testing.T) {
		user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", RoleStudent, testBcryptCost)
		require.NoError(t, err)

		user.SetResetToken("reset-token", now.Add(-time.Minute))
		assert.False(t, user.CanResetPassword(now))
	})

	t.Run("false without a token", func(t *testing.T) {
		user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", RoleStudent, testBcryptCost)
		require.NoError(t, err)

		assert.False(t, user.CanResetPassword(now))
	})
}

func TestActivation(t *testing.T) {
	user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", RoleStudent, testBcryptCost)
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	assert.False(t, user.Active)

	err = user.Deactivate()
	require.Error(t, err)
	assert.Equal(t, "ALREADY_DEACTIVATED", domainCode(t, err))

	require.NoError(t, user.Activate())
	assert.True(t, user.Active)

	err = user.Activate()
	require.Error(t, err)
	assert.Equal(t, "ALREADY_ACTIVE", domainCode(t, err))
}

func TestRoleChecks(t *testing.T) {
	mk := func(role Role) *User {
		user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", role, testBcryptCost)
		require.NoError(t, err)
		return user
	}

	assert.False(t, mk(RoleStudent).IsStaff())
	assert.False(t, mk(RoleStudent).IsAdmin())
	assert.True(t, mk(RoleStaff).IsStaff())
	assert.False(t, mk(RoleStaff).IsAdmin())
	assert.True(t, mk(RoleAdmin).IsStaff())
	assert.True(t, mk(RoleAdmin).IsAdmin())
}

func TestRecordLogin(t *testing.T) {
	user, err := NewUser(uuid.New(), "alice@example.edu", "password123", "Alice", RoleStudent, testBcryptCost)
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	user.RecordLogin()
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *user.LastLoginAt, time.Minute)
}
