package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/auth"
	"github.com/dormlife/backend/internal/infrastructure/config"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ==================== Mock Repositories ====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByVerificationToken(ctx context.Context, token string) (*identity.User, error) {
	args := m.Called(ctx, token)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string) (*identity.User, error) {
	args := m.Called(ctx, token)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindBySchool(ctx context.Context, schoolID uuid.UUID, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, schoolID, filter)
	users, _ := args.Get(0).([]identity.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// ==================== Helpers ====================

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.JWTConfig{
		Secret:                      "middleware-test-access-secret-0123456789",
		RefreshSecret:               "middleware-test-refresh-secret-0123456789",
		AccessTokenExpiration:       15 * time.Minute,
		RefreshTokenExpiration:      7 * 24 * time.Hour,
		VerificationTokenExpiration: 24 * time.Hour,
		ResetTokenExpiration:        time.Hour,
		Issuer:                      "dormlife-test",
	})
	require.NoError(t, err)
	return svc
}

func newActiveUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser(uuid.New(), "resident@example.edu", "password123",
		"Test Resident", identity.RoleStudent, bcrypt.MinCost)
	require.NoError(t, err)
	return user
}

func accessTokenFor(t *testing.T, jwtService *auth.JWTService, user *identity.User) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
		SchoolID: user.SchoolID,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func performRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// injectIdentity sets the caller identity directly, standing in for the
// authentication middleware in role and verification tests.
func injectIdentity(ident *Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(IdentityKey, ident)
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	ident := CurrentIdentity(c)
	if ident == nil {
		c.JSON(http.StatusOK, gin.H{"email": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": ident.Email})
}

// ==================== Tests ====================

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T) (*gin.Engine, *MockUserRepository, *auth.JWTService) {
		t.Helper()
		repo := new(MockUserRepository)
		jwtService := newTestJWTService(t)
		authn := NewAuthenticator(jwtService, repo, zap.NewNop())

		router := gin.New()
		router.GET("/me", authn.Authenticate(), okHandler)
		return router, repo, jwtService
	}

	t.Run("valid token for an active user passes", func(t *testing.T) {
		router, repo, jwtService := setup(t)
		user := newActiveUser(t)
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		rec := performRequest(router, "Bearer "+accessTokenFor(t, jwtService, user))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), user.Email)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router, repo, _ := setup(t)

		rec := performRequest(router, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.CodeUnauthorized, resp.Error.Code)
		assert.Equal(t, "Invalid or expired token", resp.Error.Message)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		router, repo, _ := setup(t)

		rec := performRequest(router, "Basic dXNlcjpwYXNz")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("garbage token is rejected before the user lookup", func(t *testing.T) {
		router, repo, _ := setup(t)

		rec := performRequest(router, "Bearer not-a-token")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("token for a missing account is rejected", func(t *testing.T) {
		router, repo, jwtService := setup(t)
		user := newActiveUser(t)
		repo.On("FindByID", mock.Anything, user.ID).Return(nil, nil)

		rec := performRequest(router, "Bearer "+accessTokenFor(t, jwtService, user))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for a deactivated account is rejected", func(t *testing.T) {
		router, repo, jwtService := setup(t)
		user := newActiveUser(t)
		token := accessTokenFor(t, jwtService, user)
		require.NoError(t, user.Deactivate())
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		rec := performRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Invalid or expired token", resp.Error.Message)
	})

	t.Run("user lookup failure is rejected", func(t *testing.T) {
		router, repo, jwtService := setup(t)
		user := newActiveUser(t)
		repo.On("FindByID", mock.Anything, user.ID).Return(nil, assert.AnError)

		rec := performRequest(router, "Bearer "+accessTokenFor(t, jwtService, user))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockUserRepository)
	jwtService := newTestJWTService(t)
	authn := NewAuthenticator(jwtService, repo, zap.NewNop())

	router := gin.New()
	router.GET("/me", authn.OptionalAuth(), okHandler)

	t.Run("anonymous request passes with no identity", func(t *testing.T) {
		rec := performRequest(router, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email":""`)
	})

	t.Run("invalid token passes with no identity", func(t *testing.T) {
		rec := performRequest(router, "Bearer not-a-token")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email":""`)
	})

	t.Run("valid token attaches the identity", func(t *testing.T) {
		user := newActiveUser(t)
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		rec := performRequest(router, "Bearer "+accessTokenFor(t, jwtService, user))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), user.Email)
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(ident *Identity, roles ...identity.Role) *gin.Engine {
		router := gin.New()
		handlers := []gin.HandlerFunc{}
		if ident != nil {
			handlers = append(handlers, injectIdentity(ident))
		}
		handlers = append(handlers, RequireRole(roles...), okHandler)
		router.GET("/me", handlers...)
		return router
	}

	t.Run("matching role passes", func(t *testing.T) {
		ident := &Identity{UserID: uuid.New(), Email: "ra@example.edu", Role: identity.RoleStaff}
		router := newRouter(ident, identity.RoleStaff, identity.RoleAdmin)

		rec := performRequest(router, "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		ident := &Identity{UserID: uuid.New(), Email: "student@example.edu", Role: identity.RoleStudent}
		router := newRouter(ident, identity.RoleAdmin)

		rec := performRequest(router, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.CodeForbidden, resp.Error.Code)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		router := newRouter(nil, identity.RoleAdmin)

		rec := performRequest(router, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireVerification(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(ident *Identity) *gin.Engine {
		router := gin.New()
		handlers := []gin.HandlerFunc{}
		if ident != nil {
			handlers = append(handlers, injectIdentity(ident))
		}
		handlers = append(handlers, RequireVerification(), okHandler)
		router.GET("/me", handlers...)
		return router
	}

	t.Run("verified caller passes", func(t *testing.T) {
		ident := &Identity{UserID: uuid.New(), Email: "verified@example.edu", Role: identity.RoleStudent, Verified: true}

		rec := performRequest(newRouter(ident), "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unverified caller is forbidden", func(t *testing.T) {
		ident := &Identity{UserID: uuid.New(), Email: "pending@example.edu", Role: identity.RoleStudent}

		rec := performRequest(newRouter(ident), "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.CodeEmailNotVerified, resp.Error.Code)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		rec := performRequest(newRouter(nil), "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
