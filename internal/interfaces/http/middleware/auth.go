package middleware

import (
	"net/http"

	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/infrastructure/auth"
	"github.com/dormlife/backend/internal/infrastructure/logger"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys set by the authentication middleware
const (
	IdentityKey = "auth_identity"
	UserIDKey   = "auth_user_id"
	SchoolIDKey = "auth_school_id"
	RoleKey     = "auth_role"
)

// unauthorizedMessage is returned for every authentication failure so the
// response does not leak whether a token was malformed, expired, or revoked.
const unauthorizedMessage = "Invalid or expired token"

// Identity is the sanitized caller identity attached to the request context
type Identity struct {
	UserID   uuid.UUID
	SchoolID uuid.UUID
	Email    string
	Role     identity.Role
	Verified bool
}

// Authenticator validates bearer tokens and loads the caller's account
type Authenticator struct {
	jwtService *auth.JWTService
	userRepo   identity.UserRepository
	logger     *zap.Logger
}

// NewAuthenticator creates authentication middleware backed by the user
// directory. Tokens for deactivated or missing accounts are rejected even
// when the signature is still valid.
func NewAuthenticator(jwtService *auth.JWTService, userRepo identity.UserRepository, log *zap.Logger) *Authenticator {
	return &Authenticator{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     log,
	}
}

// Authenticate requires a valid bearer token and an active account
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := a.resolveIdentity(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		attachIdentity(c, ident)
		c.Next()
	}
}

// OptionalAuth attaches the caller identity when a valid token is present and
// never fails the request
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident, ok := a.resolveIdentity(c); ok {
			attachIdentity(c, ident)
		}
		c.Next()
	}
}

// resolveIdentity extracts, verifies, and hydrates the caller identity
func (a *Authenticator) resolveIdentity(c *gin.Context) (*Identity, bool) {
	token, ok := auth.ExtractBearer(c.GetHeader("Authorization"))
	if !ok {
		return nil, false
	}

	claims, err := a.jwtService.ValidateAccessToken(token)
	if err != nil {
		a.logger.Debug("token validation failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		return nil, false
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, false
	}

	user, err := a.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		a.logger.Error("user lookup failed during authentication",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, false
	}
	if user == nil || !user.Active {
		return nil, false
	}

	return &Identity{
		UserID:   user.ID,
		SchoolID: user.SchoolID,
		Email:    user.Email,
		Role:     user.Role,
		Verified: user.IsVerified,
	}, true
}

// RequireRole allows only callers holding one of the given roles. Missing
// identity is a 401; a present identity with the wrong role is a 403.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CurrentIdentity(c)
		if ident == nil {
			abortUnauthorized(c)
			return
		}
		for _, role := range roles {
			if ident.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.CodeForbidden, "Insufficient permissions"))
	}
}

// RequireVerification allows only callers with a verified email
func RequireVerification() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CurrentIdentity(c)
		if ident == nil {
			abortUnauthorized(c)
			return
		}
		if !ident.Verified {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.CodeEmailNotVerified, "Email verification required"))
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the caller identity, or nil when unauthenticated
func CurrentIdentity(c *gin.Context) *Identity {
	if v, exists := c.Get(IdentityKey); exists {
		if ident, ok := v.(*Identity); ok {
			return ident
		}
	}
	return nil
}

func attachIdentity(c *gin.Context, ident *Identity) {
	c.Set(IdentityKey, ident)
	c.Set(UserIDKey, ident.UserID.String())
	c.Set(SchoolIDKey, ident.SchoolID.String())
	c.Set(RoleKey, string(ident.Role))

	ctx := c.Request.Context()
	log := logger.FromContext(ctx)
	ctx, _ = logger.WithUserID(ctx, log, ident.UserID.String())
	ctx, _ = logger.WithSchoolID(ctx, log, ident.SchoolID.String())
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.CodeUnauthorized, unauthorizedMessage))
}
