package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dormlife/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenPurpose discriminates single-use tokens. A token issued for one
// purpose never validates for another.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePasswordReset     TokenPurpose = "password_reset"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrMissingSecret    = errors.New("jwt secret is not configured")
)

// Claims represents custom JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID    string       `json:"user_id"`
	Email     string       `json:"email"`
	Role      string       `json:"role,omitempty"`
	SchoolID  string       `json:"school_id,omitempty"`
	TokenType TokenType    `json:"token_type"`
	Purpose   TokenPurpose `json:"purpose,omitempty"`
}

// TokenPair represents an access and refresh token pair
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"` // Bearer
}

// JWTService handles JWT token operations. Access and refresh tokens are
// signed under distinct secrets; single-use tokens are signed under the
// access secret with a purpose claim.
type JWTService struct {
	accessSecret          []byte
	refreshSecret         []byte
	accessExpiration      time.Duration
	refreshExpiration     time.Duration
	verificationTokenTTL  time.Duration
	passwordResetTokenTTL time.Duration
	issuer                string
}

// NewJWTService creates a new JWT service. Missing secrets are a startup
// failure.
func NewJWTService(cfg config.JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" || cfg.RefreshSecret == "" {
		return nil, ErrMissingSecret
	}

	return &JWTService{
		accessSecret:          []byte(cfg.Secret),
		refreshSecret:         []byte(cfg.RefreshSecret),
		accessExpiration:      cfg.AccessTokenExpiration,
		refreshExpiration:     cfg.RefreshTokenExpiration,
		verificationTokenTTL:  cfg.VerificationTokenExpiration,
		passwordResetTokenTTL: cfg.ResetTokenExpiration,
		issuer:                cfg.Issuer,
	}, nil
}

// GenerateTokenInput contains the identity baked into a session token pair
type GenerateTokenInput struct {
	UserID   uuid.UUID
	Email    string
	Role     string
	SchoolID uuid.UUID
}

// GenerateTokenPair generates both access and refresh tokens. The refresh
// token carries only the user ID and email.
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	now := time.Now()

	accessClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    input.UserID.String(),
		Email:     input.Email,
		Role:      input.Role,
		SchoolID:  input.SchoolID.String(),
		TokenType: TokenTypeAccess,
	}

	accessToken, err := s.generateToken(accessClaims, s.accessSecret)
	if err != nil {
		return nil, err
	}

	refreshClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshExpiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    input.UserID.String(),
		Email:     input.Email,
		TokenType: TokenTypeRefresh,
	}

	refreshToken, err := s.generateToken(refreshClaims, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(s.accessExpiration),
		RefreshTokenExpiresAt: now.Add(s.refreshExpiration),
		TokenType:             "Bearer",
	}, nil
}

// GenerateSingleUseToken issues a purpose-bound token for email verification
// or password reset. ttl of 0 selects the configured TTL for the purpose.
func (s *JWTService) GenerateSingleUseToken(purpose TokenPurpose, userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		switch purpose {
		case PurposeEmailVerification:
			ttl = s.verificationTokenTTL
		case PurposePasswordReset:
			ttl = s.passwordResetTokenTTL
		default:
			return "", ErrInvalidTokenType
		}
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:  userID.String(),
		Email:   email,
		Purpose: purpose,
	}

	return s.generateToken(claims, s.accessSecret)
}

// PasswordResetTTL returns the configured lifetime of a password reset token
func (s *JWTService) PasswordResetTTL() time.Duration {
	return s.passwordResetTokenTTL
}

// ValidateSingleUseToken validates a purpose-bound token. A purpose mismatch
// fails with ErrInvalidTokenType even when the signature is valid.
func (s *JWTService) ValidateSingleUseToken(purpose TokenPurpose, tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString, s.accessSecret)
	if err != nil {
		return nil, err
	}

	if claims.Purpose != purpose {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// generateToken creates a signed JWT token
func (s *JWTService) generateToken(claims *Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken validates an access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.accessSecret, TokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns its claims
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, TokenTypeRefresh)
}

// validateToken validates a JWT session token
func (s *JWTService) validateToken(tokenString string, secret []byte, expectedType TokenType) (*Claims, error) {
	claims, err := s.parseToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// parseToken parses and verifies a token's signature and time claims
func (s *JWTService) parseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// ExtractBearer parses an Authorization header value of the exact shape
// "Bearer <token>". Any other shape returns ok=false.
func ExtractBearer(headerValue string) (string, bool) {
	parts := strings.Split(headerValue, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetSchoolUUID extracts and parses the school ID from claims
func (c *Claims) GetSchoolUUID() (uuid.UUID, error) {
	return uuid.Parse(c.SchoolID)
}
