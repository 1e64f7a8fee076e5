package identity

import (
	"context"
	"errors"
	"time"

	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/domain/school"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/auth"
	"github.com/dormlife/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles registration, login, and the token-based account flows
type AuthService struct {
	userRepo   identity.UserRepository
	schoolRepo school.SchoolRepository
	jwtService *auth.JWTService
	config     config.AuthConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	schoolRepo school.SchoolRepository,
	jwtService *auth.JWTService,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		schoolRepo: schoolRepo,
		jwtService: jwtService,
		config:     cfg,
		logger:     logger,
	}
}

// Register creates a new account at the given school. Unless auto-verify is
// configured, the account starts unverified and the returned token is
// delivered to the user's email address.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if _, err := s.schoolRepo.FindByID(ctx, input.SchoolID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_SCHOOL", "School does not exist")
		}
		return nil, err
	}

	user, err := identity.NewUser(input.SchoolID, input.Email, input.Password, input.FullName, input.Role, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}
	user.RoomNumber = input.RoomNumber

	result := &RegisterResult{VerificationRequired: !s.config.AutoVerifyUsers}

	if s.config.AutoVerifyUsers {
		user.MarkVerified()
	} else {
		token, err := s.jwtService.GenerateSingleUseToken(auth.PurposeEmailVerification, user.ID, user.Email, 0)
		if err != nil {
			s.logger.Error("failed to generate verification token", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create verification token")
		}
		user.SetVerificationToken(token)
		result.VerificationToken = token
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("school_id", user.SchoolID.String()),
		zap.Bool("verification_required", result.VerificationRequired),
	)

	result.User = NewUserInfo(user)
	return result, nil
}

// Login authenticates a user and returns a token pair. Unknown emails,
// wrong passwords, and deactivated accounts all yield the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.VerifyPassword(input.Password) {
		s.logger.Warn("failed login attempt", zap.String("email", input.Email))
		return nil, identity.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Best effort; a failed timestamp never blocks login
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		User:   NewUserInfo(user),
		Tokens: tokens,
	}, nil
}

// VerifyEmail verifies an account from its emailed token and returns a fresh
// token pair so the client can sign in immediately
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*VerifyEmailResult, error) {
	if _, err := s.jwtService.ValidateSingleUseToken(auth.PurposeEmailVerification, token); err != nil {
		return nil, invalidSingleUseToken(err)
	}

	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Verification token is invalid or already used")
	}

	user.MarkVerified()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("email verified", zap.String("user_id", user.ID.String()))

	return &VerifyEmailResult{
		User:   NewUserInfo(user),
		Tokens: tokens,
	}, nil
}

// ForgotPassword issues a reset token for the account. When no account
// matches the result is empty; callers must answer identically either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &ForgotPasswordResult{}, nil
	}

	token, err := s.jwtService.GenerateSingleUseToken(auth.PurposePasswordReset, user.ID, user.Email, 0)
	if err != nil {
		s.logger.Error("failed to generate reset token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create reset token")
	}

	user.SetResetToken(token, time.Now().Add(s.jwtService.PasswordResetTTL()))
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("password reset requested", zap.String("user_id", user.ID.String()))

	return &ForgotPasswordResult{ResetToken: token}, nil
}

// ResetPassword sets a new password from a valid reset token
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if _, err := s.jwtService.ValidateSingleUseToken(auth.PurposePasswordReset, token); err != nil {
		return invalidSingleUseToken(err)
	}

	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil || !user.CanResetPassword(time.Now()) {
		return shared.NewDomainError("TOKEN_INVALID", "Reset token is invalid or expired")
	}

	if err := user.SetPassword(password, s.config.BcryptCost); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("user_id", user.ID.String()))
	return nil
}

// RefreshToken exchanges a valid refresh token for a new token pair. The
// access claims are rebuilt from the user's current record.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrUnauthorized
	}

	return s.issueTokens(user)
}

// Profile returns the sanitized profile for an authenticated user
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotFound
	}

	info := NewUserInfo(user)
	return &info, nil
}

func (s *AuthService) issueTokens(user *identity.User) (*auth.TokenPair, error) {
	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
		SchoolID: user.SchoolID,
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue tokens")
	}
	return tokens, nil
}

func invalidSingleUseToken(err error) error {
	if errors.Is(err, auth.ErrExpiredToken) {
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	}
	return shared.NewDomainError("TOKEN_INVALID", "Token is invalid")
}
