package identity

import (
	"time"

	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	SchoolID   uuid.UUID
	Email      string
	Password   string
	FullName   string
	RoomNumber string
	Role       identity.Role
}

// RegisterResult contains the result of a successful registration.
// VerificationToken is set only when verification is required; the caller
// delivers it out of band.
type RegisterResult struct {
	User                 UserInfo
	VerificationRequired bool
	VerificationToken    string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the user and token pair returned on login
type LoginResult struct {
	User   UserInfo
	Tokens *auth.TokenPair
}

// VerifyEmailResult contains the verified user and a fresh token pair
type VerifyEmailResult struct {
	User   UserInfo
	Tokens *auth.TokenPair
}

// ForgotPasswordResult carries the reset token for out-of-band delivery.
// Empty when no account matches; the HTTP layer never exposes the difference.
type ForgotPasswordResult struct {
	ResetToken string
}

// UpdateProfileInput contains the partial-update fields for a user profile.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	FullName         *string
	RoomNumber       *string
	ProfilePhotoURL  *string
	Year             *int
	EmergencyContact *string
	Preferences      *identity.Preferences
}

// UserInfo is the sanitized user representation returned by the API
type UserInfo struct {
	ID               uuid.UUID            `json:"id"`
	SchoolID         uuid.UUID            `json:"schoolId"`
	Email            string               `json:"email"`
	FullName         string               `json:"fullName"`
	RoomNumber       string               `json:"roomNumber,omitempty"`
	ProfilePhotoURL  string               `json:"profilePhotoUrl,omitempty"`
	Year             *int                 `json:"year,omitempty"`
	EmergencyContact string               `json:"emergencyContact,omitempty"`
	Role             string               `json:"role"`
	Preferences      identity.Preferences `json:"preferences"`
	IsVerified       bool                 `json:"isVerified"`
	LastLoginAt      *time.Time           `json:"lastLoginAt,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
}

// NewUserInfo builds the sanitized representation from a domain user
func NewUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:               user.ID,
		SchoolID:         user.SchoolID,
		Email:            user.Email,
		FullName:         user.FullName,
		RoomNumber:       user.RoomNumber,
		ProfilePhotoURL:  user.ProfilePhotoURL,
		Year:             user.Year,
		EmergencyContact: user.EmergencyContact,
		Role:             string(user.Role),
		Preferences:      user.Preferences,
		IsVerified:       user.IsVerified,
		LastLoginAt:      user.LastLoginAt,
		CreatedAt:        user.CreatedAt,
	}
}
