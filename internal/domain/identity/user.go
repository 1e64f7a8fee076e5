package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's role within a school
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// DefaultBcryptCost is used when no cost is configured
const DefaultBcryptCost = 12

// Identity-specific domain errors
var (
	ErrDuplicateEmail     = shared.NewDomainError("DUPLICATE_EMAIL", "Email already registered")
	ErrNoFieldsToUpdate   = shared.NewDomainError("NO_FIELDS_TO_UPDATE", "No updatable fields provided")
	ErrAccountDeactivated = shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
)

// Preferences holds per-user application preferences, stored as JSON
type Preferences struct {
	QuietHoursStart       string `json:"quietHoursStart"`
	QuietHoursEnd         string `json:"quietHoursEnd"`
	TemperaturePreference int    `json:"temperaturePreference"`
	NotificationsEnabled  bool   `json:"notificationsEnabled"`
	BiometricEnabled      bool   `json:"biometricEnabled"`
}

// DefaultPreferences returns the preferences seeded at registration
func DefaultPreferences() Preferences {
	return Preferences{
		QuietHoursStart:       "22:00",
		QuietHoursEnd:         "08:00",
		TemperaturePreference: 72,
		NotificationsEnabled:  true,
		BiometricEnabled:      false,
	}
}

// User is the aggregate root for resident accounts. Accounts are
// soft-deactivated, never hard-deleted; deactivated users are excluded from
// directory lookups.
type User struct {
	shared.SchoolAggregateRoot
	Email             string
	PasswordHash      string
	FullName          string
	RoomNumber        string
	ProfilePhotoURL   string
	Year              *int
	EmergencyContact  string
	Role              Role
	Preferences       Preferences
	IsVerified        bool
	VerificationToken *string
	ResetToken        *string
	ResetTokenExpires *time.Time
	LastLoginAt       *time.Time
	Active            bool
}

// NewUser creates a new user with a hashed password and default preferences.
// bcryptCost of 0 selects DefaultBcryptCost.
func NewUser(schoolID uuid.UUID, email, password, fullName string, role Role, bcryptCost int) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_FULL_NAME", "Full name cannot be empty")
	}
	if role == "" {
		role = RoleStudent
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be student, admin, or staff")
	}

	passwordHash, err := hashPassword(password, bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		SchoolAggregateRoot: shared.NewSchoolAggregateRoot(schoolID),
		Email:               email,
		PasswordHash:        passwordHash,
		FullName:            strings.TrimSpace(fullName),
		Role:                role,
		Preferences:         DefaultPreferences(),
		Active:              true,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// VerifyPassword verifies the candidate against the stored hash. Internal
// bcrypt failures are treated as a mismatch.
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword hashes and stores a new password, clearing any pending reset
func (u *User) SetPassword(password string, bcryptCost int) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	passwordHash, err := hashPassword(password, bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpires = nil
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserPasswordChangedEvent(u))

	return nil
}

// SetVerificationToken stores a pending email-verification token
func (u *User) SetVerificationToken(token string) {
	u.VerificationToken = &token
	u.Touch()
	u.IncrementVersion()
}

// MarkVerified flips the verified flag and clears the stored token
func (u *User) MarkVerified() {
	u.IsVerified = true
	u.VerificationToken = nil
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserVerifiedEvent(u))
}

// SetResetToken stores a password-reset token with its expiry
func (u *User) SetResetToken(token string, expires time.Time) {
	u.ResetToken = &token
	u.ResetTokenExpires = &expires
	u.Touch()
	u.IncrementVersion()
}

// CanResetPassword reports whether the stored reset token is still valid
func (u *User) CanResetPassword(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now)
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.Touch()
}

// Deactivate soft-deletes the account
func (u *User) Deactivate() error {
	if !u.Active {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}

	u.Active = false
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserDeactivatedEvent(u))

	return nil
}

// Activate restores a deactivated account
func (u *User) Activate() error {
	if u.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Active = true
	u.Touch()
	u.IncrementVersion()

	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff reports whether the user holds the staff or admin role
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}

// Validation functions

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
