package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	SchoolID   uuid.UUID `json:"schoolId" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
	Password   string    `json:"password" binding:"required,min=8"`
	FullName   string    `json:"fullName" binding:"required"`
	RoomNumber string    `json:"roomNumber"`
	Role       string    `json:"role" binding:"omitempty,oneof=student admin staff"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest is the payload for POST /auth/verify-email
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// ForgotPasswordRequest is the payload for POST /auth/forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the payload for POST /auth/reset-password
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// RefreshTokenRequest is the payload for POST /auth/refresh-token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// PreferencesRequest is the nested preferences payload on profile updates
type PreferencesRequest struct {
	QuietHoursStart       string `json:"quietHoursStart"`
	QuietHoursEnd         string `json:"quietHoursEnd"`
	TemperaturePreference int    `json:"temperaturePreference"`
	NotificationsEnabled  bool   `json:"notificationsEnabled"`
	BiometricEnabled      bool   `json:"biometricEnabled"`
}

// UpdateProfileRequest is the payload for PUT /users/profile. Absent fields
// are left unchanged.
type UpdateProfileRequest struct {
	FullName         *string             `json:"fullName"`
	RoomNumber       *string             `json:"roomNumber"`
	ProfilePhotoURL  *string             `json:"profilePhotoUrl"`
	Year             *int                `json:"year" binding:"omitempty,min=1,max=10"`
	EmergencyContact *string             `json:"emergencyContact"`
	Preferences      *PreferencesRequest `json:"preferences"`
}

// CreateSchoolRequest is the payload for POST /schools
type CreateSchoolRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
	LogoURL  string `json:"logoUrl"`
}

// UpdateSchoolRequest is the payload for PUT /schools/:id. Absent fields are
// left unchanged.
type UpdateSchoolRequest struct {
	Name     *string                `json:"name"`
	Address  *string                `json:"address"`
	LogoURL  *string                `json:"logoUrl"`
	Timezone *string                `json:"timezone"`
	Settings map[string]interface{} `json:"settings"`
}

// VoteRequest is the payload for POST /temperature/vote. A nil zoneId targets
// the school's first active zone.
type VoteRequest struct {
	Temperature float64    `json:"temperature" binding:"required"`
	ZoneID      *uuid.UUID `json:"zoneId"`
}

// UpdateZoneRequest is the payload for PUT /temperature/zones/:id. At least
// one field must be set.
type UpdateZoneRequest struct {
	CurrentTemperature *float64 `json:"currentTemperature"`
	TargetTemperature  *float64 `json:"targetTemperature"`
}

// PhotoRequest is one base64-encoded photo attached to a maintenance request
type PhotoRequest struct {
	Data        []byte `json:"data" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// CreateMaintenanceRequest is the payload for POST /requests
type CreateMaintenanceRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Priority    string         `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	CategoryID  *uuid.UUID     `json:"categoryId"`
	IsAnonymous bool           `json:"isAnonymous"`
	Photos      []PhotoRequest `json:"photos" binding:"omitempty,max=5,dive"`
}

// UpdateRequestStatusRequest is the payload for PUT /requests/:id/status
type UpdateRequestStatusRequest struct {
	Status     string     `json:"status" binding:"required,oneof=pending in_progress resolved closed"`
	AssignedTo *uuid.UUID `json:"assignedTo"`
}

// AddCommentRequest is the payload for POST /requests/:id/comments
type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// CreateAnnouncementRequest is the payload for POST /announcements
type CreateAnnouncementRequest struct {
	Title          string     `json:"title" binding:"required"`
	Content        string     `json:"content" binding:"required"`
	Type           string     `json:"type" binding:"omitempty,oneof=general emergency maintenance event"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	TargetAudience []string   `json:"targetAudience" binding:"omitempty,dive,oneof=all students staff"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

// UpdateAnnouncementRequest is the payload for PUT /announcements/:id
type UpdateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}
