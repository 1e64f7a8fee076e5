package identity

import (
	"github.com/dormlife/backend/internal/domain/shared"
)

// Event types for the user aggregate
const (
	EventUserRegistered      = "user.registered"
	EventUserVerified        = "user.verified"
	EventUserPasswordChanged = "user.password_changed"
	EventUserDeactivated     = "user.deactivated"
)

// UserRegisteredEvent is raised when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserRegisteredEvent creates a new user registered event
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserRegistered, "User", user.ID, user.SchoolID),
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserVerifiedEvent is raised when an account completes email verification
type UserVerifiedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserVerifiedEvent creates a new user verified event
func NewUserVerifiedEvent(user *User) *UserVerifiedEvent {
	return &UserVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserVerified, "User", user.ID, user.SchoolID),
		Email:           user.Email,
	}
}

// UserPasswordChangedEvent is raised when a password is set or reset
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
}

// NewUserPasswordChangedEvent creates a new password changed event
func NewUserPasswordChangedEvent(user *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserPasswordChanged, "User", user.ID, user.SchoolID),
	}
}

// UserDeactivatedEvent is raised when an account is soft-deleted
type UserDeactivatedEvent struct {
	shared.BaseDomainEvent
}

// NewUserDeactivatedEvent creates a new user deactivated event
func NewUserDeactivatedEvent(user *User) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserDeactivated, "User", user.ID, user.SchoolID),
	}
}
