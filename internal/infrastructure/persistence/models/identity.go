package models

import (
	"encoding/json"
	"time"

	"github.com/dormlife/backend/internal/domain/identity"
)

// UserModel is the persistence model for the user aggregate
type UserModel struct {
	SchoolAggregateModel
	Email             string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash      string     `gorm:"type:varchar(255);not null"`
	FullName          string     `gorm:"type:varchar(200);not null"`
	RoomNumber        string     `gorm:"type:varchar(50)"`
	ProfilePhotoURL   string     `gorm:"type:varchar(500)"`
	Year              *int       `gorm:""`
	EmergencyContact  string     `gorm:"type:varchar(200)"`
	Role              string     `gorm:"type:varchar(20);not null;default:'student'"`
	Preferences       string     `gorm:"type:jsonb;default:'{}'"`
	IsVerified        bool       `gorm:"not null;default:false"`
	VerificationToken *string    `gorm:"type:varchar(500);index"`
	ResetToken        *string    `gorm:"type:varchar(500);index"`
	ResetTokenExpires *time.Time `gorm:""`
	LastLoginAt       *time.Time `gorm:""`
	IsActive          bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		RoomNumber:        m.RoomNumber,
		ProfilePhotoURL:   m.ProfilePhotoURL,
		Year:              m.Year,
		EmergencyContact:  m.EmergencyContact,
		Role:              identity.Role(m.Role),
		IsVerified:        m.IsVerified,
		VerificationToken: m.VerificationToken,
		ResetToken:        m.ResetToken,
		ResetTokenExpires: m.ResetTokenExpires,
		LastLoginAt:       m.LastLoginAt,
		Active:            m.IsActive,
	}
	m.PopulateSchoolAggregateRoot(&user.SchoolAggregateRoot)

	user.Preferences = identity.DefaultPreferences()
	if m.Preferences != "" {
		_ = json.Unmarshal([]byte(m.Preferences), &user.Preferences)
	}

	return user
}

// UserModelFromDomain converts a domain user to the persistence model
func UserModelFromDomain(user *identity.User) *UserModel {
	model := &UserModel{
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		FullName:          user.FullName,
		RoomNumber:        user.RoomNumber,
		ProfilePhotoURL:   user.ProfilePhotoURL,
		Year:              user.Year,
		EmergencyContact:  user.EmergencyContact,
		Role:              string(user.Role),
		IsVerified:        user.IsVerified,
		VerificationToken: user.VerificationToken,
		ResetToken:        user.ResetToken,
		ResetTokenExpires: user.ResetTokenExpires,
		LastLoginAt:       user.LastLoginAt,
		IsActive:          user.Active,
	}
	model.FromDomainSchoolAggregateRoot(user.SchoolAggregateRoot)

	if prefs, err := json.Marshal(user.Preferences); err == nil {
		model.Preferences = string(prefs)
	} else {
		model.Preferences = "{}"
	}

	return model
}
