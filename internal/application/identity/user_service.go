package identity

import (
	"context"
	"encoding/json"

	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles profile reads and partial profile updates
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the sanitized profile for a user
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
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

// UpdateProfile applies a whitelisted partial update and returns the updated
// profile. An input with no fields set fails with NoFieldsToUpdate.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserInfo, error) {
	fields := make(map[string]interface{})

	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, shared.NewDomainError("INVALID_FULL_NAME", "Full name cannot be empty")
		}
		fields["full_name"] = *input.FullName
	}
	if input.RoomNumber != nil {
		fields["room_number"] = *input.RoomNumber
	}
	if input.ProfilePhotoURL != nil {
		fields["profile_photo_url"] = *input.ProfilePhotoURL
	}
	if input.Year != nil {
		fields["year"] = *input.Year
	}
	if input.EmergencyContact != nil {
		fields["emergency_contact"] = *input.EmergencyContact
	}
	if input.Preferences != nil {
		payload, err := json.Marshal(input.Preferences)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PREFERENCES", "Preferences could not be encoded")
		}
		fields["preferences"] = string(payload)
	}

	if len(fields) == 0 {
		return nil, identity.ErrNoFieldsToUpdate
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated",
		zap.String("user_id", userID.String()),
		zap.Int("fields", len(fields)),
	)

	return s.GetProfile(ctx, userID)
}
