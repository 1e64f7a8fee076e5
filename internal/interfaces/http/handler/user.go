package handler

import (
	appidentity "github.com/dormlife/backend/internal/application/identity"
	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles the user profile endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a user handler
func NewUserHandler(userService *appidentity.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// GetProfile handles GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), ident.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// UpdateProfile handles PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	input := appidentity.UpdateProfileInput{
		FullName:         req.FullName,
		RoomNumber:       req.RoomNumber,
		ProfilePhotoURL:  req.ProfilePhotoURL,
		Year:             req.Year,
		EmergencyContact: req.EmergencyContact,
	}
	if req.Preferences != nil {
		input.Preferences = &identity.Preferences{
			QuietHoursStart:       req.Preferences.QuietHoursStart,
			QuietHoursEnd:         req.Preferences.QuietHoursEnd,
			TemperaturePreference: req.Preferences.TemperaturePreference,
			NotificationsEnabled:  req.Preferences.NotificationsEnabled,
			BiometricEnabled:      req.Preferences.BiometricEnabled,
		}
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), ident.UserID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
