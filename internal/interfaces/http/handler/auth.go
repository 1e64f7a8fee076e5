package handler

import (
	appidentity "github.com/dormlife/backend/internal/application/identity"
	"github.com/dormlife/backend/internal/domain/identity"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login, and token lifecycle endpoints
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(authService *appidentity.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), appidentity.RegisterInput{
		SchoolID:   req.SchoolID,
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		RoomNumber: req.RoomNumber,
		Role:       identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// The verification token is returned to the caller for out-of-band
	// delivery; there is no in-process mailer.
	h.Created(c, gin.H{
		"user":                 result.User,
		"verificationRequired": result.VerificationRequired,
		"verificationToken":    result.VerificationToken,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), appidentity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"user":   result.User,
		"tokens": result.Tokens,
	})
}

// VerifyEmail handles POST /auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.authService.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"user":   result.User,
		"tokens": result.Tokens,
	})
}

// ForgotPassword handles POST /auth/forgot-password. The response never
// reveals whether the email matched an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := dto.NewMessageResponse("If the email is registered, a reset link has been sent")
	if result.ResetToken != "" {
		resp.Data = gin.H{"resetToken": result.ResetToken}
	}
	c.JSON(200, resp)
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Password has been reset")
}

// RefreshToken handles POST /auth/refresh-token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"tokens": tokens})
}

// Logout handles POST /auth/logout. Sessions are stateless; the client
// discards its tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := h.RequireIdentity(c); !ok {
		return
	}
	h.Message(c, "Logged out")
}

// Profile handles GET /auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), ident.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
