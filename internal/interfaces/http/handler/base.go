// Package handler implements the HTTP handlers for the dormitory backend.
package handler

import (
	"errors"
	"net/http"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/dormlife/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides the response helpers shared by all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success sends a 200 envelope
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 envelope with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Message sends a 200 envelope with only a message
func (h *BaseHandler) Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewMessageResponse(message))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 validation error envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.CodeValidationError, message))
}

// HandleError maps an error to the envelope. Domain errors carry their own
// code; anything else is an internal error and is logged, not leaked.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	h.logger.Error("unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.CodeInternalError, "An internal error occurred"))
}

// HandleBindingError maps a request binding failure to a 400 envelope
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, middleware.FormatBindingError(err))
}

// RequireIdentity returns the authenticated caller, aborting with 401 when
// the middleware did not attach one
func (h *BaseHandler) RequireIdentity(c *gin.Context) (*middleware.Identity, bool) {
	ident := middleware.CurrentIdentity(c)
	if ident == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.CodeUnauthorized, "Authentication required"))
		return nil, false
	}
	return ident, true
}

// ParseUUIDParam parses a UUID path parameter, aborting with 400 on failure
func (h *BaseHandler) ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// ParseUUIDQuery parses an optional UUID query parameter. A missing value
// returns (nil, true); a malformed value aborts with 400.
func (h *BaseHandler) ParseUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return nil, false
	}
	return &id, true
}
