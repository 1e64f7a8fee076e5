package handler

import (
	appfacility "github.com/dormlife/backend/internal/application/facility"
	"github.com/dormlife/backend/internal/domain/facility"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnnouncementHandler handles the announcement endpoints
type AnnouncementHandler struct {
	BaseHandler
	announcementService *appfacility.AnnouncementService
}

// NewAnnouncementHandler creates an announcement handler
func NewAnnouncementHandler(announcementService *appfacility.AnnouncementService, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:         NewBaseHandler(logger),
		announcementService: announcementService,
	}
}

// Create handles POST /announcements (staff/admin)
func (h *AnnouncementHandler) Create(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.announcementService.Create(c.Request.Context(), appfacility.CreateAnnouncementInput{
		SchoolID:       ident.SchoolID,
		AuthorID:       ident.UserID,
		Title:          req.Title,
		Content:        req.Content,
		Type:           facility.AnnouncementType(req.Type),
		Priority:       facility.Priority(req.Priority),
		TargetAudience: req.TargetAudience,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List handles GET /announcements?audience=. Students see announcements
// targeted at students or everyone.
func (h *AnnouncementHandler) List(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	audience := c.Query("audience")
	if audience == "" {
		switch ident.Role {
		case "student":
			audience = "students"
		case "staff":
			audience = "staff"
		}
	}

	result, err := h.announcementService.List(c.Request.Context(), ident.SchoolID, audience)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get handles GET /announcements/:id
func (h *AnnouncementHandler) Get(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.announcementService.Get(c.Request.Context(), ident.SchoolID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update handles PUT /announcements/:id (staff/admin)
func (h *AnnouncementHandler) Update(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.announcementService.Update(c.Request.Context(), ident.SchoolID, id, appfacility.UpdateAnnouncementInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate handles DELETE /announcements/:id (staff/admin)
func (h *AnnouncementHandler) Deactivate(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Deactivate(c.Request.Context(), ident.SchoolID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
