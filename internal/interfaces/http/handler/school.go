package handler

import (
	appschool "github.com/dormlife/backend/internal/application/school"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchoolHandler handles the school directory and admin endpoints
type SchoolHandler struct {
	BaseHandler
	schoolService *appschool.SchoolService
}

// NewSchoolHandler creates a school handler
func NewSchoolHandler(schoolService *appschool.SchoolService, logger *zap.Logger) *SchoolHandler {
	return &SchoolHandler{
		BaseHandler:   NewBaseHandler(logger),
		schoolService: schoolService,
	}
}

// List handles GET /schools. Public; returns the summary projection only.
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schoolService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schools)
}

// Get handles GET /schools/:id
func (h *SchoolHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	school, err := h.schoolService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

// Create handles POST /schools (admin)
func (h *SchoolHandler) Create(c *gin.Context) {
	var req dto.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	school, err := h.schoolService.Create(c.Request.Context(), appschool.CreateSchoolInput{
		Name:     req.Name,
		Address:  req.Address,
		Timezone: req.Timezone,
		LogoURL:  req.LogoURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, school)
}

// Update handles PUT /schools/:id (admin)
func (h *SchoolHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	school, err := h.schoolService.Update(c.Request.Context(), id, appschool.UpdateSchoolInput{
		Name:     req.Name,
		Address:  req.Address,
		LogoURL:  req.LogoURL,
		Timezone: req.Timezone,
		Settings: req.Settings,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

// Stats handles GET /schools/:id/stats (admin, same school). Admins of one
// school cannot read another school's stats.
func (h *SchoolHandler) Stats(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if ident.SchoolID != id {
		h.HandleError(c, shared.ErrForbidden)
		return
	}

	stats, err := h.schoolService.GetStats(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
