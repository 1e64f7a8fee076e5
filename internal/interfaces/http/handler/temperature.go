package handler

import (
	appclimate "github.com/dormlife/backend/internal/application/climate"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TemperatureHandler handles the climate endpoints
type TemperatureHandler struct {
	BaseHandler
	climateService *appclimate.ClimateService
}

// NewTemperatureHandler creates a temperature handler
func NewTemperatureHandler(climateService *appclimate.ClimateService, logger *zap.Logger) *TemperatureHandler {
	return &TemperatureHandler{
		BaseHandler:    NewBaseHandler(logger),
		climateService: climateService,
	}
}

// ListZones handles GET /temperature/zones
func (h *TemperatureHandler) ListZones(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	zones, err := h.climateService.ListZones(c.Request.Context(), ident.SchoolID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, zones)
}

// Current handles GET /temperature/current?zone=. Without a zone parameter
// the school's first active zone is used.
func (h *TemperatureHandler) Current(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	zoneID, ok := h.ParseUUIDQuery(c, "zone")
	if !ok {
		return
	}

	result, err := h.climateService.GetCurrent(c.Request.Context(), ident.SchoolID, ident.UserID, zoneID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Vote handles POST /temperature/vote (verified users only)
func (h *TemperatureHandler) Vote(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.climateService.SubmitVote(c.Request.Context(), appclimate.SubmitVoteInput{
		UserID:      ident.UserID,
		SchoolID:    ident.SchoolID,
		ZoneID:      req.ZoneID,
		Temperature: req.Temperature,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Stats handles GET /temperature/stats?zone=
func (h *TemperatureHandler) Stats(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	zoneID, ok := h.ParseUUIDQuery(c, "zone")
	if !ok {
		return
	}

	result, err := h.climateService.GetZoneStats(c.Request.Context(), ident.SchoolID, zoneID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateZone handles PUT /temperature/zones/:id (admin/staff). Used by the
// sensor/HVAC integration to push temperature readings.
func (h *TemperatureHandler) UpdateZone(c *gin.Context) {
	ident, ok := h.RequireIdentity(c)
	if !ok {
		return
	}

	zoneID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	zone, err := h.climateService.UpdateZoneTemperature(c.Request.Context(), ident.SchoolID, zoneID, appclimate.UpdateZoneInput{
		Current: req.CurrentTemperature,
		Target:  req.TargetTemperature,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, zone)
}
