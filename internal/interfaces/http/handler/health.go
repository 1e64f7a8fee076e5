package handler

import (
	"net/http"

	"github.com/dormlife/backend/internal/infrastructure/persistence"
	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db      *persistence.Database
	version string
}

// NewHealthHandler creates a health handler
func NewHealthHandler(db *persistence.Database, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"status":  "ok",
		"version": h.version,
	}))
}

// Ready handles GET /ready; it fails when the database is unreachable
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse(dto.CodeInternalError, "Database unavailable"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ready"}))
}
