package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/infrastructure/persistence"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	*BaseHandler
	db      *persistence.Database
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *persistence.Database, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
		version:     version,
	}
}

// Check reports service and database health
func (h *HealthHandler) Check(c *gin.Context) {
	overall, dbStatus := "ok", "up"
	status := http.StatusOK
	if err := h.db.Ping(); err != nil {
		overall, dbStatus = "degraded", "down"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   overall,
		"version":  h.version,
		"database": dbStatus,
	})
}
