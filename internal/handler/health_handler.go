package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GetHealth responds with service and database status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	dbStatus := "connected"
	code := 200
	if err := h.db.PingContext(ctx); err != nil {
		status = "degraded"
		dbStatus = "disconnected"
		code = 503
	}

	c.JSON(code, gin.H{
		"status":   status,
		"uptime":   int(time.Since(startTime).Seconds()),
		"database": dbStatus,
	})
}
