package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// ReadinessChecker reports whether the service can serve traffic.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

type SystemHandler struct {
	ready ReadinessChecker
}

func NewSystemHandler(ready ReadinessChecker) *SystemHandler {
	return &SystemHandler{ready: ready}
}

func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Speed Camera API",
		"version": Version,
		"health":  "/health",
		"metrics": "/metrics",
	})
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ready.Ready(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
