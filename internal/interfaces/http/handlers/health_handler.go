package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minervahq/minerva/pkg/logger"
)

// Pinger is the health-check view of a dependency connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides liveness and readiness endpoints. The redis pinger
// is nil when rate limiting is disabled; the service is then self-contained.
type HealthHandler struct {
	redis Pinger
	log   logger.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(redis Pinger, log logger.Logger) *HealthHandler {
	return &HealthHandler{redis: redis, log: log}
}

// LivenessCheck reports that the process is up.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

// ReadinessCheck reports whether the service can take traffic.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	checks := gin.H{"scorer": "ok"}
	status := "ready"

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()); err != nil {
			// The limiter fails open, so a redis outage degrades rather than
			// breaks the service. Still HTTP 200: the service takes traffic.
			status = "degraded"
			checks["redis"] = "error: " + err.Error()
			h.log.Warn(c.Request.Context(), "redis unreachable during readiness check", logger.Fields{
				"error": err.Error(),
			})
		} else {
			checks["redis"] = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}
