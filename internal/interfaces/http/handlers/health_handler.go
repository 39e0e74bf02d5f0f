package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"maisquecardapio.backend/pkg/logger"
)

const (
	serviceName    = "maisquecardapio-backend"
	serviceVersion = "1.0.0"
	healthTimeout  = 2 * time.Second
)

// Pinger checks one dependency, e.g. (*sql.DB).PingContext
type Pinger func(ctx context.Context) error

// HealthHandler reports liveness and dependency reachability
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a new health handler. Each named check is run on every request.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	deps := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.Warn(ctx, "Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "down"
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	c.JSON(code, gin.H{
		"status":       status,
		"service":      serviceName,
		"version":      serviceVersion,
		"dependencies": deps,
	})
}
