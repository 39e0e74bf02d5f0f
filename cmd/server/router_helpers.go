package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"maisquecardapio.backend/internal/interfaces/http/handlers"
	"maisquecardapio.backend/internal/interfaces/http/middleware"
)

var corsAllowedHeaders = strings.Join([]string{
	"Content-Type",
	"Authorization",
	middleware.TenantHeader,
	middleware.IdempotencyHeader,
	middleware.RequestIDHeader,
	handlers.CronKeyHeader,
}, ", ")

// applyCORSMiddleware reflects the caller origin; menus are embedded on arbitrary domains
func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", corsAllowedHeaders)
		c.Header("Access-Control-Expose-Headers", middleware.RequestIDHeader)
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, h *handlers.HealthHandler) {
	r.GET("/health", h.Health)
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
