package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health, readiness, and metrics
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		events := v1.Group("/events")
		{
			events.GET("", handler.ListEvents)      // GET /api/v1/events
			events.GET("/stats", handler.GetStats)  // GET /api/v1/events/stats
		}

		v1.POST("/scrape", handler.TriggerScrape) // POST /api/v1/scrape
	}
}
