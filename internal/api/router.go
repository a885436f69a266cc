package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poslyzer/posture-backend-go/internal/config"
	"github.com/poslyzer/posture-backend-go/internal/handler"
	"github.com/poslyzer/posture-backend-go/internal/middleware"
)

// SetupRouter wires the HTTP routes.
func SetupRouter(cfg *config.Config, posture *handler.PostureHandler) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Posture analysis API is running",
			"endpoints": []string{
				"/api/video/analyze",
				"/api/video/frame",
				"/api/video/analyze-squat",
				"/api/video/analyze-sit",
				"/analyze/squat",
				"/analyze/sit",
				"/health",
			},
		})
	})

	api := r.Group("/api/video")
	{
		api.POST("/analyze", posture.AnalyzeVideo)
		api.POST("/frame", posture.AnalyzeFrame)
		api.POST("/analyze-squat", posture.AnalyzeSquat)
		api.POST("/analyze-sit", posture.AnalyzeSitting)
	}

	// Legacy endpoints kept for older clients
	legacy := r.Group("/analyze")
	{
		legacy.POST("/squat", posture.LegacySquat)
		legacy.POST("/sit", posture.LegacySit)
	}

	return r
}
