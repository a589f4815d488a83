package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	internalapi "site_ai_server/internal/api"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *internalapi.APIHandler) {

	// --- Site Lifecycle ---
	siteGroup := router.Group("/site")
	{
		siteGroup.POST("/generate", h.GenerateSite)      // Generate a project from a prompt
		siteGroup.POST("/export", h.ExportSite)          // Single self-contained HTML page
		siteGroup.POST("/export/bundle", h.ExportBundle) // Multi-file bundle as JSON
		siteGroup.POST("/export/zip", h.ExportZip)       // Multi-file bundle as a zip download
	}

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
