package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"site_ai_server/internal/ai"
	"site_ai_server/internal/export"
	"site_ai_server/internal/schema"
	"site_ai_server/internal/types"
)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator *ai.Generator
	logger    *zap.Logger
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(generator *ai.Generator, logger *zap.Logger) *APIHandler {
	return &APIHandler{generator: generator, logger: logger}
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Kind   string `json:"kind"` // preview | fullstack | multi-page (default)
}

type GenerateResponse struct {
	ProjectID string         `json:"projectId"`
	Project   *types.Project `json:"project"`
}

// --- API Handlers ---

// POST /site/generate
func (h *APIHandler) GenerateSite(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	kind := types.GenerationKind(req.Kind)
	switch kind {
	case types.KindPreview, types.KindFullstack, types.KindMultiPage:
	case "":
		kind = types.KindMultiPage
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown generation kind %q", req.Kind)})
		return
	}

	project, err := h.generator.Generate(c.Request.Context(), types.GenerationRequest{
		Prompt: req.Prompt,
		Kind:   kind,
	})
	if err != nil {
		h.logger.Error("site generation failed", zap.Error(err))
		status := http.StatusBadGateway
		if errors.Is(err, ai.ErrNotRecovered) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": "Failed to generate site: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, GenerateResponse{
		ProjectID: uuid.New().String(),
		Project:   project,
	})
}

// bindProject decodes and re-validates a caller-supplied canonical Project.
func (h *APIHandler) bindProject(c *gin.Context) (*types.Project, bool) {
	var project types.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project body: " + err.Error()})
		return nil, false
	}
	if err := schema.CheckProject(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &project, true
}

// POST /site/export?slug=about
func (h *APIHandler) ExportSite(c *gin.Context) {
	project, ok := h.bindProject(c)
	if !ok {
		return
	}
	slug := c.Query("slug")
	doc, err := export.RenderStandalone(project, slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	page := project.Pages[0]
	if slug != "" {
		for _, p := range project.Pages {
			if p.Slug == slug {
				page = p
			}
		}
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(page.Title)))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// POST /site/export/bundle
func (h *APIHandler) ExportBundle(c *gin.Context) {
	project, ok := h.bindProject(c)
	if !ok {
		return
	}
	files, err := export.Bundle(project)
	if err != nil {
		h.logger.Error("bundle export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export bundle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// POST /site/export/zip
func (h *APIHandler) ExportZip(c *gin.Context) {
	project, ok := h.bindProject(c)
	if !ok {
		return
	}
	files, err := export.Bundle(project)
	if err != nil {
		h.logger.Error("bundle export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export bundle"})
		return
	}
	archive, err := export.Zip(files)
	if err != nil {
		h.logger.Error("zip export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build zip archive"})
		return
	}
	name := export.FileName(project.SiteName)
	name = name[:len(name)-len(".html")] + ".zip"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/zip", archive)
}
