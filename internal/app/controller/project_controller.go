package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	apperrors "github.com/Jwinter110022/jewellery-pricing-app/internal/errors"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/middleware"
)

type ProjectController struct {
	projectService service.ProjectService
}

func NewProjectController(projectService service.ProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// RecordProject records a completed project, optionally linked to a quote
// POST /api/v1/projects
func (ctrl *ProjectController) RecordProject(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.CompletedProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid project payload: "+err.Error())
		return
	}

	project, err := ctrl.projectService.RecordProject(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProject):
			apperrors.BadRequest(c, apperrors.ProjectInvalid, err.Error())
		case errors.Is(err, service.ErrQuoteNotFound):
			apperrors.BadRequest(c, apperrors.QuoteNotFound, err.Error())
		default:
			log.Error("Failed to record completed project", err, nil)
			apperrors.InternalError(c, "Failed to record completed project")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project": project,
	})
}

// ListProjects returns completed projects, newest first
// GET /api/v1/projects?limit=50
func (ctrl *ProjectController) ListProjects(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid limit")
		return
	}

	projects, err := ctrl.projectService.ListProjects(limit)
	if err != nil {
		log.Error("Failed to fetch completed projects", err, nil)
		apperrors.InternalError(c, "Failed to fetch completed projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProjectByID returns one completed project with its cost rows
// GET /api/v1/projects/:id
func (ctrl *ProjectController) GetProjectByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := ctrl.projectService.GetProjectByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			apperrors.NotFound(c, apperrors.ProjectNotFound, "Completed project not found")
			return
		}
		log.Error("Failed to fetch completed project", err, map[string]interface{}{
			"project_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch completed project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": project,
	})
}

// PrefillCostRows returns editable starting cost rows built from a quote's
// breakdown snapshot
// GET /api/v1/projects/prefill/:id
func (ctrl *ProjectController) PrefillCostRows(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rows, err := ctrl.projectService.PrefillCostRows(id)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			apperrors.NotFound(c, apperrors.QuoteNotFound, "Quote not found")
			return
		}
		log.Error("Failed to prefill cost rows", err, map[string]interface{}{
			"quote_id": id,
		})
		apperrors.InternalError(c, "Failed to prefill cost rows")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cost_rows": rows,
	})
}
