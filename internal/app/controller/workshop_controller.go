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

type WorkshopController struct {
	workshopService service.WorkshopService
}

func NewWorkshopController(workshopService service.WorkshopService) *WorkshopController {
	return &WorkshopController{
		workshopService: workshopService,
	}
}

// PriceWorkshop prices a workshop session and optionally saves it
// POST /api/v1/quotes/workshop
func (ctrl *WorkshopController) PriceWorkshop(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.WorkshopQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid workshop payload: "+err.Error())
		return
	}

	result, err := ctrl.workshopService.PriceWorkshop(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMetalSymbol):
			apperrors.BadRequest(c, apperrors.PriceInvalidSymbol, err.Error())
		case errors.Is(err, service.ErrNoSpotPrice):
			apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.PriceFetchFailed, err.Error())
		default:
			log.Error("Failed to price workshop", err, nil)
			apperrors.InternalError(c, "Failed to price workshop")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListWorkshopQuotes returns saved workshop quotes, newest first
// GET /api/v1/quotes/workshop?limit=50
func (ctrl *WorkshopController) ListWorkshopQuotes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid limit")
		return
	}

	quotes, err := ctrl.workshopService.ListWorkshopQuotes(limit)
	if err != nil {
		log.Error("Failed to fetch workshop quotes", err, nil)
		apperrors.InternalError(c, "Failed to fetch workshop quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

type SaveTemplateRequest struct {
	Name     string                       `json:"name" binding:"required"`
	Template service.WorkshopQuoteRequest `json:"template" binding:"required"`
}

// SaveTemplate stores workshop inputs under a reusable name, replacing any
// template with the same name
// POST /api/v1/workshop-templates
func (ctrl *WorkshopController) SaveTemplate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid template payload: "+err.Error())
		return
	}

	if err := ctrl.workshopService.SaveTemplate(req.Name, req.Template); err != nil {
		log.Error("Failed to save template", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to save template")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"name": req.Name,
	})
}

// ListTemplates returns all stored workshop templates
// GET /api/v1/workshop-templates
func (ctrl *WorkshopController) ListTemplates(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	templates, err := ctrl.workshopService.ListTemplates()
	if err != nil {
		log.Error("Failed to fetch templates", err, nil)
		apperrors.InternalError(c, "Failed to fetch templates")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"count":     len(templates),
	})
}

// DeleteTemplate removes a stored template
// DELETE /api/v1/workshop-templates/:id
func (ctrl *WorkshopController) DeleteTemplate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.workshopService.DeleteTemplate(id); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			apperrors.NotFound(c, apperrors.WorkshopTemplateNotFound, "Workshop template not found")
			return
		}
		log.Error("Failed to delete template", err, map[string]interface{}{
			"template_id": id,
		})
		apperrors.InternalError(c, "Failed to delete template")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": id,
	})
}
