package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	apperrors "github.com/Jwinter110022/jewellery-pricing-app/internal/errors"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/middleware"
)

type StoneController struct {
	stoneService service.StoneService
}

func NewStoneController(stoneService service.StoneService) *StoneController {
	return &StoneController{
		stoneService: stoneService,
	}
}

type StoneRequest struct {
	StoneType        string  `json:"stone_type" binding:"required"`
	SizeMMOrCarat    string  `json:"size_mm_or_carat" binding:"required"`
	Grade            string  `json:"grade" binding:"required"`
	Supplier         string  `json:"supplier" binding:"required"`
	CostGBP          float64 `json:"cost_gbp" binding:"gte=0"`
	DefaultMarkupPct float64 `json:"default_markup_pct" binding:"gte=0"`
	Notes            string  `json:"notes"`
}

// ListStones returns the full stone catalog
// GET /api/v1/stones
func (ctrl *StoneController) ListStones(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stones, err := ctrl.stoneService.ListStones()
	if err != nil {
		log.Error("Failed to fetch stones", err, nil)
		apperrors.InternalError(c, "Failed to fetch stones")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stones": stones,
		"count":  len(stones),
	})
}

// GetStoneByID returns one catalog entry
// GET /api/v1/stones/:id
func (ctrl *StoneController) GetStoneByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	stone, err := ctrl.stoneService.GetStoneByID(id)
	if err != nil {
		if errors.Is(err, service.ErrStoneNotFound) {
			apperrors.NotFound(c, apperrors.StoneNotFound, "Stone not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch stone")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stone": stone,
	})
}

// CreateStone adds a catalog entry
// POST /api/v1/stones
func (ctrl *StoneController) CreateStone(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req StoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid stone payload: "+err.Error())
		return
	}

	stone := stoneFromRequest(req)
	if err := ctrl.stoneService.CreateStone(stone); err != nil {
		if errors.Is(err, service.ErrInvalidStone) {
			apperrors.BadRequest(c, apperrors.StoneInvalid, err.Error())
			return
		}
		log.Error("Failed to create stone", err, nil)
		apperrors.InternalError(c, "Failed to create stone")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"stone": stone,
	})
}

// UpdateStone replaces a catalog entry
// PUT /api/v1/stones/:id
func (ctrl *StoneController) UpdateStone(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req StoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid stone payload: "+err.Error())
		return
	}

	stone := stoneFromRequest(req)
	stone.ID = id
	if err := ctrl.stoneService.UpdateStone(stone); err != nil {
		if errors.Is(err, service.ErrStoneNotFound) {
			apperrors.NotFound(c, apperrors.StoneNotFound, "Stone not found")
			return
		}
		if errors.Is(err, service.ErrInvalidStone) {
			apperrors.BadRequest(c, apperrors.StoneInvalid, err.Error())
			return
		}
		log.Error("Failed to update stone", err, map[string]interface{}{
			"stone_id": id,
		})
		apperrors.InternalError(c, "Failed to update stone")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stone": stone,
	})
}

// DeleteStone removes a catalog entry
// DELETE /api/v1/stones/:id
func (ctrl *StoneController) DeleteStone(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.stoneService.DeleteStone(id); err != nil {
		if errors.Is(err, service.ErrStoneNotFound) {
			apperrors.NotFound(c, apperrors.StoneNotFound, "Stone not found")
			return
		}
		log.Error("Failed to delete stone", err, map[string]interface{}{
			"stone_id": id,
		})
		apperrors.InternalError(c, "Failed to delete stone")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": id,
	})
}

// ImportStones bulk-loads catalog entries from an uploaded xlsx workbook
// POST /api/v1/stones/import
func (ctrl *StoneController) ImportStones(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "An xlsx file is required in the 'file' field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.BadRequest(c, apperrors.StoneImportInvalid, "Could not read uploaded file")
		return
	}
	defer file.Close()

	imported, err := ctrl.stoneService.ImportFromXLSX(file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImportFile) || errors.Is(err, service.ErrInvalidStone) {
			apperrors.BadRequest(c, apperrors.StoneImportInvalid, err.Error())
			return
		}
		log.Error("Failed to import stones", err, nil)
		apperrors.InternalError(c, "Failed to import stones")
		return
	}

	log.Info("Stones imported", map[string]interface{}{
		"count":    imported,
		"filename": fileHeader.Filename,
	})

	c.JSON(http.StatusOK, gin.H{
		"imported": imported,
	})
}

func stoneFromRequest(req StoneRequest) *model.Stone {
	return &model.Stone{
		StoneType:        req.StoneType,
		SizeMMOrCarat:    req.SizeMMOrCarat,
		Grade:            req.Grade,
		Supplier:         req.Supplier,
		CostGBP:          req.CostGBP,
		DefaultMarkupPct: req.DefaultMarkupPct,
		Notes:            req.Notes,
	}
}

// parseIDParam reads the :id path parameter; on failure it writes the error
// response and returns false.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}
