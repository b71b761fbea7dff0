package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	apperrors "github.com/Jwinter110022/jewellery-pricing-app/internal/errors"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/middleware"
)

type SettingController struct {
	settingService service.SettingService
}

func NewSettingController(settingService service.SettingService) *SettingController {
	return &SettingController{
		settingService: settingService,
	}
}

// GetSettings returns the full pricing configuration
// GET /api/v1/settings
func (ctrl *SettingController) GetSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	settings, err := ctrl.settingService.GetSettings()
	if err != nil {
		log.Error("Failed to fetch settings", err, nil)
		apperrors.InternalError(c, "Failed to fetch settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
	})
}

// UpdateSettings replaces the full pricing configuration
// PUT /api/v1/settings
func (ctrl *SettingController) UpdateSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var settings model.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid settings payload: "+err.Error())
		return
	}

	if err := ctrl.settingService.UpdateSettings(settings); err != nil {
		if errors.Is(err, service.ErrInvalidSettings) {
			apperrors.BadRequest(c, apperrors.SettingsInvalid, err.Error())
			return
		}
		log.Error("Failed to update settings", err, nil)
		apperrors.InternalError(c, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
	})
}
