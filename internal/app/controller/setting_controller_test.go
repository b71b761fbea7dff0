package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/db"
)

func setupSettingControllerTest(t *testing.T) (*SettingController, *gin.Engine) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	settingRepo := repository.NewSettingRepository(testDB)
	require.NoError(t, settingRepo.SeedDefaults())

	settingController := NewSettingController(service.NewSettingService(settingRepo))

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return settingController, router
}

func TestSettingController_GetSettings(t *testing.T) {
	controller, router := setupSettingControllerTest(t)
	router.GET("/settings", controller.GetSettings)

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Settings model.Settings `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.InDelta(t, 35.0, response.Settings.LabourRateGBPPerHr, 0.001)
	assert.True(t, response.Settings.VATEnabled)
}

func TestSettingController_UpdateSettings(t *testing.T) {
	controller, router := setupSettingControllerTest(t)
	router.GET("/settings", controller.GetSettings)
	router.PUT("/settings", controller.UpdateSettings)

	settings := model.Settings{
		LabourRateGBPPerHr:    42.5,
		VATEnabled:            false,
		VATRatePct:            20,
		CommissionDepositPct:  50,
		EstimateVariancePct:   10,
		EstimateValidDays:     14,
		MetalWastePct:         5,
		SupplierMarkupPct:     12,
		OverheadPct:           10,
		TargetProfitMarginPct: 25,
		TroyOzToGrams:         31.1034768,
		PriceCacheTTLMinutes:  30,
	}
	body, err := json.Marshal(settings)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/settings", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Settings model.Settings `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.InDelta(t, 42.5, response.Settings.LabourRateGBPPerHr, 0.001)
	assert.False(t, response.Settings.VATEnabled)
	assert.Equal(t, 14, response.Settings.EstimateValidDays)
}

func TestSettingController_UpdateRejectsInvalid(t *testing.T) {
	controller, router := setupSettingControllerTest(t)
	router.PUT("/settings", controller.UpdateSettings)

	settings := model.Settings{
		LabourRateGBPPerHr: -1,
		TroyOzToGrams:      31.1034768,
	}
	body, err := json.Marshal(settings)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "SETTINGS_INVALID", response["error"])
}
