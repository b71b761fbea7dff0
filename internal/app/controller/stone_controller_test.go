package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/db"
)

func setupStoneControllerTest(t *testing.T) (*StoneController, *gin.Engine) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	stoneService := service.NewStoneService(repository.NewStoneRepository(testDB))
	stoneController := NewStoneController(stoneService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return stoneController, router
}

func TestStoneController_CreateAndList(t *testing.T) {
	controller, router := setupStoneControllerTest(t)
	router.POST("/stones", controller.CreateStone)
	router.GET("/stones", controller.ListStones)

	w := postJSON(t, router, "/stones", gin.H{
		"stone_type":         "Sapphire",
		"size_mm_or_carat":   "3mm",
		"grade":              "AA",
		"supplier":           "Gemco",
		"cost_gbp":           40,
		"default_markup_pct": 100,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/stones", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestStoneController_CreateValidation(t *testing.T) {
	controller, router := setupStoneControllerTest(t)
	router.POST("/stones", controller.CreateStone)

	// Missing required fields fails binding
	w := postJSON(t, router, "/stones", gin.H{
		"stone_type": "Sapphire",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoneController_UpdateAndDelete(t *testing.T) {
	controller, router := setupStoneControllerTest(t)
	router.POST("/stones", controller.CreateStone)
	router.PUT("/stones/:id", controller.UpdateStone)
	router.DELETE("/stones/:id", controller.DeleteStone)
	router.GET("/stones/:id", controller.GetStoneByID)

	w := postJSON(t, router, "/stones", gin.H{
		"stone_type":         "Diamond",
		"size_mm_or_carat":   "0.25ct",
		"grade":              "VS1",
		"supplier":           "Gemco",
		"cost_gbp":           150,
		"default_markup_pct": 80,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body, err := json.Marshal(gin.H{
		"stone_type":         "Diamond",
		"size_mm_or_carat":   "0.25ct",
		"grade":              "VS2",
		"supplier":           "Gemco",
		"cost_gbp":           140,
		"default_markup_pct": 80,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/stones/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/stones/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	stone := response["stone"].(map[string]interface{})
	assert.Equal(t, "VS2", stone["grade"])

	req = httptest.NewRequest(http.MethodDelete, "/stones/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/stones/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoneController_InvalidID(t *testing.T) {
	controller, router := setupStoneControllerTest(t)
	router.GET("/stones/:id", controller.GetStoneByID)

	req := httptest.NewRequest(http.MethodGet, "/stones/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoneController_Import(t *testing.T) {
	controller, router := setupStoneControllerTest(t)
	router.POST("/stones/import", controller.ImportStones)
	router.GET("/stones", controller.ListStones)

	workbook := excelize.NewFile()
	defer workbook.Close()
	sheet := workbook.GetSheetName(0)
	rows := [][]interface{}{
		{"stone_type", "size_mm_or_carat", "grade", "supplier", "cost_gbp", "default_markup_pct", "notes"},
		{"Sapphire", "3mm", "AA", "Gemco", 40, 100, ""},
		{"Ruby", "4mm", "A", "Stonex", 55, 90, ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cell, &row))
	}
	workbookBuf, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "stones.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbookBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/stones/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["imported"])

	req = httptest.NewRequest(http.MethodGet, "/stones", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["count"])
}

func TestStoneController_ImportWithoutFile(t *testing.T) {
	controller, router := setupStoneControllerTest(t)
	router.POST("/stones/import", controller.ImportStones)

	req := httptest.NewRequest(http.MethodPost, "/stones/import", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
