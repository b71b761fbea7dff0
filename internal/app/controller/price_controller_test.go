package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/db"
)

// fakeProvider serves canned prices or a canned error
type fakeProvider struct {
	prices map[string]float64
	err    error
}

func (p *fakeProvider) Name() string {
	return "fake"
}

func (p *fakeProvider) FetchLatestGBPPerOz(symbols []string) (map[string]float64, error) {
	if p.err != nil {
		return nil, p.err
	}
	result := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		if price, ok := p.prices[symbol]; ok {
			result[symbol] = price
		}
	}
	return result, nil
}

func setupPriceControllerTest(t *testing.T, fake *fakeProvider) (*PriceController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	settingRepo := repository.NewSettingRepository(testDB)
	require.NoError(t, settingRepo.SeedDefaults())

	priceRepo := repository.NewMetalPriceRepository(testDB)
	priceService := service.NewPriceService(priceRepo, settingRepo, fake)
	priceController := NewPriceController(priceService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return priceController, router, testDB
}

func TestPriceController_GetPrices(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{
		"XAU": 1800, "XAG": 22, "XPT": 750, "XPD": 800,
	}}
	controller, router, _ := setupPriceControllerTest(t, fake)
	router.GET("/prices", controller.GetPrices)

	req := httptest.NewRequest(http.MethodGet, "/prices", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	prices := response["prices"].(map[string]interface{})
	assert.Len(t, prices, 4)
	gold := prices["XAU"].(map[string]interface{})
	assert.Equal(t, 1800.0, gold["price_gbp_per_oz"])
	assert.Empty(t, response["warning"])
}

func TestPriceController_GetPricesFiltersSymbols(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800, "XAG": 22}}
	controller, router, _ := setupPriceControllerTest(t, fake)
	router.GET("/prices", controller.GetPrices)

	req := httptest.NewRequest(http.MethodGet, "/prices?symbols=xau,XAG", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	prices := response["prices"].(map[string]interface{})
	assert.Len(t, prices, 2)
}

func TestPriceController_GetPricesRejectsUnknownSymbol(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	controller, router, _ := setupPriceControllerTest(t, fake)
	router.GET("/prices", controller.GetPrices)

	req := httptest.NewRequest(http.MethodGet, "/prices?symbols=XCU", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PRICE_INVALID_SYMBOL", response["error"])
}

func TestPriceController_GetPriceBySymbol(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	controller, router, _ := setupPriceControllerTest(t, fake)
	router.GET("/prices/:symbol", controller.GetPriceBySymbol)

	req := httptest.NewRequest(http.MethodGet, "/prices/XAU", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	price := response["price"].(map[string]interface{})
	assert.Equal(t, 1800.0, price["price_gbp_per_oz"])
	assert.Equal(t, "fake", price["provider"])
}

func TestPriceController_GetPriceBySymbolUnavailable(t *testing.T) {
	fake := &fakeProvider{err: assert.AnError}
	controller, router, _ := setupPriceControllerTest(t, fake)
	router.GET("/prices/:symbol", controller.GetPriceBySymbol)

	req := httptest.NewRequest(http.MethodGet, "/prices/XAU", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PRICE_NOT_FOUND", response["error"])
}
