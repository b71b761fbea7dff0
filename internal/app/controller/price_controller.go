package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	apperrors "github.com/Jwinter110022/jewellery-pricing-app/internal/errors"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/middleware"
)

type PriceController struct {
	priceService service.PriceService
}

func NewPriceController(priceService service.PriceService) *PriceController {
	return &PriceController{
		priceService: priceService,
	}
}

// GetPrices returns cached spot prices for the requested symbols
// GET /api/v1/prices?symbols=XAU,XAG&refresh=true
func (ctrl *PriceController) GetPrices(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	symbols := model.AllMetalSymbols
	if raw := c.Query("symbols"); raw != "" {
		parts := strings.Split(raw, ",")
		symbols = make([]model.MetalSymbol, 0, len(parts))
		for _, part := range parts {
			symbol := model.MetalSymbol(strings.ToUpper(strings.TrimSpace(part)))
			if !model.IsValidMetalSymbol(symbol) {
				apperrors.BadRequest(c, apperrors.PriceInvalidSymbol, "Unknown metal symbol: "+string(symbol))
				return
			}
			symbols = append(symbols, symbol)
		}
	}

	forceRefresh := c.Query("refresh") == "true"
	prices, warning := ctrl.priceService.GetPrices(symbols, forceRefresh)

	if warning != "" {
		log.Warn("Serving prices with warning", map[string]interface{}{
			"warning": warning,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"prices":  prices,
		"warning": warning,
	})
}

// GetPriceBySymbol returns the cached spot price for one symbol
// GET /api/v1/prices/:symbol
func (ctrl *PriceController) GetPriceBySymbol(c *gin.Context) {
	symbol := model.MetalSymbol(strings.ToUpper(c.Param("symbol")))
	if !model.IsValidMetalSymbol(symbol) {
		apperrors.BadRequest(c, apperrors.PriceInvalidSymbol, "Unknown metal symbol: "+string(symbol))
		return
	}

	forceRefresh := c.Query("refresh") == "true"
	prices, warning := ctrl.priceService.GetPrices([]model.MetalSymbol{symbol}, forceRefresh)

	price, ok := prices[symbol]
	if !ok {
		apperrors.NotFound(c, apperrors.PriceNotFound, "No spot price available for "+string(symbol)+". "+warning)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"price":   price,
		"warning": warning,
	})
}
