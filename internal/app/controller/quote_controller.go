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

type QuoteController struct {
	quoteService service.QuoteService
}

func NewQuoteController(quoteService service.QuoteService) *QuoteController {
	return &QuoteController{
		quoteService: quoteService,
	}
}

// PriceCommission prices a commission and optionally saves it
// POST /api/v1/quotes/commission
func (ctrl *QuoteController) PriceCommission(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.CommissionQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid quote payload: "+err.Error())
		return
	}

	result, err := ctrl.quoteService.PriceCommission(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMetalSymbol):
			apperrors.BadRequest(c, apperrors.PriceInvalidSymbol, err.Error())
		case errors.Is(err, service.ErrStoneNotFound):
			apperrors.BadRequest(c, apperrors.StoneNotFound, err.Error())
		case errors.Is(err, service.ErrNoSpotPrice):
			apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.PriceFetchFailed, err.Error())
		default:
			log.Error("Failed to price commission", err, nil)
			apperrors.InternalError(c, "Failed to price commission")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListCommissionQuotes returns saved quotes, newest first
// GET /api/v1/quotes/commission?limit=50
func (ctrl *QuoteController) ListCommissionQuotes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid limit")
		return
	}

	quotes, err := ctrl.quoteService.ListCommissionQuotes(limit)
	if err != nil {
		log.Error("Failed to fetch quotes", err, nil)
		apperrors.InternalError(c, "Failed to fetch quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

// ClearCommissionQuotes wipes the saved quote history
// DELETE /api/v1/quotes/commission
func (ctrl *QuoteController) ClearCommissionQuotes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	deleted, err := ctrl.quoteService.ClearCommissionQuotes()
	if err != nil {
		log.Error("Failed to clear quote history", err, nil)
		apperrors.InternalError(c, "Failed to clear quote history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

// GetCommissionQuoteByID returns one saved quote with its stone lines
// GET /api/v1/quotes/commission/:id
func (ctrl *QuoteController) GetCommissionQuoteByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	quote, err := ctrl.quoteService.GetCommissionQuoteByID(id)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			apperrors.NotFound(c, apperrors.QuoteNotFound, "Quote not found")
			return
		}
		log.Error("Failed to fetch quote", err, map[string]interface{}{
			"quote_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote": quote,
	})
}
