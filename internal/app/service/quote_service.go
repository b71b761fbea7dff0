package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/pricing"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

var (
	ErrInvalidMetalSymbol = errors.New("invalid metal symbol")
	ErrNoSpotPrice        = errors.New("no spot price available")
	ErrQuoteNotFound      = errors.New("quote not found")
)

// CommissionStoneRequest selects a catalog stone for a quote. A nil markup
// uses the stone's default markup.
type CommissionStoneRequest struct {
	StoneID   uint     `json:"stone_id" binding:"required"`
	Qty       int      `json:"qty" binding:"required,gt=0"`
	MarkupPct *float64 `json:"markup_pct,omitempty" binding:"omitempty,gte=0"`
}

// CommissionQuoteRequest is the input for pricing a commission
type CommissionQuoteRequest struct {
	CustomerName    string                   `json:"customer_name"`
	QuoteType       model.QuoteType          `json:"quote_type"`
	MetalSymbol     model.MetalSymbol        `json:"metal_symbol" binding:"required"`
	AlloyLabel      string                   `json:"alloy_label"`
	MetalMultiplier float64                  `json:"metal_multiplier" binding:"required,gt=0"`
	WeightGrams     float64                  `json:"weight_grams" binding:"gte=0"`
	LabourHours     float64                  `json:"labour_hours" binding:"gte=0"`
	Stones          []CommissionStoneRequest `json:"stones"`
	ForceRefresh    bool                     `json:"force_refresh"`
	Save            bool                     `json:"save"`
}

// CommissionQuoteResult is the priced commission plus context for display
type CommissionQuoteResult struct {
	QuoteID        uint                        `json:"quote_id,omitempty"`
	Reference      string                      `json:"reference,omitempty"`
	QuoteType      model.QuoteType             `json:"quote_type"`
	Breakdown      pricing.CommissionBreakdown `json:"breakdown"`
	Estimate       *pricing.Estimate           `json:"estimate,omitempty"`
	ValidUntil     string                      `json:"valid_until,omitempty"`
	PriceFetchedAt time.Time                   `json:"price_fetched_at"`
	PriceProvider  string                      `json:"price_provider"`
	Warning        string                      `json:"warning,omitempty"`
}

// QuoteService prices commissions and keeps the quote history
type QuoteService interface {
	PriceCommission(req CommissionQuoteRequest) (*CommissionQuoteResult, error)
	ListCommissionQuotes(limit int) ([]model.CommissionQuote, error)
	GetCommissionQuoteByID(id uint) (*model.CommissionQuote, error)
	ClearCommissionQuotes() (int64, error)
}

type quoteService struct {
	quoteRepo    repository.QuoteRepository
	stoneRepo    repository.StoneRepository
	settingRepo  repository.SettingRepository
	priceService PriceService
}

// NewQuoteService creates the commission quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	stoneRepo repository.StoneRepository,
	settingRepo repository.SettingRepository,
	priceService PriceService,
) QuoteService {
	return &quoteService{
		quoteRepo:    quoteRepo,
		stoneRepo:    stoneRepo,
		settingRepo:  settingRepo,
		priceService: priceService,
	}
}

// PriceCommission resolves settings, the stone catalog and the cached spot
// price, runs the calculator and optionally persists the run with a snapshot
// of every input. The price-cache warning is passed through verbatim.
func (s *quoteService) PriceCommission(req CommissionQuoteRequest) (*CommissionQuoteResult, error) {
	if !model.IsValidMetalSymbol(req.MetalSymbol) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMetalSymbol, req.MetalSymbol)
	}
	if req.QuoteType == "" {
		req.QuoteType = model.QuoteTypeQuote
	}

	settings, err := s.settingRepo.GetAll()
	if err != nil {
		return nil, err
	}

	prices, warning := s.priceService.GetPrices([]model.MetalSymbol{req.MetalSymbol}, req.ForceRefresh)
	spot, ok := prices[req.MetalSymbol]
	if !ok {
		// Nothing cached and the provider is down; the warning says why.
		return nil, fmt.Errorf("%w for %s: %s", ErrNoSpotPrice, req.MetalSymbol, warning)
	}

	stoneItems, quoteStones, err := s.resolveStones(req.Stones)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.CalculateCommission(pricing.CommissionInput{
		WeightGrams:           req.WeightGrams,
		SpotGBPPerOz:          spot.PriceGBPPerOz,
		TroyOzToGrams:         settings.TroyOzToGrams,
		MetalMultiplier:       req.MetalMultiplier,
		WastePct:              settings.MetalWastePct,
		StoneItems:            stoneItems,
		LabourHours:           req.LabourHours,
		LabourRateGBPPerHr:    settings.LabourRateGBPPerHr,
		SupplierMarkupPct:     settings.SupplierMarkupPct,
		OverheadPct:           settings.OverheadPct,
		TargetProfitMarginPct: settings.TargetProfitMarginPct,
		VATEnabled:            settings.VATEnabled,
		VATRatePct:            settings.VATRatePct,
		DepositPct:            settings.CommissionDepositPct,
	})

	result := &CommissionQuoteResult{
		QuoteType:      req.QuoteType,
		Breakdown:      breakdown,
		PriceFetchedAt: spot.FetchedAt,
		PriceProvider:  spot.Provider,
		Warning:        warning,
	}

	if req.QuoteType == model.QuoteTypeEstimate {
		estimate := pricing.EstimateRange(breakdown.FinalPriceGBP, settings.EstimateVariancePct)
		result.Estimate = &estimate
		result.ValidUntil = time.Now().UTC().
			AddDate(0, 0, settings.EstimateValidDays).
			Format("2006-01-02")
	}

	if req.Save {
		if err := s.saveQuote(req, settings, breakdown, quoteStones, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// resolveStones looks up each requested stone in the catalog and builds the
// calculator line items. The catalog supplies the unit cost; the markup is the
// request override or the stone's default.
func (s *quoteService) resolveStones(requests []CommissionStoneRequest) ([]pricing.StoneItem, []model.QuoteStone, error) {
	if len(requests) == 0 {
		return nil, nil, nil
	}

	ids := make([]uint, len(requests))
	for i, request := range requests {
		ids[i] = request.StoneID
	}
	catalog, err := s.stoneRepo.FindByIDs(ids)
	if err != nil {
		return nil, nil, err
	}

	items := make([]pricing.StoneItem, 0, len(requests))
	lines := make([]model.QuoteStone, 0, len(requests))
	for _, request := range requests {
		stone, ok := catalog[request.StoneID]
		if !ok {
			return nil, nil, fmt.Errorf("%w: id %d", ErrStoneNotFound, request.StoneID)
		}
		markup := stone.DefaultMarkupPct
		if request.MarkupPct != nil {
			markup = *request.MarkupPct
		}
		items = append(items, pricing.StoneItem{
			StoneID:          stone.ID,
			Label:            stone.Label(),
			Qty:              request.Qty,
			UnitCostGBP:      stone.CostGBP,
			AppliedMarkupPct: markup,
		})
		lines = append(lines, model.QuoteStone{
			StoneID:          stone.ID,
			Qty:              request.Qty,
			AppliedMarkupPct: markup,
			UnitCostGBP:      stone.CostGBP,
		})
	}
	return items, lines, nil
}

func (s *quoteService) saveQuote(
	req CommissionQuoteRequest,
	settings model.Settings,
	breakdown pricing.CommissionBreakdown,
	quoteStones []model.QuoteStone,
	result *CommissionQuoteResult,
) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return err
	}

	quote := &model.CommissionQuote{
		Reference:     uuid.NewString(),
		CustomerName:  req.CustomerName,
		QuoteType:     req.QuoteType,
		MetalSymbol:   req.MetalSymbol,
		AlloyLabel:    req.AlloyLabel,
		WeightGrams:   req.WeightGrams,
		LabourHours:   req.LabourHours,
		SettingsJSON:  string(settingsJSON),
		BreakdownJSON: string(breakdownJSON),
		FinalPriceGBP: breakdown.FinalPriceGBP,
	}
	if err := s.quoteRepo.SaveCommissionQuote(quote, quoteStones); err != nil {
		return err
	}

	result.QuoteID = quote.ID
	result.Reference = quote.Reference
	logger.Info("Saved commission quote", map[string]interface{}{
		"quote_id":    quote.ID,
		"quote_type":  quote.QuoteType,
		"final_price": quote.FinalPriceGBP,
	})
	return nil
}

func (s *quoteService) ListCommissionQuotes(limit int) ([]model.CommissionQuote, error) {
	return s.quoteRepo.ListCommissionQuotes(limit)
}

func (s *quoteService) GetCommissionQuoteByID(id uint) (*model.CommissionQuote, error) {
	quote, err := s.quoteRepo.FindCommissionQuoteByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}
	return quote, nil
}

// ClearCommissionQuotes empties the quote history and reports the count
func (s *quoteService) ClearCommissionQuotes() (int64, error) {
	deleted, err := s.quoteRepo.ClearCommissionQuotes()
	if err != nil {
		return 0, err
	}
	logger.Info("Cleared commission quote history", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted, nil
}
