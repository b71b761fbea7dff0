package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/pricing"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

var ErrTemplateNotFound = errors.New("workshop template not found")

// WorkshopQuoteRequest is the input for pricing a workshop session
type WorkshopQuoteRequest struct {
	TemplateName           string            `json:"template_name"`
	MetalSymbol            model.MetalSymbol `json:"metal_symbol" binding:"required"`
	Attendees              int               `json:"attendees" binding:"gte=0"`
	GramsIncludedPerPerson float64           `json:"grams_included_per_person" binding:"gte=0"`
	TutorHours             float64           `json:"tutor_hours" binding:"gte=0"`
	ConsumablesPerPerson   float64           `json:"consumables_per_person" binding:"gte=0"`
	VenueCost              float64           `json:"venue_cost" binding:"gte=0"`
	ForceRefresh           bool              `json:"force_refresh"`
	Save                   bool              `json:"save"`
}

// WorkshopQuoteResult is the priced workshop plus context for display
type WorkshopQuoteResult struct {
	QuoteID        uint                      `json:"quote_id,omitempty"`
	Breakdown      pricing.WorkshopBreakdown `json:"breakdown"`
	PriceFetchedAt time.Time                 `json:"price_fetched_at"`
	PriceProvider  string                    `json:"price_provider"`
	Warning        string                    `json:"warning,omitempty"`
}

// WorkshopService prices workshops and manages reusable templates
type WorkshopService interface {
	PriceWorkshop(req WorkshopQuoteRequest) (*WorkshopQuoteResult, error)
	ListWorkshopQuotes(limit int) ([]model.WorkshopQuote, error)
	SaveTemplate(name string, req WorkshopQuoteRequest) error
	ListTemplates() ([]model.WorkshopTemplate, error)
	DeleteTemplate(id uint) error
}

type workshopService struct {
	workshopRepo repository.WorkshopRepository
	settingRepo  repository.SettingRepository
	priceService PriceService
}

// NewWorkshopService creates the workshop pricing service
func NewWorkshopService(
	workshopRepo repository.WorkshopRepository,
	settingRepo repository.SettingRepository,
	priceService PriceService,
) WorkshopService {
	return &workshopService{
		workshopRepo: workshopRepo,
		settingRepo:  settingRepo,
		priceService: priceService,
	}
}

// PriceWorkshop prices a group workshop from settings and the cached spot
// price. Zero attendees is valid and yields a zero per-person price.
func (s *workshopService) PriceWorkshop(req WorkshopQuoteRequest) (*WorkshopQuoteResult, error) {
	if !model.IsValidMetalSymbol(req.MetalSymbol) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMetalSymbol, req.MetalSymbol)
	}

	settings, err := s.settingRepo.GetAll()
	if err != nil {
		return nil, err
	}

	prices, warning := s.priceService.GetPrices([]model.MetalSymbol{req.MetalSymbol}, req.ForceRefresh)
	spot, ok := prices[req.MetalSymbol]
	if !ok {
		return nil, fmt.Errorf("%w for %s: %s", ErrNoSpotPrice, req.MetalSymbol, warning)
	}

	breakdown := pricing.CalculateWorkshop(pricing.WorkshopInput{
		Attendees:              req.Attendees,
		GramsIncludedPerPerson: req.GramsIncludedPerPerson,
		WastePct:               settings.MetalWastePct,
		SpotGBPPerOz:           spot.PriceGBPPerOz,
		TroyOzToGrams:          settings.TroyOzToGrams,
		TutorHours:             req.TutorHours,
		LabourRateGBPPerHr:     settings.LabourRateGBPPerHr,
		ConsumablesPerPerson:   req.ConsumablesPerPerson,
		VenueCost:              req.VenueCost,
		SupplierMarkupPct:      settings.SupplierMarkupPct,
		OverheadPct:            settings.OverheadPct,
		TargetProfitMarginPct:  settings.TargetProfitMarginPct,
		VATEnabled:             settings.VATEnabled,
		VATRatePct:             settings.VATRatePct,
	})

	result := &WorkshopQuoteResult{
		Breakdown:      breakdown,
		PriceFetchedAt: spot.FetchedAt,
		PriceProvider:  spot.Provider,
		Warning:        warning,
	}

	if req.Save {
		inputsJSON, err := json.Marshal(req)
		if err != nil {
			return nil, err
		}
		breakdownJSON, err := json.Marshal(breakdown)
		if err != nil {
			return nil, err
		}
		quote := &model.WorkshopQuote{
			TemplateName:  req.TemplateName,
			InputsJSON:    string(inputsJSON),
			BreakdownJSON: string(breakdownJSON),
			FinalTotalGBP: breakdown.FinalTotalGBP,
		}
		if err := s.workshopRepo.SaveQuote(quote); err != nil {
			return nil, err
		}
		result.QuoteID = quote.ID
		logger.Info("Saved workshop quote", map[string]interface{}{
			"quote_id":    quote.ID,
			"final_total": quote.FinalTotalGBP,
		})
	}

	return result, nil
}

func (s *workshopService) ListWorkshopQuotes(limit int) ([]model.WorkshopQuote, error) {
	return s.workshopRepo.ListQuotes(limit)
}

// SaveTemplate stores the request inputs under a reusable name
func (s *workshopService) SaveTemplate(name string, req WorkshopQuoteRequest) error {
	templateJSON, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return s.workshopRepo.UpsertTemplate(&model.WorkshopTemplate{
		Name:         name,
		TemplateJSON: string(templateJSON),
	})
}

func (s *workshopService) ListTemplates() ([]model.WorkshopTemplate, error) {
	return s.workshopRepo.ListTemplates()
}

func (s *workshopService) DeleteTemplate(id uint) error {
	if err := s.workshopRepo.DeleteTemplate(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}
