package service

import (
	"errors"
	"fmt"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

var ErrInvalidSettings = errors.New("invalid settings")

// SettingService exposes the process-wide pricing configuration
type SettingService interface {
	GetSettings() (model.Settings, error)
	UpdateSettings(settings model.Settings) error
}

type settingService struct {
	repo repository.SettingRepository
}

// NewSettingService creates the settings service
func NewSettingService(repo repository.SettingRepository) SettingService {
	return &settingService{repo: repo}
}

func (s *settingService) GetSettings() (model.Settings, error) {
	return s.repo.GetAll()
}

// UpdateSettings validates and persists the full settings set. Percentages
// must be non-negative; values over 100 are allowed, the calculators handle
// them.
func (s *settingService) UpdateSettings(settings model.Settings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}
	if err := s.repo.Save(settings); err != nil {
		logger.Error("Failed to update settings", err)
		return err
	}
	logger.Info("Settings updated")
	return nil
}

func validateSettings(settings model.Settings) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"labour_rate_gbp_per_hr", settings.LabourRateGBPPerHr},
		{"vat_rate_pct", settings.VATRatePct},
		{"commission_deposit_pct", settings.CommissionDepositPct},
		{"estimate_variance_pct", settings.EstimateVariancePct},
		{"estimate_valid_days", float64(settings.EstimateValidDays)},
		{"metal_waste_pct", settings.MetalWastePct},
		{"supplier_markup_pct", settings.SupplierMarkupPct},
		{"overhead_pct", settings.OverheadPct},
		{"target_profit_margin_pct", settings.TargetProfitMarginPct},
		{"price_cache_ttl_minutes", float64(settings.PriceCacheTTLMinutes)},
	}
	for _, check := range checks {
		if check.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidSettings, check.name)
		}
	}
	if settings.TroyOzToGrams <= 0 {
		return fmt.Errorf("%w: troy_oz_to_grams must be positive", ErrInvalidSettings)
	}
	return nil
}
