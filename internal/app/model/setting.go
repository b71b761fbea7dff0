package model

import (
	"strconv"
	"time"
)

// Setting is one key/value row in the settings store
type Setting struct {
	Key       string    `gorm:"type:varchar(100);primarykey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Settings is the typed view of the settings table used by the pricing engine.
// Percentage fields are non-negative; values over 100 are still computed, the
// calculators never clamp them.
type Settings struct {
	LabourRateGBPPerHr    float64 `json:"labour_rate_gbp_per_hr"`
	VATEnabled            bool    `json:"vat_enabled"`
	VATRatePct            float64 `json:"vat_rate_pct"`
	CommissionDepositPct  float64 `json:"commission_deposit_pct"`
	EstimateVariancePct   float64 `json:"estimate_variance_pct"`
	EstimateValidDays     int     `json:"estimate_valid_days"`
	MetalWastePct         float64 `json:"metal_waste_pct"`
	SupplierMarkupPct     float64 `json:"supplier_markup_pct"`
	OverheadPct           float64 `json:"overhead_pct"`
	TargetProfitMarginPct float64 `json:"target_profit_margin_pct"`
	TroyOzToGrams         float64 `json:"troy_oz_to_grams"`
	PriceCacheTTLMinutes  int     `json:"price_cache_ttl_minutes"`
}

// DefaultSettings are seeded on first run. supplier_markup_pct defaults to 0
// and is never invented.
var DefaultSettings = map[string]string{
	"labour_rate_gbp_per_hr":   "35",
	"vat_enabled":              "1",
	"vat_rate_pct":             "20",
	"commission_deposit_pct":   "50",
	"estimate_variance_pct":    "10",
	"estimate_valid_days":      "7",
	"metal_waste_pct":          "5",
	"supplier_markup_pct":      "0",
	"overhead_pct":             "10",
	"target_profit_margin_pct": "25",
	"troy_oz_to_grams":         "31.1034768",
	"price_cache_ttl_minutes":  "60",
}

// SettingsFromRows builds the typed settings from raw rows, falling back to
// the seeded defaults for missing or unparsable values.
func SettingsFromRows(rows []Setting) Settings {
	raw := make(map[string]string, len(rows))
	for _, row := range rows {
		raw[row.Key] = row.Value
	}

	getFloat := func(key string) float64 {
		value, ok := raw[key]
		if !ok {
			value = DefaultSettings[key]
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			parsed, _ = strconv.ParseFloat(DefaultSettings[key], 64)
		}
		return parsed
	}

	vatEnabled := DefaultSettings["vat_enabled"]
	if value, ok := raw["vat_enabled"]; ok {
		vatEnabled = value
	}

	return Settings{
		LabourRateGBPPerHr:    getFloat("labour_rate_gbp_per_hr"),
		VATEnabled:            vatEnabled == "1",
		VATRatePct:            getFloat("vat_rate_pct"),
		CommissionDepositPct:  getFloat("commission_deposit_pct"),
		EstimateVariancePct:   getFloat("estimate_variance_pct"),
		EstimateValidDays:     int(getFloat("estimate_valid_days")),
		MetalWastePct:         getFloat("metal_waste_pct"),
		SupplierMarkupPct:     getFloat("supplier_markup_pct"),
		OverheadPct:           getFloat("overhead_pct"),
		TargetProfitMarginPct: getFloat("target_profit_margin_pct"),
		TroyOzToGrams:         getFloat("troy_oz_to_grams"),
		PriceCacheTTLMinutes:  int(getFloat("price_cache_ttl_minutes")),
	}
}

// ToRows flattens typed settings back into key/value rows for persistence
func (s Settings) ToRows() map[string]string {
	vatEnabled := "0"
	if s.VATEnabled {
		vatEnabled = "1"
	}
	return map[string]string{
		"labour_rate_gbp_per_hr":   strconv.FormatFloat(s.LabourRateGBPPerHr, 'f', -1, 64),
		"vat_enabled":              vatEnabled,
		"vat_rate_pct":             strconv.FormatFloat(s.VATRatePct, 'f', -1, 64),
		"commission_deposit_pct":   strconv.FormatFloat(s.CommissionDepositPct, 'f', -1, 64),
		"estimate_variance_pct":    strconv.FormatFloat(s.EstimateVariancePct, 'f', -1, 64),
		"estimate_valid_days":      strconv.Itoa(s.EstimateValidDays),
		"metal_waste_pct":          strconv.FormatFloat(s.MetalWastePct, 'f', -1, 64),
		"supplier_markup_pct":      strconv.FormatFloat(s.SupplierMarkupPct, 'f', -1, 64),
		"overhead_pct":             strconv.FormatFloat(s.OverheadPct, 'f', -1, 64),
		"target_profit_margin_pct": strconv.FormatFloat(s.TargetProfitMarginPct, 'f', -1, 64),
		"troy_oz_to_grams":         strconv.FormatFloat(s.TroyOzToGrams, 'f', -1, 64),
		"price_cache_ttl_minutes":  strconv.Itoa(s.PriceCacheTTLMinutes),
	}
}
