package pricing

// Estimate is a symmetric variance band around a final price
type Estimate struct {
	EstimateMinGBP      float64 `json:"estimate_min_gbp"`
	EstimateMaxGBP      float64 `json:"estimate_max_gbp"`
	EstimateVariancePct float64 `json:"estimate_variance_pct"`
}

// EstimateRange applies a symmetric variance band around finalPrice. The low
// bound is floored at zero so a variance over 100% cannot produce a negative
// estimate.
func EstimateRange(finalPrice, variancePct float64) Estimate {
	delta := finalPrice * variancePct / 100
	low := finalPrice - delta
	if low < 0 {
		low = 0
	}
	return Estimate{
		EstimateMinGBP:      RoundMoney(low),
		EstimateMaxGBP:      RoundMoney(finalPrice + delta),
		EstimateVariancePct: RoundPct(variancePct),
	}
}
