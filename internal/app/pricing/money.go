package pricing

import (
	"github.com/shopspring/decimal"
)

// RoundMoney rounds a GBP amount to 2 decimal places. Rounding happens only at
// output boundaries; intermediate stages keep full float precision.
func RoundMoney(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}

// RoundPct rounds an echoed percentage to 2 decimal places
func RoundPct(value float64) float64 {
	return RoundMoney(value)
}
