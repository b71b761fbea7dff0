package model

import (
	"time"
)

// MetalSymbol identifies a precious metal on the spot market
type MetalSymbol string

const (
	Gold      MetalSymbol = "XAU" // gold
	Silver    MetalSymbol = "XAG" // silver
	Platinum  MetalSymbol = "XPT" // platinum
	Palladium MetalSymbol = "XPD" // palladium
)

// AllMetalSymbols lists every symbol the price cache tracks
var AllMetalSymbols = []MetalSymbol{Gold, Silver, Platinum, Palladium}

// IsValidMetalSymbol reports whether s is one of the supported tickers
func IsValidMetalSymbol(s MetalSymbol) bool {
	switch s {
	case Gold, Silver, Platinum, Palladium:
		return true
	}
	return false
}

// MetalPrice is the cached spot price for one symbol. One row per symbol,
// latest fetch wins.
type MetalPrice struct {
	Symbol        MetalSymbol `gorm:"type:varchar(10);primarykey" json:"symbol"`
	PriceGBPPerOz float64     `gorm:"not null" json:"price_gbp_per_oz"`
	FetchedAt     time.Time   `gorm:"not null" json:"fetched_at"` // UTC
	Provider      string      `gorm:"type:varchar(50);not null" json:"provider"`
}

func (MetalPrice) TableName() string {
	return "metal_prices"
}

// IsFresh reports whether the record is younger than the TTL at the given instant
func (p *MetalPrice) IsFresh(now time.Time, ttlMinutes int) bool {
	return now.Sub(p.FetchedAt) <= time.Duration(ttlMinutes)*time.Minute
}
