package model

import (
	"time"
)

// QuoteType distinguishes a firm quote from an estimate with a variance band
type QuoteType string

const (
	QuoteTypeQuote    QuoteType = "quote"
	QuoteTypeEstimate QuoteType = "estimate"
)

// CommissionQuote is a saved commission pricing run: the inputs, the settings
// snapshot in force at the time, and the full breakdown, all flattened to JSON
// for later re-display.
type CommissionQuote struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	Reference     string       `gorm:"type:varchar(40);uniqueIndex" json:"reference"`
	CustomerName  string       `gorm:"type:varchar(200)" json:"customer_name"`
	QuoteType     QuoteType    `gorm:"type:varchar(20);not null;default:'quote'" json:"quote_type"`
	MetalSymbol   MetalSymbol  `gorm:"type:varchar(10);not null" json:"metal_symbol"`
	AlloyLabel    string       `gorm:"type:varchar(50)" json:"alloy_label"`
	WeightGrams   float64      `gorm:"not null" json:"weight_grams"`
	LabourHours   float64      `gorm:"not null" json:"labour_hours"`
	SettingsJSON  string       `gorm:"type:text;not null" json:"settings_json"`
	BreakdownJSON string       `gorm:"type:text;not null" json:"breakdown_json"`
	FinalPriceGBP float64      `gorm:"not null" json:"final_price_gbp"`
	Stones        []QuoteStone `gorm:"foreignKey:QuoteID" json:"stones,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (CommissionQuote) TableName() string {
	return "commission_quotes"
}

// QuoteStone is one stone line attached to a commission quote
type QuoteStone struct {
	ID               uint    `gorm:"primarykey" json:"id"`
	QuoteID          uint    `gorm:"not null;index" json:"quote_id"`
	StoneID          uint    `gorm:"not null" json:"stone_id"`
	Qty              int     `gorm:"not null" json:"qty"`
	AppliedMarkupPct float64 `gorm:"not null" json:"applied_markup_pct"`
	UnitCostGBP      float64 `gorm:"not null" json:"unit_cost_gbp"`
}

func (QuoteStone) TableName() string {
	return "quote_stones"
}
