package model

import (
	"time"

	"gorm.io/gorm"
)

// Stone is one catalog entry: a stone type at a given size/grade from a supplier
type Stone struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	StoneType        string         `gorm:"type:varchar(100);not null" json:"stone_type"`
	SizeMMOrCarat    string         `gorm:"type:varchar(50);not null" json:"size_mm_or_carat"`
	Grade            string         `gorm:"type:varchar(50);not null" json:"grade"`
	Supplier         string         `gorm:"type:varchar(100);not null" json:"supplier"`
	CostGBP          float64        `gorm:"not null" json:"cost_gbp"`
	DefaultMarkupPct float64        `gorm:"not null" json:"default_markup_pct"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Stone) TableName() string {
	return "stones"
}

// Label renders the catalog entry for quote line display
func (s *Stone) Label() string {
	return s.StoneType + " " + s.SizeMMOrCarat + " (" + s.Grade + ", " + s.Supplier + ")"
}
