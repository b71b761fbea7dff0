package model

import (
	"time"
)

// CompletedProject records a finished commission against the quote it was
// priced from, so quoted and actual costs can be compared after the fact.
// The linked quote's breakdown is copied in at recording time; deleting the
// quote later does not lose the comparison.
type CompletedProject struct {
	ID                 uint             `gorm:"primarykey" json:"id"`
	ProjectName        string           `gorm:"type:varchar(200);not null" json:"project_name"`
	CustomerName       string           `gorm:"type:varchar(200)" json:"customer_name,omitempty"`
	QuoteID            *uint            `gorm:"index" json:"quote_id,omitempty"`
	QuoteSummary       string           `gorm:"type:varchar(300)" json:"quote_summary,omitempty"`
	QuoteBreakdownJSON string           `gorm:"type:text" json:"quote_breakdown_json,omitempty"`
	QuotedTotalGBP     float64          `gorm:"not null" json:"quoted_total_gbp"`
	ActualTotalGBP     float64          `gorm:"not null" json:"actual_total_gbp"`
	VarianceGBP        float64          `gorm:"not null" json:"variance_gbp"`
	VariancePct        *float64         `json:"variance_pct,omitempty"`
	Notes              string           `gorm:"type:text" json:"notes,omitempty"`
	CostRows           []ProjectCostRow `gorm:"foreignKey:ProjectID" json:"cost_rows,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

func (CompletedProject) TableName() string {
	return "completed_projects"
}

// ProjectCostRow is one quoted-versus-actual line on a completed project
type ProjectCostRow struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	ProjectID     uint    `gorm:"not null;index" json:"project_id"`
	Category      string  `gorm:"type:varchar(100);not null" json:"category"`
	QuotedCostGBP float64 `gorm:"not null" json:"quoted_cost_gbp"`
	ActualCostGBP float64 `gorm:"not null" json:"actual_cost_gbp"`
	VarianceGBP   float64 `gorm:"not null" json:"variance_gbp"`
}

func (ProjectCostRow) TableName() string {
	return "project_cost_rows"
}
