package model

import (
	"time"
)

// WorkshopTemplate stores reusable workshop inputs under a unique name
type WorkshopTemplate struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(200);not null;uniqueIndex" json:"name"`
	TemplateJSON string    `gorm:"type:text;not null" json:"template_json"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (WorkshopTemplate) TableName() string {
	return "workshop_templates"
}

// WorkshopQuote is a saved workshop pricing run
type WorkshopQuote struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TemplateName  string    `gorm:"type:varchar(200)" json:"template_name,omitempty"`
	InputsJSON    string    `gorm:"type:text;not null" json:"inputs_json"`
	BreakdownJSON string    `gorm:"type:text;not null" json:"breakdown_json"`
	FinalTotalGBP float64   `gorm:"not null" json:"final_total_gbp"`
	CreatedAt     time.Time `json:"created_at"`
}

func (WorkshopQuote) TableName() string {
	return "workshop_quotes"
}
