package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// WorkshopRepository stores workshop quotes and reusable templates
type WorkshopRepository interface {
	SaveQuote(quote *model.WorkshopQuote) error
	ListQuotes(limit int) ([]model.WorkshopQuote, error)
	UpsertTemplate(template *model.WorkshopTemplate) error
	ListTemplates() ([]model.WorkshopTemplate, error)
	DeleteTemplate(id uint) error
}

type workshopRepository struct {
	db *gorm.DB
}

// NewWorkshopRepository creates the workshop repository
func NewWorkshopRepository(db *gorm.DB) WorkshopRepository {
	return &workshopRepository{db: db}
}

func (r *workshopRepository) SaveQuote(quote *model.WorkshopQuote) error {
	if err := r.db.Create(quote).Error; err != nil {
		logger.Error("Failed to save workshop quote", err)
		return err
	}
	return nil
}

func (r *workshopRepository) ListQuotes(limit int) ([]model.WorkshopQuote, error) {
	if limit <= 0 {
		limit = 100
	}
	var quotes []model.WorkshopQuote
	if err := r.db.Order("id DESC").Limit(limit).Find(&quotes).Error; err != nil {
		logger.Error("Failed to list workshop quotes", err)
		return nil, err
	}
	return quotes, nil
}

// UpsertTemplate saves the template, replacing any existing one with the same name
func (r *workshopRepository) UpsertTemplate(template *model.WorkshopTemplate) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"template_json", "updated_at"}),
	}).Create(template).Error; err != nil {
		logger.Error("Failed to upsert workshop template", err, map[string]interface{}{
			"name": template.Name,
		})
		return err
	}
	return nil
}

func (r *workshopRepository) ListTemplates() ([]model.WorkshopTemplate, error) {
	var templates []model.WorkshopTemplate
	if err := r.db.Order("name").Find(&templates).Error; err != nil {
		logger.Error("Failed to list workshop templates", err)
		return nil, err
	}
	return templates, nil
}

func (r *workshopRepository) DeleteTemplate(id uint) error {
	result := r.db.Delete(&model.WorkshopTemplate{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete workshop template", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
