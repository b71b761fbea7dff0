package repository

import (
	"gorm.io/gorm"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// QuoteRepository appends pricing runs and their input snapshots to history
type QuoteRepository interface {
	SaveCommissionQuote(quote *model.CommissionQuote, stones []model.QuoteStone) error
	ListCommissionQuotes(limit int) ([]model.CommissionQuote, error)
	FindCommissionQuoteByID(id uint) (*model.CommissionQuote, error)
	ClearCommissionQuotes() (int64, error)
}

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates the quote history repository
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

// SaveCommissionQuote stores the quote and its stone lines atomically
func (r *quoteRepository) SaveCommissionQuote(quote *model.CommissionQuote, stones []model.QuoteStone) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quote).Error; err != nil {
			logger.Error("Failed to save commission quote", err)
			return err
		}
		for i := range stones {
			stones[i].QuoteID = quote.ID
		}
		if len(stones) > 0 {
			if err := tx.Create(&stones).Error; err != nil {
				logger.Error("Failed to save quote stones", err)
				return err
			}
		}
		return nil
	})
}

// ListCommissionQuotes returns recent quotes, newest first
func (r *quoteRepository) ListCommissionQuotes(limit int) ([]model.CommissionQuote, error) {
	if limit <= 0 {
		limit = 100
	}
	var quotes []model.CommissionQuote
	if err := r.db.Preload("Stones").Order("id DESC").Limit(limit).Find(&quotes).Error; err != nil {
		logger.Error("Failed to list commission quotes", err)
		return nil, err
	}
	return quotes, nil
}

// ClearCommissionQuotes wipes the quote history, stone lines included, and
// returns how many quotes were removed
func (r *quoteRepository) ClearCommissionQuotes() (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.QuoteStone{}).Error; err != nil {
			logger.Error("Failed to clear quote stones", err)
			return err
		}
		result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.CommissionQuote{})
		if result.Error != nil {
			logger.Error("Failed to clear commission quotes", result.Error)
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

func (r *quoteRepository) FindCommissionQuoteByID(id uint) (*model.CommissionQuote, error) {
	var quote model.CommissionQuote
	if err := r.db.Preload("Stones").First(&quote, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.Error("Failed to find commission quote", err)
		return nil, err
	}
	return &quote, nil
}
