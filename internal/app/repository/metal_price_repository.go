package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// MetalPriceRepository stores the cached spot price per symbol
type MetalPriceRepository interface {
	FindBySymbols(symbols []model.MetalSymbol) (map[model.MetalSymbol]model.MetalPrice, error)
	Upsert(price *model.MetalPrice) error
}

type metalPriceRepository struct {
	db *gorm.DB
}

// NewMetalPriceRepository creates the metal price repository
func NewMetalPriceRepository(db *gorm.DB) MetalPriceRepository {
	return &metalPriceRepository{db: db}
}

// FindBySymbols returns the cached record for each requested symbol that has one
func (r *metalPriceRepository) FindBySymbols(symbols []model.MetalSymbol) (map[model.MetalSymbol]model.MetalPrice, error) {
	var prices []model.MetalPrice
	if err := r.db.Where("symbol IN ?", symbols).Find(&prices).Error; err != nil {
		logger.Error("Failed to find metal prices", err)
		return nil, err
	}

	result := make(map[model.MetalSymbol]model.MetalPrice, len(prices))
	for _, price := range prices {
		result[price.Symbol] = price
	}
	return result, nil
}

// Upsert overwrites the cached record for the symbol, latest fetch wins
func (r *metalPriceRepository) Upsert(price *model.MetalPrice) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_gbp_per_oz", "fetched_at", "provider"}),
	}).Create(price).Error; err != nil {
		logger.Error("Failed to upsert metal price", err, map[string]interface{}{
			"symbol": price.Symbol,
		})
		return err
	}
	return nil
}
