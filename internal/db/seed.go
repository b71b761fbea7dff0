package db

import (
	"gorm.io/gorm/clause"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// Seed inserts the default settings rows on first run. Existing values are
// never overwritten.
func Seed() error {
	for key, value := range model.DefaultSettings {
		setting := model.Setting{Key: key, Value: value}
		if err := DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error; err != nil {
			logger.Error("Failed to seed setting", err, map[string]interface{}{"key": key})
			return err
		}
	}
	logger.Info("Seeded default settings")
	return nil
}
