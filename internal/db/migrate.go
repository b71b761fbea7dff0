package db

import (
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// Migrate runs schema migrations for all models
func Migrate() error {
	logger.Info("Running database migrations")

	err := DB.AutoMigrate(
		&model.Setting{},
		&model.MetalPrice{},
		&model.Stone{},
		&model.CommissionQuote{},
		&model.QuoteStone{},
		&model.WorkshopTemplate{},
		&model.WorkshopQuote{},
		&model.CompletedProject{},
		&model.ProjectCostRow{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed")
	return nil
}
