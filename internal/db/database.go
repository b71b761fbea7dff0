package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jwinter110022/jewellery-pricing-app/config"
	appLogger "github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

const (
	maxIdleConns = 10
	maxOpenConns = 100
)

// DB is the shared gorm handle. Repositories receive it through GetDB at
// wire-up; only migrations and seeding touch it directly.
var DB *gorm.DB

// Initialize opens the Postgres connection pool. gorm's own logger is
// silenced; query failures surface through the repositories' structured logs.
func Initialize(cfg *config.DatabaseConfig) error {
	appLogger.Info("Connecting to Postgres", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
	})

	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)

	appLogger.Info("Database connection established", map[string]interface{}{
		"max_idle_conns": maxIdleConns,
		"max_open_conns": maxOpenConns,
	})
	return nil
}

// Close releases the underlying connection pool
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB hands the shared gorm handle to the repositories
func GetDB() *gorm.DB {
	return DB
}
