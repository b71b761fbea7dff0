package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// SettingRepository is the key-value settings store
type SettingRepository interface {
	GetAll() (model.Settings, error)
	Save(settings model.Settings) error
	SeedDefaults() error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates the settings repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetAll loads every settings row and folds it into the typed view, with
// defaults for anything missing
func (r *settingRepository) GetAll() (model.Settings, error) {
	var rows []model.Setting
	if err := r.db.Find(&rows).Error; err != nil {
		logger.Error("Failed to load settings", err)
		return model.Settings{}, err
	}
	return model.SettingsFromRows(rows), nil
}

// Save upserts every settings key in one transaction
func (r *settingRepository) Save(settings model.Settings) error {
	rows := settings.ToRows()
	return r.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range rows {
			setting := model.Setting{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&setting).Error; err != nil {
				logger.Error("Failed to save setting", err, map[string]interface{}{"key": key})
				return err
			}
		}
		return nil
	})
}

// SeedDefaults inserts any missing default settings rows without touching
// existing values
func (r *settingRepository) SeedDefaults() error {
	for key, value := range model.DefaultSettings {
		setting := model.Setting{Key: key, Value: value}
		if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error; err != nil {
			logger.Error("Failed to seed default setting", err, map[string]interface{}{"key": key})
			return err
		}
	}
	return nil
}
