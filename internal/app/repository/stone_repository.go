package repository

import (
	"gorm.io/gorm"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// StoneRepository is the stone catalog store
type StoneRepository interface {
	Create(stone *model.Stone) error
	FindAll() ([]model.Stone, error)
	FindByID(id uint) (*model.Stone, error)
	FindByIDs(ids []uint) (map[uint]model.Stone, error)
	Update(stone *model.Stone) error
	Delete(id uint) error
}

type stoneRepository struct {
	db *gorm.DB
}

// NewStoneRepository creates the stone catalog repository
func NewStoneRepository(db *gorm.DB) StoneRepository {
	return &stoneRepository{db: db}
}

func (r *stoneRepository) Create(stone *model.Stone) error {
	if err := r.db.Create(stone).Error; err != nil {
		logger.Error("Failed to create stone", err)
		return err
	}
	return nil
}

// FindAll lists the catalog ordered the way the quote form shows it
func (r *stoneRepository) FindAll() ([]model.Stone, error) {
	var stones []model.Stone
	if err := r.db.Order("stone_type, size_mm_or_carat, supplier").Find(&stones).Error; err != nil {
		logger.Error("Failed to find stones", err)
		return nil, err
	}
	return stones, nil
}

func (r *stoneRepository) FindByID(id uint) (*model.Stone, error) {
	var stone model.Stone
	if err := r.db.First(&stone, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.Error("Failed to find stone by ID", err)
		return nil, err
	}
	return &stone, nil
}

func (r *stoneRepository) FindByIDs(ids []uint) (map[uint]model.Stone, error) {
	var stones []model.Stone
	if err := r.db.Where("id IN ?", ids).Find(&stones).Error; err != nil {
		logger.Error("Failed to find stones by IDs", err)
		return nil, err
	}
	result := make(map[uint]model.Stone, len(stones))
	for _, stone := range stones {
		result[stone.ID] = stone
	}
	return result, nil
}

func (r *stoneRepository) Update(stone *model.Stone) error {
	if err := r.db.Save(stone).Error; err != nil {
		logger.Error("Failed to update stone", err)
		return err
	}
	return nil
}

func (r *stoneRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Stone{}, id).Error; err != nil {
		logger.Error("Failed to delete stone", err)
		return err
	}
	return nil
}
