package repository

import (
	"gorm.io/gorm"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// ProjectRepository stores completed projects and their cost rows
type ProjectRepository interface {
	SaveProject(project *model.CompletedProject, rows []model.ProjectCostRow) error
	ListProjects(limit int) ([]model.CompletedProject, error)
	FindProjectByID(id uint) (*model.CompletedProject, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates the completed project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// SaveProject stores the project and its cost rows atomically
func (r *projectRepository) SaveProject(project *model.CompletedProject, rows []model.ProjectCostRow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			logger.Error("Failed to save completed project", err)
			return err
		}
		for i := range rows {
			rows[i].ProjectID = project.ID
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				logger.Error("Failed to save project cost rows", err)
				return err
			}
		}
		return nil
	})
}

// ListProjects returns recent completed projects, newest first
func (r *projectRepository) ListProjects(limit int) ([]model.CompletedProject, error) {
	if limit <= 0 {
		limit = 100
	}
	var projects []model.CompletedProject
	if err := r.db.Preload("CostRows").Order("id DESC").Limit(limit).Find(&projects).Error; err != nil {
		logger.Error("Failed to list completed projects", err)
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) FindProjectByID(id uint) (*model.CompletedProject, error) {
	var project model.CompletedProject
	if err := r.db.Preload("CostRows").First(&project, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.Error("Failed to find completed project", err)
		return nil, err
	}
	return &project, nil
}
