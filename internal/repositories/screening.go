package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resume-screener/internal/models"
)

type ScreeningRepository interface {
	Create(result *models.ScreeningResult) error
	FindByID(id uuid.UUID) (*models.ScreeningResult, error)
	FindAll() ([]models.ScreeningResult, error)
	UpdateSelection(id uuid.UUID, selected bool, reason *string) error
}

type screeningRepository struct {
	db *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) ScreeningRepository {
	return &screeningRepository{db: db}
}

func (r *screeningRepository) Create(result *models.ScreeningResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return fmt.Errorf("failed to create screening result: %w", err)
	}
	return nil
}

func (r *screeningRepository) FindByID(id uuid.UUID) (*models.ScreeningResult, error) {
	var result models.ScreeningResult
	if err := r.db.Where("id = ?", id).First(&result).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("screening result not found")
		}
		return nil, fmt.Errorf("failed to find screening result: %w", err)
	}
	return &result, nil
}

func (r *screeningRepository) FindAll() ([]models.ScreeningResult, error) {
	var results []models.ScreeningResult
	if err := r.db.Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list screening results: %w", err)
	}
	return results, nil
}

func (r *screeningRepository) UpdateSelection(id uuid.UUID, selected bool, reason *string) error {
	updates := map[string]interface{}{
		"manually_selected": selected,
		"updated_at":        time.Now(),
	}
	if reason != nil {
		updates["manual_reason"] = *reason
	}

	result := r.db.Model(&models.ScreeningResult{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update selection: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("screening result not found")
	}

	return nil
}
