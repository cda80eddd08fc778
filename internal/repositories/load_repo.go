package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loadrush/loadrush-backend/internal/models"
)

type LoadRepo interface {
	Create(load *models.Load) error
	GetByID(id string) (*models.Load, error)
	List(limit int) ([]models.Load, error)
	AllLoads() ([]models.Load, error)
	LoadsByStatus(statuses ...models.LoadStatus) ([]models.Load, error)
	UpdateStatus(id string, status models.LoadStatus) error
	UpdateAddresses(id, pickup, drop string) error
}

type loadRepo struct {
	db *gorm.DB
}

func NewLoadRepo(db *gorm.DB) LoadRepo {
	return &loadRepo{db: db}
}

func (r *loadRepo) Create(load *models.Load) error {
	return r.db.Create(load).Error
}

func (r *loadRepo) GetByID(id string) (*models.Load, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid load ID: %w", err)
	}

	var load models.Load
	if err := r.db.First(&load, "id = ?", uid).Error; err != nil {
		return nil, err
	}
	return &load, nil
}

func (r *loadRepo) List(limit int) ([]models.Load, error) {
	if limit < 1 {
		limit = 50
	}

	var loads []models.Load
	err := r.db.Order("created_at DESC").Limit(limit).Find(&loads).Error
	return loads, err
}

func (r *loadRepo) AllLoads() ([]models.Load, error) {
	var loads []models.Load
	err := r.db.Find(&loads).Error
	return loads, err
}

func (r *loadRepo) LoadsByStatus(statuses ...models.LoadStatus) ([]models.Load, error) {
	var loads []models.Load
	err := r.db.Where("status IN ?", statuses).Find(&loads).Error
	return loads, err
}

// UpdateStatus moves a load through its lifecycle and stamps the transition
// timestamps the analytics pipeline depends on (accepted_at on booking,
// completed_at on delivery).
func (r *loadRepo) UpdateStatus(id string, status models.LoadStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid load ID: %w", err)
	}

	updates := map[string]interface{}{"status": status}
	now := time.Now()
	switch status {
	case models.StatusBooked:
		updates["accepted_at"] = now
	case models.StatusDelivered:
		updates["completed_at"] = now
	}

	result := r.db.Model(&models.Load{}).Where("id = ?", uid).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *loadRepo) UpdateAddresses(id, pickup, drop string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid load ID: %w", err)
	}

	return r.db.Model(&models.Load{}).Where("id = ?", uid).Updates(map[string]interface{}{
		"pickup_address": pickup,
		"drop_address":   drop,
	}).Error
}
