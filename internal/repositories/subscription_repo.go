package repositories

import (
	"gorm.io/gorm"

	"github.com/loadrush/loadrush-backend/internal/models"
)

type SubscriptionRepo interface {
	Create(sub *models.Subscription) error
	CountActive(role models.SubscriptionRole) (int64, error)
}

type subscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) SubscriptionRepo {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepo) CountActive(role models.SubscriptionRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("role = ? AND status = ?", role, models.SubscriptionActive).
		Count(&count).Error
	return count, err
}
