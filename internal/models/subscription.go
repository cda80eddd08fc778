package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRole string

const (
	RoleDriver  SubscriptionRole = "driver"
	RoleShipper SubscriptionRole = "shipper"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
)

// Subscription is a platform membership record. The dashboard only uses it as
// an active-headcount proxy per role.
type Subscription struct {
	ID     uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID string             `gorm:"type:text;not null;index" json:"user_id"`
	Role   SubscriptionRole   `gorm:"type:varchar(20);not null;index" json:"role"`
	Status SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
