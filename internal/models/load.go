package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoadStatus is the canonical lifecycle label for a load. Raw records arrive
// with several historical spellings; NormalizeLoadStatus maps them all onto
// this enum at the store boundary so aggregation code never branches on raw
// strings.
type LoadStatus string

const (
	StatusAvailable LoadStatus = "available"
	StatusBooked    LoadStatus = "booked"
	StatusInTransit LoadStatus = "in_transit"
	StatusDelivered LoadStatus = "delivered"
	StatusCancelled LoadStatus = "cancelled"
)

// ActiveStatuses are the lifecycle states counted as "active loads" by the
// trend dashboard.
var ActiveStatuses = []LoadStatus{StatusAvailable, StatusBooked, StatusInTransit}

// NormalizeLoadStatus maps a raw status label onto the canonical enum. The
// second return is false for labels that cannot be classified.
func NormalizeLoadStatus(raw string) (LoadStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "available", "posted", "active", "open":
		return StatusAvailable, true
	case "booked", "matched", "assigned":
		return StatusBooked, true
	case "in_transit", "in-transit", "pickup", "picked_up", "transit":
		return StatusInTransit, true
	case "delivered", "completed", "complete":
		return StatusDelivered, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	default:
		return "", false
	}
}

// Load represents a shipment posted on the marketplace.
type Load struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShipperID string    `gorm:"type:text;index" json:"shipper_id"`
	DriverID  string    `gorm:"type:text;index" json:"driver_id,omitempty"`

	// Route
	Origin        string  `gorm:"type:text;not null" json:"origin"`
	Destination   string  `gorm:"type:text;not null" json:"destination"`
	PickupAddress string  `gorm:"type:text" json:"pickup_address,omitempty"`
	DropAddress   string  `gorm:"type:text" json:"drop_address,omitempty"`
	Weight        float64 `gorm:"type:decimal(10,2)" json:"weight"` // tons

	// Pricing. Older records carry the amount in rate instead of price;
	// Amount() is the only place that fallback lives.
	Price float64 `gorm:"type:decimal(12,2);default:0" json:"price"`
	Rate  float64 `gorm:"type:decimal(12,2);default:0" json:"rate"`

	Status LoadStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`

	// Lifecycle timestamps. CreatedAt doubles as the shipper-activity proxy,
	// AcceptedAt as the driver-activity proxy, CompletedAt for revenue
	// windowing.
	PickupDate  *time.Time `json:"pickup_date,omitempty"`
	AcceptedAt  *time.Time `gorm:"index" json:"accepted_at,omitempty"`
	CompletedAt *time.Time `gorm:"index" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Load) TableName() string {
	return "loads"
}

func (l *Load) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Amount returns the monetary value of the load, falling back to rate when
// price is absent.
func (l *Load) Amount() float64 {
	if l.Price > 0 {
		return l.Price
	}
	return l.Rate
}

// HasAddresses reports whether both endpoint addresses look fully filled in.
// The backfill tool treats anything shorter than 20 characters as a stub.
func (l *Load) HasAddresses() bool {
	return len(l.PickupAddress) >= 20 && len(l.DropAddress) >= 20
}
