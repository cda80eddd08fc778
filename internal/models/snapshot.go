package models

import "time"

// KPISnapshot is a daily rollup of the headcount KPIs. Week-over-week trends
// read the previous window from these rows instead of guessing; the random
// scaling fallback only applies when no snapshot history exists yet.
type KPISnapshot struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	Day          time.Time `gorm:"type:date;uniqueIndex;not null" json:"day"`
	DriverCount  int       `gorm:"not null;default:0" json:"driver_count"`
	ShipperCount int       `gorm:"not null;default:0" json:"shipper_count"`
	ActiveLoads  int       `gorm:"not null;default:0" json:"active_loads"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KPISnapshot) TableName() string {
	return "kpi_snapshots"
}
