package analytics

import (
	"time"

	"github.com/loadrush/loadrush-backend/internal/models"
)

// TrendDirection classifies week-over-week movement of a KPI.
type TrendDirection string

const (
	DirectionUp      TrendDirection = "up"
	DirectionDown    TrendDirection = "down"
	DirectionNeutral TrendDirection = "neutral"
)

// TrendMetric is one KPI compared across the current and previous 7-day
// windows. PercentChange is always reported as an absolute value; Direction
// carries the sign.
type TrendMetric struct {
	Label             string         `json:"label"`
	CurrentValue      float64        `json:"current_value"`
	PreviousValue     float64        `json:"previous_value"`
	PercentChange     float64        `json:"percent_change"`
	Direction         TrendDirection `json:"direction"`
	FormattedCurrent  string         `json:"formatted_current"`
	FormattedPrevious string         `json:"formatted_previous"`
}

// TrendReport is the TrendAggregator output: five KPI trend metrics.
type TrendReport struct {
	Revenue        TrendMetric `json:"revenue"`
	ActiveLoads    TrendMetric `json:"active_loads"`
	DriverCount    TrendMetric `json:"driver_count"`
	ShipperCount   TrendMetric `json:"shipper_count"`
	CompletedLoads TrendMetric `json:"completed_loads"`

	Loaded    bool      `json:"loaded"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RevenueSummary is the RevenueAggregator output.
type RevenueSummary struct {
	TotalRevenue        float64 `json:"total_revenue"`
	Commission          float64 `json:"commission"`
	CompletedLoads      int     `json:"completed_loads"`
	FormattedRevenue    string  `json:"formatted_revenue"`
	FormattedCommission string  `json:"formatted_commission"`

	Loaded    bool      `json:"loaded"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UsageReport is the UsageAggregator output: hour-of-day activity histograms
// for both sides of the marketplace.
type UsageReport struct {
	DriverActivity  [24]int `json:"driver_activity"`
	ShipperActivity [24]int `json:"shipper_activity"`

	PeakDriverHour     int `json:"peak_driver_hour"`
	PeakShipperHour    int `json:"peak_shipper_hour"`
	TotalDriverAccepts int `json:"total_driver_accepts"`
	TotalShipperPosts  int `json:"total_shipper_posts"`

	// Abbreviation of the configured bucketing zone (e.g. "CST"), used in
	// insight copy.
	TimezoneLabel string `json:"timezone_label"`

	Loaded    bool      `json:"loaded"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InsightType ranks an insight. Sort priority: positive < warning < negative
// < neutral.
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightWarning  InsightType = "warning"
	InsightNegative InsightType = "negative"
	InsightNeutral  InsightType = "neutral"
)

// Insight is one ranked, human-readable dashboard statement.
type Insight struct {
	ID   string      `json:"id"`
	Text string      `json:"text"`
	Type InsightType `json:"type"`
	Icon string      `json:"icon"`
}

// Record sources consumed by the aggregators. The GORM repositories and the
// in-memory store both satisfy them.

type LoadSource interface {
	AllLoads() ([]models.Load, error)
	LoadsByStatus(statuses ...models.LoadStatus) ([]models.Load, error)
}

type SubscriptionSource interface {
	CountActive(role models.SubscriptionRole) (int64, error)
}

type SnapshotSource interface {
	LatestOnOrBefore(day time.Time) (*models.KPISnapshot, error)
}
