package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/loadrush/loadrush-backend/internal/core/llm"
)

// SummaryService renders the current dashboard numbers into a short
// plain-language narrative for admins.
type SummaryService struct {
	dashboard *DashboardService
	provider  llm.Provider
	timeout   time.Duration
}

func NewSummaryService(dashboard *DashboardService, provider llm.Provider) *SummaryService {
	return &SummaryService{
		dashboard: dashboard,
		provider:  provider,
		timeout:   30 * time.Second,
	}
}

func (s *SummaryService) Narrative(ctx context.Context) (string, error) {
	revenue := s.dashboard.Revenue()
	trends := s.dashboard.Trends()
	usage := s.dashboard.Usage()

	if !revenue.Loaded || !trends.Loaded || !usage.Loaded {
		return "", fmt.Errorf("analytics are still warming up")
	}

	lines := []string{
		fmt.Sprintf("Revenue: %s (%s %.1f%% vs last week), commission %s",
			revenue.FormattedRevenue, trends.Revenue.Direction, trends.Revenue.PercentChange, revenue.FormattedCommission),
		fmt.Sprintf("Active loads: %s (%s %.1f%%)",
			trends.ActiveLoads.FormattedCurrent, trends.ActiveLoads.Direction, trends.ActiveLoads.PercentChange),
		fmt.Sprintf("Drivers: %s (%s %.1f%%), Shippers: %s (%s %.1f%%)",
			trends.DriverCount.FormattedCurrent, trends.DriverCount.Direction, trends.DriverCount.PercentChange,
			trends.ShipperCount.FormattedCurrent, trends.ShipperCount.Direction, trends.ShipperCount.PercentChange),
		fmt.Sprintf("Completed loads: %s (%s %.1f%%)",
			trends.CompletedLoads.FormattedCurrent, trends.CompletedLoads.Direction, trends.CompletedLoads.PercentChange),
		fmt.Sprintf("Peak driver hour: %02d:00 %s, peak shipper hour: %02d:00 %s",
			usage.PeakDriverHour, usage.TimezoneLabel, usage.PeakShipperHour, usage.TimezoneLabel),
	}

	system, user := llm.BuildSummaryPrompt(lines)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	narrative, err := s.provider.GenerateResponse(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return strings.TrimSpace(narrative), nil
}
