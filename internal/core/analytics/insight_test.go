package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neutralMetric(current float64) TrendMetric {
	return TrendMetric{
		CurrentValue:     current,
		PreviousValue:    current,
		Direction:        DirectionNeutral,
		FormattedCurrent: FormatCount(current),
	}
}

func movedMetric(dir TrendDirection, pct, current float64) TrendMetric {
	return TrendMetric{
		CurrentValue:     current,
		PercentChange:    pct,
		Direction:        dir,
		FormattedCurrent: FormatCount(current),
	}
}

func loadedTrend() TrendReport {
	return TrendReport{
		Revenue:        neutralMetric(1000),
		ActiveLoads:    neutralMetric(10),
		DriverCount:    neutralMetric(30),
		ShipperCount:   neutralMetric(15),
		CompletedLoads: neutralMetric(8),
		Loaded:         true,
	}
}

func loadedUsage() UsageReport {
	return UsageReport{Loaded: true}
}

func loadedRevenue() RevenueSummary {
	return RevenueSummary{Loaded: true}
}

func insightIDs(insights []Insight) []string {
	ids := make([]string, len(insights))
	for i, in := range insights {
		ids[i] = in.ID
	}
	return ids
}

func findInsight(t *testing.T, insights []Insight, id string) Insight {
	t.Helper()
	for _, in := range insights {
		if in.ID == id {
			return in
		}
	}
	t.Fatalf("insight %q not found in %v", id, insightIDs(insights))
	return Insight{}
}

func TestSynthesize_NilUntilAllLoaded(t *testing.T) {
	assert.Nil(t, Synthesize(TrendReport{}, loadedUsage(), loadedRevenue()))
	assert.Nil(t, Synthesize(loadedTrend(), UsageReport{}, loadedRevenue()))
	assert.Nil(t, Synthesize(loadedTrend(), loadedUsage(), RevenueSummary{}))
}

func TestSynthesize_RevenueRules(t *testing.T) {
	t.Run("growth", func(t *testing.T) {
		trend := loadedTrend()
		trend.Revenue = movedMetric(DirectionUp, 12, 5600)

		insights := Synthesize(trend, loadedUsage(), loadedRevenue())
		got := findInsight(t, insights, "revenue-growth")
		assert.Equal(t, InsightPositive, got.Type)
		assert.Contains(t, got.Text, "12.0%")
	})

	t.Run("decline", func(t *testing.T) {
		trend := loadedTrend()
		trend.Revenue = movedMetric(DirectionDown, 8, 4200)

		insights := Synthesize(trend, loadedUsage(), loadedRevenue())
		got := findInsight(t, insights, "revenue-decline")
		assert.Equal(t, InsightWarning, got.Type)
	})

	t.Run("stable", func(t *testing.T) {
		revenue := loadedRevenue()
		revenue.TotalRevenue = 5000
		revenue.FormattedRevenue = FormatCurrency(5000)

		insights := Synthesize(loadedTrend(), loadedUsage(), revenue)
		got := findInsight(t, insights, "revenue-stable")
		assert.Equal(t, InsightNeutral, got.Type)
		assert.Contains(t, got.Text, "$5,000.00")
	})

	t.Run("small movement is not growth", func(t *testing.T) {
		trend := loadedTrend()
		trend.Revenue = movedMetric(DirectionUp, 4, 5000)

		insights := Synthesize(trend, loadedUsage(), loadedRevenue())
		assert.NotContains(t, insightIDs(insights), "revenue-growth")
	})
}

func TestSynthesize_DriverGrowth(t *testing.T) {
	trend := loadedTrend()
	trend.DriverCount = movedMetric(DirectionUp, 10, 33)

	insights := Synthesize(trend, loadedUsage(), loadedRevenue())
	got := findInsight(t, insights, "driver-growth")
	assert.Equal(t, InsightPositive, got.Type)
	assert.Contains(t, got.Text, "33")
}

func TestSynthesize_TimingMismatchNeedsDriverActivity(t *testing.T) {
	t.Run("no accepts, no peak insights", func(t *testing.T) {
		usage := loadedUsage()
		usage.PeakShipperHour = 14
		usage.PeakDriverHour = 9

		insights := Synthesize(loadedTrend(), usage, loadedRevenue())
		assert.NotContains(t, insightIDs(insights), "driver-peak")
		assert.NotContains(t, insightIDs(insights), "timing-mismatch")
	})

	t.Run("wide gap surfaces the mismatch", func(t *testing.T) {
		usage := loadedUsage()
		usage.TotalDriverAccepts = 5
		usage.PeakShipperHour = 14
		usage.PeakDriverHour = 9

		insights := Synthesize(loadedTrend(), usage, loadedRevenue())
		findInsight(t, insights, "driver-peak")
		got := findInsight(t, insights, "timing-mismatch")
		assert.Equal(t, InsightWarning, got.Type)
	})

	t.Run("narrow gap stays quiet", func(t *testing.T) {
		usage := loadedUsage()
		usage.TotalDriverAccepts = 5
		usage.PeakShipperHour = 11
		usage.PeakDriverHour = 9

		insights := Synthesize(loadedTrend(), usage, loadedRevenue())
		findInsight(t, insights, "driver-peak")
		assert.NotContains(t, insightIDs(insights), "timing-mismatch")
	})
}

func TestSynthesize_SupplyDemandImbalance(t *testing.T) {
	trend := loadedTrend()
	trend.ActiveLoads = neutralMetric(60)
	trend.DriverCount = neutralMetric(12)

	insights := Synthesize(trend, loadedUsage(), loadedRevenue())
	got := findInsight(t, insights, "supply-demand")
	assert.Equal(t, InsightWarning, got.Type)
}

func TestSynthesize_PriorityOrderAndCap(t *testing.T) {
	trend := loadedTrend()
	trend.Revenue = movedMetric(DirectionUp, 12, 8000)
	trend.DriverCount = movedMetric(DirectionUp, 10, 10)
	trend.ShipperCount = movedMetric(DirectionUp, 8, 20)
	trend.CompletedLoads = movedMetric(DirectionUp, 20, 12)
	trend.ActiveLoads = neutralMetric(60) // with 10 drivers: supply-demand fires

	usage := loadedUsage()
	usage.TotalDriverAccepts = 5
	usage.PeakShipperHour = 14
	usage.PeakDriverHour = 9

	revenue := loadedRevenue()
	revenue.Commission = 400
	revenue.FormattedCommission = FormatCurrency(400)

	insights := Synthesize(trend, usage, revenue)
	require.Len(t, insights, 5)

	// Positives first, in rule-evaluation order, then the first warning.
	assert.Equal(t, []string{
		"revenue-growth",
		"driver-growth",
		"shipper-growth",
		"completion-surge",
		"timing-mismatch",
	}, insightIDs(insights))
}
