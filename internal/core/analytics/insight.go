package analytics

import (
	"fmt"
	"sort"
)

// maxInsights caps the dashboard list. Lower-priority insights that still
// qualified are dropped once five higher-priority ones exist; that is policy,
// not an accident.
const maxInsights = 5

var insightPriority = map[InsightType]int{
	InsightPositive: 0,
	InsightWarning:  1,
	InsightNegative: 2,
	InsightNeutral:  3,
}

// Synthesize turns the three aggregator outputs into a ranked, capped list of
// dashboard insights. It is a pure function: same inputs, same list. It
// returns nil until all three inputs have loaded at least once, so a stuck
// aggregator keeps the previous insight list on screen instead of producing a
// broken partial one.
func Synthesize(trend TrendReport, usage UsageReport, revenue RevenueSummary) []Insight {
	if !trend.Loaded || !usage.Loaded || !revenue.Loaded {
		return nil
	}

	var insights []Insight
	add := func(id, text string, typ InsightType, icon string) {
		insights = append(insights, Insight{ID: id, Text: text, Type: typ, Icon: icon})
	}

	// Revenue: growth, decline, or stable. One of the three at most.
	switch {
	case trend.Revenue.Direction == DirectionUp && trend.Revenue.PercentChange > 5:
		add("revenue-growth",
			fmt.Sprintf("Revenue is up %.1f%% week over week, reaching %s.",
				trend.Revenue.PercentChange, trend.Revenue.FormattedCurrent),
			InsightPositive, "📈")
	case trend.Revenue.Direction == DirectionDown && trend.Revenue.PercentChange > 5:
		add("revenue-decline",
			fmt.Sprintf("Revenue dropped %.1f%% compared to last week (now %s).",
				trend.Revenue.PercentChange, trend.Revenue.FormattedCurrent),
			InsightWarning, "📉")
	case revenue.TotalRevenue > 0:
		add("revenue-stable",
			fmt.Sprintf("Revenue is holding steady at %s.", revenue.FormattedRevenue),
			InsightNeutral, "💵")
	}

	// Driver headcount.
	if trend.DriverCount.Direction == DirectionUp && trend.DriverCount.PercentChange > 3 {
		add("driver-growth",
			fmt.Sprintf("Driver base grew %.1f%% this week to %s active drivers.",
				trend.DriverCount.PercentChange, trend.DriverCount.FormattedCurrent),
			InsightPositive, "🚛")
	} else if trend.DriverCount.Direction == DirectionDown && trend.DriverCount.PercentChange > 5 {
		add("driver-decline",
			fmt.Sprintf("Active drivers fell %.1f%% week over week.",
				trend.DriverCount.PercentChange),
			InsightNegative, "🔻")
	}

	// Shipper headcount.
	if trend.ShipperCount.Direction == DirectionUp && trend.ShipperCount.PercentChange > 3 {
		add("shipper-growth",
			fmt.Sprintf("Shipper base grew %.1f%% this week to %s active shippers.",
				trend.ShipperCount.PercentChange, trend.ShipperCount.FormattedCurrent),
			InsightPositive, "📦")
	} else if trend.ShipperCount.Direction == DirectionDown && trend.ShipperCount.PercentChange > 5 {
		add("shipper-decline",
			fmt.Sprintf("Active shippers fell %.1f%% week over week.",
				trend.ShipperCount.PercentChange),
			InsightWarning, "⚠️")
	}

	// Activity timing. The mismatch insight only makes sense alongside the
	// peak-time one, so it stays nested.
	if usage.TotalDriverAccepts > 0 {
		add("driver-peak",
			fmt.Sprintf("Drivers are most active around %02d:00 %s.",
				usage.PeakDriverHour, usage.TimezoneLabel),
			InsightNeutral, "⏰")

		if diff := usage.PeakShipperHour - usage.PeakDriverHour; diff > 3 || diff < -3 {
			add("timing-mismatch",
				fmt.Sprintf("Shippers post around %02d:00 %s but drivers accept around %02d:00 %s — loads may sit unclaimed for hours.",
					usage.PeakShipperHour, usage.TimezoneLabel,
					usage.PeakDriverHour, usage.TimezoneLabel),
				InsightWarning, "🕑")
		}
	}

	// Completions.
	if trend.CompletedLoads.Direction == DirectionUp && trend.CompletedLoads.PercentChange > 10 {
		add("completion-surge",
			fmt.Sprintf("Completed deliveries jumped %.1f%% week over week.",
				trend.CompletedLoads.PercentChange),
			InsightPositive, "✅")
	} else if trend.CompletedLoads.Direction == DirectionDown && trend.CompletedLoads.PercentChange > 10 {
		add("completion-drop",
			fmt.Sprintf("Completed deliveries fell %.1f%% compared to last week.",
				trend.CompletedLoads.PercentChange),
			InsightNegative, "🛑")
	}

	// Supply/demand imbalance.
	if trend.ActiveLoads.CurrentValue > 50 && trend.DriverCount.CurrentValue < 20 {
		add("supply-demand",
			fmt.Sprintf("%s active loads but only %s drivers — capacity is tight.",
				trend.ActiveLoads.FormattedCurrent, trend.DriverCount.FormattedCurrent),
			InsightWarning, "🚨")
	}

	// Platform earnings.
	if revenue.Commission > 0 {
		add("platform-earnings",
			fmt.Sprintf("LoadRush earned %s in commission from %d delivered loads.",
				revenue.FormattedCommission, revenue.CompletedLoads),
			InsightNeutral, "💰")
	}

	// Stable sort keeps rule-evaluation order within each type.
	sort.SliceStable(insights, func(i, j int) bool {
		return insightPriority[insights[i].Type] < insightPriority[insights[j].Type]
	})

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}
