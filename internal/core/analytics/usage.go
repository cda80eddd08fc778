package analytics

import (
	"fmt"
	"sync"
	"time"

	"github.com/loadrush/loadrush-backend/internal/shared/utils"
)

// UsageAggregator buckets marketplace activity into 24 hourly buckets:
// created_at counts as shipper activity (a posted load), accepted_at as
// driver activity. Bucketing always happens in one fixed configured zone,
// never the host's local zone.
type UsageAggregator struct {
	loads LoadSource
	loc   *time.Location
	now   func() time.Time

	mu  sync.RWMutex
	out UsageReport
}

func NewUsageAggregator(loads LoadSource, loc *time.Location) *UsageAggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &UsageAggregator{
		loads: loads,
		loc:   loc,
		now:   time.Now,
	}
}

// Report returns the latest output snapshot.
func (a *UsageAggregator) Report() UsageReport {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.out
}

// Refresh recomputes the histograms. A record with a missing created_at is
// skipped with a warning and never fails the whole pass.
func (a *UsageAggregator) Refresh() error {
	loads, err := a.loads.AllLoads()

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.out.Error = fmt.Sprintf("loads query failed: %v", err)
		return err
	}

	report := UsageReport{
		TimezoneLabel: a.now().In(a.loc).Format("MST"),
	}

	for i := range loads {
		load := &loads[i]

		if load.CreatedAt.IsZero() {
			utils.LogWarn("skipping load with missing created_at", map[string]interface{}{
				"load_id": load.ID.String(),
			})
		} else {
			hour := load.CreatedAt.In(a.loc).Hour()
			report.ShipperActivity[hour]++
			report.TotalShipperPosts++
		}

		if load.AcceptedAt != nil && !load.AcceptedAt.IsZero() {
			hour := load.AcceptedAt.In(a.loc).Hour()
			report.DriverActivity[hour]++
			report.TotalDriverAccepts++
		}
	}

	report.PeakShipperHour = argmax(report.ShipperActivity)
	report.PeakDriverHour = argmax(report.DriverActivity)
	report.Loaded = true
	report.UpdatedAt = a.now()

	a.out = report
	return nil
}

func argmax(buckets [24]int) int {
	peak := 0
	for hour := 1; hour < 24; hour++ {
		if buckets[hour] > buckets[peak] {
			peak = hour
		}
	}
	return peak
}
