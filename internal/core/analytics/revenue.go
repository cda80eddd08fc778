package analytics

import (
	"fmt"
	"sync"
	"time"

	"github.com/loadrush/loadrush-backend/internal/models"
)

// RevenueAggregator sums delivered-load revenue and derives the platform
// commission.
type RevenueAggregator struct {
	loads          LoadSource
	commissionRate float64
	now            func() time.Time

	mu  sync.RWMutex
	out RevenueSummary
}

func NewRevenueAggregator(loads LoadSource, commissionRate float64) *RevenueAggregator {
	return &RevenueAggregator{
		loads:          loads,
		commissionRate: commissionRate,
		now:            time.Now,
	}
}

// Summary returns the latest output snapshot.
func (a *RevenueAggregator) Summary() RevenueSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.out
}

// Refresh recomputes the summary. On failure the previous values are
// retained and only the error string changes.
func (a *RevenueAggregator) Refresh() error {
	completed, err := a.loads.LoadsByStatus(models.StatusDelivered)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.out.Error = fmt.Sprintf("completed loads query failed: %v", err)
		return err
	}

	var total float64
	for i := range completed {
		total += completed[i].Amount()
	}
	commission := total * a.commissionRate

	a.out = RevenueSummary{
		TotalRevenue:        total,
		Commission:          commission,
		CompletedLoads:      len(completed),
		FormattedRevenue:    FormatCurrency(total),
		FormattedCommission: FormatCurrency(commission),
		Loaded:              true,
		UpdatedAt:           a.now(),
	}
	return nil
}
