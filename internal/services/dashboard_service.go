package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/loadrush/loadrush-backend/internal/core/analytics"
	"github.com/loadrush/loadrush-backend/internal/models"
	"github.com/loadrush/loadrush-backend/internal/repositories"
	"github.com/loadrush/loadrush-backend/internal/shared/utils"
	"github.com/loadrush/loadrush-backend/internal/store"
)

// DashboardService owns the three aggregators and the synthesized insight
// list. It refreshes on store change notifications AND on a fixed interval;
// both triggers funnel through a single-flight guard so overlapping refreshes
// collapse into one pass. The aggregators stay independent — no barrier — so
// a consumer can observe fresh trend data next to usage data that is one
// cycle stale, which is fine for a dashboard.
type DashboardService struct {
	revenue *analytics.RevenueAggregator
	trends  *analytics.TrendAggregator
	usage   *analytics.UsageAggregator

	loads analytics.LoadSource
	subs  analytics.SubscriptionSource
	snaps repositories.SnapshotRepo

	hub             *store.Hub
	refreshInterval time.Duration
	loc             *time.Location

	refreshing atomic.Bool

	insightMu sync.RWMutex
	insights  []analytics.Insight

	cron      *cron.Cron
	cancelSub func()
	quit      chan struct{}
	stopOnce  sync.Once
}

func NewDashboardService(
	loads analytics.LoadSource,
	subs analytics.SubscriptionSource,
	snaps repositories.SnapshotRepo,
	hub *store.Hub,
	commissionRate float64,
	refreshInterval time.Duration,
	loc *time.Location,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		revenue:         analytics.NewRevenueAggregator(loads, commissionRate),
		trends:          analytics.NewTrendAggregator(loads, subs, snaps),
		usage:           analytics.NewUsageAggregator(loads, loc),
		loads:           loads,
		subs:            subs,
		snaps:           snaps,
		hub:             hub,
		refreshInterval: refreshInterval,
		loc:             loc,
		quit:            make(chan struct{}),
	}
}

// Start subscribes to store changes, schedules the interval refresh and the
// daily KPI rollup, and runs the first refresh synchronously.
func (s *DashboardService) Start() error {
	ch, cancel := s.hub.Subscribe()
	s.cancelSub = cancel

	go func() {
		for {
			select {
			case <-s.quit:
				return
			case <-ch:
				s.RefreshAll()
			}
		}
	}()

	s.cron = cron.New(cron.WithSeconds())
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", int(s.refreshInterval.Seconds())), s.RefreshAll); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	// Rollup shortly after midnight so the snapshot lands on the new day.
	if _, err := s.cron.AddFunc("0 5 0 * * *", s.RollupSnapshot); err != nil {
		return fmt.Errorf("failed to schedule snapshot rollup: %w", err)
	}
	s.cron.Start()

	s.RefreshAll()
	return nil
}

// Stop tears down the subscription and the scheduler. Safe to call more than
// once; teardown runs exactly once.
func (s *DashboardService) Stop() {
	s.stopOnce.Do(func() {
		if s.cron != nil {
			s.cron.Stop()
		}
		if s.cancelSub != nil {
			s.cancelSub()
		}
		close(s.quit)
	})
}

// RefreshAll recomputes every aggregator and re-synthesizes insights. A
// refresh already in flight swallows concurrent triggers.
func (s *DashboardService) RefreshAll() {
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer s.refreshing.Store(false)

	// Each aggregator fails independently; a failed one keeps serving its
	// last-known-good output with the error attached.
	if err := s.revenue.Refresh(); err != nil {
		utils.LogError("revenue refresh failed", err, nil)
	}
	if err := s.trends.Refresh(); err != nil {
		utils.LogError("trend refresh failed", err, nil)
	}
	if err := s.usage.Refresh(); err != nil {
		utils.LogError("usage refresh failed", err, nil)
	}

	if fresh := analytics.Synthesize(s.trends.Report(), s.usage.Report(), s.revenue.Summary()); fresh != nil {
		s.insightMu.Lock()
		s.insights = fresh
		s.insightMu.Unlock()
	}
}

// RollupSnapshot persists today's headcount KPIs so next week's trends can
// compare against real history instead of synthesized numbers.
func (s *DashboardService) RollupSnapshot() {
	drivers, err := s.subs.CountActive(models.RoleDriver)
	if err != nil {
		utils.LogError("snapshot rollup: driver count failed", err, nil)
		return
	}
	shippers, err := s.subs.CountActive(models.RoleShipper)
	if err != nil {
		utils.LogError("snapshot rollup: shipper count failed", err, nil)
		return
	}
	active, err := s.loads.LoadsByStatus(models.ActiveStatuses...)
	if err != nil {
		utils.LogError("snapshot rollup: active loads failed", err, nil)
		return
	}

	now := time.Now().In(s.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	snap := &models.KPISnapshot{
		Day:          day,
		DriverCount:  int(drivers),
		ShipperCount: int(shippers),
		ActiveLoads:  len(active),
	}
	if err := s.snaps.Upsert(snap); err != nil {
		utils.LogError("snapshot rollup: upsert failed", err, nil)
		return
	}
	utils.LogInfo("KPI snapshot stored", map[string]interface{}{
		"day":     day.Format("2006-01-02"),
		"drivers": drivers,
	})
}

// Output accessors. Each returns the latest wholesale-replaced snapshot.

func (s *DashboardService) Revenue() analytics.RevenueSummary {
	return s.revenue.Summary()
}

func (s *DashboardService) Trends() analytics.TrendReport {
	return s.trends.Report()
}

func (s *DashboardService) Usage() analytics.UsageReport {
	return s.usage.Report()
}

func (s *DashboardService) Insights() []analytics.Insight {
	s.insightMu.RLock()
	defer s.insightMu.RUnlock()

	out := make([]analytics.Insight, len(s.insights))
	copy(out, s.insights)
	return out
}
