package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loadrush/loadrush-backend/internal/models"
	"github.com/loadrush/loadrush-backend/internal/store"
)

func seededDashboard(t *testing.T) (*DashboardService, *store.MemoryStore) {
	t.Helper()

	mem := store.NewMemoryStore()
	hub := store.NewHub()

	now := time.Now()
	completed := now.AddDate(0, 0, -2)
	accepted := now.AddDate(0, 0, -3)

	require.NoError(t, mem.CreateLoad(&models.Load{
		Status:      models.StatusDelivered,
		Price:       2000,
		AcceptedAt:  &accepted,
		CompletedAt: &completed,
	}))
	require.NoError(t, mem.CreateLoad(&models.Load{
		Status: models.StatusAvailable,
		Price:  700,
	}))
	require.NoError(t, mem.CreateSubscription(&models.Subscription{
		UserID: "driver-1", Role: models.RoleDriver, Status: models.SubscriptionActive,
	}))
	require.NoError(t, mem.CreateSubscription(&models.Subscription{
		UserID: "shipper-1", Role: models.RoleShipper, Status: models.SubscriptionActive,
	}))

	svc := NewDashboardService(mem.Loads(), mem.Subscriptions(), mem.Snapshots(), hub, 0.05, time.Minute, time.UTC)
	return svc, mem
}

func TestDashboardService_RefreshAll(t *testing.T) {
	svc, _ := seededDashboard(t)
	svc.RefreshAll()

	revenue := svc.Revenue()
	assert.True(t, revenue.Loaded)
	assert.InDelta(t, 2000.0, revenue.TotalRevenue, 1e-9)
	assert.InDelta(t, 100.0, revenue.Commission, 1e-9)
	assert.Equal(t, 1, revenue.CompletedLoads)

	trends := svc.Trends()
	assert.True(t, trends.Loaded)
	assert.InDelta(t, 2000.0, trends.Revenue.CurrentValue, 1e-9)

	usage := svc.Usage()
	assert.True(t, usage.Loaded)
	assert.Equal(t, 1, usage.TotalDriverAccepts)
	assert.Equal(t, 2, usage.TotalShipperPosts)

	assert.NotEmpty(t, svc.Insights())
}

func TestDashboardService_RollupSnapshot(t *testing.T) {
	svc, mem := seededDashboard(t)
	svc.RollupSnapshot()

	snap, err := mem.Snapshots().LatestOnOrBefore(time.Now().Add(24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, snap.DriverCount)
	assert.Equal(t, 1, snap.ShipperCount)
	assert.Equal(t, 1, snap.ActiveLoads)
}

func TestDashboardService_StopIsIdempotent(t *testing.T) {
	svc, _ := seededDashboard(t)
	require.NoError(t, svc.Start())

	svc.Stop()
	svc.Stop() // second call must be a no-op
}
