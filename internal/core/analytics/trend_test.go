package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/loadrush/loadrush-backend/internal/models"
)

// Test doubles shared by the aggregator tests.

type fakeLoads struct {
	loads []models.Load
	err   error
}

func (f *fakeLoads) AllLoads() ([]models.Load, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.loads, nil
}

func (f *fakeLoads) LoadsByStatus(statuses ...models.LoadStatus) ([]models.Load, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Load
	for _, load := range f.loads {
		for _, s := range statuses {
			if load.Status == s {
				out = append(out, load)
				break
			}
		}
	}
	return out, nil
}

type fakeSubs struct {
	drivers  int64
	shippers int64
	err      error
}

func (f *fakeSubs) CountActive(role models.SubscriptionRole) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if role == models.RoleDriver {
		return f.drivers, nil
	}
	return f.shippers, nil
}

type fakeSnaps struct {
	snap *models.KPISnapshot
}

func (f *fakeSnaps) LatestOnOrBefore(day time.Time) (*models.KPISnapshot, error) {
	if f.snap == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.snap, nil
}

func TestCalculateTrend(t *testing.T) {
	cases := []struct {
		name      string
		current   float64
		previous  float64
		wantPct   float64
		wantDir   TrendDirection
	}{
		{"both zero", 0, 0, 0, DirectionNeutral},
		{"growth from nothing", 10, 0, 100, DirectionUp},
		{"no change", 100, 100, 0, DirectionNeutral},
		{"ten percent up", 110, 100, 10, DirectionUp},
		{"ten percent down", 90, 100, 10, DirectionDown},
		{"inside neutral band", 100.4, 100, 0.4, DirectionNeutral},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateTrend(tc.current, tc.previous)
			assert.InDelta(t, tc.wantPct, got.PercentChange, 1e-9)
			assert.Equal(t, tc.wantDir, got.Direction)
		})
	}
}

func TestTrendAggregator_Refresh(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	inWindow := now.AddDate(0, 0, -2)
	lastWeek := now.AddDate(0, 0, -11)

	loads := &fakeLoads{loads: []models.Load{
		{Status: models.StatusDelivered, Price: 1000, CompletedAt: &inWindow},
		{Status: models.StatusDelivered, Rate: 500, CompletedAt: &lastWeek},
		{Status: models.StatusDelivered, Price: 250}, // never windowed without completed_at
		{Status: models.StatusAvailable},
		{Status: models.StatusBooked},
		{Status: models.StatusInTransit},
	}}
	subs := &fakeSubs{drivers: 22, shippers: 10}
	snaps := &fakeSnaps{snap: &models.KPISnapshot{
		Day:          now.AddDate(0, 0, -8),
		DriverCount:  20,
		ShipperCount: 10,
		ActiveLoads:  3,
	}}

	agg := NewTrendAggregator(loads, subs, snaps)
	agg.now = func() time.Time { return now }

	require.NoError(t, agg.Refresh())
	out := agg.Report()

	assert.True(t, out.Loaded)
	assert.Empty(t, out.Error)
	assert.Equal(t, now, out.UpdatedAt)

	assert.InDelta(t, 1000.0, out.Revenue.CurrentValue, 1e-9)
	assert.InDelta(t, 500.0, out.Revenue.PreviousValue, 1e-9)
	assert.InDelta(t, 100.0, out.Revenue.PercentChange, 1e-9)
	assert.Equal(t, DirectionUp, out.Revenue.Direction)
	assert.Equal(t, "$1,000", out.Revenue.FormattedCurrent)

	assert.InDelta(t, 1.0, out.CompletedLoads.CurrentValue, 1e-9)
	assert.InDelta(t, 1.0, out.CompletedLoads.PreviousValue, 1e-9)
	assert.Equal(t, DirectionNeutral, out.CompletedLoads.Direction)

	// Snapshot history backs the headcount comparison: 22 vs 20.
	assert.InDelta(t, 10.0, out.DriverCount.PercentChange, 1e-9)
	assert.Equal(t, DirectionUp, out.DriverCount.Direction)
	assert.Equal(t, "22", out.DriverCount.FormattedCurrent)

	assert.Equal(t, DirectionNeutral, out.ShipperCount.Direction)

	assert.InDelta(t, 3.0, out.ActiveLoads.CurrentValue, 1e-9)
	assert.Equal(t, DirectionNeutral, out.ActiveLoads.Direction)
}

func TestTrendAggregator_ColdStartFallback(t *testing.T) {
	var loadList []models.Load
	for i := 0; i < 10; i++ {
		loadList = append(loadList, models.Load{Status: models.StatusAvailable})
	}
	loads := &fakeLoads{loads: loadList}
	subs := &fakeSubs{drivers: 40, shippers: 50}

	agg := NewTrendAggregator(loads, subs, &fakeSnaps{})
	// Midpoint of every scaling band lands on 1.0, so the synthesized
	// previous counts equal the current ones.
	agg.rand = func() float64 { return 0.5 }

	require.NoError(t, agg.Refresh())
	out := agg.Report()

	assert.InDelta(t, 40.0, out.DriverCount.PreviousValue, 1e-9)
	assert.InDelta(t, 50.0, out.ShipperCount.PreviousValue, 1e-9)
	assert.InDelta(t, 10.0, out.ActiveLoads.PreviousValue, 1e-9)
	assert.Equal(t, DirectionNeutral, out.DriverCount.Direction)
}

func TestTrendAggregator_RetainsLastGoodOnError(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	inWindow := now.AddDate(0, 0, -2)

	loads := &fakeLoads{loads: []models.Load{
		{Status: models.StatusDelivered, Price: 1000, CompletedAt: &inWindow},
	}}
	agg := NewTrendAggregator(loads, &fakeSubs{drivers: 5, shippers: 5}, &fakeSnaps{})
	agg.now = func() time.Time { return now }

	require.NoError(t, agg.Refresh())

	loads.err = errors.New("connection refused")
	err := agg.Refresh()
	require.Error(t, err)

	out := agg.Report()
	assert.True(t, out.Loaded)
	assert.NotEmpty(t, out.Error)
	assert.InDelta(t, 1000.0, out.Revenue.CurrentValue, 1e-9)
}
