package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLoadStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want LoadStatus
		ok   bool
	}{
		{"available", StatusAvailable, true},
		{"posted", StatusAvailable, true},
		{"Active", StatusAvailable, true},
		{" open ", StatusAvailable, true},
		{"booked", StatusBooked, true},
		{"MATCHED", StatusBooked, true},
		{"assigned", StatusBooked, true},
		{"in_transit", StatusInTransit, true},
		{"in-transit", StatusInTransit, true},
		{"pickup", StatusInTransit, true},
		{"delivered", StatusDelivered, true},
		{"Completed", StatusDelivered, true},
		{"complete", StatusDelivered, true},
		{"cancelled", StatusCancelled, true},
		{"canceled", StatusCancelled, true},
		{"teleported", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := NormalizeLoadStatus(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadAmount(t *testing.T) {
	assert.InDelta(t, 100.0, (&Load{Price: 100, Rate: 50}).Amount(), 1e-9)
	assert.InDelta(t, 50.0, (&Load{Rate: 50}).Amount(), 1e-9)
	assert.InDelta(t, 0.0, (&Load{}).Amount(), 1e-9)
}

func TestLoadHasAddresses(t *testing.T) {
	full := &Load{
		PickupAddress: "1200 Industrial Blvd, Dallas, TX 75207",
		DropAddress:   "800 Port Terminal Rd, Houston, TX 77029",
	}
	assert.True(t, full.HasAddresses())

	stub := &Load{PickupAddress: "Dallas", DropAddress: "800 Port Terminal Rd, Houston, TX 77029"}
	assert.False(t, stub.HasAddresses())
	assert.False(t, (&Load{}).HasAddresses())
}
