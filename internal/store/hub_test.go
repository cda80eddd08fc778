package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pending(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestHub_NotifyReachesEverySubscriber(t *testing.T) {
	h := NewHub()
	ch1, cancel1 := h.Subscribe()
	ch2, cancel2 := h.Subscribe()
	defer cancel1()
	defer cancel2()

	h.Notify()

	assert.True(t, pending(ch1))
	assert.True(t, pending(ch2))
}

func TestHub_BurstCoalescesIntoOneNotification(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Notify()
	h.Notify()
	h.Notify()

	assert.True(t, pending(ch))
	assert.False(t, pending(ch), "burst must collapse into a single pending signal")
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	_, cancelOther := h.Subscribe()
	defer cancelOther()

	assert.Equal(t, 2, h.SubscriberCount())

	cancel()
	cancel()
	assert.Equal(t, 1, h.SubscriberCount())

	h.Notify()
	assert.False(t, pending(ch), "cancelled subscriber must not be notified")
}
