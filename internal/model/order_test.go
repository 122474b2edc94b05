package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("shipped_back").Valid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"Pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"Processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"Shipped to out for delivery", OrderStatusShipped, OrderStatusOutForDelivery, true},
		{"Out for delivery to delivered", OrderStatusOutForDelivery, OrderStatusDelivered, true},
		{"Pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"Shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, true},
		{"Pending skips to shipped", OrderStatusPending, OrderStatusShipped, false},
		{"Processing back to pending", OrderStatusProcessing, OrderStatusPending, false},
		{"Delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"Cancelled is terminal", OrderStatusCancelled, OrderStatusProcessing, false},
		{"Delivered cannot re-deliver", OrderStatusDelivered, OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusOutForDelivery.Terminal())
}
