// Package notify delivers order-confirmation messages. Delivery is strictly
// fire-and-forget: sink failures are logged by the caller and never affect
// the outcome of the order that triggered them.
package notify

import (
	"context"

	"github.com/shopspring/decimal"
)

// Contact holds the buyer details a sink may address a message to.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// OrderSummary is the minimal order view rendered into notifications.
type OrderSummary struct {
	OrderNumber string
	ItemCount   int
	Total       decimal.Decimal
}

// Sink delivers a single order-confirmation notification.
type Sink interface {
	// NotifyOrderConfirmed sends an order confirmation to the given contact.
	NotifyOrderConfirmed(ctx context.Context, contact Contact, summary OrderSummary) error

	// Name identifies the sink in logs.
	Name() string
}
