// Package pricing computes order totals server-side. Client-supplied
// subtotal, tax, shipping or total values are never trusted; every order is
// priced from its line items and the configured rates.
package pricing

import (
	"github.com/shopspring/decimal"

	"voltshop/internal/model"
)

// Totals is the priced breakdown of an order.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Calculator prices orders from line items.
type Calculator struct {
	taxRate     decimal.Decimal
	shippingFee decimal.Decimal
}

// NewCalculator creates a calculator with the given tax rate (e.g. 0.10) and
// flat shipping fee.
func NewCalculator(taxRate, shippingFee decimal.Decimal) *Calculator {
	return &Calculator{
		taxRate:     taxRate,
		shippingFee: shippingFee,
	}
}

// LineTotal returns quantity * unit price for a single item. The result is
// fixed at order creation and never recalculated from the live product price.
func LineTotal(item model.CheckoutItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Quote computes the totals for a set of line items. Tax is rounded to two
// decimal places; the flat shipping fee applies to any non-empty order.
func (c *Calculator) Quote(items []model.CheckoutItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item))
	}

	tax := subtotal.Mul(c.taxRate).Round(2)

	shipping := decimal.Zero
	if len(items) > 0 {
		shipping = c.shippingFee
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}
