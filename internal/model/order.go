package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether an order may move from s to next.
// Cancellation is allowed from any non-terminal state; the forward path is
// pending -> processing -> shipped -> out_for_delivery -> delivered.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing
	case OrderStatusProcessing:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusOutForDelivery
	case OrderStatusOutForDelivery:
		return next == OrderStatusDelivered
	}
	return false
}

// Order is the header record for one purchase.
type Order struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	OrderNumber   string          `json:"orderNumber" db:"order_number"`
	CustomerID    *int64          `json:"customerId,omitempty" db:"customer_id"`
	Status        OrderStatus     `json:"status" db:"status"`
	Subtotal      decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax           decimal.Decimal `json:"tax" db:"tax"`
	Shipping      decimal.Decimal `json:"shipping" db:"shipping"`
	Total         decimal.Decimal `json:"total" db:"total"`
	PaymentMethod string          `json:"paymentMethod" db:"payment_method"`
	PaymentStatus PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	Notes         *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is one line item within an order. Name, image and unit price are
// snapshots taken at purchase time and are never recalculated from the live
// product.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Image     *string         `json:"image,omitempty" db:"image"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	LineTotal decimal.Decimal `json:"lineTotal" db:"line_total"`
}

// ShippingAddress is the single delivery address attached to an order.
type ShippingAddress struct {
	ID         uuid.UUID `json:"-" db:"id"`
	OrderID    uuid.UUID `json:"-" db:"order_id"`
	FirstName  string    `json:"firstName" db:"first_name"`
	LastName   string    `json:"lastName,omitempty" db:"last_name"`
	Email      string    `json:"email,omitempty" db:"email"`
	Phone      string    `json:"phone,omitempty" db:"phone"`
	Street     string    `json:"street" db:"street"`
	City       string    `json:"city,omitempty" db:"city"`
	State      string    `json:"state,omitempty" db:"state"`
	PostalCode string    `json:"postalCode,omitempty" db:"postal_code"`
	Country    string    `json:"country,omitempty" db:"country"`
}

// CheckoutRequest is the request payload for placing an order.
type CheckoutRequest struct {
	Customer        CustomerInfo   `json:"customer"`
	Items           []CheckoutItem `json:"items"`
	ShippingAddress AddressInput   `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
}

// CustomerInfo identifies the buyer: an existing customer id, or guest
// contact details keyed by email.
type CustomerInfo struct {
	ID        int64  `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CheckoutItem is a single item in a checkout request. Unit price is the
// price quoted to the buyer when the item entered the cart.
type CheckoutItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Image     *string         `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// AddressInput is the shipping address portion of a checkout request.
type AddressInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// OrderConfirmation is the response payload for a successful checkout.
type OrderConfirmation struct {
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
	Status      OrderStatus     `json:"status"`
}

// OrderDetail is an order with its items and shipping address.
type OrderDetail struct {
	Order           Order            `json:"order"`
	Items           []OrderItem      `json:"items"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
}

// StatusUpdateRequest is the request payload for the status-update
// operation. Force permits overriding a terminal state.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
	Force  bool        `json:"force,omitempty"`
}
