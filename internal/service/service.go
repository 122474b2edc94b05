package service

import (
	"context"

	"voltshop/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue reads.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

// IdentityService resolves the buyer behind an order, lazily creating
// password-less guest accounts keyed by email.
type IdentityService interface {
	// Resolve returns the customer for an existing id, or finds-or-creates a
	// guest customer from the contact email when no id is supplied.
	Resolve(ctx context.Context, info model.CustomerInfo, fallbackEmail string) (*model.Customer, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// Checkout persists a complete order as a single atomic unit and
	// triggers best-effort post-commit side effects (cart clearing,
	// confirmation notifications).
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.OrderConfirmation, error)

	// GetByID retrieves an order with its items and shipping address.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error)

	// ListByCustomer retrieves a customer's order headers, newest first.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)

	// UpdateStatus moves an order to a new lifecycle status. Terminal states
	// reject further transitions unless force is set.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, force bool) error
}
