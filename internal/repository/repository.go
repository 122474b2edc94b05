package repository

import (
	"context"

	"voltshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// ValidateProductsExist checks if all provided product IDs exist in the
	// database. Returns an error if any product ID does not exist.
	ValidateProductsExist(ctx context.Context, ids []int64) error
}

// CustomerRepository defines the interface for customer data access
// operations.
type CustomerRepository interface {
	// GetByID retrieves a customer by id. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*model.Customer, error)

	// FindByEmail retrieves a customer by email. Returns nil if not found.
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)

	// Create inserts a new customer and populates its id.
	Create(ctx context.Context, customer *model.Customer) error
}

// OrderRepository defines the interface for order data access operations.
// Header, items and shipping address are written through the same pgx.Tx so
// an order is never partially visible.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order header within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// CreateShippingAddress inserts the order's shipping address within the
	// provided transaction.
	CreateShippingAddress(ctx context.Context, tx pgx.Tx, address *model.ShippingAddress) error

	// GetByID retrieves an order by its ID along with its items and shipping
	// address.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error)

	// ListByCustomer retrieves the order headers belonging to a customer,
	// newest first.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)

	// UpdateStatus sets the order's lifecycle status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}
