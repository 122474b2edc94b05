package repository

import (
	"context"
	"fmt"

	"voltshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using
// PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// GetByID retrieves a customer by id.
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `
		SELECT id, email, first_name, last_name, phone, guest, created_at
		FROM customers
		WHERE id = $1
	`

	var c model.Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Phone, &c.Guest, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("customer_id", id).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// FindByEmail retrieves a customer by email.
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `
		SELECT id, email, first_name, last_name, phone, guest, created_at
		FROM customers
		WHERE email = $1
	`

	var c model.Customer
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Phone, &c.Guest, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("email", email).Msg("customer not found by email")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query customer by email")
		return nil, fmt.Errorf("failed to query customer by email: %w", err)
	}

	return &c, nil
}

// Create inserts a new customer and populates its id. The email column
// carries a unique constraint, so a concurrent find-or-create for the same
// address surfaces here as a constraint violation.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (email, first_name, last_name, phone, guest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		customer.Email, customer.FirstName, customer.LastName,
		customer.Phone, customer.Guest, customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("email", customer.Email).Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().
		Int64("customer_id", customer.ID).
		Str("email", customer.Email).
		Bool("guest", customer.Guest).
		Msg("customer created successfully")

	return nil
}
