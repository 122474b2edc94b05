// Package cart holds the buyer cart store. Carts live in Redis keyed by
// customer id; after a successful checkout the buyer's cart is cleared on a
// best-effort basis.
package cart

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store defines the cart operations the order flow depends on.
type Store interface {
	// Clear removes the customer's cart. Clearing an absent cart is not an
	// error.
	Clear(ctx context.Context, customerID int64) error
}

// redisStore implements Store on top of Redis.
type redisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed cart store and verifies connectivity.
func NewRedisStore(ctx context.Context, client *redis.Client, logger zerolog.Logger) (Store, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &redisStore{
		client: client,
		logger: logger.With().Str("component", "cart-store").Logger(),
	}, nil
}

func cartKey(customerID int64) string {
	return fmt.Sprintf("cart:%d", customerID)
}

// Clear removes the customer's cart key.
func (s *redisStore) Clear(ctx context.Context, customerID int64) error {
	key := cartKey(customerID)

	deleted, err := s.client.Del(ctx, key).Result()
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart %s: %w", key, err)
	}

	s.logger.Debug().
		Str("key", key).
		Int64("deleted", deleted).
		Msg("cart cleared")

	return nil
}
