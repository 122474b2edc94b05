package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voltshop/internal/model"
	"voltshop/internal/repository"

	"github.com/rs/zerolog"
)

// identityService implements IdentityService.
type identityService struct {
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(customerRepo repository.CustomerRepository, logger zerolog.Logger) IdentityService {
	return &identityService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "identity").Logger(),
	}
}

// Resolve returns the customer for an existing id, or finds-or-creates a
// guest customer from the contact email when no id is supplied. The
// find-or-create is not idempotent across concurrent calls; the unique email
// constraint decides the race and the loser surfaces a persistence error.
func (s *identityService) Resolve(ctx context.Context, info model.CustomerInfo, fallbackEmail string) (*model.Customer, error) {
	if info.ID > 0 {
		customer, err := s.customerRepo.GetByID(ctx, info.ID)
		if err != nil {
			s.logger.Error().Err(err).Int64("customer_id", info.ID).Msg("failed to look up customer")
			return nil, fmt.Errorf("failed to resolve customer: %w", err)
		}
		if customer == nil {
			s.logger.Warn().Int64("customer_id", info.ID).Msg("unknown customer id")
			return nil, model.ErrCustomerNotFound
		}
		return customer, nil
	}

	email := strings.TrimSpace(strings.ToLower(info.Email))
	if email == "" {
		email = strings.TrimSpace(strings.ToLower(fallbackEmail))
	}
	if email == "" {
		return nil, model.ErrMissingBuyer
	}

	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up customer by email")
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}
	if customer != nil {
		s.logger.Debug().
			Int64("customer_id", customer.ID).
			Str("email", email).
			Msg("resolved existing customer by email")
		return customer, nil
	}

	guest := &model.Customer{
		Email:     email,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Phone:     info.Phone,
		Guest:     true,
		CreatedAt: time.Now(),
	}

	if err := s.customerRepo.Create(ctx, guest); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create guest customer")
		return nil, fmt.Errorf("failed to create guest customer: %w", err)
	}

	s.logger.Info().
		Int64("customer_id", guest.ID).
		Str("email", email).
		Msg("guest customer created")

	return guest, nil
}
