package service

import (
	"context"
	"errors"
	"testing"

	"voltshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func TestIdentityService_Resolve_ExistingID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	customer := &model.Customer{ID: 7, Email: "buyer1@example.com"}

	mockRepo := new(MockCustomerRepository)
	mockRepo.On("GetByID", ctx, int64(7)).Return(customer, nil)

	service := NewIdentityService(mockRepo, logger)

	got, err := service.Resolve(ctx, model.CustomerInfo{ID: 7}, "")

	require.NoError(t, err)
	assert.Equal(t, customer, got)

	// A supplied id is authoritative; email lookup must not run
	mockRepo.AssertNotCalled(t, "FindByEmail")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestIdentityService_Resolve_UnknownID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockCustomerRepository)
	mockRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	service := NewIdentityService(mockRepo, logger)

	got, err := service.Resolve(ctx, model.CustomerInfo{ID: 99, Email: "buyer1@example.com"}, "")

	require.Error(t, err)
	assert.Equal(t, model.ErrCustomerNotFound, err)
	assert.Nil(t, got)

	// An unknown id must not silently fall back to the email path
	mockRepo.AssertNotCalled(t, "FindByEmail")
}

func TestIdentityService_Resolve_ExistingEmail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	customer := &model.Customer{ID: 12, Email: "buyer1@example.com"}

	mockRepo := new(MockCustomerRepository)
	mockRepo.On("FindByEmail", ctx, "buyer1@example.com").Return(customer, nil)

	service := NewIdentityService(mockRepo, logger)

	got, err := service.Resolve(ctx, model.CustomerInfo{Email: " Buyer1@Example.COM "}, "")

	require.NoError(t, err)
	assert.Equal(t, customer, got)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestIdentityService_Resolve_CreatesGuest(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockCustomerRepository)
	mockRepo.On("FindByEmail", ctx, "new@example.com").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Customer")).
		Run(func(args mock.Arguments) {
			created := args.Get(1).(*model.Customer)
			created.ID = 42
		}).
		Return(nil)

	service := NewIdentityService(mockRepo, logger)

	got, err := service.Resolve(ctx, model.CustomerInfo{Email: "new@example.com", FirstName: "New", LastName: "Buyer"}, "")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "new@example.com", got.Email)
	assert.True(t, got.Guest)
	assert.Equal(t, "New", got.FirstName)

	mockRepo.AssertExpectations(t)
}

func TestIdentityService_Resolve_FallbackEmail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	customer := &model.Customer{ID: 12, Email: "ship@example.com"}

	mockRepo := new(MockCustomerRepository)
	mockRepo.On("FindByEmail", ctx, "ship@example.com").Return(customer, nil)

	service := NewIdentityService(mockRepo, logger)

	// No customer block email; the shipping contact email stands in
	got, err := service.Resolve(ctx, model.CustomerInfo{}, "Ship@Example.com")

	require.NoError(t, err)
	assert.Equal(t, customer, got)
}

func TestIdentityService_Resolve_NoIdentity(t *testing.T) {
	logger := zerolog.Nop()

	mockRepo := new(MockCustomerRepository)
	service := NewIdentityService(mockRepo, logger)

	got, err := service.Resolve(context.Background(), model.CustomerInfo{}, "   ")

	require.Error(t, err)
	assert.Equal(t, model.ErrMissingBuyer, err)
	assert.Nil(t, got)
	mockRepo.AssertNotCalled(t, "FindByEmail")
}

func TestIdentityService_Resolve_CreateFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockCustomerRepository)
	mockRepo.On("FindByEmail", ctx, "new@example.com").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Customer")).
		Return(errors.New("duplicate key value violates unique constraint"))

	service := NewIdentityService(mockRepo, logger)

	got, err := service.Resolve(ctx, model.CustomerInfo{Email: "new@example.com"}, "")

	require.Error(t, err)
	assert.Nil(t, got)
}
