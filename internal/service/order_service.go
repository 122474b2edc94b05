package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voltshop/internal/cart"
	"voltshop/internal/model"
	"voltshop/internal/notify"
	"voltshop/internal/ordernum"
	"voltshop/internal/pricing"
	"voltshop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// sideEffectTimeout bounds the post-commit cart clear and notification
// dispatch. These run detached from the request context because the order is
// already committed when they start.
const sideEffectTimeout = 30 * time.Second

// defaultPaymentMethod is used when a checkout request names none.
const defaultPaymentMethod = "cod"

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	identity    IdentityService
	pricer      *pricing.Calculator
	orderNums   ordernum.Generator
	carts       cart.Store
	sinks       []notify.Sink
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	identity IdentityService,
	pricer *pricing.Calculator,
	orderNums ordernum.Generator,
	carts cart.Store,
	sinks []notify.Sink,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		identity:    identity,
		pricer:      pricer,
		orderNums:   orderNums,
		carts:       carts,
		sinks:       sinks,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Checkout persists a complete order as a single atomic unit: header, line
// items and shipping address commit together or not at all. Totals are
// always recomputed server-side from the line items.
func (s *orderService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.OrderConfirmation, error) {
	// Validate request before any I/O
	if err := s.validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	// Resolve buyer (find-or-create guest account for email-only checkouts)
	customer, err := s.identity.Resolve(ctx, req.Customer, req.ShippingAddress.Email)
	if err != nil {
		return nil, err
	}

	// Validate referenced products exist
	productIDs := make([]int64, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
		s.logger.Warn().
			Int("product_count", len(productIDs)).
			Err(err).
			Msg("product validation failed")
		return nil, err
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	// Price the order from its line items; client-supplied totals are ignored
	totals := s.pricer.Quote(req.Items)

	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	now := time.Now()
	order := &model.Order{
		ID:            uuid.New(),
		OrderNumber:   s.orderNums.Next(&customer.ID),
		CustomerID:    &customer.ID,
		Status:        model.OrderStatusPending,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Shipping:      totals.Shipping,
		Total:         totals.Total,
		PaymentMethod: paymentMethod,
		PaymentStatus: model.PaymentStatusPending,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Create order items with purchase-time snapshots
	orderItems := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		orderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: pricing.LineTotal(item),
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	address := &model.ShippingAddress{
		ID:         uuid.New(),
		OrderID:    order.ID,
		FirstName:  req.ShippingAddress.FirstName,
		LastName:   req.ShippingAddress.LastName,
		Email:      req.ShippingAddress.Email,
		Phone:      req.ShippingAddress.Phone,
		Street:     req.ShippingAddress.Street,
		City:       req.ShippingAddress.City,
		State:      req.ShippingAddress.State,
		PostalCode: req.ShippingAddress.PostalCode,
		Country:    req.ShippingAddress.Country,
	}

	if err = s.orderRepo.CreateShippingAddress(ctx, tx, address); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create shipping address")
		return nil, fmt.Errorf("failed to create shipping address: %w", err)
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Int64("customer_id", customer.ID).
		Int("item_count", len(orderItems)).
		Str("total", order.Total.StringFixed(2)).
		Msg("order created successfully")

	// Best-effort side effects; failures are logged and never surfaced
	contact := notify.Contact{
		Name:  customerDisplayName(customer, req.ShippingAddress),
		Email: firstNonEmpty(customer.Email, req.ShippingAddress.Email),
		Phone: firstNonEmpty(customer.Phone, req.ShippingAddress.Phone),
	}
	summary := notify.OrderSummary{
		OrderNumber: order.OrderNumber,
		ItemCount:   len(orderItems),
		Total:       order.Total,
	}
	go s.afterCommit(customer.ID, contact, summary)

	return &model.OrderConfirmation{
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		Status:      order.Status,
	}, nil
}

// afterCommit clears the buyer's cart and dispatches confirmation
// notifications. Runs detached from the request; every failure is log-only.
func (s *orderService) afterCommit(customerID int64, contact notify.Contact, summary notify.OrderSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	if s.carts != nil {
		if err := s.carts.Clear(ctx, customerID); err != nil {
			s.logger.Warn().
				Err(err).
				Int64("customer_id", customerID).
				Str("order_number", summary.OrderNumber).
				Msg("failed to clear cart after checkout")
		}
	}

	for _, sink := range s.sinks {
		if err := sink.NotifyOrderConfirmed(ctx, contact, summary); err != nil {
			s.logger.Warn().
				Err(err).
				Str("sink", sink.Name()).
				Str("order_number", summary.OrderNumber).
				Msg("order confirmation notification failed")
		}
	}
}

// GetByID retrieves an order with its items and shipping address.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error) {
	detail, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if detail == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}

	return detail, nil
}

// ListByCustomer retrieves a customer's order headers, newest first.
func (s *orderService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	if customerID <= 0 {
		return nil, model.ErrCustomerNotFound
	}

	orders, err := s.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Int64("customer_id", customerID).Msg("failed to list customer orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus moves an order to a new lifecycle status. Terminal states
// reject further transitions unless force is set.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, force bool) error {
	if !status.Valid() {
		return model.ErrInvalidStatus
	}

	detail, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to load order for status update")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if detail == nil {
		return model.ErrOrderNotFound
	}

	current := detail.Order.Status
	if !force && !current.CanTransitionTo(status) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(current)).
			Str("to", string(status)).
			Msg("rejected order status transition")
		return model.ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if err == model.ErrOrderNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(current)).
		Str("to", string(status)).
		Bool("force", force).
		Msg("order status updated")

	return nil
}

// validateCheckoutRequest validates the checkout request.
func (s *orderService) validateCheckoutRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return fmt.Errorf("checkout request is nil")
	}

	if len(req.Items) == 0 {
		return model.ErrEmptyOrder
	}

	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("item %d: product ID is required", i)
		}

		if item.Name == "" {
			return fmt.Errorf("item %d: product name is required", i)
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Int64("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}

		if item.UnitPrice.IsNegative() {
			s.logger.Warn().
				Int("item_index", i).
				Int64("product_id", item.ProductID).
				Str("unit_price", item.UnitPrice.String()).
				Msg("negative unit price")
			return model.ErrInvalidPrice
		}
	}

	if strings.TrimSpace(req.ShippingAddress.FirstName) == "" ||
		strings.TrimSpace(req.ShippingAddress.Street) == "" {
		return model.ErrMissingAddress
	}

	if req.Customer.ID <= 0 &&
		strings.TrimSpace(req.Customer.Email) == "" &&
		strings.TrimSpace(req.ShippingAddress.Email) == "" {
		return model.ErrMissingBuyer
	}

	return nil
}

// customerDisplayName prefers the customer's own name, then the shipping
// recipient's.
func customerDisplayName(customer *model.Customer, address model.AddressInput) string {
	name := strings.TrimSpace(customer.FirstName + " " + customer.LastName)
	if name != "" {
		return name
	}
	return strings.TrimSpace(address.FirstName + " " + address.LastName)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
