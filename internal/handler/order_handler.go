package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"voltshop/internal/model"
	"voltshop/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/orders requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	confirmation, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		// Determine appropriate status code based on error type
		status := http.StatusInternalServerError
		message := "failed to create order"

		switch err {
		case model.ErrEmptyOrder:
			status = http.StatusBadRequest
			message = "order must contain at least one item"
		case model.ErrInvalidQuantity:
			status = http.StatusBadRequest
			message = "invalid quantity"
		case model.ErrInvalidPrice:
			status = http.StatusBadRequest
			message = "invalid unit price"
		case model.ErrMissingAddress:
			status = http.StatusBadRequest
			message = "shipping address requires a recipient name and street"
		case model.ErrMissingBuyer:
			status = http.StatusBadRequest
			message = "a customer id or contact email is required"
		case model.ErrProductNotFound:
			status = http.StatusBadRequest
			message = "one or more products not found"
		case model.ErrCustomerNotFound:
			status = http.StatusNotFound
			message = "customer not found"
		default:
			if strings.Contains(err.Error(), "required") ||
				strings.Contains(err.Error(), "nil") {
				status = http.StatusBadRequest
				message = err.Error()
			}
		}

		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, confirmation)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.parseOrderID(w, r.URL.Path)
	if !ok {
		return
	}

	detail, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}

	if detail == nil {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// ListByCustomer handles GET /api/orders?customerId={id} requests.
func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	customerIDStr := r.URL.Query().Get("customerId")
	if customerIDStr == "" {
		writeError(w, http.StatusBadRequest, "customerId query parameter is required", h.logger)
		return
	}

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil || customerID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid customerId parameter", h.logger)
		return
	}

	orders, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve orders", h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/status")
	orderID, ok := h.parseOrderID(w, path)
	if !ok {
		return
	}

	var req model.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), orderID, req.Status, req.Force); err != nil {
		switch err {
		case model.ErrInvalidStatus:
			writeError(w, http.StatusBadRequest, "unknown order status", h.logger)
		case model.ErrInvalidTransition:
			writeError(w, http.StatusConflict, "status transition not allowed", h.logger)
		case model.ErrOrderNotFound:
			writeError(w, http.StatusNotFound, "order not found", h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to update order status", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

// parseOrderID extracts and validates the order id from an /api/orders/{id}
// path. It writes the error response itself when the id is missing or
// malformed.
func (h *OrderHandler) parseOrderID(w http.ResponseWriter, path string) (uuid.UUID, bool) {
	if len(path) < len("/api/orders/") {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return uuid.Nil, false
	}
	orderIDStr := path[len("/api/orders/"):]

	if orderIDStr == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return uuid.Nil, false
	}

	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return uuid.Nil, false
	}

	return orderID, true
}
