// internal/handler/payment_handler.go
package handler

import (
	"context"
	"errors"
	"net/http"

	"relay-service/internal/domain"
	"relay-service/internal/usecase"

	"go.uber.org/zap"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*usecase.CreatedOrder, error)
	VerifyPayment(req *domain.VerifyPaymentRequest) error
}

type PaymentHandler struct {
	service PaymentService
	logger  *zap.Logger
}

func NewPaymentHandler(service PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, logger: logger}
}

// CreateOrder handles POST /create-order
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.service.CreateOrder(r.Context(), &req)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, &Response{
			Success: true,
			Message: "Order created successfully",
			Order:   created.Order,
			Key:     created.KeyID,
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		sendError(w, r, http.StatusBadRequest, "Invalid amount", nil)
	case errors.Is(err, domain.ErrInvalidCurrency):
		sendError(w, r, http.StatusBadRequest, "Invalid currency", nil)
	default:
		h.logger.Error("order creation failed", zap.Error(err))
		writeJSON(w, r, http.StatusInternalServerError, &Response{
			Success: false,
			Message: "Failed to create order",
			Error:   providerPayload(err),
		})
	}
}

// VerifyPayment handles POST /verify-payment
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.service.VerifyPayment(&req)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, &Response{
			Success:   true,
			Message:   "Payment verification successful",
			OrderID:   req.OrderID,
			PaymentID: req.PaymentID,
		})
	case errors.Is(err, domain.ErrSignatureMismatch):
		sendError(w, r, http.StatusBadRequest, "Payment verification failed", nil)
	default:
		h.logger.Error("payment verification error", zap.Error(err))
		writeJSON(w, r, http.StatusInternalServerError, &Response{
			Success: false,
			Message: "Internal server error during verification",
			Error:   map[string]string{"message": err.Error()},
		})
	}
}
