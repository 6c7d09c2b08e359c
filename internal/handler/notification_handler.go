// internal/handler/notification_handler.go
package handler

import (
	"context"
	"errors"
	"net/http"

	"relay-service/internal/domain"
	"relay-service/internal/usecase"

	"go.uber.org/zap"
)

type NotificationService interface {
	OrderConfirmation(ctx context.Context, req *domain.NotificationRequest) (*usecase.DispatchResult, error)
	SendPlain(ctx context.Context, req *domain.PlainEmailRequest) error
	AbandonedOrder(ctx context.Context, req *domain.NotificationRequest) error
	AdvancePayment(ctx context.Context, req *domain.NotificationRequest) error
}

type NotificationHandler struct {
	service NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(service NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger,
	}
}

// SendEmail handles POST /send-email
func (h *NotificationHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req domain.PlainEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SendPlain(r.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			sendError(w, r, http.StatusBadRequest, "Recipient is required", nil)
			return
		}
		h.logger.Error("email sending failed", zap.String("to", req.To), zap.Error(err))
		sendError(w, r, http.StatusInternalServerError, "Email sending failed!", err)
		return
	}

	sendSuccess(w, r, "Email sent successfully!")
}

// SendOrderConfirmation handles POST /send-order-confirmation
func (h *NotificationHandler) SendOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	var req domain.NotificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.OrderConfirmation(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerEmailRequired) {
			sendError(w, r, http.StatusBadRequest, "Customer email is required", nil)
			return
		}
		h.logger.Error("unexpected error in order confirmation", zap.Error(err))
		sendError(w, r, http.StatusInternalServerError,
			"Unexpected error occurred while sending order confirmation", err)
		return
	}

	sum := result.Summary()
	writeJSON(w, r, sum.StatusCode, &Response{
		Success:  sum.Success,
		Message:  sum.Message,
		Warnings: sum.Warnings,
		Errors:   sum.Errors,
	})
}

// SendAbandonedOrderEmail handles POST /send-abandoned-order-email
func (h *NotificationHandler) SendAbandonedOrderEmail(w http.ResponseWriter, r *http.Request) {
	var req domain.NotificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.AbandonedOrder(r.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrCustomerEmailRequired) {
			sendError(w, r, http.StatusBadRequest, "Customer email is required", nil)
			return
		}
		h.logger.Error("abandoned order follow-up failed",
			zap.String("to", req.CustomerEmail),
			zap.Error(err))
		sendError(w, r, http.StatusInternalServerError, "Failed to send abandoned order follow-up email", err)
		return
	}

	sendSuccess(w, r, "Abandoned order follow-up email sent successfully!")
}

// SendAdvancePaymentConfirmation handles POST /send-advance-payment-confirmation
func (h *NotificationHandler) SendAdvancePaymentConfirmation(w http.ResponseWriter, r *http.Request) {
	var req domain.NotificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.AdvancePayment(r.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrCustomerEmailRequired) {
			sendError(w, r, http.StatusBadRequest, "Customer email is required", nil)
			return
		}
		h.logger.Error("advance payment confirmation failed",
			zap.String("to", req.CustomerEmail),
			zap.Error(err))
		sendError(w, r, http.StatusInternalServerError, "Failed to send advance payment confirmation email", err)
		return
	}

	sendSuccess(w, r, "Advance payment confirmation email sent successfully!")
}
