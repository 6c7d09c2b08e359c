// internal/handler/otp_handler.go
package handler

import (
	"context"
	"errors"
	"net/http"

	"relay-service/internal/domain"

	"go.uber.org/zap"
)

type OTPService interface {
	Generate(ctx context.Context, phoneNumber string) (string, error)
	Verify(ctx context.Context, phoneNumber, code string) error
}

type OTPHandler struct {
	service OTPService
	logger  *zap.Logger
}

func NewOTPHandler(service OTPService, logger *zap.Logger) *OTPHandler {
	return &OTPHandler{service: service, logger: logger}
}

// GenerateOTP handles POST /generate-otp. The code itself never leaves the server
// except through the SMS.
func (h *OTPHandler) GenerateOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := h.service.Generate(r.Context(), req.PhoneNumber.String())
	switch {
	case err == nil:
		sendSuccess(w, r, "OTP sent successfully")
	case errors.Is(err, domain.ErrInvalidInput):
		sendError(w, r, http.StatusBadRequest, "Phone number is required", nil)
	case errors.Is(err, domain.ErrDeliveryRejected):
		writeJSON(w, r, http.StatusInternalServerError, &Response{
			Success: false,
			Message: "Failed to send OTP",
			Details: providerPayload(err),
		})
	default:
		h.logger.Error("error generating/sending otp", zap.Error(err))
		sendError(w, r, http.StatusInternalServerError, "Internal Server Error", err)
	}
}

// VerifyOTP handles POST /verify-otp
func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.service.Verify(r.Context(), req.PhoneNumber.String(), req.OTP.String())
	switch {
	case err == nil:
		sendSuccess(w, r, "OTP verified successfully")
	case errors.Is(err, domain.ErrInvalidInput):
		sendError(w, r, http.StatusBadRequest, "Phone number and OTP are required", nil)
	case errors.Is(err, domain.ErrOTPNotFound):
		sendError(w, r, http.StatusBadRequest, "No OTP requested for this number", nil)
	case errors.Is(err, domain.ErrOTPExpired):
		sendError(w, r, http.StatusBadRequest, "OTP has expired", nil)
	case errors.Is(err, domain.ErrOTPMismatch):
		sendError(w, r, http.StatusBadRequest, "Invalid OTP", nil)
	default:
		h.logger.Error("error verifying otp", zap.Error(err))
		sendError(w, r, http.StatusInternalServerError, "Internal Server Error", err)
	}
}
