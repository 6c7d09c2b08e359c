package domain

import (
	"errors"
	"fmt"
)

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidInput   = errors.New("invalid input provided")
	ErrNotConfigured  = errors.New("provider not configured")
)

// Notifications
var (
	ErrCustomerEmailRequired = fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	ErrRecipientRequired     = fmt.Errorf("%w: recipient is required", ErrInvalidInput)
	ErrDeliveryRejected      = errors.New("provider rejected delivery")
)

// OTP
var (
	ErrPhoneRequired   = fmt.Errorf("%w: phone number is required", ErrInvalidInput)
	ErrOTPCodeRequired = fmt.Errorf("%w: otp is required", ErrInvalidInput)
	ErrOTPNotFound     = errors.New("no otp requested for this number")
	ErrOTPExpired      = errors.New("expired otp")
	ErrOTPMismatch     = errors.New("invalid otp")
)

// Payments
var (
	ErrInvalidAmount     = fmt.Errorf("%w: invalid amount", ErrInvalidInput)
	ErrInvalidCurrency   = fmt.Errorf("%w: invalid currency", ErrInvalidInput)
	ErrSignatureMismatch = errors.New("payment signature mismatch")
)
