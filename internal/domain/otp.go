package domain

import "time"

// OTPRecord is the pending one-time code for a phone number.
type OTPRecord struct {
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"code"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether now is strictly past the expiry.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Phone numbers and codes arrive as strings or numbers depending on the storefront.
type GenerateOTPRequest struct {
	PhoneNumber Scalar `json:"phoneNumber"`
}

type VerifyOTPRequest struct {
	PhoneNumber Scalar `json:"phoneNumber"`
	OTP         Scalar `json:"otp"`
}
