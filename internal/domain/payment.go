// internal/domain/payment.go
package domain

import "encoding/json"

const DefaultCurrency = "INR"

// CreateOrderRequest is the storefront request for a gateway order. Amount and notes
// are kept raw so the use case can apply lenient parsing.
type CreateOrderRequest struct {
	Amount   json.RawMessage `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  Scalar          `json:"receipt"`
	Notes    json.RawMessage `json:"notes"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}
