// internal/provider/provider.go
package provider

import (
	"context"
	"fmt"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
)

// Delivery describes what a provider accepted.
type Delivery struct {
	Channel   Channel
	Recipient string
	Reference string
	Response  map[string]interface{}
}

type EmailMessage struct {
	To        string
	CC        []string
	Subject   string
	HTMLBody  string
	PlainBody string
}

// WhatsAppTemplate is a pre-approved template message. Variables fill the template
// body positionally.
type WhatsAppTemplate struct {
	To             string
	TemplateID     string
	HeaderMediaURL string
	CallbackData   string
	Variables      []string
}

// OrderRequest is a gateway order with the amount already in minor units.
type OrderRequest struct {
	Amount   int64                  `json:"amount"`
	Currency string                 `json:"currency"`
	Receipt  string                 `json:"receipt"`
	Notes    map[string]interface{} `json:"notes"`
}

// EmailSender delivers a message over SMTP
type EmailSender interface {
	SendEmail(ctx context.Context, msg *EmailMessage) (*Delivery, error)
}

type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, msg *WhatsAppTemplate) (*Delivery, error)
}

// SMSSender delivers a one-time code to a phone number
type SMSSender interface {
	SendOTP(ctx context.Context, phoneNumber, code string) (*Delivery, error)
}

// OrderProvider creates orders on the payment gateway
type OrderProvider interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (map[string]interface{}, error)
	KeyID() string
}

// APIError is returned when a provider answers with a failure payload.
type APIError struct {
	Provider   string
	StatusCode int
	Payload    map[string]interface{}
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s api error: %s", e.Provider, e.Body)
	}
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}
