// internal/domain/notification.go
package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is shown next to amounts when the order carries no currency.
const DefaultCurrencySymbol = "₹"

// Scalar holds a value that storefronts send either as a JSON string or a JSON number.
// It is rendered verbatim.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	*s = Scalar(trimmed)
	return nil
}

func (s Scalar) String() string { return string(s) }

// Or returns s, or fallback when s is empty.
func (s Scalar) Or(fallback string) string {
	if s == "" {
		return fallback
	}
	return string(s)
}

type Product struct {
	Name     string `json:"name"`
	Quantity Scalar `json:"quantity"`
	Price    Scalar `json:"price"`
}

type OrderDetails struct {
	OrderNumber   Scalar    `json:"orderNumber"`
	Products      []Product `json:"products"`
	ProductName   string    `json:"productName"`
	Quantity      Scalar    `json:"quantity"`
	TotalAmount   Scalar    `json:"totalAmount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentID     string    `json:"paymentId"`

	// Partial payment fields, only read by the advance payment confirmation.
	AdvanceAmount Scalar `json:"advanceAmount"`
	PaidAmount    Scalar `json:"paidAmount"`
	BalanceAmount Scalar `json:"balanceAmount"`
}

// HasProducts reports whether the products list should be used instead of the
// single-product fields.
func (o OrderDetails) HasProducts() bool {
	return len(o.Products) > 0
}

func (o OrderDetails) CurrencySymbol() string {
	if o.Currency == "" {
		return DefaultCurrencySymbol
	}
	return o.Currency
}

// ProductsText flattens the order into "name×quantity" entries joined by ", ".
func (o OrderDetails) ProductsText() string {
	if o.HasProducts() {
		parts := make([]string, 0, len(o.Products))
		for _, p := range o.Products {
			parts = append(parts, p.Name+"×"+p.Quantity.String())
		}
		return strings.Join(parts, ", ")
	}

	name := o.ProductName
	if name == "" {
		name = "Item"
	}
	return name + "×" + o.Quantity.Or("1")
}

// AdvancePaid is the amount already collected, preferring advanceAmount over paidAmount.
func (o OrderDetails) AdvancePaid() string {
	if o.AdvanceAmount != "" {
		return o.AdvanceAmount.String()
	}
	return o.PaidAmount.String()
}

// BalanceDue returns balanceAmount, or total minus the advance when both parse as
// decimals. Empty when neither is available.
func (o OrderDetails) BalanceDue() string {
	if o.BalanceAmount != "" {
		return o.BalanceAmount.String()
	}
	total, err := decimal.NewFromString(strings.TrimSpace(o.TotalAmount.String()))
	if err != nil {
		return ""
	}
	advance, err := decimal.NewFromString(strings.TrimSpace(o.AdvancePaid()))
	if err != nil {
		return ""
	}
	return total.Sub(advance).StringFixed(2)
}

type CustomerDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       Scalar `json:"zip"`
	Country   string `json:"country"`
}

func (c CustomerDetails) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Locality renders "City, State - Zip", dropping separators around missing parts.
func (c CustomerDetails) Locality() string {
	var b strings.Builder
	b.WriteString(c.City)
	if c.City != "" && c.State != "" {
		b.WriteString(", ")
	}
	b.WriteString(c.State)
	if (c.City != "" || c.State != "") && c.Zip != "" {
		b.WriteString(" - ")
	}
	b.WriteString(c.Zip.String())
	return b.String()
}

// NotificationRequest is the storefront payload shared by every order email.
type NotificationRequest struct {
	CustomerEmail   string          `json:"customerEmail"`
	OrderDetails    OrderDetails    `json:"orderDetails"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
}

func (r *NotificationRequest) Validate() error {
	if strings.TrimSpace(r.CustomerEmail) == "" {
		return ErrCustomerEmailRequired
	}
	return nil
}

// PlainEmailRequest is the body of the free-form /send-email endpoint.
type PlainEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r *PlainEmailRequest) Validate() error {
	if strings.TrimSpace(r.To) == "" {
		return ErrRecipientRequired
	}
	return nil
}
