// internal/usecase/payment_uc.go
package usecase

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"relay-service/internal/domain"
	"relay-service/internal/metrics"
	"relay-service/internal/provider"
	"relay-service/internal/provider/razorpay"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

var hundred = decimal.NewFromInt(100)

type PaymentUsecase struct {
	orders    provider.OrderProvider
	keySecret string
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewPaymentUsecase(orders provider.OrderProvider, keySecret string, m *metrics.Metrics, logger *zap.Logger) *PaymentUsecase {
	return &PaymentUsecase{
		orders:    orders,
		keySecret: keySecret,
		metrics:   m,
		logger:    logger,
	}
}

// CreatedOrder is the gateway order plus the public key checkout needs.
type CreatedOrder struct {
	Order map[string]interface{}
	KeyID string
}

func (uc *PaymentUsecase) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*CreatedOrder, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		uc.metrics.ObservePayment("create_order", "invalid")
		return nil, err
	}

	code, err := normalizeCurrency(req.Currency)
	if err != nil {
		uc.metrics.ObservePayment("create_order", "invalid")
		return nil, err
	}

	receipt := req.Receipt.String()
	if receipt == "" {
		receipt = newReceipt()
	}

	order := &provider.OrderRequest{
		Amount:   amount.Mul(hundred).Round(0).IntPart(),
		Currency: code,
		Receipt:  receipt,
		Notes:    normalizeNotes(req.Notes),
	}

	uc.logger.Info("creating payment order",
		zap.String("amount", amount.String()),
		zap.Int64("amount_minor", order.Amount),
		zap.String("currency", order.Currency),
		zap.String("receipt", order.Receipt))

	created, err := uc.orders.CreateOrder(ctx, order)
	if err != nil {
		uc.metrics.ObservePayment("create_order", metrics.StatusFailed)
		uc.logger.Error("order creation failed",
			zap.String("receipt", order.Receipt),
			zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}

	uc.metrics.ObservePayment("create_order", metrics.StatusSuccess)
	return &CreatedOrder{Order: created, KeyID: uc.orders.KeyID()}, nil
}

// VerifyPayment checks the checkout signature. Nothing is stored either way.
func (uc *PaymentUsecase) VerifyPayment(req *domain.VerifyPaymentRequest) error {
	if uc.keySecret == "" {
		uc.metrics.ObservePayment("verify_payment", "error")
		return fmt.Errorf("RAZORPAY_KEY_SECRET: %w", domain.ErrNotConfigured)
	}

	if !razorpay.VerifySignature(uc.keySecret, req.OrderID, req.PaymentID, req.Signature) {
		uc.metrics.ObservePayment("verify_payment", "mismatch")
		uc.logger.Warn("payment signature mismatch",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID))
		return domain.ErrSignatureMismatch
	}

	uc.metrics.ObservePayment("verify_payment", metrics.StatusSuccess)
	uc.logger.Info("payment verified",
		zap.String("order_id", req.OrderID),
		zap.String("payment_id", req.PaymentID))
	return nil
}

// parseAmount accepts a JSON number or a numeric string and requires it to be > 0.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, domain.ErrInvalidAmount
		}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return amount, nil
}

func normalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.DefaultCurrency, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, code)
	}
	return unit.String(), nil
}

// normalizeNotes keeps a JSON object as-is and wraps anything else as {"note": "..."}.
// Falsy values (null, false, 0, "") become an empty note.
func normalizeNotes(raw json.RawMessage) map[string]interface{} {
	raw = bytes.TrimSpace(raw)

	var obj map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' && json.Unmarshal(raw, &obj) == nil {
		return obj
	}

	var v interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &v)
	}

	note := ""
	switch t := v.(type) {
	case nil:
	case string:
		note = t
	case bool:
		if t {
			note = "true"
		}
	case float64:
		if t != 0 {
			note = decimal.NewFromFloat(t).String()
		}
	default:
		b, _ := json.Marshal(t)
		note = string(b)
	}
	return map[string]interface{}{"note": note}
}

func newReceipt() string {
	return "receipt_" + ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0)).String()
}
