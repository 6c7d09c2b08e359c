package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"relay-service/internal/domain"
	"relay-service/internal/metrics"
	"relay-service/internal/provider"
	"relay-service/internal/provider/razorpay"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPaymentUsecase(orders *mockOrderProvider, secret string) *PaymentUsecase {
	return NewPaymentUsecase(orders, secret, metrics.New(prometheus.NewRegistry()), zap.NewNop())
}

func TestCreateOrderConvertsToMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{`499`, 49900},
		{`49.99`, 4999},
		{`"1.005"`, 101},
		{`" 250 "`, 25000},
		{`0.01`, 1},
	}
	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			orders := &mockOrderProvider{}
			orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(r *provider.OrderRequest) bool {
				return r.Amount == tc.want && r.Currency == "INR" && strings.HasPrefix(r.Receipt, "receipt_")
			})).Return(map[string]interface{}{"id": "order_1"}, nil).Once()

			out, err := newPaymentUsecase(orders, "s").CreateOrder(context.Background(), &domain.CreateOrderRequest{
				Amount: json.RawMessage(tc.amount),
			})
			require.NoError(t, err)
			assert.Equal(t, "order_1", out.Order["id"])
			assert.Equal(t, "rzp_test_key", out.KeyID)
			orders.AssertExpectations(t)
		})
	}
}

func TestCreateOrderRejectsInvalidAmount(t *testing.T) {
	for _, amount := range []string{``, `null`, `0`, `-5`, `"abc"`, `true`, `""`} {
		orders := &mockOrderProvider{}
		_, err := newPaymentUsecase(orders, "s").CreateOrder(context.Background(), &domain.CreateOrderRequest{
			Amount: json.RawMessage(amount),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %q", amount)
		orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	}
}

func TestCreateOrderCurrency(t *testing.T) {
	orders := &mockOrderProvider{}
	orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(r *provider.OrderRequest) bool {
		return r.Currency == "USD" && r.Receipt == "cart-77"
	})).Return(map[string]interface{}{}, nil).Once()

	_, err := newPaymentUsecase(orders, "s").CreateOrder(context.Background(), &domain.CreateOrderRequest{
		Amount:   json.RawMessage(`10`),
		Currency: " usd ",
		Receipt:  "cart-77",
	})
	require.NoError(t, err)

	_, err = newPaymentUsecase(&mockOrderProvider{}, "s").CreateOrder(context.Background(), &domain.CreateOrderRequest{
		Amount:   json.RawMessage(`10`),
		Currency: "RUPEES",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestCreateOrderProviderFailure(t *testing.T) {
	orders := &mockOrderProvider{}
	apiErr := &provider.APIError{Provider: "razorpay", StatusCode: 400, Body: "bad"}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, apiErr).Once()

	_, err := newPaymentUsecase(orders, "s").CreateOrder(context.Background(), &domain.CreateOrderRequest{Amount: json.RawMessage(`10`)})

	var got *provider.APIError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 400, got.StatusCode)
}

func TestNormalizeNotes(t *testing.T) {
	cases := []struct {
		raw  string
		want map[string]interface{}
	}{
		{`{"cart":"c1","items":2}`, map[string]interface{}{"cart": "c1", "items": float64(2)}},
		{``, map[string]interface{}{"note": ""}},
		{`null`, map[string]interface{}{"note": ""}},
		{`false`, map[string]interface{}{"note": ""}},
		{`0`, map[string]interface{}{"note": ""}},
		{`""`, map[string]interface{}{"note": ""}},
		{`"gift wrap"`, map[string]interface{}{"note": "gift wrap"}},
		{`42`, map[string]interface{}{"note": "42"}},
		{`true`, map[string]interface{}{"note": "true"}},
		{`["a","b"]`, map[string]interface{}{"note": `["a","b"]`}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeNotes(json.RawMessage(tc.raw)), "notes %s", tc.raw)
	}
}

func TestVerifyPayment(t *testing.T) {
	uc := newPaymentUsecase(&mockOrderProvider{}, "testsecret")
	sig := razorpay.Signature("testsecret", "order_abc", "pay_xyz")

	assert.NoError(t, uc.VerifyPayment(&domain.VerifyPaymentRequest{OrderID: "order_abc", PaymentID: "pay_xyz", Signature: sig}))
	assert.ErrorIs(t, uc.VerifyPayment(&domain.VerifyPaymentRequest{OrderID: "order_abc", PaymentID: "pay_xyy", Signature: sig}), domain.ErrSignatureMismatch)
	assert.ErrorIs(t, uc.VerifyPayment(&domain.VerifyPaymentRequest{OrderID: "order_abc", PaymentID: "pay_xyz"}), domain.ErrSignatureMismatch)

	unconfigured := newPaymentUsecase(&mockOrderProvider{}, "")
	assert.ErrorIs(t, unconfigured.VerifyPayment(&domain.VerifyPaymentRequest{OrderID: "order_abc", PaymentID: "pay_xyz", Signature: sig}), domain.ErrNotConfigured)
}
