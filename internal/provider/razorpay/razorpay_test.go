package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"relay-service/config"
	"relay-service/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const goldenSignature = "3dd5062c53f808ef094a994bb1e6be30c96d9d105a92a3e9d2bf1e23d040971a"

func testConfig(baseURL string) config.RazorpayConfig {
	return config.RazorpayConfig{
		BaseURL:   baseURL,
		KeyID:     "rzp_test_key",
		KeySecret: "testsecret",
		Timeout:   time.Second,
	}
}

func TestSignatureGolden(t *testing.T) {
	assert.Equal(t, goldenSignature, Signature("testsecret", "order_abc", "pay_xyz"))
	assert.True(t, VerifySignature("testsecret", "order_abc", "pay_xyz", goldenSignature))
}

func TestVerifySignatureRejectsAnySingleCharChange(t *testing.T) {
	for i := range goldenSignature {
		mutated := []byte(goldenSignature)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}
		assert.False(t, VerifySignature("testsecret", "order_abc", "pay_xyz", string(mutated)), "position %d", i)
	}

	assert.False(t, VerifySignature("testsecret", "order_abd", "pay_xyz", goldenSignature))
	assert.False(t, VerifySignature("othersecret", "order_abc", "pay_xyz", goldenSignature))
	assert.False(t, VerifySignature("testsecret", "order_abc", "pay_xyz", ""))
}

func TestCreateOrder(t *testing.T) {
	var got provider.OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "testsecret", pass)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"id":"order_123","amount":4999,"currency":"INR","status":"created"}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	order, err := c.CreateOrder(context.Background(), &provider.OrderRequest{
		Amount:   4999,
		Currency: "INR",
		Receipt:  "receipt_1",
		Notes:    map[string]interface{}{"note": ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "order_123", order["id"])
	assert.Equal(t, int64(4999), got.Amount)
	assert.Equal(t, "receipt_1", got.Receipt)
	assert.Equal(t, "rzp_test_key", c.KeyID())
}

func TestCreateOrderProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Order amount less than minimum amount allowed"}}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	_, err := c.CreateOrder(context.Background(), &provider.OrderRequest{Amount: 50, Currency: "INR"})

	var apiErr *provider.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Payload, "error")
}
