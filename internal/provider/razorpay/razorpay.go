// internal/provider/razorpay/razorpay.go
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"relay-service/config"
	"relay-service/internal/domain"
	"relay-service/internal/provider"

	"go.uber.org/zap"
)

const providerName = "razorpay"

type Client struct {
	config     config.RazorpayConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.RazorpayConfig, logger *zap.Logger) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// KeyID is the public key handed to checkout clients.
func (c *Client) KeyID() string {
	return c.config.KeyID
}

// CreateOrder registers an order on the gateway and returns the gateway's order
// object as-is.
func (c *Client) CreateOrder(ctx context.Context, req *provider.OrderRequest) (map[string]interface{}, error) {
	if c.config.KeyID == "" || c.config.KeySecret == "" {
		return nil, fmt.Errorf("razorpay: %w", domain.ErrNotConfigured)
	}

	start := time.Now()
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	url := c.config.BaseURL + "/v1/orders"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("razorpay http error",
			zap.String("receipt", req.Receipt),
			zap.Error(err))
		return nil, fmt.Errorf("razorpay http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("failed to parse razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("razorpay order creation failed",
			zap.String("receipt", req.Receipt),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
			zap.ByteString("response", body))
		return nil, &provider.APIError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Payload:    result,
			Body:       string(body),
		}
	}

	c.logger.Info("razorpay order created",
		zap.Any("order_id", result["id"]),
		zap.Int64("amount", req.Amount),
		zap.String("currency", req.Currency),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

// Signature is the hex HMAC-SHA256 of "orderID|paymentID" under secret.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares signature against the expected value in constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := Signature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
