// internal/provider/fast2sms/fast2sms.go
package fast2sms

import (
	"bytes"
	"context"
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

const providerName = "fast2sms"

type Client struct {
	config     config.SMSConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.SMSConfig, logger *zap.Logger) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type otpRequest struct {
	Route           string `json:"route"`
	VariablesValues string `json:"variables_values"`
	Numbers         string `json:"numbers"`
	Flash           int    `json:"flash"`
}

// SendOTP delivers code through the OTP route. The call only counts as delivered
// when the gateway reports return=true or type="success", whatever the HTTP status.
func (c *Client) SendOTP(ctx context.Context, phoneNumber, code string) (*provider.Delivery, error) {
	if c.config.APIKey == "" {
		return nil, fmt.Errorf("FAST2SMS_API_KEY: %w", domain.ErrNotConfigured)
	}

	start := time.Now()
	body, err := json.Marshal(otpRequest{
		Route:           "otp",
		VariablesValues: code,
		Numbers:         phoneNumber,
		Flash:           0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("sms http error",
			zap.String("recipient", phoneNumber),
			zap.Error(err))
		return nil, fmt.Errorf("sms http error: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	_ = json.Unmarshal(respBody, &result)

	if !accepted(result) {
		c.logger.Error("sms send rejected",
			zap.String("recipient", phoneNumber),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
			zap.ByteString("response", respBody))
		return nil, fmt.Errorf("%w: %w", domain.ErrDeliveryRejected, &provider.APIError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Payload:    result,
			Body:       string(respBody),
		})
	}

	c.logger.Info("otp sms sent",
		zap.String("recipient", phoneNumber),
		zap.Duration("duration", time.Since(start)))

	d := &provider.Delivery{
		Channel:   provider.ChannelSMS,
		Recipient: phoneNumber,
		Response:  result,
	}
	if id, ok := result["request_id"]; ok && id != nil {
		d.Reference = fmt.Sprint(id)
	}
	return d, nil
}

func accepted(result map[string]interface{}) bool {
	if ok, isBool := result["return"].(bool); isBool && ok {
		return true
	}
	if t, isStr := result["type"].(string); isStr && t == "success" {
		return true
	}
	return false
}
