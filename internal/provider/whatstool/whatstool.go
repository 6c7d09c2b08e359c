// internal/provider/whatstool/whatstool.go
package whatstool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"relay-service/config"
	"relay-service/internal/domain"
	"relay-service/internal/provider"

	"go.uber.org/zap"
)

const providerName = "whatstool"

// Client sends template messages through the WhatsTool business API.
type Client struct {
	config     config.WhatsAppConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.WhatsAppConfig, logger *zap.Logger) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type templateBody struct {
	ID                string `json:"id"`
	HeaderMediaURL    string `json:"header_media_url,omitempty"`
	BodyTextVariables string `json:"body_text_variables"`
}

type messageRequest struct {
	To           string       `json:"to"`
	Type         string       `json:"type"`
	CallbackData string       `json:"callback_data,omitempty"`
	Template     templateBody `json:"template"`
}

func (c *Client) SendWhatsApp(ctx context.Context, msg *provider.WhatsAppTemplate) (*provider.Delivery, error) {
	if c.config.BaseURL == "" || c.config.SenderNo == "" {
		return nil, fmt.Errorf("whatsapp: %w", domain.ErrNotConfigured)
	}
	if strings.TrimSpace(msg.To) == "" {
		return nil, domain.ErrRecipientRequired
	}

	start := time.Now()
	payload := messageRequest{
		To:           msg.To,
		Type:         "template",
		CallbackData: msg.CallbackData,
		Template: templateBody{
			ID:                msg.TemplateID,
			HeaderMediaURL:    msg.HeaderMediaURL,
			BodyTextVariables: strings.Join(msg.Variables, "|"),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/developers/v2/messages/%s", c.config.BaseURL, c.config.SenderNo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("whatsapp http error",
			zap.String("to", msg.To),
			zap.Error(err))
		return nil, fmt.Errorf("whatsapp http error: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	_ = json.Unmarshal(respBody, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("whatsapp send failed",
			zap.String("to", msg.To),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
			zap.ByteString("response", respBody))
		return nil, &provider.APIError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Payload:    result,
			Body:       string(respBody),
		}
	}

	c.logger.Info("whatsapp message sent",
		zap.String("to", msg.To),
		zap.String("template_id", msg.TemplateID),
		zap.Duration("duration", time.Since(start)))

	return &provider.Delivery{
		Channel:   provider.ChannelWhatsApp,
		Recipient: msg.To,
		Reference: messageReference(result),
		Response:  result,
	}, nil
}

func messageReference(result map[string]interface{}) string {
	for _, key := range []string{"message_id", "id", "messageId"} {
		if v, ok := result[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
