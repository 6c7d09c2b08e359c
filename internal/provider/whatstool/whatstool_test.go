package whatstool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"relay-service/config"
	"relay-service/internal/domain"
	"relay-service/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) config.WhatsAppConfig {
	return config.WhatsAppConfig{
		BaseURL:  baseURL,
		SenderNo: "919800000000",
		APIKey:   "wa-key",
		Timeout:  time.Second,
	}
}

func TestSendWhatsAppPostsTemplate(t *testing.T) {
	var got messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/developers/v2/messages/919800000000", r.URL.Path)
		assert.Equal(t, "wa-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message_id":"wamid.1"}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	d, err := c.SendWhatsApp(context.Background(), &provider.WhatsAppTemplate{
		To:             "919812345678",
		TemplateID:     "1160163365950061",
		HeaderMediaURL: "https://cdn.example.com/logo.png",
		CallbackData:   "order_confirmation_sent",
		Variables:      []string{"Asha", "1042", "Mala×2", "999"},
	})
	require.NoError(t, err)

	assert.Equal(t, provider.ChannelWhatsApp, d.Channel)
	assert.Equal(t, "wamid.1", d.Reference)
	assert.Equal(t, "919812345678", got.To)
	assert.Equal(t, "template", got.Type)
	assert.Equal(t, "order_confirmation_sent", got.CallbackData)
	assert.Equal(t, "1160163365950061", got.Template.ID)
	assert.Equal(t, "https://cdn.example.com/logo.png", got.Template.HeaderMediaURL)
	assert.Equal(t, "Asha|1042|Mala×2|999", got.Template.BodyTextVariables)
}

func TestSendWhatsAppNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())
	_, err := c.SendWhatsApp(context.Background(), &provider.WhatsAppTemplate{To: "919812345678"})
	require.Error(t, err)

	var apiErr *provider.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid api key", apiErr.Payload["error"])
}

func TestSendWhatsAppRequiresRecipient(t *testing.T) {
	c := NewClient(testConfig("http://127.0.0.1:1"), zap.NewNop())

	_, err := c.SendWhatsApp(context.Background(), &provider.WhatsAppTemplate{To: ""})
	assert.ErrorIs(t, err, domain.ErrRecipientRequired)
}

func TestSendWhatsAppRequiresSenderNumber(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.SenderNo = ""
	c := NewClient(cfg, zap.NewNop())

	_, err := c.SendWhatsApp(context.Background(), &provider.WhatsAppTemplate{To: "919812345678"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
