package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OTP_STORE", "")
	t.Setenv("DISPATCH_CHANNEL_TIMEOUT", "")
	t.Setenv("OTP_TTL", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, "memory", cfg.OTP.Store)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 8*time.Second, cfg.Dispatch.ChannelTimeout)
	assert.Equal(t, "1160163365950061", cfg.WhatsApp.TemplateID)
	assert.Equal(t, []string{"https://sacredrelm.com", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("OTP_STORE", "Redis")
	t.Setenv("DISPATCH_CHANNEL_TIMEOUT", "2500")
	t.Setenv("OTP_TTL", "90s")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("WHATSAPP_BASE_URL", "https://wa.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.OTP.Store)
	assert.Equal(t, 2500*time.Millisecond, cfg.Dispatch.ChannelTimeout)
	assert.Equal(t, 90*time.Second, cfg.OTP.TTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "https://wa.example.com", cfg.WhatsApp.BaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("OTP_STORE", "postgres")

	_, err := Load(zap.NewNop())
	assert.ErrorContains(t, err, "OTP_STORE")
}

func TestLoadRejectsNonPositiveChannelTimeout(t *testing.T) {
	for _, value := range []string{"0", "-5s", "-200"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("DISPATCH_CHANNEL_TIMEOUT", value)

			_, err := Load(zap.NewNop())
			assert.ErrorContains(t, err, "DISPATCH_CHANNEL_TIMEOUT")
		})
	}
}

func TestRedisAddr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: "6380"}.Addr())
}
