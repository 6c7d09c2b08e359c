// config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server   ServerConfig
	SMTP     SMTPConfig
	WhatsApp WhatsAppConfig
	SMS      SMSConfig
	Razorpay RazorpayConfig
	OTP      OTPConfig
	Redis    RedisConfig
	Dispatch DispatchConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	RequestTimeout time.Duration
}

type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	InsecureSkipVerify bool
}

type WhatsAppConfig struct {
	BaseURL  string
	SenderNo string
	APIKey   string
	Timeout  time.Duration

	// Order confirmation template
	TemplateID     string
	HeaderMediaURL string
	CallbackData   string
}

type SMSConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type RazorpayConfig struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

type OTPConfig struct {
	TTL   time.Duration
	Store string // memory | redis
	Grace time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type DispatchConfig struct {
	ChannelTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load(logger *zap.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on system env vars")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			Env:            getEnv("ENVIRONMENT", "development"),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		SMTP: SMTPConfig{
			Host:               getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:               getEnvInt("SMTP_PORT", 465),
			Username:           getEnv("EMAIL_USER", ""),
			Password:           getEnv("EMAIL_PASS", ""),
			InsecureSkipVerify: getEnvBool("SMTP_INSECURE_SKIP_VERIFY", false),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:        strings.TrimRight(getEnv("WHATSAPP_BASE_URL", "https://api.whatstool.business"), "/"),
			SenderNo:       getEnv("WHATSAPP_API_NO", ""),
			APIKey:         getEnv("CAMPH_API_KEY", ""),
			Timeout:        getEnvDuration("WHATSAPP_TIMEOUT", 6*time.Second),
			TemplateID:     getEnv("WHATSAPP_ORDER_TEMPLATE_ID", "1160163365950061"),
			HeaderMediaURL: getEnv("WHATSAPP_HEADER_MEDIA_URL", "https://sacredrelm.com/static/media/logo.aade94b43e178c164667.png"),
			CallbackData:   getEnv("WHATSAPP_CALLBACK_DATA", "order_confirmation_sent"),
		},
		SMS: SMSConfig{
			URL:     getEnv("FAST2SMS_URL", "https://www.fast2sms.com/dev/bulkV2"),
			APIKey:  getEnv("FAST2SMS_API_KEY", ""),
			Timeout: getEnvDuration("SMS_TIMEOUT", 10*time.Second),
		},
		Razorpay: RazorpayConfig{
			BaseURL:   strings.TrimRight(getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"), "/"),
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
			Timeout:   getEnvDuration("RAZORPAY_TIMEOUT", 15*time.Second),
		},
		OTP: OTPConfig{
			TTL:   getEnvDuration("OTP_TTL", 5*time.Minute),
			Store: strings.ToLower(getEnv("OTP_STORE", "memory")),
			Grace: getEnvDuration("OTP_REDIS_GRACE", time.Hour),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Dispatch: DispatchConfig{
			ChannelTimeout: getEnvDuration("DISPATCH_CHANNEL_TIMEOUT", 8*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"https://sacredrelm.com", "http://localhost:3000"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.SMTP.Username == "" {
		logger.Warn("EMAIL_USER is empty, email delivery will fail")
	}
	if cfg.SMS.APIKey == "" {
		logger.Warn("FAST2SMS_API_KEY is empty, otp delivery will fail")
	}
	if cfg.Razorpay.KeySecret == "" {
		logger.Warn("RAZORPAY_KEY_SECRET is empty, payment verification will fail")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.OTP.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported OTP_STORE %q (want memory or redis)", c.OTP.Store)
	}
	if c.OTP.TTL <= 0 {
		return fmt.Errorf("OTP_TTL must be positive, got %s", c.OTP.TTL)
	}
	if c.Dispatch.ChannelTimeout <= 0 {
		return fmt.Errorf("DISPATCH_CHANNEL_TIMEOUT must be positive, got %s", c.Dispatch.ChannelTimeout)
	}
	if c.SMTP.Port <= 0 {
		return fmt.Errorf("invalid SMTP_PORT %d", c.SMTP.Port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolVal, err := strconv.ParseBool(value)
		if err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("8s") or bare milliseconds ("8000").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
