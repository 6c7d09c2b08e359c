// internal/provider/smtp/smtp.go
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"relay-service/config"
	"relay-service/internal/domain"
	"relay-service/internal/provider"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends email through an authenticated SMTP relay. Port 465 uses implicit TLS,
// any other port upgrades with STARTTLS when the server offers it.
type Mailer struct {
	config config.SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Port == 465
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	return &Mailer{
		config: cfg,
		dialer: d,
		logger: logger,
	}
}

// From is the sender mailbox, also used as the CC address for order mail.
func (m *Mailer) From() string {
	return m.config.Username
}

func (m *Mailer) SendEmail(ctx context.Context, msg *provider.EmailMessage) (*provider.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.config.Host == "" || m.config.Username == "" {
		return nil, fmt.Errorf("smtp: %w", domain.ErrNotConfigured)
	}
	if strings.TrimSpace(msg.To) == "" {
		return nil, domain.ErrRecipientRequired
	}

	start := time.Now()
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.config.Host)
	gm := m.buildMessage(msg, messageID)

	if err := m.dialer.DialAndSend(gm); err != nil {
		m.logger.Error("smtp send failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("smtp send: %w", err)
	}

	m.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("message_id", messageID),
		zap.Duration("duration", time.Since(start)))

	return &provider.Delivery{
		Channel:   provider.ChannelEmail,
		Recipient: msg.To,
		Reference: messageID,
	}, nil
}

func (m *Mailer) buildMessage(msg *provider.EmailMessage, messageID string) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.config.Username)
	gm.SetHeader("To", msg.To)
	if len(msg.CC) > 0 {
		gm.SetHeader("Cc", msg.CC...)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetHeader("Message-ID", messageID)
	gm.SetDateHeader("Date", time.Now())

	switch {
	case msg.HTMLBody != "" && msg.PlainBody != "":
		gm.SetBody("text/plain", msg.PlainBody)
		gm.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		gm.SetBody("text/html", msg.HTMLBody)
	default:
		gm.SetBody("text/plain", msg.PlainBody)
	}
	return gm
}
