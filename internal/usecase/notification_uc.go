// internal/usecase/notification_uc.go
package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"relay-service/internal/domain"
	"relay-service/internal/guard"
	"relay-service/internal/metrics"
	"relay-service/internal/provider"
	"relay-service/pkg/template"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	emailLabel    = "Email"
	whatsAppLabel = "WhatsApp"
)

type NotificationConfig struct {
	// Mailbox is CC'd on every order email.
	Mailbox        string
	ChannelTimeout time.Duration

	WhatsAppTemplateID string
	HeaderMediaURL     string
	CallbackData       string
}

type NotificationUsecase struct {
	email    provider.EmailSender
	whatsapp provider.WhatsAppSender
	renderer *template.Renderer
	config   NotificationConfig
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewNotificationUsecase(
	email provider.EmailSender,
	whatsapp provider.WhatsAppSender,
	renderer *template.Renderer,
	cfg NotificationConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *NotificationUsecase {
	return &NotificationUsecase{
		email:    email,
		whatsapp: whatsapp,
		renderer: renderer,
		config:   cfg,
		metrics:  m,
		logger:   logger,
	}
}

// DispatchResult holds both settled channel outcomes of one order confirmation.
type DispatchResult struct {
	DispatchID string
	Email      guard.Outcome[*provider.Delivery]
	WhatsApp   guard.Outcome[*provider.Delivery]
}

type DispatchSummary struct {
	StatusCode int
	Success    bool
	Message    string
	Warnings   []string
	Errors     map[string]string
}

// Summary maps the outcome pair to the response the storefront receives. The
// request fails only when neither channel delivered.
func (r *DispatchResult) Summary() DispatchSummary {
	emailOK, whatsAppOK := r.Email.Fulfilled(), r.WhatsApp.Fulfilled()

	switch {
	case emailOK && whatsAppOK:
		return DispatchSummary{
			StatusCode: http.StatusOK,
			Success:    true,
			Message:    "Order confirmation sent via email and WhatsApp successfully",
		}
	case emailOK:
		return DispatchSummary{
			StatusCode: http.StatusOK,
			Success:    true,
			Message:    "Order confirmation sent via email successfully. WhatsApp delivery failed.",
			Warnings:   []string{"WhatsApp notification failed"},
		}
	case whatsAppOK:
		return DispatchSummary{
			StatusCode: http.StatusOK,
			Success:    true,
			Message:    "Order confirmation sent via WhatsApp successfully. Email delivery failed.",
			Warnings:   []string{"Email notification failed"},
		}
	default:
		return DispatchSummary{
			StatusCode: http.StatusInternalServerError,
			Success:    false,
			Message:    "Failed to send order confirmation via both email and WhatsApp",
			Errors: map[string]string{
				"email":    reasonOr(r.Email.Reason(), "Email sending failed"),
				"whatsapp": reasonOr(r.WhatsApp.Reason(), "WhatsApp sending failed"),
			},
		}
	}
}

func (r *DispatchResult) label() string {
	switch emailOK, whatsAppOK := r.Email.Fulfilled(), r.WhatsApp.Fulfilled(); {
	case emailOK && whatsAppOK:
		return "both"
	case emailOK:
		return "email_only"
	case whatsAppOK:
		return "whatsapp_only"
	default:
		return "none"
	}
}

func reasonOr(reason, fallback string) string {
	if reason == "" {
		return fallback
	}
	return reason
}

// OrderConfirmation sends the confirmation by email and WhatsApp at the same time,
// each bounded by the channel timeout, and waits for both to settle. Only a
// validation or rendering problem is returned as an error; channel failures are
// reported through the result.
func (uc *NotificationUsecase) OrderConfirmation(ctx context.Context, req *domain.NotificationRequest) (*DispatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	html, err := uc.renderer.OrderConfirmation(req)
	if err != nil {
		return nil, fmt.Errorf("render order confirmation: %w", err)
	}

	emailMsg := &provider.EmailMessage{
		To:       req.CustomerEmail,
		CC:       uc.cc(),
		Subject:  fmt.Sprintf("Order Confirmation #%s", req.OrderDetails.OrderNumber),
		HTMLBody: html,
	}
	waMsg := &provider.WhatsAppTemplate{
		To:             req.CustomerDetails.Phone,
		TemplateID:     uc.config.WhatsAppTemplateID,
		HeaderMediaURL: uc.config.HeaderMediaURL,
		CallbackData:   uc.config.CallbackData,
		Variables: []string{
			req.CustomerDetails.FirstName,
			req.OrderDetails.OrderNumber.String(),
			req.OrderDetails.ProductsText(),
			req.OrderDetails.TotalAmount.String(),
		},
	}

	result := &DispatchResult{DispatchID: uuid.NewString()}
	logger := uc.logger.With(
		zap.String("dispatch_id", result.DispatchID),
		zap.String("order_number", req.OrderDetails.OrderNumber.String()))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Email = guard.Run(ctx, uc.config.ChannelTimeout, emailLabel,
			func(ctx context.Context) (*provider.Delivery, error) {
				return uc.email.SendEmail(ctx, emailMsg)
			})
	}()
	go func() {
		defer wg.Done()
		result.WhatsApp = guard.Run(ctx, uc.config.ChannelTimeout, whatsAppLabel,
			func(ctx context.Context) (*provider.Delivery, error) {
				return uc.whatsapp.SendWhatsApp(ctx, waMsg)
			})
	}()
	wg.Wait()

	uc.observe(logger, string(provider.ChannelEmail), result.Email)
	uc.observe(logger, string(provider.ChannelWhatsApp), result.WhatsApp)
	uc.metrics.ObserveDispatch(result.label())

	logger.Info("order confirmation dispatched",
		zap.Bool("email_delivered", result.Email.Fulfilled()),
		zap.Bool("whatsapp_delivered", result.WhatsApp.Fulfilled()))

	return result, nil
}

// SendPlain sends a free-form text email.
func (uc *NotificationUsecase) SendPlain(ctx context.Context, req *domain.PlainEmailRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return uc.sendEmail(ctx, &provider.EmailMessage{
		To:        req.To,
		Subject:   req.Subject,
		PlainBody: req.Message,
	})
}

// AbandonedOrder follows up on a checkout that was started but not completed.
func (uc *NotificationUsecase) AbandonedOrder(ctx context.Context, req *domain.NotificationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	html, text, err := uc.renderer.AbandonedOrder(req)
	if err != nil {
		return fmt.Errorf("render abandoned order: %w", err)
	}

	uc.logger.Info("sending abandoned order follow-up",
		zap.String("to", req.CustomerEmail),
		zap.String("order_number", req.OrderDetails.OrderNumber.String()))

	return uc.sendEmail(ctx, &provider.EmailMessage{
		To:        req.CustomerEmail,
		CC:        uc.cc(),
		Subject:   fmt.Sprintf("We noticed you didn't complete your order #%s", req.OrderDetails.OrderNumber),
		HTMLBody:  html,
		PlainBody: text,
	})
}

// AdvancePayment confirms a partially paid order.
func (uc *NotificationUsecase) AdvancePayment(ctx context.Context, req *domain.NotificationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	html, err := uc.renderer.AdvancePayment(req)
	if err != nil {
		return fmt.Errorf("render advance payment: %w", err)
	}

	return uc.sendEmail(ctx, &provider.EmailMessage{
		To:       req.CustomerEmail,
		CC:       uc.cc(),
		Subject:  fmt.Sprintf("Advance Payment Received for Order #%s", req.OrderDetails.OrderNumber),
		HTMLBody: html,
	})
}

func (uc *NotificationUsecase) sendEmail(ctx context.Context, msg *provider.EmailMessage) error {
	out := guard.Run(ctx, uc.config.ChannelTimeout, emailLabel,
		func(ctx context.Context) (*provider.Delivery, error) {
			return uc.email.SendEmail(ctx, msg)
		})
	uc.observe(uc.logger, string(provider.ChannelEmail), out)
	return out.Err
}

func (uc *NotificationUsecase) cc() []string {
	if uc.config.Mailbox == "" {
		return nil
	}
	return []string{uc.config.Mailbox}
}

func (uc *NotificationUsecase) observe(logger *zap.Logger, channel string, out guard.Outcome[*provider.Delivery]) {
	status := metrics.StatusSuccess
	switch {
	case out.TimedOut():
		status = metrics.StatusTimeout
	case !out.Fulfilled():
		status = metrics.StatusFailed
	}
	uc.metrics.ObserveChannelSend(channel, status, out.Elapsed)

	if !out.Fulfilled() {
		logger.Error("channel send failed",
			zap.String("channel", channel),
			zap.String("status", status),
			zap.Duration("elapsed", out.Elapsed),
			zap.Error(out.Err))
	}
}
