// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relay-service/config"
	"relay-service/internal/handler"
	"relay-service/internal/metrics"
	"relay-service/internal/provider/fast2sms"
	"relay-service/internal/provider/razorpay"
	"relay-service/internal/provider/smtp"
	"relay-service/internal/provider/whatstool"
	"relay-service/internal/repository"
	"relay-service/internal/router"
	"relay-service/internal/usecase"
	"relay-service/pkg/template"

	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("starting relay service")

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("otp_store", cfg.OTP.Store),
		zap.Duration("channel_timeout", cfg.Dispatch.ChannelTimeout))

	// OTP store
	var otpStore repository.OTPStore
	switch cfg.OTP.Store {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := repository.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		otpStore = repository.NewRedisOTPStore(rdb, cfg.OTP.Grace)
		logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr()))
	default:
		otpStore = repository.NewMemoryOTPStore()
	}

	renderer, err := template.New()
	if err != nil {
		logger.Fatal("failed to parse email templates", zap.Error(err))
	}

	m := metrics.NewDefault()

	// Initialize providers
	mailer := smtp.NewMailer(cfg.SMTP, logger)
	whatsApp := whatstool.NewClient(cfg.WhatsApp, logger)
	sms := fast2sms.NewClient(cfg.SMS, logger)
	gateway := razorpay.NewClient(cfg.Razorpay, logger)

	// Initialize usecases
	notificationUC := usecase.NewNotificationUsecase(
		mailer,
		whatsApp,
		renderer,
		usecase.NotificationConfig{
			Mailbox:            mailer.From(),
			ChannelTimeout:     cfg.Dispatch.ChannelTimeout,
			WhatsAppTemplateID: cfg.WhatsApp.TemplateID,
			HeaderMediaURL:     cfg.WhatsApp.HeaderMediaURL,
			CallbackData:       cfg.WhatsApp.CallbackData,
		},
		m,
		logger,
	)
	otpUC := usecase.NewOTPUsecase(otpStore, sms, cfg.OTP.TTL, m, logger)
	paymentUC := usecase.NewPaymentUsecase(gateway, cfg.Razorpay.KeySecret, m, logger)

	// Initialize handlers
	notificationHandler := handler.NewNotificationHandler(notificationUC, logger)
	otpHandler := handler.NewOTPHandler(otpUC, logger)
	paymentHandler := handler.NewPaymentHandler(paymentUC, logger)

	r := router.SetupRoutes(notificationHandler, otpHandler, paymentHandler, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Metrics:        m.Handler(),
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
