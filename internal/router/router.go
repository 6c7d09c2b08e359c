// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"relay-service/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	Metrics        http.Handler
}

func SetupRoutes(
	notificationHandler *handler.NotificationHandler,
	otpHandler *handler.OTPHandler,
	paymentHandler *handler.PaymentHandler,
	opts Options,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		// notifications
		r.Post("/send-email", notificationHandler.SendEmail)
		r.Post("/send-order-confirmation", notificationHandler.SendOrderConfirmation)
		r.Post("/send-abandoned-order-email", notificationHandler.SendAbandonedOrderEmail)
		r.Post("/send-advance-payment-confirmation", notificationHandler.SendAdvancePaymentConfirmation)

		// payments
		r.Post("/create-order", paymentHandler.CreateOrder)
		r.Post("/verify-payment", paymentHandler.VerifyPayment)

		// otp
		r.Post("/generate-otp", otpHandler.GenerateOTP)
		r.Post("/verify-otp", otpHandler.VerifyOTP)
	})

	return r
}

// LoggerMiddleware logs one line per request. Failed relays (5xx) log at error level
// and rejected input (4xx) at warn, so provider outages stand out from client mistakes.
func LoggerMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			fields := []zap.Field{
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
				zap.String("origin", r.Header.Get("Origin")),
				zap.String("remote_addr", r.RemoteAddr),
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("relay request failed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("relay request rejected", fields...)
			default:
				logger.Info("relay request", fields...)
			}
		})
	}
}
