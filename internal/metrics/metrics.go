// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusTimeout = "timeout"
)

type Metrics struct {
	registry *prometheus.Registry

	channelSends    *prometheus.CounterVec
	channelDuration *prometheus.HistogramVec
	dispatches      *prometheus.CounterVec
	otpOperations   *prometheus.CounterVec
	paymentOps      *prometheus.CounterVec
}

// New registers the relay collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		channelSends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_channel_sends_total",
				Help: "Provider sends by channel and outcome",
			},
			[]string{"channel", "status"},
		),
		channelDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relay_channel_send_duration_seconds",
				Help:    "Time until a provider send settled or timed out",
				Buckets: []float64{.05, .1, .25, .5, 1, 2, 4, 8, 16},
			},
			[]string{"channel"},
		),
		dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_order_confirmation_dispatches_total",
				Help: "Dual-channel order confirmations by delivered channels",
			},
			[]string{"result"},
		),
		otpOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_otp_operations_total",
				Help: "OTP generate and verify calls by result",
			},
			[]string{"operation", "result"},
		),
		paymentOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_payment_operations_total",
				Help: "Payment order creation and verification by result",
			},
			[]string{"operation", "result"},
		),
	}
}

// NewDefault builds a registry carrying the process and Go runtime collectors.
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return New(reg)
}

func (m *Metrics) ObserveChannelSend(channel, status string, elapsed time.Duration) {
	m.channelSends.WithLabelValues(channel, status).Inc()
	m.channelDuration.WithLabelValues(channel).Observe(elapsed.Seconds())
}

// ObserveDispatch records which channels delivered: "both", "email_only",
// "whatsapp_only" or "none".
func (m *Metrics) ObserveDispatch(result string) {
	m.dispatches.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveOTP(operation, result string) {
	m.otpOperations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) ObservePayment(operation, result string) {
	m.paymentOps.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
