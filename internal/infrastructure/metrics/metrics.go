package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WebhookMetrics holds the reconciliation metrics.
type WebhookMetrics struct {
	// Inbound notifications by final outcome
	NotificationsTotal prometheus.CounterVec

	// Persisted status changes
	StatusTransitionsTotal prometheus.CounterVec

	// Customer messages by status and delivery result
	CustomerMessagesTotal prometheus.CounterVec

	ProcessingDuration      prometheus.HistogramVec
	ProcessorLookupDuration prometheus.HistogramVec

	ErrorsTotal prometheus.CounterVec
}

// NewWebhookMetrics registers the collectors on reg. A nil reg uses the default registerer.
func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &WebhookMetrics{
		NotificationsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhook_notifications_total",
				Help: "Inbound payment notifications by outcome",
			},
			[]string{"outcome"},
		),

		StatusTransitionsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_status_transitions_total",
				Help: "Persisted payment status transitions",
			},
			[]string{"from", "to"},
		),

		CustomerMessagesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_customer_messages_total",
				Help: "Customer payment messages by status and delivery result",
			},
			[]string{"status", "result"},
		),

		ProcessingDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_webhook_processing_duration_seconds",
				Help:    "Time spent handling one notification",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms, 20ms, 40ms...
			},
			[]string{"outcome"},
		),

		ProcessorLookupDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_processor_lookup_duration_seconds",
				Help:    "Time spent fetching the authoritative payment",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"result"},
		),

		ErrorsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhook_errors_total",
				Help: "Reconciliation errors by type",
			},
			[]string{"error_type"},
		),
	}
}

func (m *WebhookMetrics) RecordNotification(outcome string, durationSeconds float64) {
	m.NotificationsTotal.WithLabelValues(outcome).Inc()
	m.ProcessingDuration.WithLabelValues(outcome).Observe(durationSeconds)
}

func (m *WebhookMetrics) RecordTransition(from, to string) {
	m.StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *WebhookMetrics) RecordCustomerMessage(status string, delivered bool) {
	result := "delivered"
	if !delivered {
		result = "failed"
	}
	m.CustomerMessagesTotal.WithLabelValues(status, result).Inc()
}

func (m *WebhookMetrics) RecordProcessorLookup(result string, durationSeconds float64) {
	m.ProcessorLookupDuration.WithLabelValues(result).Observe(durationSeconds)
}

func (m *WebhookMetrics) RecordError(errorType string) {
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
