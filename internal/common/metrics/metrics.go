package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "natursur_bot"
)

var (
	UserMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "user_messages_total",
			Help:      "Total number of user messages processed",
		},
		[]string{"message_type"},
	)

	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "orders_total",
			Help:      "Total number of order confirmations by outcome",
		},
		[]string{"status"},
	)

	OrderSubmitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "order_submit_duration_seconds",
			Help:      "Order submission duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	SurveysCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "surveys_completed_total",
			Help:      "Total number of completed surveys",
		},
	)

	CartItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cart_items_added_total",
			Help:      "Total number of line items added to carts",
		},
	)

	QuantityValidationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "quantity_validation_errors_total",
			Help:      "Total number of rejected quantity inputs",
		},
	)

	RateLimitedMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rate_limited_messages_total",
			Help:      "Total number of messages dropped by the per-chat rate limiter",
		},
	)
)

func RecordUserMessage(messageType string) {
	UserMessagesTotal.WithLabelValues(messageType).Inc()
}

func RecordOrder(status string, duration time.Duration) {
	OrdersTotal.WithLabelValues(status).Inc()
	OrderSubmitDuration.Observe(duration.Seconds())
}
