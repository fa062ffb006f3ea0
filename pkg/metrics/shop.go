package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Checkout failure reasons.
const (
	ReasonEmptyCart         = "empty_cart"
	ReasonMissingAddress    = "missing_address"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonInternal          = "internal"
)

// ShopMetrics records order lifecycle events.
type ShopMetrics struct {
	ordersCreated    prometheus.Counter
	ordersCancelled  prometheus.Counter
	checkoutFailures *prometheus.CounterVec
	checkoutDuration prometheus.Histogram
}

// NewShopMetrics registers the order metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	if reg == nil {
		return &ShopMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "veggie",
		Name:      "orders_created_total",
		Help:      "Orders placed from a cart.",
	})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "veggie",
		Name:      "orders_cancelled_total",
		Help:      "Orders cancelled by their owner.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "veggie",
		Name:      "checkout_failures_total",
		Help:      "Rejected or failed checkouts.",
	}, []string{"reason"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "veggie",
		Name:      "checkout_duration_seconds",
		Help:      "Duration of successful checkouts in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
	reg.MustRegister(created, cancelled, failures, duration)
	return &ShopMetrics{
		ordersCreated:    created,
		ordersCancelled:  cancelled,
		checkoutFailures: failures,
		checkoutDuration: duration,
	}
}

// OrderCreated counts a placed order and its checkout duration.
func (m *ShopMetrics) OrderCreated(duration time.Duration) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
	m.checkoutDuration.Observe(duration.Seconds())
}

func (m *ShopMetrics) OrderCancelled() {
	if m == nil || m.ordersCancelled == nil {
		return
	}
	m.ordersCancelled.Inc()
}

// CheckoutFailed increments the failure counter for reason.
func (m *ShopMetrics) CheckoutFailed(reason string) {
	if m == nil || m.checkoutFailures == nil {
		return
	}
	m.checkoutFailures.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
