package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestShopMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewShopMetrics(reg)
	m.OrderCreated(150 * time.Millisecond)
	m.OrderCancelled()
	m.CheckoutFailed(ReasonInsufficientStock)
	m.CheckoutFailed(ReasonInsufficientStock)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "veggie_orders_created_total", "", ""); err != nil {
		t.Fatalf("fetch created: %v", err)
	} else if got != 1 {
		t.Fatalf("expected created=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "veggie_orders_cancelled_total", "", ""); err != nil {
		t.Fatalf("fetch cancelled: %v", err)
	} else if got != 1 {
		t.Fatalf("expected cancelled=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "veggie_checkout_failures_total", "reason", ReasonInsufficientStock); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 2 {
		t.Fatalf("expected failures=2, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "veggie_checkout_duration_seconds", "", ""); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestHTTPMetricsLabelsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/products/{id}", 200, 10*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "veggie_http_requests_total", "route", "/api/products/{id}"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected one request, got %f", got)
	}
	if _, err := fetchCounterValue(mfs, "veggie_http_requests_total", "route", "unknown"); err != nil {
		t.Fatalf("empty route should be recorded as unknown: %v", err)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	NewShopMetrics(nil).OrderCreated(time.Second)
	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Second)

	var m *ShopMetrics
	m.CheckoutFailed(ReasonInternal)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, labelKey, labelValue string) (float64, error) {
	metric, err := findMetric(mfs, name, labelKey, labelValue)
	if err != nil {
		return 0, err
	}
	if metric.GetCounter() == nil {
		return 0, fmt.Errorf("%s is not a counter", name)
	}
	return metric.GetCounter().GetValue(), nil
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, labelKey, labelValue string) (float64, error) {
	metric, err := findMetric(mfs, name, labelKey, labelValue)
	if err != nil {
		return 0, err
	}
	if metric.GetHistogram() == nil {
		return 0, fmt.Errorf("%s is not a histogram", name)
	}
	return metric.GetHistogram().GetSampleSum(), nil
}

func findMetric(mfs []*dto.MetricFamily, name, labelKey, labelValue string) (*dto.Metric, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if labelKey == "" {
				return metric, nil
			}
			for _, label := range metric.GetLabel() {
				if label.GetName() == labelKey && label.GetValue() == labelValue {
					return metric, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("metric %s{%s=%q} not found", name, labelKey, labelValue)
}
