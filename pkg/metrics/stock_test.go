package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStockMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStockMetrics(reg)

	m.IncMovement("sold")
	m.IncMovement("sold")
	m.IncMovement("received")
	m.IncClamped()
	m.IncRejected("invalid_quantity")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "stock_movements_total", "type", "sold"); err != nil {
		t.Fatalf("fetch sold: %v", err)
	} else if got != 2 {
		t.Fatalf("expected sold=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "stock_rejected_total", "reason", "invalid_quantity"); err != nil {
		t.Fatalf("fetch rejected: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejected=1, got %f", got)
	}

	clamped := findMetricFamily(mfs, "stock_clamped_total")
	if clamped == nil {
		t.Fatal("stock_clamped_total not found")
	}
	if got := clamped.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected clamped=1, got %f", got)
	}
}

func TestStockMetricsNilSafe(t *testing.T) {
	var m *StockMetrics
	m.IncMovement("sold")
	m.IncClamped()
	m.IncRejected("")

	unregistered := NewStockMetrics(nil)
	unregistered.IncMovement("received")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
