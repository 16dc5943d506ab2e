package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StockMetrics records counters for inventory movements.
type StockMetrics struct {
	movements *prometheus.CounterVec
	clamped   prometheus.Counter
	rejected  *prometheus.CounterVec
}

// NewStockMetrics registers the stock metrics on the provided registerer.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_total",
		Help: "Inventory movements recorded, by transaction type.",
	}, []string{"type"})
	clamped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stock_clamped_total",
		Help: "Movements whose resulting stock was clamped at zero.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_rejected_total",
		Help: "Movements rejected before any write, by reason.",
	}, []string{"reason"})
	reg.MustRegister(movements, clamped, rejected)
	return &StockMetrics{
		movements: movements,
		clamped:   clamped,
		rejected:  rejected,
	}
}

// IncMovement increments the movement counter for a transaction type.
func (s *StockMetrics) IncMovement(txType string) {
	if s == nil || s.movements == nil {
		return
	}
	s.movements.WithLabelValues(normalizeLabel(txType)).Inc()
}

// IncClamped increments the clamped-at-zero counter.
func (s *StockMetrics) IncClamped() {
	if s == nil || s.clamped == nil {
		return
	}
	s.clamped.Inc()
}

// IncRejected increments the rejection counter for the given reason.
func (s *StockMetrics) IncRejected(reason string) {
	if s == nil || s.rejected == nil {
		return
	}
	s.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
