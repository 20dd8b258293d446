package generate

import (
	"time"

	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts generation work on a private registry so a CLI run can dump
// it to a node_exporter textfile without touching the global registry.
type Metrics struct {
	registry   *prometheus.Registry
	runs       prometheus.Counter
	variants   *prometheus.CounterVec
	operations *prometheus.CounterVec
	duration   prometheus.Histogram
}

// NewMetrics creates and registers the generation metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cabinetplan",
			Subsystem: "generate",
			Name:      "runs_total",
			Help:      "Total generation runs completed",
		}),
		// Labels: layout (canonical id)
		variants: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cabinetplan",
			Subsystem: "generate",
			Name:      "variants_total",
			Help:      "Total variants generated",
		}, []string{"layout"}),
		// Labels: layout, type (remove, add, finish), reason (budget-down, budget-up)
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cabinetplan",
			Subsystem: "optimizer",
			Name:      "operations_total",
			Help:      "Total optimizer operations applied to generated variants",
		}, []string{"layout", "type", "reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cabinetplan",
			Subsystem: "generate",
			Name:      "duration_seconds",
			Help:      "Wall time of a generation run",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
	m.registry.MustRegister(m.runs, m.variants, m.operations, m.duration)
	return m
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile writes every metric in the text exposition format.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observeVariant(layout model.LayoutID, ops []model.Operation) {
	if m == nil {
		return
	}
	m.variants.WithLabelValues(string(layout)).Inc()
	for _, op := range ops {
		m.operations.WithLabelValues(string(layout), op.OperationType(), string(model.OperationReason(op))).Inc()
	}
}

func (m *Metrics) observeRun(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.duration.Observe(elapsed.Seconds())
}
