// Package metrics provides Prometheus instrumentation for utimer components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for utimer components.
type Registry struct {
	// Slot lifecycle metrics
	SlotArms   *prometheus.CounterVec
	SlotFires  *prometheus.CounterVec
	SlotClears *prometheus.CounterVec
	SlotPolled *prometheus.CounterVec
	SlotArmed  *prometheus.GaugeVec
	SlotErrors *prometheus.CounterVec

	// Plan shape metrics
	PlanOverflows *prometheus.GaugeVec
	PlanRemainder *prometheus.GaugeVec
	PlanDuration  *prometheus.GaugeVec

	// Quantization metrics
	QuantizeError *prometheus.HistogramVec
}

// DefaultRegistry is the default metrics registry used by utimer components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		SlotArms: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "utimer",
				Subsystem: "slot",
				Name:      "arms_total",
				Help:      "Total number of timed-function registrations",
			},
			[]string{"timer_name", "mode"},
		),

		SlotFires: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "utimer",
				Subsystem: "slot",
				Name:      "fires_total",
				Help:      "Total number of callback firings",
			},
			[]string{"timer_name", "mode"},
		),

		SlotClears: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "utimer",
				Subsystem: "slot",
				Name:      "clears_total",
				Help:      "Total number of cancellations",
			},
			[]string{"timer_name"},
		),

		SlotPolled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "utimer",
				Subsystem: "slot",
				Name:      "polled_total",
				Help:      "Total number of deferred callbacks drained by Poll",
			},
			[]string{"timer_name"},
		),

		SlotArmed: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "utimer",
				Subsystem: "slot",
				Name:      "armed",
				Help:      "Whether a timed function is currently armed (0 or 1)",
			},
			[]string{"timer_name"},
		),

		SlotErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "utimer",
				Subsystem: "slot",
				Name:      "errors_total",
				Help:      "Total number of rejected registrations",
			},
			[]string{"timer_name"},
		),

		PlanOverflows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "utimer",
				Subsystem: "plan",
				Name:      "overflows",
				Help:      "Full counter cycles of the armed plan",
			},
			[]string{"timer_name"},
		),

		PlanRemainder: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "utimer",
				Subsystem: "plan",
				Name:      "remainder_ticks",
				Help:      "Partial-cycle ticks of the armed plan",
			},
			[]string{"timer_name"},
		),

		PlanDuration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "utimer",
				Subsystem: "plan",
				Name:      "duration_seconds",
				Help:      "Wall-clock length of the armed plan",
			},
			[]string{"timer_name"},
		),

		QuantizeError: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "utimer",
				Subsystem: "plan",
				Name:      "quantize_error_seconds",
				Help:      "Absolute difference between requested and quantized duration",
				Buckets:   prometheus.ExponentialBuckets(1e-9, 10, 10),
			},
			[]string{"timer_name"},
		),
	}
}
