package timer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/utimer/pkg/metrics"
	"github.com/vnykmshr/utimer/pkg/periph"
	"github.com/vnykmshr/utimer/pkg/quantize"
)

// MetricsScheduler wraps a Scheduler with Prometheus metrics collection.
// Firing counts are collected by wrapping the registered callback, so they
// reflect actual callback invocations under both dispatch modes.
type MetricsScheduler struct {
	scheduler Scheduler
	name      string
	registry  *metrics.Registry
	enabled   bool
}

// NewWithMetrics creates a scheduler over the given peripheral with
// metrics enabled.
func NewWithMetrics(p periph.Peripheral, name string) (Scheduler, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{Peripheral: p}, name, config)
}

// NewWithConfigAndMetrics creates a scheduler with custom config and metrics.
func NewWithConfigAndMetrics(cfg Config, name string, metricsConfig metrics.Config) (Scheduler, error) {
	base, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return base, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	return &MetricsScheduler{
		scheduler: base,
		name:      name,
		registry:  registry,
		enabled:   true,
	}, nil
}

// SetIntervalMicros arms cb to fire every us microseconds.
func (ms *MetricsScheduler) SetIntervalMicros(cb func(), us uint64) error {
	return ms.arm(Interval, func(wrapped func()) error {
		return ms.scheduler.SetIntervalMicros(wrapped, us)
	}, cb)
}

// SetIntervalSeconds arms cb to fire every s seconds.
func (ms *MetricsScheduler) SetIntervalSeconds(cb func(), s uint64) error {
	return ms.arm(Interval, func(wrapped func()) error {
		return ms.scheduler.SetIntervalSeconds(wrapped, s)
	}, cb)
}

// SetTimeoutMicros arms cb to fire once after us microseconds.
func (ms *MetricsScheduler) SetTimeoutMicros(cb func(), us uint64) error {
	return ms.arm(Timeout, func(wrapped func()) error {
		return ms.scheduler.SetTimeoutMicros(wrapped, us)
	}, cb)
}

// SetTimeoutSeconds arms cb to fire once after s seconds.
func (ms *MetricsScheduler) SetTimeoutSeconds(cb func(), s uint64) error {
	return ms.arm(Timeout, func(wrapped func()) error {
		return ms.scheduler.SetTimeoutSeconds(wrapped, s)
	}, cb)
}

func (ms *MetricsScheduler) arm(mode Mode, set func(func()) error, cb func()) error {
	wrapped := cb
	if ms.enabled && cb != nil {
		wrapped = func() {
			ms.registry.SlotFires.WithLabelValues(ms.name, mode.String()).Inc()
			cb()
		}
	}

	err := set(wrapped)

	if ms.enabled {
		if err != nil {
			ms.registry.SlotErrors.WithLabelValues(ms.name).Inc()
		} else {
			ms.registry.SlotArms.WithLabelValues(ms.name, mode.String()).Inc()
		}
		ms.observePlan()
	}
	return err
}

// observePlan mirrors the armed state into the gauges.
func (ms *MetricsScheduler) observePlan() {
	armed := 0.0
	if ms.scheduler.Armed() {
		armed = 1.0
	}
	ms.registry.SlotArmed.WithLabelValues(ms.name).Set(armed)

	plan := ms.scheduler.Plan()
	ms.registry.PlanOverflows.WithLabelValues(ms.name).Set(float64(plan.Overflows))
	ms.registry.PlanRemainder.WithLabelValues(ms.name).Set(float64(plan.Remainder))
	ms.registry.PlanDuration.WithLabelValues(ms.name).Set(plan.Duration().Seconds())
}

// Clear cancels any armed timed function.
func (ms *MetricsScheduler) Clear() {
	ms.scheduler.Clear()
	if ms.enabled {
		ms.registry.SlotClears.WithLabelValues(ms.name).Inc()
		ms.observePlan()
	}
}

// Poll drains deferred firings.
func (ms *MetricsScheduler) Poll() int {
	n := ms.scheduler.Poll()
	if ms.enabled && n > 0 {
		ms.registry.SlotPolled.WithLabelValues(ms.name).Add(float64(n))
	}
	return n
}

// Mode returns the active mode.
func (ms *MetricsScheduler) Mode() Mode { return ms.scheduler.Mode() }

// Armed reports whether a timed function is pending.
func (ms *MetricsScheduler) Armed() bool { return ms.scheduler.Armed() }

// Plan returns the base plan of the armed duration.
func (ms *MetricsScheduler) Plan() quantize.Plan { return ms.scheduler.Plan() }

// Cursor returns the mutable progress through the armed plan.
func (ms *MetricsScheduler) Cursor() (uint64, uint32) { return ms.scheduler.Cursor() }

// EnableMetrics implements metrics.Instrumentable.
func (ms *MetricsScheduler) EnableMetrics(config metrics.Config) error {
	if config.Registry != nil {
		ms.registry = metrics.NewRegistry(config.Registry)
	} else if ms.registry == nil {
		ms.registry = metrics.DefaultRegistry
	}
	ms.enabled = config.Enabled
	return nil
}

// DisableMetrics implements metrics.Instrumentable.
func (ms *MetricsScheduler) DisableMetrics() {
	ms.enabled = false
}

// MetricsEnabled implements metrics.Instrumentable.
func (ms *MetricsScheduler) MetricsEnabled() bool {
	return ms.enabled
}
