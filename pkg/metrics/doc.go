// Package metrics provides Prometheus instrumentation for utimer components.
//
// This package enables monitoring and observability for the timed-function
// slot and the duration quantizer through Prometheus metrics.
//
// # Overview
//
// The metrics package provides automatic instrumentation for:
//   - Slot lifecycle (registrations, firings, cancellations, polls)
//   - Plan shape (overflow count, remainder ticks, wall-clock length)
//   - Quantization error (requested vs quantized duration)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructor:
//
//	sched, err := timer.NewWithMetrics(periph.NewSim8(), "heartbeat")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	sched, err := timer.NewWithConfigAndMetrics(
//		timer.Config{Peripheral: periph.NewSim8()},
//		"heartbeat",
//		config,
//	)
//
// # Available Metrics
//
//   - utimer_slot_arms_total: Total number of timed-function registrations
//   - utimer_slot_fires_total: Total number of callback firings
//   - utimer_slot_clears_total: Total number of cancellations
//   - utimer_slot_polled_total: Total deferred callbacks drained by Poll
//   - utimer_slot_armed: Whether a timed function is currently armed
//   - utimer_slot_errors_total: Total number of rejected registrations
//   - utimer_plan_overflows: Full counter cycles of the armed plan
//   - utimer_plan_remainder_ticks: Partial-cycle ticks of the armed plan
//   - utimer_plan_duration_seconds: Wall-clock length of the armed plan
//   - utimer_plan_quantize_error_seconds: Requested vs quantized difference
//
// # Labels
//
//   - timer_name: User-provided name for the scheduler instance
//   - mode: "timeout" or "interval"
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	sched.DisableMetrics()            // Stop collecting metrics
//	sched.EnableMetrics(config)       // Re-enable with new config
//	enabled := sched.MetricsEnabled() // Check current state
package metrics
