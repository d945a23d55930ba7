// Package sim provides a virtual-time test harness for schedulers driven
// by simulated counter peripherals.
//
// The harness arms a scheduler, advances virtual time in fixed steps and
// records the instant of every callback firing. Recorded firings can be
// reduced to inter-fire spacings and summary statistics, which is how
// quantization accuracy and interval stability are asserted without real
// hardware or wall-clock sleeps.
//
// Basic usage:
//
//	h := sim.NewHarness(periph.NewSim8())
//	h.S.SetIntervalMicros(h.Callback(), 1000)
//	h.Run(50*time.Millisecond, time.Millisecond)
//
//	stats := h.Stats()
//	fmt.Printf("fires=%d mean=%v\n", stats.Count, stats.Mean)
package sim
