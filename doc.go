/*
Package utimer provides a single-slot deferred/periodic callback scheduler
driven by a hardware countdown timer peripheral, in the style of the tiny
Arduino timer libraries, together with pure-Go simulated peripherals for
host-side testing.

Quantization (pkg/quantize):
  - prescaler tier selection and overflow/remainder plan computation

Hardware (pkg/periph):
  - Peripheral: the timer/counter capability interface
  - Sim8, Sim16: virtual-time 8-bit and 16-bit counter models
  - SoftTick: millisecond software ticker backed by the Go runtime

Scheduling (pkg/timer):
  - Scheduler: setTimeout/setInterval/clear over one timer slot
  - direct or poll-drained callback dispatch

Simulation (pkg/sim):
  - harness driving a timer through virtual time with jitter statistics

Example usage:

	import (
		"github.com/vnykmshr/utimer/pkg/periph"
		"github.com/vnykmshr/utimer/pkg/timer"
	)

	t := timer.New(periph.NewSoftTick())
	_ = t.SetIntervalMicros(func() { fmt.Println("tick") }, 500000)
	defer t.Clear()
*/
package utimer
