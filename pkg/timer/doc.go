/*
Package timer schedules one deferred or periodic callback on a hardware
countdown timer peripheral.

The scheduler owns a single slot: registering any timed function first
cancels whatever was armed before, so at most one callback is pending
system-wide at any moment. A requested duration is quantized into a
prescaler tier, a whole number of counter overflows, and a final
partial-cycle remainder (see pkg/quantize); the sequencer then walks that
plan one interrupt at a time, reprogramming the counter for the partial
cycle and, in interval mode, reseeding the plan after every firing.

Basic usage:

	t := timer.New(periph.NewSoftTick())

	// Fire once after two seconds.
	_ = t.SetTimeoutSeconds(func() { fmt.Println("done") }, 2)

	// Or fire every 200ms until cleared.
	_ = t.SetIntervalMicros(func() { fmt.Println("tick") }, 200_000)
	defer t.Clear()

Callbacks run synchronously on the interrupt context and must be short and
non-blocking. When the target cannot run arbitrary code in its handler,
configure Deferred dispatch: the interrupt only counts the firing and a
Poll call from the cooperative main loop runs the callback:

	t, _ := timer.NewWithConfig(timer.Config{
		Peripheral: p,
		Dispatch:   timer.Deferred,
	})
	for {
		t.Poll()
		// ... rest of the main loop
	}

Interrupt-context transitions are serialized against SetTimeout/SetInterval/
Clear by disabling the timer's interrupt sources for the duration of the
reprogramming critical section, so the handler can never observe a
half-updated plan.
*/
package timer
