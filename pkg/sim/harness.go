package sim

import (
	"time"

	"github.com/vnykmshr/utimer/pkg/periph"
	"github.com/vnykmshr/utimer/pkg/timer"
)

// Steppable is a peripheral whose time the harness controls.
type Steppable interface {
	periph.Peripheral

	// Advance moves virtual time forward by d.
	Advance(d time.Duration)

	// Now returns the virtual time elapsed since creation.
	Now() time.Duration
}

// Harness couples a scheduler to a steppable peripheral and records when
// callbacks fire in virtual time.
type Harness struct {
	// P is the peripheral under harness control.
	P Steppable

	// S is the scheduler programmed against P.
	S timer.Scheduler

	fires []time.Duration
}

// NewHarness creates a harness with a direct-dispatch scheduler over p.
func NewHarness(p Steppable) *Harness {
	return &Harness{P: p, S: timer.New(p)}
}

// Callback returns a callback that records the peripheral's current
// virtual time. Pass it to the scheduler's arm operations.
func (h *Harness) Callback() func() {
	return func() {
		h.fires = append(h.fires, h.P.Now())
	}
}

// Advance moves virtual time forward by d in one step.
func (h *Harness) Advance(d time.Duration) {
	h.P.Advance(d)
}

// Run advances virtual time by total in steps of step, mimicking a loop
// that services the timer at a fixed cadence. Deferred schedulers are
// polled after every step.
func (h *Harness) Run(total, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		h.P.Advance(step)
		h.S.Poll()
	}
}

// Fires returns the recorded firing instants.
func (h *Harness) Fires() []time.Duration {
	return append([]time.Duration(nil), h.fires...)
}

// Spacings returns the durations between consecutive firings. The first
// firing's spacing is measured from time zero.
func (h *Harness) Spacings() []time.Duration {
	out := make([]time.Duration, len(h.fires))
	prev := time.Duration(0)
	for i, f := range h.fires {
		out[i] = f - prev
		prev = f
	}
	return out
}

// Reset discards recorded firings; the armed scheduler is untouched.
func (h *Harness) Reset() {
	h.fires = nil
}
