package timer

import (
	"fmt"
	"sync"
	"sync/atomic"

	uterrors "github.com/vnykmshr/utimer/pkg/common/errors"
	"github.com/vnykmshr/utimer/pkg/periph"
	"github.com/vnykmshr/utimer/pkg/quantize"
)

// Mode is the slot's operating mode. Exactly one mode is active at a time.
type Mode int

const (
	// Off means no timed function is armed.
	Off Mode = iota
	// Timeout fires the callback once and returns to Off.
	Timeout
	// Interval fires the callback periodically until cleared.
	Interval
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case Off:
		return "off"
	case Timeout:
		return "timeout"
	case Interval:
		return "interval"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Dispatch selects where callbacks execute.
type Dispatch int

const (
	// Direct invokes the callback synchronously on the interrupt context.
	Direct Dispatch = iota
	// Deferred counts firings on the interrupt context; Poll runs the
	// callback from the caller's cooperative loop.
	Deferred
)

// Scheduler is the single-slot timed-callback surface.
type Scheduler interface {
	// SetIntervalMicros arms cb to fire every us microseconds.
	SetIntervalMicros(cb func(), us uint64) error
	// SetIntervalSeconds arms cb to fire every s seconds.
	SetIntervalSeconds(cb func(), s uint64) error
	// SetTimeoutMicros arms cb to fire once after us microseconds.
	SetTimeoutMicros(cb func(), us uint64) error
	// SetTimeoutSeconds arms cb to fire once after s seconds.
	SetTimeoutSeconds(cb func(), s uint64) error

	// Clear cancels any armed timed function. Safe to call when nothing
	// is armed; cancellation takes effect no later than the next
	// interrupt boundary.
	Clear()

	// Poll runs callbacks for firings accumulated under Deferred
	// dispatch and returns how many ran. A no-op under Direct dispatch.
	Poll() int

	// Mode returns the active mode.
	Mode() Mode
	// Armed reports whether a timed function is pending.
	Armed() bool
	// Plan returns the base plan of the armed duration, or the zero Plan.
	Plan() quantize.Plan
	// Cursor returns the mutable progress through the armed plan: full
	// cycles still to count and remainder ticks still to schedule.
	Cursor() (overflows uint64, remainder uint32)
}

// Config holds scheduler configuration.
type Config struct {
	// Peripheral is the counter this slot programs. Required.
	Peripheral periph.Peripheral

	// Dispatch selects direct or poll-drained callback execution.
	Dispatch Dispatch
}

// slot is the scheduler implementation: one plan, one mode, one callback.
type slot struct {
	p        periph.Peripheral
	dispatch Dispatch

	// mu is the main-context side of the critical-section discipline;
	// interrupt-side exclusion additionally relies on the interrupt
	// sources being disabled while a plan is mutated.
	mu   sync.Mutex
	mode Mode
	cb   func()
	plan quantize.Plan

	// plan cursor
	overflows uint64
	remainder uint32

	polled  func()        // callback of the registration that last fired deferred
	pending atomic.Uint32 // deferred firings not yet polled
}

// New creates a scheduler over the given peripheral. It panics if p is
// nil; use NewWithConfig for validated construction.
func New(p periph.Peripheral) Scheduler {
	s, err := NewWithConfig(Config{Peripheral: p})
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) (Scheduler, error) {
	if cfg.Peripheral == nil {
		return nil, uterrors.ErrNilPeripheral
	}
	if err := cfg.Peripheral.Table().Validate(); err != nil {
		return nil, err
	}
	if cfg.Dispatch != Direct && cfg.Dispatch != Deferred {
		return nil, uterrors.NewValidationError("timer", "dispatch", cfg.Dispatch, "unknown dispatch mode").
			WithHint("use timer.Direct or timer.Deferred")
	}

	s := &slot{p: cfg.Peripheral, dispatch: cfg.Dispatch}
	cfg.Peripheral.SetHandler(s.onInterrupt)
	return s, nil
}

func (s *slot) SetIntervalMicros(cb func(), us uint64) error {
	return s.arm(cb, Interval, func(tb quantize.Table) (quantize.Plan, error) {
		return quantize.Micros(tb, us)
	})
}

func (s *slot) SetIntervalSeconds(cb func(), sec uint64) error {
	return s.arm(cb, Interval, func(tb quantize.Table) (quantize.Plan, error) {
		return quantize.Seconds(tb, sec)
	})
}

func (s *slot) SetTimeoutMicros(cb func(), us uint64) error {
	return s.arm(cb, Timeout, func(tb quantize.Table) (quantize.Plan, error) {
		return quantize.Micros(tb, us)
	})
}

func (s *slot) SetTimeoutSeconds(cb func(), sec uint64) error {
	return s.arm(cb, Timeout, func(tb quantize.Table) (quantize.Plan, error) {
		return quantize.Seconds(tb, sec)
	})
}

// arm cancels the previous timed function, quantizes the new duration and
// programs the hardware. On any error the previous cancellation stands and
// nothing new is armed.
func (s *slot) arm(cb func(), mode Mode, q func(quantize.Table) (quantize.Plan, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmLocked()

	if cb == nil {
		return uterrors.ErrNilCallback
	}
	plan, err := q(s.p.Table())
	if err != nil {
		return err
	}

	s.mode = mode
	s.cb = cb
	s.plan = plan
	s.overflows = plan.Overflows
	s.remainder = plan.Remainder
	s.program()
	return nil
}

// program writes the full register sequence for the plan cursor and only
// then enables the interrupt source, so no interrupt can be taken against
// half-programmed registers (the original per-architecture bindings
// instead padded the overflow count to absorb one spurious interrupt).
func (s *slot) program() {
	s.p.Configure(s.plan.Tier)
	if s.overflows == 0 {
		// Single partial cycle.
		s.loadRemainder()
		s.remainder = 0
	} else {
		s.p.LoadCounter(0)
		if s.plan.Tier.Style == quantize.Compare {
			s.p.SetCompareCeiling(s.plan.Tier.CounterMax)
		}
	}
	if s.plan.Tier.Style == quantize.Compare {
		s.p.EnableCompareInterrupt()
	} else {
		s.p.EnableOverflowInterrupt()
	}
	s.p.Start()
}

// loadRemainder programs the counter for the final partial cycle:
// overflow counters get a preload, compare counters get the remainder as
// the ceiling.
func (s *slot) loadRemainder() {
	if s.plan.Tier.Style == quantize.Compare {
		s.p.LoadCounter(0)
		s.p.SetCompareCeiling(s.remainder)
	} else {
		s.p.LoadCounter(s.plan.Preload())
	}
}

// onInterrupt is the sequencer step, one hardware overflow or compare
// match at a time: count down full cycles, schedule the partial cycle,
// then fire and either disarm (Timeout) or reseed (Interval).
func (s *slot) onInterrupt() {
	s.mu.Lock()

	if s.mode == Off {
		// Interrupt source should be disabled in Off; ignore stragglers.
		s.mu.Unlock()
		return
	}

	if s.overflows > 0 {
		s.overflows--
	}

	switch {
	case s.overflows == 0 && s.remainder > 0:
		// Consume this interrupt to enter the final partial cycle.
		s.loadRemainder()
		s.remainder = 0
		s.mu.Unlock()

	case s.overflows == 0 && s.remainder == 0:
		cb := s.cb
		if s.mode == Timeout {
			// Disarm before the callback so a callback that re-arms is
			// not clobbered by stale state.
			s.disarmLocked()
		} else {
			s.reseedLocked()
		}
		if s.dispatch == Deferred && cb != nil {
			// Count the firing; Poll runs the callback later even if
			// this was a timeout's final firing.
			s.polled = cb
			s.pending.Add(1)
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		if cb != nil {
			cb()
		}

	default:
		// More full cycles to count; compare counters need the ceiling
		// restored after a partial-cycle match may have lowered it.
		if s.plan.Tier.Style == quantize.Compare {
			s.p.SetCompareCeiling(s.plan.Tier.CounterMax)
		}
		s.mu.Unlock()
	}
}

// reseedLocked restores the cursor from the base plan for the next
// interval period.
func (s *slot) reseedLocked() {
	if s.plan.Overflows == 0 {
		// Single-partial-cycle period: reprogram the remainder directly.
		s.remainder = s.plan.Remainder
		s.loadRemainder()
		s.remainder = 0
		return
	}
	s.overflows = s.plan.Overflows
	s.remainder = s.plan.Remainder
	s.p.LoadCounter(0)
	if s.plan.Tier.Style == quantize.Compare {
		s.p.SetCompareCeiling(s.plan.Tier.CounterMax)
	}
}

func (s *slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmLocked()
}

// disarmLocked disables the interrupt sources, stops the counter and
// resets the slot to Off. Pending deferred firings are dropped with the
// registration they belong to.
func (s *slot) disarmLocked() {
	s.p.DisableOverflowInterrupt()
	s.p.DisableCompareInterrupt()
	s.p.Stop()
	s.mode = Off
	s.cb = nil
	s.plan = quantize.Plan{}
	s.overflows = 0
	s.remainder = 0
	s.polled = nil
	s.pending.Store(0)
}

func (s *slot) Poll() int {
	n := int(s.pending.Swap(0))
	if n == 0 {
		return 0
	}
	s.mu.Lock()
	cb := s.polled
	s.mu.Unlock()
	if cb == nil {
		return 0
	}
	for i := 0; i < n; i++ {
		cb()
	}
	return n
}

func (s *slot) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *slot) Armed() bool {
	return s.Mode() != Off
}

func (s *slot) Plan() quantize.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

func (s *slot) Cursor() (uint64, uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overflows, s.remainder
}
