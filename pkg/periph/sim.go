package periph

import (
	"sync"
	"time"

	"github.com/vnykmshr/utimer/pkg/quantize"
)

// Sim is a deterministic virtual-time model of a prescaled up-counter.
// Advance steps the model tick by tick and delivers overflow or compare
// interrupts to the registered handler at the exact wrap points, so a
// sequencer driven by a Sim observes the same interrupt pattern the real
// counter would produce.
//
// Sim is not safe for concurrent Advance calls; drive it from one
// goroutine, the way a single interrupt line serializes real hardware.
type Sim struct {
	mu      sync.Mutex
	table   quantize.Table
	handler Handler

	tier    quantize.Tier
	counter uint64
	ceiling uint64
	running bool
	ovfIRQ  bool
	cmpIRQ  bool

	cycles  uint64 // consumed input-clock cycles since creation
	nsCarry uint64 // sub-cycle remainder of Advance, in ns*ClockHz units
	phase   uint64 // input cycles accumulated toward the next counter tick
}

// NewSim creates a virtual counter for the given prescaler table.
func NewSim(table quantize.Table) *Sim {
	return &Sim{
		table:   table,
		ceiling: uint64(table.CounterMax),
	}
}

// NewSim8 creates the 8-bit overflow-style counter: 16MHz input clock and
// the divisor ladder 1/8/32/64/128/256/1024 (16us to 16384us per cycle).
func NewSim8() *Sim {
	return NewSim(quantize.Table{
		ClockHz:    16_000_000,
		CounterMax: 255,
		Style:      quantize.Overflow,
		Divisors:   []uint32{1, 8, 32, 64, 128, 256, 1024},
	})
}

// NewSim16 creates the 16-bit compare-match counter: 120MHz input clock
// with the /16 and /1024 prescaler pair.
func NewSim16() *Sim {
	return NewSim(quantize.Table{
		ClockHz:    120_000_000,
		CounterMax: 65535,
		Style:      quantize.Compare,
		Divisors:   []uint32{16, 1024},
	})
}

// Table implements Peripheral.
func (s *Sim) Table() quantize.Table {
	return s.table
}

// SetHandler implements Peripheral.
func (s *Sim) SetHandler(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// Configure implements Peripheral. The prescaler phase restarts so the
// first tick after reprogramming is a full tick.
func (s *Sim) Configure(tier quantize.Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tier = tier
	s.phase = 0
}

// LoadCounter implements Peripheral.
func (s *Sim) LoadCounter(preload uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter = uint64(preload)
}

// SetCompareCeiling implements Peripheral.
func (s *Sim) SetCompareCeiling(value uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ceiling = uint64(value)
}

// EnableOverflowInterrupt implements Peripheral.
func (s *Sim) EnableOverflowInterrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ovfIRQ = true
}

// DisableOverflowInterrupt implements Peripheral.
func (s *Sim) DisableOverflowInterrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ovfIRQ = false
}

// EnableCompareInterrupt implements Peripheral.
func (s *Sim) EnableCompareInterrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmpIRQ = true
}

// DisableCompareInterrupt implements Peripheral.
func (s *Sim) DisableCompareInterrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmpIRQ = false
}

// Start implements Peripheral.
func (s *Sim) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
}

// Stop implements Peripheral.
func (s *Sim) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// Counter returns the current counter register value.
func (s *Sim) Counter() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint32(s.counter)
}

// Running reports whether the counter is counting.
func (s *Sim) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Now returns the virtual time elapsed since creation, truncated to
// nanosecond resolution. Time passes during Advance whether or not the
// counter is running.
func (s *Sim) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.cycles / s.table.ClockHz * 1e9
	ns += s.cycles % s.table.ClockHz * 1e9 / s.table.ClockHz
	return time.Duration(ns)
}

// Advance moves virtual time forward by d, stepping the counter and
// delivering interrupts at every cycle boundary crossed. Keep individual
// steps below about a virtual minute so the internal cycle math cannot
// overflow at high clock rates.
func (s *Sim) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	num := s.nsCarry + uint64(d.Nanoseconds())*s.table.ClockHz
	cyc := num / 1e9
	s.nsCarry = num % 1e9
	s.advanceCycles(cyc)
}

// advanceCycles consumes input-clock cycles, firing the handler at each
// overflow or compare event. Called with the lock held; the lock is
// released around handler invocations so the handler can reprogram the
// counter.
func (s *Sim) advanceCycles(cyc uint64) {
	for cyc > 0 {
		if !s.running || s.tier.Divisor == 0 {
			s.cycles += cyc
			return
		}

		div := uint64(s.tier.Divisor)
		toEvent := s.ticksToEvent()*div - s.phase
		if cyc < toEvent {
			s.cycles += cyc
			total := s.phase + cyc
			s.counter += total / div
			s.phase = total % div
			return
		}

		cyc -= toEvent
		s.cycles += toEvent
		s.phase = 0
		s.counter = 0
		s.interrupt()
	}
}

// ticksToEvent returns how many counter ticks remain until the next
// overflow wrap or compare match.
func (s *Sim) ticksToEvent() uint64 {
	if s.tier.Style == quantize.Compare {
		if s.ceiling > s.counter {
			return s.ceiling - s.counter
		}
		return 1
	}
	return uint64(s.table.CounterMax) + 1 - s.counter
}

func (s *Sim) interrupt() {
	enabled := s.ovfIRQ
	if s.tier.Style == quantize.Compare {
		enabled = s.cmpIRQ
	}
	if !enabled || s.handler == nil {
		return
	}
	h := s.handler
	s.mu.Unlock()
	h()
	s.mu.Lock()
}
