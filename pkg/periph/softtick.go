package periph

import (
	"sync"
	"time"

	"github.com/vnykmshr/utimer/pkg/quantize"
)

// softTickMax keeps single delays inside time.Duration range: 2^31
// milliseconds is about 24 days per cycle, so every plan fits in one
// partial cycle with no overflow chaining.
const softTickMax = 1<<31 - 1

// SoftTick emulates a millisecond-resolution counter on top of the Go
// runtime timer, the way platforms without a free hardware timer fall back
// to an OS ticker. Its table advertises a 1kHz tick, so microsecond
// requests quantize to the nearest millisecond with a 1ms floor.
//
// The handler runs on the runtime timer goroutine.
type SoftTick struct {
	mu      sync.Mutex
	handler Handler

	pending uint64 // programmed cycle length in ms ticks
	running bool
	ovfIRQ  bool
	timer   *time.Timer
}

// NewSoftTick creates a software ticker peripheral.
func NewSoftTick() *SoftTick {
	return &SoftTick{pending: 1}
}

// Table implements Peripheral.
func (s *SoftTick) Table() quantize.Table {
	return quantize.Table{
		ClockHz:    1000,
		CounterMax: softTickMax,
		Style:      quantize.Overflow,
		Divisors:   []uint32{1},
	}
}

// SetHandler implements Peripheral.
func (s *SoftTick) SetHandler(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// Configure implements Peripheral. There is only one tier; nothing to do.
func (s *SoftTick) Configure(tier quantize.Tier) {}

// LoadCounter implements Peripheral. The preload determines how many ms
// ticks remain until the overflow fires; reprogramming while running
// restarts the delay, which is how the sequencer begins the next interval
// period.
func (s *SoftTick) LoadCounter(preload uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if preload == 0 {
		s.pending = softTickMax + 1
	} else {
		s.pending = uint64(softTickMax) + 1 - uint64(preload)
	}
	s.rescheduleLocked()
}

// SetCompareCeiling implements Peripheral; overflow style, ignored.
func (s *SoftTick) SetCompareCeiling(value uint32) {}

// EnableOverflowInterrupt implements Peripheral.
func (s *SoftTick) EnableOverflowInterrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ovfIRQ = true
}

// DisableOverflowInterrupt implements Peripheral.
func (s *SoftTick) DisableOverflowInterrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ovfIRQ = false
}

// EnableCompareInterrupt implements Peripheral; overflow style, ignored.
func (s *SoftTick) EnableCompareInterrupt() {}

// DisableCompareInterrupt implements Peripheral; overflow style, ignored.
func (s *SoftTick) DisableCompareInterrupt() {}

// Start implements Peripheral.
func (s *SoftTick) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.rescheduleLocked()
}

// Stop implements Peripheral.
func (s *SoftTick) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *SoftTick) rescheduleLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.running {
		return
	}
	delay := time.Duration(s.pending) * time.Millisecond
	s.timer = time.AfterFunc(delay, s.fire)
}

func (s *SoftTick) fire() {
	s.mu.Lock()
	if !s.running || !s.ovfIRQ || s.handler == nil {
		s.mu.Unlock()
		return
	}
	h := s.handler
	s.mu.Unlock()
	h()
}
