package periph

import (
	"github.com/vnykmshr/utimer/pkg/quantize"
)

// Handler is the interrupt service routine invoked on every counter
// overflow or compare match. It runs on whatever context the peripheral
// delivers interrupts from and must be short and non-blocking.
type Handler func()

// Peripheral is the timer/counter capability the sequencer programs.
// All operations are microsecond-scale register writes and must be safe
// to call from the interrupt handler itself for the reprogram-on-fire
// path.
type Peripheral interface {
	// Table exposes the prescaler tiers this counter supports.
	Table() quantize.Table

	// SetHandler registers the interrupt service routine. The handler is
	// not invoked until an interrupt source is enabled.
	SetHandler(h Handler)

	// Configure programs the prescaler for the given tier and leaves the
	// counter safely reprogrammable.
	Configure(tier quantize.Tier)

	// LoadCounter sets the counter register to the given preload value.
	LoadCounter(preload uint32)

	// SetCompareCeiling programs the compare-match target on counters
	// with Compare style; Overflow-style counters ignore it.
	SetCompareCeiling(value uint32)

	EnableOverflowInterrupt()
	DisableOverflowInterrupt()
	EnableCompareInterrupt()
	DisableCompareInterrupt()

	// Start lets the counter run; Stop freezes it in place.
	Start()
	Stop()
}
