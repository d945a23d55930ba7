package quantize

import (
	"fmt"
	"time"

	"github.com/vnykmshr/utimer/pkg/common/validation"
)

// Style describes how a counter realizes the end of a cycle.
type Style int

const (
	// Overflow counters run from a preload value up to their maximum and
	// raise the interrupt on the wrap back to zero.
	Overflow Style = iota

	// Compare counters run from zero up to a programmable ceiling register
	// and raise the interrupt on the match.
	Compare
)

// String returns a human-readable style name.
func (s Style) String() string {
	switch s {
	case Overflow:
		return "overflow"
	case Compare:
		return "compare"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

// Tier is one concrete prescaler option of a counter peripheral. It is
// self-contained so a plan can be carried around and reprogrammed without
// referring back to the table it came from.
type Tier struct {
	// Divisor is the prescaler clock divider.
	Divisor uint32

	// ClockHz is the undivided input clock of the counter.
	ClockHz uint64

	// CounterMax is the highest value the counter register can hold.
	CounterMax uint32

	// Style selects overflow or compare-match cycle semantics.
	Style Style
}

// Span returns the tier's full-cycle length in counter ticks. Overflow
// counters wrap after CounterMax+1 ticks; compare counters reset on the
// ceiling match, so a full cycle at the maximum ceiling is CounterMax ticks.
func (t Tier) Span() uint64 {
	if t.Style == Compare {
		return uint64(t.CounterMax)
	}
	return uint64(t.CounterMax) + 1
}

// ticksFor converts an amount of 1/unitHz units into counter ticks,
// rounding half up. A non-zero request never quantizes below one tick.
func (t Tier) ticksFor(amount, unitHz uint64) uint64 {
	num := amount * t.ClockHz
	den := uint64(t.Divisor) * unitHz
	ticks := (num + den/2) / den
	if ticks == 0 {
		ticks = 1
	}
	return ticks
}

// Duration returns the wall-clock time covered by the given tick count.
// The result is truncated to nanosecond resolution.
func (t Tier) Duration(ticks uint64) time.Duration {
	cycles := ticks * uint64(t.Divisor)
	ns := cycles / t.ClockHz * 1e9
	ns += cycles % t.ClockHz * 1e9 / t.ClockHz
	return time.Duration(ns)
}

// Table is the ordered prescaler tier set of one counter peripheral,
// finest divisor first.
type Table struct {
	ClockHz    uint64
	CounterMax uint32
	Style      Style
	Divisors   []uint32
}

// Tier returns the i-th tier as a self-contained value.
func (tb Table) Tier(i int) Tier {
	return Tier{
		Divisor:    tb.Divisors[i],
		ClockHz:    tb.ClockHz,
		CounterMax: tb.CounterMax,
		Style:      tb.Style,
	}
}

// Len returns the number of tiers.
func (tb Table) Len() int {
	return len(tb.Divisors)
}

// Validate checks the table for internal consistency.
func (tb Table) Validate() error {
	if err := validation.ValidatePositive("quantize", "clock_hz", tb.ClockHz); err != nil {
		return err
	}
	if err := validation.ValidatePositive("quantize", "counter_max", uint64(tb.CounterMax)); err != nil {
		return err
	}
	if len(tb.Divisors) == 0 {
		return validation.ValidateNotEmpty("quantize", "divisors", "")
	}
	if err := validation.ValidatePositive("quantize", "divisor", uint64(tb.Divisors[0])); err != nil {
		return err
	}
	return validation.ValidateAscending("quantize", "divisors", tb.Divisors)
}
