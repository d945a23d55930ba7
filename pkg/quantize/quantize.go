package quantize

import (
	"time"

	uterrors "github.com/vnykmshr/utimer/pkg/common/errors"
)

// Plan is the quantized representation of a requested duration: Overflows
// full counter cycles at the chosen tier followed by one partial cycle of
// Remainder ticks. Remainder == 0 means the duration is an exact multiple
// of the tier span and no partial cycle is needed.
//
// A Plan holds only the base values; the mutable cursor tracking progress
// through an armed duration lives in the sequencer.
type Plan struct {
	Tier      Tier
	Overflows uint64
	Remainder uint32
}

// Preload returns the counter preload realizing the partial cycle on an
// overflow-style counter: the counter is loaded with max+1-Remainder so it
// wraps after exactly Remainder ticks. Returns 0 when no partial cycle is
// needed. Compare-style counters program Remainder directly as the ceiling.
func (p Plan) Preload() uint32 {
	if p.Remainder == 0 {
		return 0
	}
	return uint32(p.Tier.Span() - uint64(p.Remainder))
}

// TotalTicks returns the plan's length in counter ticks.
func (p Plan) TotalTicks() uint64 {
	return p.Overflows*p.Tier.Span() + uint64(p.Remainder)
}

// Duration returns the wall-clock time the plan covers, truncated to
// nanosecond resolution.
func (p Plan) Duration() time.Duration {
	return p.Tier.Duration(p.TotalTicks())
}

// Zero reports whether the plan is empty (nothing was quantized).
func (p Plan) Zero() bool {
	return p.Tier.Divisor == 0
}

// Micros quantizes a duration given in microseconds against the table.
// A zero duration is rejected with ErrZeroDuration.
func Micros(tb Table, us uint64) (Plan, error) {
	return quantize(tb, us, 1_000_000)
}

// Seconds quantizes a duration given in seconds against the table.
// A zero duration is rejected with ErrZeroDuration.
func Seconds(tb Table, s uint64) (Plan, error) {
	return quantize(tb, s, 1)
}

// quantize picks the finest tier whose single cycle covers the request;
// when no tier does, the coarsest tier counts whole overflows and the
// remainder becomes the final partial cycle. Durations that round to an
// exact span multiple fold entirely into the overflow count.
func quantize(tb Table, amount, unitHz uint64) (Plan, error) {
	if amount == 0 {
		return Plan{}, uterrors.ErrZeroDuration
	}
	if tb.Len() == 0 {
		return Plan{}, uterrors.ErrNoTier
	}

	for i := 0; i < tb.Len(); i++ {
		tier := tb.Tier(i)
		ticks := tier.ticksFor(amount, unitHz)
		if ticks <= tier.Span() {
			return fold(tier, ticks), nil
		}
	}

	tier := tb.Tier(tb.Len() - 1)
	return fold(tier, tier.ticksFor(amount, unitHz)), nil
}

func fold(tier Tier, ticks uint64) Plan {
	span := tier.Span()
	return Plan{
		Tier:      tier,
		Overflows: ticks / span,
		Remainder: uint32(ticks % span),
	}
}
