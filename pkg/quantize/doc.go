/*
Package quantize translates a requested duration into a hardware timer plan:
a prescaler tier, an integer number of full counter overflows, and a final
partial-cycle remainder.

A hardware counter at a given prescaler covers only a narrow span before it
overflows (16us to 16.384ms on a 16MHz 8-bit counter). Longer durations are
reconstituted by counting whole overflows at the coarsest tier and finishing
with one partial cycle. Short durations pick the finest tier whose single
cycle covers the request so resolution is never given up unnecessarily.

All arithmetic is integer rational math with round-half-up; there is no
floating point dependency, so plans are bit-identical across platforms.

Example:

	table := quantize.Table{
		ClockHz:    16_000_000,
		CounterMax: 255,
		Divisors:   []uint32{1, 8, 32, 64, 128, 256, 1024},
	}
	plan, err := quantize.Seconds(table, 1)
	// plan.Overflows == 61, plan.Remainder == 9 ticks, plan.Preload() == 247
*/
package quantize
