package quantize

import (
	"errors"
	"testing"

	uterrors "github.com/vnykmshr/utimer/pkg/common/errors"
)

// avr8 is the 16MHz 8-bit counter ladder (divisor, tick period, span):
// 1=16us, 8=128us, 32=512us, 64=1024us, 128=2048us, 256=4096us, 1024=16384us.
func avr8() Table {
	return Table{
		ClockHz:    16_000_000,
		CounterMax: 255,
		Style:      Overflow,
		Divisors:   []uint32{1, 8, 32, 64, 128, 256, 1024},
	}
}

func sam16() Table {
	return Table{
		ClockHz:    120_000_000,
		CounterMax: 65535,
		Style:      Compare,
		Divisors:   []uint32{16, 1024},
	}
}

func softTick() Table {
	return Table{
		ClockHz:    1000,
		CounterMax: 1<<31 - 1,
		Style:      Overflow,
		Divisors:   []uint32{1},
	}
}

func TestSeconds_OneSecondScenario(t *testing.T) {
	// The documented 16384us-overflow tier: one second is 61 full 8-bit
	// cycles at divisor 1024 plus a 9-tick partial cycle (576us at 64us/tick).
	plan, err := Seconds(avr8(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if got := plan.Tier.Divisor; got != 1024 {
		t.Errorf("divisor = %d, want 1024", got)
	}
	if got := plan.Overflows; got != 61 {
		t.Errorf("overflows = %d, want 61", got)
	}
	if got := plan.Remainder; got != 9 {
		t.Errorf("remainder = %d ticks, want 9", got)
	}
	if got := plan.Preload(); got != 247 {
		t.Errorf("preload = %d, want 247", got)
	}
	if got := plan.Duration().Microseconds(); got != 1_000_000 {
		t.Errorf("plan duration = %dus, want exactly 1000000us", got)
	}
}

func TestSeconds_TwoSeconds(t *testing.T) {
	plan, err := Seconds(avr8(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Overflows != 122 || plan.Remainder != 18 {
		t.Errorf("plan = (%d, %d), want (122, 18)", plan.Overflows, plan.Remainder)
	}
}

func TestMicros_TierSelection(t *testing.T) {
	tests := []struct {
		us          uint64
		wantDivisor uint32
	}{
		{1, 1},        // 16 ticks at 62.5ns
		{15, 1},       // 240 ticks
		{16, 1},       // exactly one full cycle
		{17, 8},       // overflows the finest tier
		{128, 8},      // exactly one full cycle at 0.5us/tick
		{129, 32},     // first tier past the 128us span
		{1000, 64},    // inside the 1024us span
		{4096, 256},   // exactly one full cycle at 16us/tick
		{4097, 256},   // still rounds within the 16us/tick span
		{4104, 1024},  // first duration past 256.5 ticks of the 256 tier
		{16384, 1024}, // exactly one full cycle at the coarsest tier
		{16385, 1024}, // overflow chaining begins
		{1_000_000, 1024},
	}

	for _, tt := range tests {
		plan, err := Micros(avr8(), tt.us)
		if err != nil {
			t.Fatalf("Micros(%d): %v", tt.us, err)
		}
		if plan.Tier.Divisor != tt.wantDivisor {
			t.Errorf("Micros(%d) divisor = %d, want %d", tt.us, plan.Tier.Divisor, tt.wantDivisor)
		}
	}
}

func TestMicros_ExactSpanMultipleFoldsIntoOverflows(t *testing.T) {
	// 32768us is exactly two coarsest-tier cycles: no partial cycle at all.
	plan, err := Micros(avr8(), 32768)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Overflows != 2 || plan.Remainder != 0 {
		t.Errorf("plan = (%d, %d), want (2, 0)", plan.Overflows, plan.Remainder)
	}
	if plan.Preload() != 0 {
		t.Errorf("preload = %d, want 0 for missing partial cycle", plan.Preload())
	}
}

func TestMicros_SingleCycleFullSpan(t *testing.T) {
	// A duration of exactly one span arms one overflow with no remainder
	// rather than a zero preload.
	plan, err := Micros(avr8(), 16)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Overflows != 1 || plan.Remainder != 0 {
		t.Errorf("plan = (%d, %d), want (1, 0)", plan.Overflows, plan.Remainder)
	}
}

// Quantization error must stay within half a tick of the chosen tier for
// every representable duration.
func TestMicros_QuantizationError(t *testing.T) {
	durations := []uint64{
		1, 2, 3, 5, 7, 13, 15, 16, 17, 100, 127, 128, 129,
		511, 512, 513, 1000, 2047, 2048, 4095, 4096, 4097,
		16383, 16384, 16385, 20000, 100000, 200000,
		999999, 1_000_000, 1_000_001, 123_456_789,
	}

	for _, tb := range []Table{avr8(), sam16()} {
		for _, us := range durations {
			plan, err := Micros(tb, us)
			if err != nil {
				t.Fatalf("Micros(%d): %v", us, err)
			}

			// All in units of 1/(ClockHz) seconds: requested vs planned.
			num := us * tb.ClockHz
			den := uint64(plan.Tier.Divisor) * 1_000_000
			planned := plan.TotalTicks() * den

			var diff uint64
			if planned > num {
				diff = planned - num
			} else {
				diff = num - planned
			}
			// Half a tick, in the same units.
			if diff > den/2 {
				t.Errorf("clock=%d Micros(%d): error %d > half tick %d (plan %d/%d @%d)",
					tb.ClockHz, us, diff, den/2, plan.Overflows, plan.Remainder, plan.Tier.Divisor)
			}
		}
	}
}

func TestMicros_RoundsHalfUp(t *testing.T) {
	// 20000us at 64us/tick is 312.5 ticks; round-half-up gives 313.
	plan, err := Micros(avr8(), 20000)
	if err != nil {
		t.Fatal(err)
	}
	if got := plan.TotalTicks(); got != 313 {
		t.Errorf("total ticks = %d, want 313", got)
	}
	if plan.Overflows != 1 || plan.Remainder != 57 {
		t.Errorf("plan = (%d, %d), want (1, 57)", plan.Overflows, plan.Remainder)
	}
}

func TestMicros_MillisecondFloor(t *testing.T) {
	// A millisecond-resolution tier rounds to the nearest representable
	// unit and never quantizes a non-zero request below one tick.
	tests := []struct {
		us        uint64
		wantTicks uint64
	}{
		{300, 1},   // floor would be 0; clamped to the 1ms minimum
		{499, 1},   // 0.499ms rounds down to the minimum
		{1500, 2},  // 1.5ms rounds half up
		{2499, 2},  // 2.499ms rounds down
		{10000, 10},
	}
	for _, tt := range tests {
		plan, err := Micros(softTick(), tt.us)
		if err != nil {
			t.Fatalf("Micros(%d): %v", tt.us, err)
		}
		if got := plan.TotalTicks(); got != tt.wantTicks {
			t.Errorf("Micros(%d) ticks = %d, want %d", tt.us, got, tt.wantTicks)
		}
	}
}

func TestQuantize_ZeroDuration(t *testing.T) {
	if _, err := Micros(avr8(), 0); !errors.Is(err, uterrors.ErrZeroDuration) {
		t.Errorf("Micros(0) error = %v, want ErrZeroDuration", err)
	}
	if _, err := Seconds(avr8(), 0); !errors.Is(err, uterrors.ErrZeroDuration) {
		t.Errorf("Seconds(0) error = %v, want ErrZeroDuration", err)
	}
}

func TestQuantize_EmptyTable(t *testing.T) {
	if _, err := Micros(Table{ClockHz: 1000, CounterMax: 255}, 5); !errors.Is(err, uterrors.ErrNoTier) {
		t.Errorf("error = %v, want ErrNoTier", err)
	}
}

func TestCompareStyleSpan(t *testing.T) {
	// Compare counters reset on the ceiling match, so the full cycle at
	// the maximum ceiling is one tick shorter than an overflow wrap.
	tier := sam16().Tier(0)
	if got := tier.Span(); got != 65535 {
		t.Errorf("compare span = %d, want 65535", got)
	}
	if got := avr8().Tier(0).Span(); got != 256 {
		t.Errorf("overflow span = %d, want 256", got)
	}
}

func TestPlan_Zero(t *testing.T) {
	var p Plan
	if !p.Zero() {
		t.Error("zero value plan should report Zero")
	}
	plan, err := Micros(avr8(), 100)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Zero() {
		t.Error("quantized plan should not report Zero")
	}
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name      string
		table     Table
		wantError bool
	}{
		{"valid", avr8(), false},
		{"zero clock", Table{CounterMax: 255, Divisors: []uint32{1}}, true},
		{"zero counter", Table{ClockHz: 1000, Divisors: []uint32{1}}, true},
		{"no divisors", Table{ClockHz: 1000, CounterMax: 255}, true},
		{"zero divisor", Table{ClockHz: 1000, CounterMax: 255, Divisors: []uint32{0, 8}}, true},
		{"unordered", Table{ClockHz: 1000, CounterMax: 255, Divisors: []uint32{8, 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestTier_Duration(t *testing.T) {
	tier := avr8().Tier(6) // divisor 1024, 64us/tick
	if got := tier.Duration(256); got.Microseconds() != 16384 {
		t.Errorf("span duration = %v, want 16384us", got)
	}
	if got := tier.Duration(1); got.Microseconds() != 64 {
		t.Errorf("tick duration = %v, want 64us", got)
	}
}
