package benchmark

import (
	"fmt"
	"testing"

	"github.com/vnykmshr/utimer/pkg/quantize"
)

func avrTable() quantize.Table {
	return quantize.Table{
		ClockHz:    16_000_000,
		CounterMax: 255,
		Style:      quantize.Overflow,
		Divisors:   []uint32{1, 8, 32, 64, 128, 256, 1024},
	}
}

// BenchmarkQuantizeMicros measures tier selection across request sizes,
// from single-tick requests to multi-cycle chains.
func BenchmarkQuantizeMicros(b *testing.B) {
	durations := []uint64{10, 1000, 16_384, 500_000}

	for _, us := range durations {
		b.Run(fmt.Sprintf("us_%d", us), func(b *testing.B) {
			tb := avrTable()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := quantize.Micros(tb, us); err != nil {
					b.Fatalf("quantize failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkQuantizeSeconds measures the whole-second path, which always
// lands on the coarsest tier.
func BenchmarkQuantizeSeconds(b *testing.B) {
	tb := avrTable()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := quantize.Seconds(tb, 2); err != nil {
			b.Fatalf("quantize failed: %v", err)
		}
	}
}

// BenchmarkPlanDuration measures the tick-to-wall-clock conversion.
func BenchmarkPlanDuration(b *testing.B) {
	tb := avrTable()
	plan, err := quantize.Seconds(tb, 1)
	if err != nil {
		b.Fatalf("quantize failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = plan.Duration()
	}
}
