package timer_test

import (
	"fmt"
	"time"

	"github.com/vnykmshr/utimer/pkg/periph"
	"github.com/vnykmshr/utimer/pkg/timer"
)

// ExampleScheduler demonstrates a periodic callback driven by the
// virtual-time counter.
func ExampleScheduler() {
	sim := periph.NewSim8()
	s := timer.New(sim)

	fires := 0
	if err := s.SetIntervalMicros(func() { fires++ }, 1000); err != nil {
		fmt.Println("arm failed:", err)
		return
	}

	sim.Advance(10 * time.Millisecond)
	fmt.Printf("fires=%d mode=%s\n", fires, s.Mode())

	s.Clear()
	fmt.Printf("armed=%v\n", s.Armed())
	// Output:
	// fires=10 mode=interval
	// armed=false
}

// ExampleScheduler_deferred shows poll-drained dispatch: the interrupt
// only counts firings and the caller runs callbacks from its own loop.
func ExampleScheduler_deferred() {
	sim := periph.NewSim8()
	s, err := timer.NewWithConfig(timer.Config{
		Peripheral: sim,
		Dispatch:   timer.Deferred,
	})
	if err != nil {
		fmt.Println("config failed:", err)
		return
	}

	if err := s.SetTimeoutMicros(func() { fmt.Println("fired") }, 500); err != nil {
		fmt.Println("arm failed:", err)
		return
	}

	sim.Advance(time.Millisecond)
	fmt.Printf("ran=%d\n", s.Poll())
	// Output:
	// fired
	// ran=1
}
