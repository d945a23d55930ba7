/*
Package periph defines the countdown timer capability consumed by the
sequencer and provides pure-Go peripheral implementations.

Peripheral is the register-level surface of one hardware timer/counter:
prescaler configuration, counter preload, compare ceiling, interrupt
enables, and start/stop. Every operation is a fast register write callable
from interrupt context.

Three implementations ship with the package:

  - Sim is a virtual-time counter model stepped with Advance, available in
    an 8-bit overflow flavor (NewSim8, the 16MHz AVR Timer2 ladder) and a
    16-bit compare-match flavor (NewSim16, the 120MHz TC ladder). Both are
    deterministic and suited to tests.
  - SoftTick is a millisecond software ticker backed by the Go runtime
    timer, for hosts without any counter hardware. Microsecond requests
    round to the nearest millisecond.

Real hardware targets implement Peripheral as a thin adapter over their
register map and register the interrupt handler with SetHandler from their
vector glue.
*/
package periph
