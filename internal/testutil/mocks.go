package testutil

import (
	"fmt"
	"sync"

	"github.com/vnykmshr/utimer/pkg/periph"
	"github.com/vnykmshr/utimer/pkg/quantize"
)

// MockPeripheral implements periph.Peripheral recording every register
// operation, for white-box sequencer tests that need to assert the exact
// programming order without simulating time.
type MockPeripheral struct {
	mu      sync.Mutex
	table   quantize.Table
	handler periph.Handler

	ops []string

	Divisor    uint32 // last configured prescaler divisor
	Counter    uint32 // last loaded counter value
	Ceiling    uint32 // last programmed compare ceiling
	Running    bool
	OvfEnabled bool
	CmpEnabled bool
}

// NewMockPeripheral creates a mock exposing the given prescaler table.
func NewMockPeripheral(table quantize.Table) *MockPeripheral {
	return &MockPeripheral{table: table}
}

// Table implements periph.Peripheral.
func (m *MockPeripheral) Table() quantize.Table { return m.table }

// SetHandler implements periph.Peripheral.
func (m *MockPeripheral) SetHandler(h periph.Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = h
}

// Configure implements periph.Peripheral.
func (m *MockPeripheral) Configure(tier quantize.Tier) {
	m.record(fmt.Sprintf("configure(%d)", tier.Divisor))
	m.Divisor = tier.Divisor
}

// LoadCounter implements periph.Peripheral.
func (m *MockPeripheral) LoadCounter(preload uint32) {
	m.record(fmt.Sprintf("load(%d)", preload))
	m.Counter = preload
}

// SetCompareCeiling implements periph.Peripheral.
func (m *MockPeripheral) SetCompareCeiling(value uint32) {
	m.record(fmt.Sprintf("ceiling(%d)", value))
	m.Ceiling = value
}

// EnableOverflowInterrupt implements periph.Peripheral.
func (m *MockPeripheral) EnableOverflowInterrupt() {
	m.record("enable-ovf")
	m.OvfEnabled = true
}

// DisableOverflowInterrupt implements periph.Peripheral.
func (m *MockPeripheral) DisableOverflowInterrupt() {
	m.record("disable-ovf")
	m.OvfEnabled = false
}

// EnableCompareInterrupt implements periph.Peripheral.
func (m *MockPeripheral) EnableCompareInterrupt() {
	m.record("enable-cmp")
	m.CmpEnabled = true
}

// DisableCompareInterrupt implements periph.Peripheral.
func (m *MockPeripheral) DisableCompareInterrupt() {
	m.record("disable-cmp")
	m.CmpEnabled = false
}

// Start implements periph.Peripheral.
func (m *MockPeripheral) Start() {
	m.record("start")
	m.Running = true
}

// Stop implements periph.Peripheral.
func (m *MockPeripheral) Stop() {
	m.record("stop")
	m.Running = false
}

// Trigger delivers one interrupt to the registered handler, honoring the
// run state and interrupt enables like the hardware would.
func (m *MockPeripheral) Trigger() {
	m.mu.Lock()
	deliverable := m.Running && (m.OvfEnabled || m.CmpEnabled) && m.handler != nil
	h := m.handler
	m.mu.Unlock()
	if deliverable {
		h()
	}
}

// TriggerN delivers n interrupts.
func (m *MockPeripheral) TriggerN(n int) {
	for i := 0; i < n; i++ {
		m.Trigger()
	}
}

// Ops returns the recorded operation log.
func (m *MockPeripheral) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}

// ResetOps clears the operation log.
func (m *MockPeripheral) ResetOps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = nil
}

func (m *MockPeripheral) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
}
