package emulator

import (
	"cmp"
	"slices"
)

// A Breakpoint stops execution when the program counter reaches its
// address.
type Breakpoint struct {
	Address  uint8 // Address of execution breakpoint.
	Disabled bool  // This breakpoint is currently disabled.
}

// A DataBreakpoint stops execution after a store to its address.
type DataBreakpoint struct {
	Address     uint8 // Breakpoint triggered by stores to this address.
	Disabled    bool  // This breakpoint is currently disabled.
	Conditional bool  // Only triggered when Value is stored.
	Value       uint8 // The value that must be stored, if Conditional.
}

// GetBreakpoint looks up a breakpoint by address, returning nil if there
// is none.
func (emu *Emulator) GetBreakpoint(addr uint8) *Breakpoint {
	return emu.breakpoints[addr]
}

// Breakpoints returns all breakpoints, in address order.
func (emu *Emulator) Breakpoints() (list []*Breakpoint) {
	for _, b := range emu.breakpoints {
		list = append(list, b)
	}
	slices.SortFunc(list, func(a, b *Breakpoint) int {
		return cmp.Compare(a.Address, b.Address)
	})
	return
}

// AddBreakpoint adds a breakpoint, replacing any already at the address.
func (emu *Emulator) AddBreakpoint(addr uint8) *Breakpoint {
	b := &Breakpoint{Address: addr}
	emu.breakpoints[addr] = b
	return b
}

// RemoveBreakpoint removes a breakpoint.
func (emu *Emulator) RemoveBreakpoint(addr uint8) {
	delete(emu.breakpoints, addr)
}

// GetDataBreakpoint looks up a data breakpoint by address, returning nil
// if there is none.
func (emu *Emulator) GetDataBreakpoint(addr uint8) *DataBreakpoint {
	return emu.dataBreakpoints[addr]
}

// DataBreakpoints returns all data breakpoints, in address order.
func (emu *Emulator) DataBreakpoints() (list []*DataBreakpoint) {
	for _, b := range emu.dataBreakpoints {
		list = append(list, b)
	}
	slices.SortFunc(list, func(a, b *DataBreakpoint) int {
		return cmp.Compare(a.Address, b.Address)
	})
	return
}

// AddDataBreakpoint adds an unconditional data breakpoint.
func (emu *Emulator) AddDataBreakpoint(addr uint8) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr}
	emu.dataBreakpoints[addr] = b
	return b
}

// AddConditionalDataBreakpoint adds a data breakpoint that triggers only
// when value is stored.
func (emu *Emulator) AddConditionalDataBreakpoint(addr uint8, value uint8) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr, Conditional: true, Value: value}
	emu.dataBreakpoints[addr] = b
	return b
}

// RemoveDataBreakpoint removes a data breakpoint.
func (emu *Emulator) RemoveDataBreakpoint(addr uint8) {
	delete(emu.dataBreakpoints, addr)
}
