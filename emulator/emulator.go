// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"log"
	"time"

	"github.com/ezrec/acc8/cpu"
	"github.com/ezrec/acc8/io"
)

const (
	RUN_INTERVAL_DEFAULT = 80 * time.Millisecond // Auto-run step interval.
)

// Emulator state. CPU + program + IO channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Input  io.Input  // Source of IN values.
	Output io.Output // Sink of OUT values.

	Last cpu.Step // Record of the most recent step.

	breakpoints     map[uint8]*Breakpoint
	dataBreakpoints map[uint8]*DataBreakpoint
}

// NewEmulator creates a new emulator, with an empty program loaded.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program:         &cpu.Program{},
		breakpoints:     map[uint8]*Breakpoint{},
		dataBreakpoints: map[uint8]*DataBreakpoint{},
	}

	emu.Cpu = cpu.NewCpu(io.InputFunc(emu.receive))

	return
}

// receive forwards IN requests to the current Input.
func (emu *Emulator) receive() (value int, err error) {
	if emu.Input == nil {
		err = cpu.ErrInputMissing
		return
	}

	return emu.Input.Receive()
}

// Load resets the machine and loads the program: code at address 0, then
// the initial data values.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Program = prog
	emu.Reset()
}

// Reset restarts the current program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Load(emu.Program)
	emu.Last = cpu.Step{}

	if rewinder, ok := emu.Input.(interface{ Rewind() }); ok {
		rewinder.Rewind()
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d code bytes, %d data cells", len(emu.Program.Code), len(emu.Program.Data))
	}
}

// LineNo returns the 1-based source line of the instruction at PC, or 0 if
// PC is not at the start of an assembled instruction.
func (emu *Emulator) LineNo() int {
	line, ok := emu.Program.LineNo(int(emu.Cpu.Pc))
	if !ok {
		return 0
	}

	return line + 1
}

// Tick performs a single step of the emulator.
//
// done is set once the machine has halted. Execution errors are wrapped in
// an ErrRuntime. After a step that stores to a watched address, or that
// lands on an enabled breakpoint, ErrDataBreakpoint or ErrBreakpoint is
// returned.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil && !isBreak(err) {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	step, err := emu.Cpu.Step()
	emu.Last = step
	done = emu.Cpu.Halted
	if err != nil {
		return
	}

	if step.Output && emu.Output != nil {
		err = emu.Output.Send(step.Value())
		if err != nil {
			return
		}
	}

	if done {
		return
	}

	if step.Access == cpu.ACCESS_WRITE {
		b, ok := emu.dataBreakpoints[step.Address]
		if ok && !b.Disabled && (!b.Conditional || b.Value == step.Acc) {
			err = ErrDataBreakpoint(step.Address)
			return
		}
	}

	b, ok := emu.breakpoints[emu.Cpu.Pc]
	if ok && !b.Disabled {
		err = ErrBreakpoint(emu.Cpu.Pc)
		return
	}

	return
}

// Run ticks the emulator every interval until it halts, stops on a
// breakpoint or an error, or the context is cancelled. An interval of zero
// runs as fast as possible.
func (emu *Emulator) Run(ctx context.Context, interval time.Duration) (err error) {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			case <-tick:
			}
		} else {
			err = ctx.Err()
			if err != nil {
				return
			}
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}
