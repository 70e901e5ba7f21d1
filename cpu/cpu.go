// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/acc8/io"
)

// Input supplies values to the IN instruction.
type Input io.Input

// Cpu is the simulation context for the acc8 accumulator machine.
//
// A Cpu is not safe for concurrent use; callers serialize Step.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc     uint8 // Program counter.
	Ir     uint8 // Instruction register: the last fetched opcode byte.
	Acc    uint8 // Accumulator.
	Z      bool  // Zero flag.
	N      bool  // Negative flag.
	Halted bool  // Set by HALT or an invalid opcode.

	Memory [MEMORY_SIZE]uint8 // Unified code and data memory.

	Input Input // Source of IN values.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new machine, reading IN values from input.
func NewCpu(input Input) (cpu *Cpu) {
	cpu = &Cpu{
		Input: input,
	}

	return
}

// Reset zeroes the registers, the flags and all of memory.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = 0
	cpu.Ir = 0
	cpu.Acc = 0
	cpu.Z = false
	cpu.N = false
	cpu.Halted = false
	clear(cpu.Memory[:])
	cpu.Ticks = 0
}

// Load resets the machine, then copies in the program code at address 0
// followed by the initial data values.
func (cpu *Cpu) Load(prog *Program) {
	cpu.Reset()
	cpu.Memory = prog.Image()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "ir", "acc", "z", "n", "halted"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%03d", cpu.Pc)
		case "ir":
			strval = fmt.Sprintf("0x%02X %v", cpu.Ir, Opcode(cpu.Ir))
		case "acc":
			strval = fmt.Sprintf("%d (0x%02X, %d)", cpu.Acc, cpu.Acc, int8(cpu.Acc))
		case "z":
			strval = fmt.Sprintf("%d", bit(cpu.Z))
		case "n":
			strval = fmt.Sprintf("%d", bit(cpu.N))
		case "halted":
			strval = fmt.Sprintf("%v", cpu.Halted)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// bit converts a flag to 0 or 1.
func bit(flag bool) int {
	if flag {
		return 1
	}
	return 0
}

// setFlags recomputes Z and N from ACC.
func (cpu *Cpu) setFlags() {
	cpu.Z = cpu.Acc == 0
	cpu.N = (cpu.Acc & 0x80) != 0
}

// Step executes a single instruction.
//
// Once halted, Step changes nothing and reports the halted state. An invalid
// opcode halts the machine and returns ErrOpcode. If the IN provider fails,
// no state is changed and the provider's error is returned, so the step may
// be retried.
func (cpu *Cpu) Step() (step Step, err error) {
	step = Step{
		Pc:     cpu.Pc,
		Opcode: Opcode(cpu.Ir),
		Acc:    cpu.Acc,
		Z:      cpu.Z,
		N:      cpu.N,
		Halted: cpu.Halted,
	}

	if cpu.Halted {
		return
	}

	// Fetch. The PC is committed only once the instruction completes.
	pc := cpu.Pc
	op := Opcode(cpu.Memory[pc])
	next_pc := pc + 1
	step.Opcode = op
	step.Executed = true

	if op.HasOperand() {
		step.Operand = cpu.Memory[next_pc]
		step.HasOperand = true
		next_pc++
	}

	acc := cpu.Acc
	arg := step.Operand

	switch op {
	case OP_LOADI:
		acc = arg
	case OP_LOADM:
		acc = cpu.Memory[arg]
	case OP_STORE:
		cpu.Memory[arg] = acc
	case OP_ADDI:
		acc += arg
	case OP_SUBI:
		acc -= arg
	case OP_ADDM:
		acc += cpu.Memory[arg]
	case OP_SUBM:
		acc -= cpu.Memory[arg]
	case OP_JMP:
		next_pc = arg
		step.Jumped = true
	case OP_JZ:
		if cpu.Z {
			next_pc = arg
			step.Jumped = true
		}
	case OP_JN:
		if cpu.N {
			next_pc = arg
			step.Jumped = true
		}
	case OP_IN:
		if cpu.Input == nil {
			err = ErrInputMissing
			step.Executed = false
			return
		}
		var value int
		value, err = cpu.Input.Receive()
		if err != nil {
			step.Executed = false
			return
		}
		step.Input = value
		acc = wrap(int64(value))
	case OP_OUT:
		step.Output = true
	case OP_HALT:
		cpu.Halted = true
	default:
		cpu.Halted = true
		err = ErrOpcode(op)
	}

	if access := op.Access(); access != ACCESS_NONE {
		step.Access = access
		step.Address = arg
	}

	cpu.Ir = uint8(op)
	cpu.Pc = next_pc
	if op.WritesAcc() {
		cpu.Acc = acc
		cpu.setFlags()
	}
	cpu.Ticks++

	step.Acc = cpu.Acc
	step.Z = cpu.Z
	step.N = cpu.N
	step.Halted = cpu.Halted

	if cpu.Verbose {
		log.Printf("%v", step)
	}

	return
}

// Run steps until the machine halts, returning the first error.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		_, err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}
