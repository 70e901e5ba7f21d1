package cpu

import (
	"fmt"
)

// Step is the record of a single instruction execution.
type Step struct {
	Pc         uint8  // PC before the instruction was fetched.
	Opcode     Opcode // Fetched opcode.
	Operand    uint8  // Operand byte, if HasOperand.
	HasOperand bool

	Executed bool // False if the machine was already halted, or IN failed.
	Jumped   bool // Set if a jump was taken.
	Input    int  // Value read by IN, before wrapping.
	Output   bool // Set by OUT; ACC holds the value.

	Access  Access // Memory access kind, for LOADM, STORE, ADDM and SUBM.
	Address uint8  // Memory address touched, if Access is not ACCESS_NONE.

	Acc    uint8 // ACC after execution.
	Z      bool  // Z after execution.
	N      bool  // N after execution.
	Halted bool  // Halted after execution.
}

// Value returns the output value of an OUT step.
func (step Step) Value() uint8 {
	return step.Acc
}

// action describes what the instruction did.
func (step Step) action() (text string) {
	op := step.Opcode
	arg := step.Operand

	if !step.Executed {
		if step.Halted {
			return "HALT"
		}
		return fmt.Sprintf("%v (pending)", op)
	}

	switch op {
	case OP_LOADI, OP_JMP:
		text = fmt.Sprintf("%v %d", op, arg)
	case OP_LOADM:
		text = fmt.Sprintf("%v [%d] -> %d", op, arg, step.Acc)
	case OP_STORE:
		text = fmt.Sprintf("%v [%d] <- %d", op, arg, step.Acc)
	case OP_ADDI, OP_SUBI:
		text = fmt.Sprintf("%v %d -> %d", op, arg, step.Acc)
	case OP_ADDM, OP_SUBM:
		text = fmt.Sprintf("%v [%d] -> ACC=%d", op, arg, step.Acc)
	case OP_JZ, OP_JN:
		if step.Jumped {
			text = fmt.Sprintf("%v -> %d", op, arg)
		} else {
			text = fmt.Sprintf("%v skipped", op)
		}
	case OP_IN:
		text = fmt.Sprintf("%v -> %d", op, step.Input)
	case OP_OUT:
		text = fmt.Sprintf("%v -> ACC = %d", op, step.Acc)
	case OP_HALT:
		text = "HALT"
	default:
		text = fmt.Sprintf("INV 0x%02X", uint8(op))
	}

	return
}

// String renders the step as a trace line.
func (step Step) String() string {
	return fmt.Sprintf("PC=%03d | IR=0x%02X | ACC=%d | Z=%d | N=%d :: %v",
		step.Pc, uint8(step.Opcode), step.Acc, bit(step.Z), bit(step.N), step.action())
}
