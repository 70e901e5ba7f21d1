package cpu

import (
	"fmt"
)

// Disassemble decodes the instruction at addr, returning its text and its
// size in bytes. Bytes that are not opcodes decode as a one byte "???".
func Disassemble(mem []uint8, addr int) (text string, size int) {
	op := Opcode(mem[addr%len(mem)])
	switch {
	case !op.Valid():
		return fmt.Sprintf("??? 0x%02X", uint8(op)), 1
	case op.HasOperand():
		return fmt.Sprintf("%v %d", op, mem[(addr+1)%len(mem)]), 2
	default:
		return op.String(), 1
	}
}
