// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strings"
)

const (
	MEMORY_SIZE       = 256 // Bytes of unified code and data memory.
	DATA_BASE_DEFAULT = 200 // Conventional first data address.
)

// Opcode is the first byte of every instruction.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_LOADI = Opcode(0x01) // LOADI
	OP_LOADM = Opcode(0x02) // LOADM
	OP_STORE = Opcode(0x03) // STORE
	OP_ADDI  = Opcode(0x04) // ADDI
	OP_SUBI  = Opcode(0x05) // SUBI
	OP_JMP   = Opcode(0x06) // JMP
	OP_JZ    = Opcode(0x07) // JZ
	OP_JN    = Opcode(0x08) // JN
	OP_ADDM  = Opcode(0x09) // ADDM
	OP_SUBM  = Opcode(0x0a) // SUBM
	OP_IN    = Opcode(0xf0) // IN
	OP_OUT   = Opcode(0xf1) // OUT
	OP_HALT  = Opcode(0xff) // HALT
)

// Access is the kind of data memory access an instruction performs.
type Access int

//go:generate go tool stringer -linecomment -type=Access
const (
	ACCESS_NONE  = Access(0) // none
	ACCESS_READ  = Access(1) // read
	ACCESS_WRITE = Access(2) // write
)

// opcodeInfo describes the static properties of an opcode.
type opcodeInfo struct {
	operand bool   // Followed by an operand byte.
	acc     bool   // Writes ACC, and so recomputes Z and N.
	access  Access // Data memory access through the operand.
}

var opcodeTable = map[Opcode]opcodeInfo{
	OP_LOADI: {operand: true, acc: true},
	OP_LOADM: {operand: true, acc: true, access: ACCESS_READ},
	OP_STORE: {operand: true, access: ACCESS_WRITE},
	OP_ADDI:  {operand: true, acc: true},
	OP_SUBI:  {operand: true, acc: true},
	OP_ADDM:  {operand: true, acc: true, access: ACCESS_READ},
	OP_SUBM:  {operand: true, acc: true, access: ACCESS_READ},
	OP_JMP:   {operand: true},
	OP_JZ:    {operand: true},
	OP_JN:    {operand: true},
	OP_IN:    {acc: true},
	OP_OUT:   {},
	OP_HALT:  {},
}

// mnemonicMap maps upper case mnemonics, including aliases, to opcodes.
var mnemonicMap = map[string]Opcode{
	"LOADI":  OP_LOADI,
	"LOADM":  OP_LOADM,
	"LOAD":   OP_LOADM,
	"STORE":  OP_STORE,
	"ADDI":   OP_ADDI,
	"SUBI":   OP_SUBI,
	"ADDM":   OP_ADDM,
	"ADD":    OP_ADDM,
	"SUBM":   OP_SUBM,
	"SUB":    OP_SUBM,
	"JMP":    OP_JMP,
	"JZ":     OP_JZ,
	"JN":     OP_JN,
	"IN":     OP_IN,
	"INPUT":  OP_IN,
	"OUT":    OP_OUT,
	"OUTPUT": OP_OUT,
	"HALT":   OP_HALT,
}

// LookupMnemonic finds the opcode for a mnemonic, ignoring case.
func LookupMnemonic(word string) (op Opcode, ok bool) {
	op, ok = mnemonicMap[strings.ToUpper(word)]
	return
}

// Valid returns true if the byte decodes to an instruction.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// HasOperand returns true if the opcode is followed by an operand byte.
func (op Opcode) HasOperand() bool {
	return opcodeTable[op].operand
}

// Size returns the encoded size of the instruction in bytes.
func (op Opcode) Size() int {
	if op.HasOperand() {
		return 2
	}
	return 1
}

// WritesAcc returns true if the opcode writes ACC and updates the flags.
func (op Opcode) WritesAcc() bool {
	return opcodeTable[op].acc
}

// Access returns the data memory access performed through the operand.
func (op Opcode) Access() Access {
	return opcodeTable[op].access
}
