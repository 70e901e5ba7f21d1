// Package cpu implements the machine and assembler for the acc8 system.
//
// The machine is an 8-bit accumulator design with a program counter (PC),
// an instruction register (IR), an accumulator (ACC), Zero and Negative
// flags, and 256 bytes of unified code and data memory. Each Step fetches
// an opcode, fetches its operand byte if it has one, and executes it.
//
// The assembler is a two-pass assembler for the acc8 instruction set,
// supporting labels, named data cells declared with DEC, forward references,
// and compile-time $(...) operand expressions.
package cpu
