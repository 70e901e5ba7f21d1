package cpu

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/ezrec/acc8/internal"
)

// Program is the output of the assembler: code bytes, initial data values
// and the debug map. A Program is not modified after assembly.
type Program struct {
	Code      []uint8        // Instruction bytes, loaded at address 0.
	Data      map[int]uint8  // Initial data values, by data address.
	Debug     map[int]int    // Opcode address to zero-based source line.
	Labels    map[string]int // Upper case label name to code address.
	Variables map[string]int // Upper case variable name to data address.
	DataBase  int            // Address of the first variable.
	Lines     []string       // Source text, one entry per line.
}

func newProgram(dataBase int) *Program {
	return &Program{
		Data:      map[int]uint8{},
		Debug:     map[int]int{},
		Labels:    map[string]int{},
		Variables: map[string]int{},
		DataBase:  dataBase,
	}
}

// define binds a symbol, rejecting names already bound as either kind.
func (prog *Program) define(name string, addr int, variable bool) (err error) {
	name = strings.ToUpper(name)
	_, is_label := prog.Labels[name]
	_, is_variable := prog.Variables[name]
	if is_label || is_variable {
		err = ErrSymbolDuplicate
		return
	}

	if variable {
		prog.Variables[name] = addr
	} else {
		prog.Labels[name] = addr
	}

	return
}

// Symbol looks up a label or variable address, ignoring case.
func (prog *Program) Symbol(name string) (addr int, ok bool) {
	name = strings.ToUpper(name)
	addr, ok = prog.Labels[name]
	if !ok {
		addr, ok = prog.Variables[name]
	}
	return
}

// Symbols iterates over the labels, then the variables, each in name order.
func (prog *Program) Symbols() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(internal.IterSorted(prog.Labels), internal.IterSorted(prog.Variables))
}

// SymbolAt returns the name of a symbol bound to an address, preferring
// labels for code addresses and variables for data addresses.
func (prog *Program) SymbolAt(addr int, variable bool) (name string, ok bool) {
	table := prog.Labels
	if variable {
		table = prog.Variables
	}
	for name, at := range internal.IterSorted(table) {
		if at == addr {
			return name, true
		}
	}
	return
}

// LineNo returns the zero-based source line of the instruction whose
// opcode is at the address.
func (prog *Program) LineNo(pc int) (line int, ok bool) {
	line, ok = prog.Debug[pc]
	return
}

// Image returns the memory contents after loading the program.
func (prog *Program) Image() (mem [MEMORY_SIZE]uint8) {
	copy(mem[:], prog.Code)
	for addr, value := range prog.Data {
		mem[addr] = value
	}
	return
}

// Listing writes the disassembled code followed by the data cells.
func (prog *Program) Listing(w io.Writer) (err error) {
	mem := prog.Image()

	for addr := 0; addr < len(prog.Code); {
		text, size := Disassemble(mem[:], addr)
		op := Opcode(mem[addr])
		operand := int(mem[(addr+1)%MEMORY_SIZE])
		var name string
		var ok bool
		switch {
		case op.Access() != ACCESS_NONE:
			name, ok = prog.SymbolAt(operand, true)
		case op == OP_JMP || op == OP_JZ || op == OP_JN:
			name, ok = prog.SymbolAt(operand, false)
		}
		if ok {
			text = fmt.Sprintf("%-10s ; %v", text, name)
		}
		bytes := fmt.Sprintf("%02X", mem[addr])
		if size == 2 {
			bytes += fmt.Sprintf(" %02X", mem[(addr+1)%MEMORY_SIZE])
		}
		label, _ := prog.SymbolAt(addr, false)
		if len(label) > 0 {
			label += ":"
		}
		_, err = fmt.Fprintf(w, "%03d  %-5s  %-8s %v\n", addr, bytes, label, text)
		if err != nil {
			return
		}
		addr += size
	}

	for name, addr := range internal.IterSorted(prog.Variables) {
		_, err = fmt.Fprintf(w, "%03d  %02X     %-8s DEC %d\n", addr, prog.Data[addr], name+",", prog.Data[addr])
		if err != nil {
			return
		}
	}

	return
}

// WriteTo writes the program as a JSON image.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	b, err := json.MarshalIndent(prog, "", "  ")
	if err != nil {
		return
	}

	nn, err := w.Write(append(b, '\n'))
	n = int64(nn)
	return
}

// ReadFrom reads a JSON image written by WriteTo, and checks that it
// fits in memory.
func (prog *Program) ReadFrom(r io.Reader) (n int64, err error) {
	b, err := io.ReadAll(r)
	n = int64(len(b))
	if err != nil {
		return
	}

	loaded := newProgram(DATA_BASE_DEFAULT)
	err = json.Unmarshal(b, loaded)
	if err != nil {
		return
	}

	if len(loaded.Code) > MEMORY_SIZE {
		err = ErrImageInvalid
		return
	}
	for addr := range loaded.Data {
		if addr < 0 || addr >= MEMORY_SIZE {
			err = ErrImageInvalid
			return
		}
	}
	for addr := range loaded.Debug {
		if addr < 0 || addr >= len(loaded.Code) {
			err = ErrImageInvalid
			return
		}
	}

	*prog = *loaded
	return
}
