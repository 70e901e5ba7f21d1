// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"io"
	"log"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var (
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reVariable   = regexp.MustCompile(`(?i)^([A-Za-z_][A-Za-z0-9_]*)(?:\s*,\s*|\s+)DEC(?:\s+(.*))?$`)
)

// Assembler is a two pass assembler for the acc8 system.
//
// Pass one binds every label and variable and sizes the code, so pass two
// can resolve forward references without patching.
type Assembler struct {
	Verbose  bool // If set, verbosely logs the assembler actions.
	DataBase int  // Address of the first variable.
}

// NewAssembler creates an assembler using the conventional data base.
func NewAssembler() *Assembler {
	return &Assembler{DataBase: DATA_BASE_DEFAULT}
}

// Assemble assembles source text, placing variables from dataBase upward.
func Assemble(source string, dataBase int) (prog *Program, err error) {
	asm := &Assembler{DataBase: dataBase}
	return asm.Parse(strings.NewReader(source))
}

// statement is a single instruction in a source line.
type statement struct {
	op      Opcode
	operand string // Operand word, if op has one.
}

// sourceLine is the parsed form of one line of source.
type sourceLine struct {
	index      int    // Zero-based line index.
	text       string // Line as written.
	labels     []string
	variable   string // Variable name, if a DEC line.
	value      uint8  // Initial value of the variable.
	statements []statement
}

// stripComment removes a ';' or '/' comment.
func stripComment(text string) string {
	if n := strings.IndexAny(text, ";/"); n >= 0 {
		text = text[:n]
	}
	return text
}

// splitWords splits a line on white space, keeping each $(...) expression
// together as one word.
func splitWords(line string) (words []string) {
	var word []byte
	depth := 0

	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case depth == 0 && unicode.IsSpace(rune(c)):
			if len(word) > 0 {
				words = append(words, string(word))
				word = word[:0]
			}
			continue
		case c == '(' && (depth > 0 || (len(word) > 0 && word[len(word)-1] == '$')):
			depth++
		case c == ')' && depth > 0:
			depth--
		}
		word = append(word, c)
	}

	if len(word) > 0 {
		words = append(words, string(word))
	}

	return
}

// wrap reduces any integer into a byte, modulo 256.
func wrap(value int64) uint8 {
	return uint8(value & 0xff)
}

// parseLine parses a single line into labels, a variable, or statements.
func (asm *Assembler) parseLine(index int, text string) (line sourceLine, err error) {
	line = sourceLine{index: index, text: text}

	code := strings.TrimSpace(stripComment(text))
	if len(code) == 0 {
		return
	}

	// NAME, DEC VALUE
	match := reVariable.FindStringSubmatch(code)
	if match != nil {
		literal := strings.TrimSpace(match[2])
		v, ok := new(big.Int).SetString(literal, 10)
		if !ok {
			err = errors.Join(ErrVariableSyntax, ErrParseNumber(literal))
			return
		}
		line.variable = match[1]
		line.value = uint8(v.Mod(v, big.NewInt(256)).Uint64())
		return
	}

	words := splitWords(code)

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !reIdentifier.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		line.labels = append(line.labels, label)
		words = words[1:]
	}

	for len(words) > 0 {
		op, ok := LookupMnemonic(words[0])
		if !ok {
			err = ErrMnemonicInvalid
			return
		}
		st := statement{op: op}
		if op.HasOperand() {
			if len(words) < 2 {
				err = ErrOperandMissing
				return
			}
			st.operand = words[1]
			words = words[2:]
		} else {
			words = words[1:]
		}
		line.statements = append(line.statements, st)
	}

	return
}

// bind is pass one: it binds labels to code addresses and variables to data
// addresses, records the debug map, and sizes the code.
func (asm *Assembler) bind(lines []sourceLine, prog *Program) (size int, err error) {
	next := asm.DataBase

	for _, line := range lines {
		for _, label := range line.labels {
			err = prog.define(label, size, false)
			if err != nil {
				err = &ErrSyntax{LineNo: line.index + 1, Line: line.text, Err: err}
				return
			}
		}

		if len(line.variable) > 0 {
			if next < 0 || next >= MEMORY_SIZE {
				err = &ErrSyntax{LineNo: line.index + 1, Line: line.text, Err: ErrDataFull}
				return
			}
			err = prog.define(line.variable, next, true)
			if err != nil {
				err = &ErrSyntax{LineNo: line.index + 1, Line: line.text, Err: err}
				return
			}
			prog.Data[next] = line.value
			next++
		}

		for _, st := range line.statements {
			prog.Debug[size] = line.index
			size += st.op.Size()
			if size > MEMORY_SIZE {
				err = &ErrSyntax{LineNo: line.index + 1, Line: line.text, Err: ErrCodeOverflow}
				return
			}
		}
	}

	if len(prog.Data) > 0 {
		if size+len(prog.Data) > MEMORY_SIZE {
			err = ErrDataFull
			return
		}
		if asm.DataBase < size {
			err = ErrDataOverlap
			return
		}
	}

	return
}

// emit is pass two: it encodes every statement, resolving operands against
// the symbols bound in pass one.
func (asm *Assembler) emit(lines []sourceLine, prog *Program, size int) (code []uint8, err error) {
	code = make([]uint8, 0, size)

	for _, line := range lines {
		for _, st := range line.statements {
			code = append(code, uint8(st.op))
			if !st.op.HasOperand() {
				continue
			}
			var value uint8
			value, err = asm.operandOf(st.operand, prog)
			if err != nil {
				err = &ErrSyntax{LineNo: line.index + 1, Line: line.text, Err: err}
				return
			}
			code = append(code, value)
		}
		if asm.Verbose && len(line.statements) > 0 {
			log.Printf("%v: %v", line.index+1, strings.TrimSpace(line.text))
		}
	}

	return
}

// isNumber returns true if a word must be read as a number.
func isNumber(word string) bool {
	if len(word) > 1 && (word[0] == '+' || word[0] == '-') {
		word = word[1:]
	}
	return len(word) > 0 && word[0] >= '0' && word[0] <= '9'
}

// valueOf returns the value of a decimal or 0x hexadecimal number.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	text := word
	sign := ""
	if text[0] == '+' || text[0] == '-' {
		sign = text[:1]
		text = text[1:]
	}

	base := 10
	if len(text) > 2 && (text[:2] == "0x" || text[:2] == "0X") {
		base = 16
		text = text[2:]
	}

	value, err = strconv.ParseInt(sign+text, base, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}

	return
}

// operandOf resolves an operand word to its byte value.
func (asm *Assembler) operandOf(word string, prog *Program) (value uint8, err error) {
	var v64 int64

	switch {
	case strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")"):
		v64, err = Evaluate(word[2:len(word)-1], prog)
	case isNumber(word):
		v64, err = asm.valueOf(word)
	default:
		addr, ok := prog.Symbol(word)
		if !ok {
			err = ErrSymbolMissing(word)
			return
		}
		v64 = int64(addr)
	}
	if err != nil {
		return
	}

	if v64 < 0 || v64 >= MEMORY_SIZE {
		err = ErrOperandRange
		return
	}

	value = uint8(v64)
	return
}

// Evaluate computes an integer expression. Identifiers are resolved
// against the symbols of the program in any case. prog may be nil.
func Evaluate(expr string, prog *Program) (value int64, err error) {
	thread := starlark.Thread{Name: "acc8"}
	opts := syntax.FileOptions{}

	parsed, err := opts.ParseExpr("expr", expr, 0)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}

	pred := starlark.StringDict{}
	if prog != nil {
		syntax.Walk(parsed, func(node syntax.Node) bool {
			if id, ok := node.(*syntax.Ident); ok {
				if addr, ok := prog.Symbol(id.Name); ok {
					pred[id.Name] = starlark.MakeInt(addr)
				}
			}
			return true
		})
	}

	rc, err := starlark.EvalExprOptions(&opts, &thread, parsed, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := rc.(starlark.Int)
	if !ok {
		err = errors.Join(ErrParseExpression(expr), ErrExpressionInvalid)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrOperandRange
		return
	}

	return
}

// Parse assembles an input stream into a Program.
//
// On error no Program is returned. Errors tied to a line are wrapped in an
// ErrSyntax.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var texts []string
	for scanner.Scan() {
		texts = append(texts, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	lines := make([]sourceLine, 0, len(texts))
	for index, text := range texts {
		var line sourceLine
		line, err = asm.parseLine(index, text)
		if err != nil {
			err = &ErrSyntax{LineNo: index + 1, Line: text, Err: err}
			return
		}
		lines = append(lines, line)
	}

	built := newProgram(asm.DataBase)
	built.Lines = texts

	size, err := asm.bind(lines, built)
	if err != nil {
		return
	}

	built.Code, err = asm.emit(lines, built, size)
	if err != nil {
		return
	}

	if asm.Verbose {
		log.Printf("asm: %d code bytes, %d data cells", len(built.Code), len(built.Data))
	}

	prog = built
	return
}
