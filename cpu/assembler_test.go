package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	assert.Equal(DATA_BASE_DEFAULT, asm.DataBase)

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Code))
	assert.Equal(0, len(prog.Data))
	assert.Equal(0, len(prog.Debug))
}

func TestAssemblerScenario(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOADI 5",
		"ADD  Y",
		"STORE Z",
		"HALT",
		"Y, DEC 3",
		"Z, DEC 0",
	}

	prog, err := Assemble(strings.Join(program, "\n"), 200)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint8{0x01, 5, 0x09, 200, 0x03, 201, 0xff}, prog.Code)
	assert.Equal(map[int]uint8{200: 3, 201: 0}, prog.Data)
	assert.Equal(map[int]int{0: 0, 2: 1, 4: 2, 6: 3}, prog.Debug)
	assert.Equal(map[string]int{"Y": 200, "Z": 201}, prog.Variables)
	assert.Equal(0, len(prog.Labels))
	assert.Equal(program, prog.Lines)
}

func TestAssemblerForwardReference(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"JMP LOOP",
		"LOADI 1",
		"LOOP:",
		"HALT",
	}

	prog, err := Assemble(strings.Join(program, "\n"), 200)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint8{0x06, 4, 0x01, 1, 0xff}, prog.Code)
	assert.Equal(map[string]int{"LOOP": 4}, prog.Labels)
	assert.Equal(map[int]int{0: 0, 2: 1, 4: 3}, prog.Debug)
}

func TestAssemblerStatements(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"IN STORE A",
		"LOOP: LOAD A SUB B JN END JMP LOOP",
		"END: HALT",
		"A, DEC 0",
		"B, DEC 1",
	}

	prog, err := Assemble(strings.Join(program, "\n"), 200)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint8{
		0xf0,
		0x03, 200,
		0x02, 200,
		0x0a, 201,
		0x08, 11,
		0x06, 3,
		0xff,
	}, prog.Code)
	assert.Equal(map[int]int{0: 0, 1: 0, 3: 1, 5: 1, 7: 1, 9: 1, 11: 2}, prog.Debug)
	assert.Equal(map[string]int{"LOOP": 3, "END": 11}, prog.Labels)
}

func TestAssemblerAliases(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"loadi 1",
		"Input",
		"output",
		"add v",
		"sub V",
		"load v",
		"halt",
		"v dec -1",
	}

	prog, err := Assemble(strings.Join(program, "\n"), 200)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint8{0x01, 1, 0xf0, 0xf1, 0x09, 200, 0x0a, 200, 0x02, 200, 0xff}, prog.Code)
	assert.Equal(map[int]uint8{200: 255}, prog.Data)
}

func TestAssemblerDecWrap(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		literal string
		value   uint8
	}){
		{"0", 0},
		{"255", 255},
		{"256", 0},
		{"257", 1},
		{"-1", 255},
		{"-128", 128},
		{"+7", 7},
		{"18446744073709551617", 1},
		{"-18446744073709551617", 255},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639936", 0},
	}

	for _, entry := range table {
		prog, err := Assemble("HALT\nX, DEC "+entry.literal, 200)
		assert.NoError(err, entry.literal)
		if err != nil {
			continue
		}
		assert.Equal(entry.value, prog.Data[200], entry.literal)
	}
}

func TestAssemblerLiterals(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOADI 0x2A",
		"ADDI +3",
		"SUBI 0",
		"JMP 255",
	}

	prog, err := Assemble(strings.Join(program, "\n"), 200)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint8{0x01, 42, 0x04, 3, 0x05, 0, 0x06, 255}, prog.Code)
}

func TestAssemblerComments(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOADI 1 ; load one / really",
		"/ comment line",
		"   ",
		"; another",
		"HALT",
	}

	prog, err := Assemble(strings.Join(program, "\n"), 200)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint8{0x01, 1, 0xff}, prog.Code)
	assert.Equal(map[int]int{0: 0, 2: 4}, prog.Debug)
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOADI $(X + 1)",
		"LOADI $(x - 190)",
		"LOADI $(0x10 - 8)",
		"LOADI $(Count + 1)",
		"JMP $(END)",
		"END: HALT",
		"X, DEC 7",
		"count, DEC 0",
	}

	prog, err := Assemble(strings.Join(program, "\n"), 200)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint8{0x01, 201, 0x01, 10, 0x01, 8, 0x01, 202, 0x06, 10, 0xff}, prog.Code)
}

func TestEvaluate(t *testing.T) {
	assert := assert.New(t)

	value, err := Evaluate("2 * 3 + 1", nil)
	assert.NoError(err)
	assert.Equal(int64(7), value)

	value, err = Evaluate("-5", nil)
	assert.NoError(err)
	assert.Equal(int64(-5), value)

	_, err = Evaluate("X", nil)
	assert.ErrorIs(err, ErrParseExpression("X"))

	_, err = Evaluate("'a'", nil)
	assert.ErrorIs(err, ErrExpressionInvalid)

	_, err = Evaluate("1 << 70", nil)
	assert.ErrorIs(err, ErrOperandRange)

	prog, err := Assemble("START: HALT\nX, DEC 1\n", 200)
	if !assert.NoError(err) {
		return
	}

	value, err = Evaluate("x + start", prog)
	assert.NoError(err)
	assert.Equal(int64(200), value)

	value, err = Evaluate("Start + X * 2", prog)
	assert.NoError(err)
	assert.Equal(int64(400), value)

	_, err = Evaluate("Stop", prog)
	assert.ErrorIs(err, ErrParseExpression("Stop"))
}

func TestAssemblerDuplicate(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"A:\nA:",
		"a:\nA:",
		"x, DEC 1\nX DEC 2",
		"Loop:\nLOOP, DEC 1",
		"v DEC 1\nV:",
	}

	for _, source := range table {
		prog, err := Assemble("HALT\n"+source, 200)
		assert.Nil(prog, source)
		assert.True(errors.Is(err, ErrSymbolDuplicate), source)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), source) {
			assert.Equal(3, syntax.LineNo, source)
		}
	}
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		source   string
		dataBase int
		err      error
		lineNo   int
	}){
		{"mnemonic", "LOADI 1\nFOO 1", 200, ErrMnemonicInvalid, 2},
		{"stray", "HALT 1", 200, ErrMnemonicInvalid, 1},
		{"operand", "LOADI", 200, ErrOperandMissing, 1},
		{"range-high", "LOADI 256", 200, ErrOperandRange, 1},
		{"range-low", "ADDI -1", 200, ErrOperandRange, 1},
		{"range-hex", "ADDI 0x100", 200, ErrOperandRange, 1},
		{"range-expr", "LOADI $(X * 2)\nX, DEC 0", 200, ErrOperandRange, 1},
		{"symbol", "HALT\nJMP NOWHERE", 200, ErrSymbolMissing("NOWHERE"), 2},
		{"number", "LOADI 0x1G", 200, ErrParseNumber("0x1G"), 1},
		{"label", "1bad:\nHALT", 200, ErrLabelSyntax, 1},
		{"variable", "X, DEC abc", 200, ErrVariableSyntax, 1},
		{"variable-empty", "X DEC", 200, ErrVariableSyntax, 1},
		{"data-full", "HALT\nA DEC 1\nB DEC 2\nC DEC 3", 254, ErrDataFull, 4},
		{"expression", "LOADI $(1 +)", 200, ErrParseExpression("1 +"), 1},
		{"expression-type", `LOADI $("a")`, 200, ErrExpressionInvalid, 1},
	}

	for _, entry := range table {
		prog, err := Assemble(entry.source, entry.dataBase)
		assert.Nil(prog, entry.name)
		assert.True(errors.Is(err, entry.err), "%v: %v", entry.name, err)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineNo, syntax.LineNo, entry.name)
		}
	}
}

func TestAssemblerOverflow(t *testing.T) {
	assert := assert.New(t)

	lines := make([]string, 128)
	for n := range lines {
		lines[n] = "LOADI 1"
	}

	// Exactly 256 bytes of code fits.
	prog, err := Assemble(strings.Join(lines, "\n"), 200)
	assert.NoError(err)
	if err == nil {
		assert.Equal(MEMORY_SIZE, len(prog.Code))
	}

	lines = append(lines, "HALT")
	prog, err = Assemble(strings.Join(lines, "\n"), 200)
	assert.Nil(prog)
	assert.True(errors.Is(err, ErrCodeOverflow))

	var syntax *ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(129, syntax.LineNo)
	}
}

func TestAssemblerDataOverlap(t *testing.T) {
	assert := assert.New(t)

	prog, err := Assemble("LOADI 1\nLOADI 2\nX, DEC 1", 2)
	assert.Nil(prog)
	assert.ErrorIs(err, ErrDataOverlap)

	prog, err = Assemble("LOADI 1\nLOADI 2\nX, DEC 1", 4)
	assert.NoError(err)
	if err == nil {
		assert.Equal(4, prog.Variables["X"])
	}

	// Without variables the data base is unused.
	_, err = Assemble("LOADI 1\nLOADI 2", 0)
	assert.NoError(err)
}

func TestAssemblerDeterministic(t *testing.T) {
	assert := assert.New(t)

	program := strings.Join([]string{
		"start: IN",
		"STORE count",
		"loop: LOAD count",
		"JZ done",
		"SUBI 1",
		"STORE count",
		"OUT",
		"JMP loop",
		"done: HALT",
		"count, DEC 0",
	}, "\n")

	first, err := Assemble(program, 200)
	assert.NoError(err)
	second, err := Assemble(program, 200)
	assert.NoError(err)

	assert.Equal(first, second)
}

func TestAssemblerSyntaxError(t *testing.T) {
	assert := assert.New(t)

	_, err := Assemble("LOADI 1\nFOO", 200)

	var syntax *ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(2, syntax.LineNo)
		assert.Equal("FOO", syntax.Line)
		assert.Equal(ErrMnemonicInvalid, syntax.Unwrap())
	}
}
