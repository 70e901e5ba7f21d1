package emulator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/acc8/cpu"
	"github.com/ezrec/acc8/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
	assert.Equal(0, emu.LineNo())

	// An empty program is all zeros: an invalid opcode.
	done, err := emu.Tick()
	assert.True(done)
	assert.ErrorIs(err, cpu.ErrOpcode(0))
}

func loadProgram(t *testing.T, emu *Emulator, program []string) {
	prog, err := cpu.Assemble(strings.Join(program, "\n"), cpu.DATA_BASE_DEFAULT)
	if err != nil {
		t.Fatal(err)
		return
	}

	emu.Load(prog)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; read a value, double it",
		"IN",
		"STORE X",
		"ADD X",
		"OUT",
		"HALT",
		"X, DEC 0",
	}

	emu := NewEmulator()
	loadProgram(t, emu, program)

	output := &bytes.Buffer{}
	emu.Input = &io.Tape{Input: strings.NewReader("21\n")}
	emu.Output = &io.Tape{Output: output}

	lines := []int{2, 3, 4, 5, 6}
	for n, line := range lines {
		assert.Equal(line, emu.LineNo(), program[line-1])
		done, err := emu.Tick()
		assert.NoError(err)
		assert.Equal(n == len(lines)-1, done)
	}

	assert.Equal("42\n", output.String())

	done, err := emu.Tick()
	assert.True(done)
	assert.NoError(err)
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"IN",
		"ADD X",
		"STORE X",
		"OUT",
		"HALT",
		"X, DEC 1",
	}

	emu := NewEmulator()
	loadProgram(t, emu, program)

	sink := &io.Queue{}
	emu.Input = io.NewQueue(5)
	emu.Output = sink

	err := emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Equal(uint8(6), emu.Memory[200])

	// Reset reloads the initial data, and rewinds the input.
	emu.Reset()
	assert.Equal(uint8(1), emu.Memory[200])
	assert.Equal(uint8(0), emu.Pc)
	assert.False(emu.Halted)

	err = emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Equal([]int{6, 6}, sink.Data)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOADI 1",
		"JMP 100",
	}

	emu := NewEmulator()
	loadProgram(t, emu, program)

	done, err := emu.Tick()
	assert.False(done)
	assert.NoError(err)

	done, err = emu.Tick()
	assert.False(done)
	assert.NoError(err)

	done, err = emu.Tick()
	assert.True(done)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(0, runtime.LineNo)
		assert.Equal(cpu.ErrOpcode(0), runtime.Err)
	}
}

func TestEmulatorInputError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOADI 7",
		"IN",
		"HALT",
	}

	emu := NewEmulator()
	loadProgram(t, emu, program)

	_, err := emu.Tick()
	assert.NoError(err)

	done, err := emu.Tick()
	assert.False(done)
	assert.ErrorIs(err, cpu.ErrInputMissing)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(2, runtime.LineNo)
	}

	// The failed IN can be retried.
	emu.Input = io.NewQueue(3)
	done, err = emu.Tick()
	assert.False(done)
	assert.NoError(err)
	assert.Equal(uint8(3), emu.Acc)
}

func TestEmulatorBreakpoint(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOADI 3",
		"LOOP: SUBI 1",
		"JZ DONE",
		"JMP LOOP",
		"DONE: HALT",
	}

	emu := NewEmulator()
	loadProgram(t, emu, program)

	loop, _ := emu.Program.Symbol("LOOP")
	b := emu.AddBreakpoint(uint8(loop))
	assert.Equal(b, emu.GetBreakpoint(uint8(loop)))
	assert.Nil(emu.GetBreakpoint(0))

	hits := 0
	for {
		err := emu.Run(context.Background(), 0)
		if errors.Is(err, ErrBreakpoint(0)) {
			assert.Equal(ErrBreakpoint(loop), err)
			assert.Equal(uint8(loop), emu.Pc)
			hits++
			continue
		}
		assert.NoError(err)
		break
	}

	// Once on entry, and once for each of the two loops back.
	assert.Equal(3, hits)
	assert.True(emu.Halted)

	b.Disabled = true
	emu.Reset()
	assert.NoError(emu.Run(context.Background(), 0))

	emu.RemoveBreakpoint(uint8(loop))
	assert.Equal(0, len(emu.Breakpoints()))
}

func TestEmulatorBreakpointList(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.AddBreakpoint(30)
	emu.AddBreakpoint(10)
	emu.AddBreakpoint(20)

	var addrs []uint8
	for _, b := range emu.Breakpoints() {
		addrs = append(addrs, b.Address)
	}
	assert.Equal([]uint8{10, 20, 30}, addrs)

	emu.AddDataBreakpoint(210)
	emu.AddConditionalDataBreakpoint(200, 5)

	list := emu.DataBreakpoints()
	if assert.Equal(2, len(list)) {
		assert.Equal(uint8(200), list[0].Address)
		assert.True(list[0].Conditional)
		assert.Equal(uint8(210), list[1].Address)
		assert.False(list[1].Conditional)
	}

	emu.RemoveDataBreakpoint(200)
	assert.Nil(emu.GetDataBreakpoint(200))
	assert.NotNil(emu.GetDataBreakpoint(210))
}

func TestEmulatorDataBreakpoint(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOADI 1",
		"STORE X",
		"LOADI 5",
		"STORE X",
		"STORE Y",
		"HALT",
		"X, DEC 0",
		"Y, DEC 0",
	}

	emu := NewEmulator()
	loadProgram(t, emu, program)

	emu.AddConditionalDataBreakpoint(200, 5)

	err := emu.Run(context.Background(), 0)
	assert.Equal(ErrDataBreakpoint(200), err)
	assert.Equal(4, emu.Ticks)
	assert.Equal(uint8(5), emu.Memory[200])

	emu.AddDataBreakpoint(201)
	err = emu.Run(context.Background(), 0)
	assert.True(errors.Is(err, ErrDataBreakpoint(0)))
	assert.Equal(5, emu.Ticks)

	emu.GetDataBreakpoint(201).Disabled = true
	emu.Reset()
	emu.RemoveDataBreakpoint(200)
	assert.NoError(emu.Run(context.Background(), 0))
	assert.Equal(6, emu.Ticks)
}

func TestEmulatorRunCancel(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOOP: JMP LOOP",
	}

	emu := NewEmulator()
	loadProgram(t, emu, program)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := emu.Run(ctx, time.Millisecond)
	assert.ErrorIs(err, context.DeadlineExceeded)
	assert.False(emu.Halted)
	assert.Less(0, emu.Ticks)

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	err = emu.Run(ctx, 0)
	assert.ErrorIs(err, context.Canceled)
}
