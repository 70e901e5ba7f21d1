// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package monitor is a line oriented front panel for the acc8 machine.
//
// Within the monitor it is possible to assemble and load programs, step
// and run the machine, set breakpoints and data breakpoints, dump memory,
// disassemble code, and follow the program source as it executes.
package monitor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/beevik/cmd"

	"github.com/ezrec/acc8/cpu"
	"github.com/ezrec/acc8/emulator"
	acc8io "github.com/ezrec/acc8/io"
	"github.com/ezrec/acc8/programs"
)

// Monitor drives an emulator from text commands.
type Monitor struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	emu         *emulator.Emulator
	settings    *settings
	lastCmd     *cmd.Command
	lastArgs    []string

	mutex  sync.Mutex
	cancel context.CancelFunc
}

// New creates a monitor for the emulator. The emulator's IN and OUT are
// attached to the monitor's command streams.
func New(emu *emulator.Emulator) (m *Monitor) {
	m = &Monitor{
		emu:      emu,
		settings: newSettings(),
		input:    bufio.NewScanner(strings.NewReader("")),
		output:   bufio.NewWriter(io.Discard),
	}

	emu.Input = acc8io.InputFunc(m.receive)
	emu.Output = m

	return
}

// RunCommands accepts monitor commands from a reader and writes the
// results to a writer. If the commands are interactive, a prompt is
// displayed while the monitor waits for the next command.
func (m *Monitor) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	m.input = bufio.NewScanner(r)
	m.output = bufio.NewWriter(w)
	m.interactive = interactive

	if interactive {
		m.println()
	}

	m.displayPC()

	for {
		m.prompt()

		line, err := m.getLine()
		if err != nil {
			break
		}

		var c *cmd.Command
		var args []string
		if strings.TrimSpace(line) != "" {
			var n cmd.Node
			n, args, err = cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				m.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				m.println("Command is ambiguous.")
				continue
			case err != nil:
				m.printf("ERROR: %v.\n", err)
				continue
			}

			switch n := n.(type) {
			case *cmd.Tree:
				n.DisplayHelp(m.output)
				m.flush()
				continue
			case *cmd.Command:
				c = n
			}
		} else if m.lastCmd != nil {
			c, args = m.lastCmd, m.lastArgs
		}

		if c == nil || c.Data == nil {
			continue
		}
		m.lastCmd, m.lastArgs = c, args

		handler := c.Data.(func(*Monitor, *cmd.Command, []string) error)
		err = handler(m, c, args)
		if err != nil {
			break
		}
	}

	m.flush()
}

// Break interrupts a running machine.
func (m *Monitor) Break() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cancel != nil {
		m.cancel()
	}
}

// breakable returns a context cancelled by Break, and a function that
// detaches it again.
func (m *Monitor) breakable() (ctx context.Context, release func()) {
	ctx, cancel := context.WithCancel(context.Background())

	m.mutex.Lock()
	m.cancel = cancel
	m.mutex.Unlock()

	release = func() {
		m.mutex.Lock()
		m.cancel = nil
		m.mutex.Unlock()
		cancel()
	}
	return
}

// Send prints an OUT value.
func (m *Monitor) Send(value uint8) error {
	m.printf("OUT> %d\n", value)
	return nil
}

// receive reads an IN value from the command stream.
func (m *Monitor) receive() (value int, err error) {
	m.printf("IN> ")

	line, err := m.getLine()
	if err != nil {
		return
	}

	word := strings.TrimSpace(line)
	value, err = strconv.Atoi(word)
	if err != nil {
		err = acc8io.ErrInputSyntax(word)
		return
	}

	return
}

func (m *Monitor) printf(format string, args ...any) {
	fmt.Fprintf(m.output, format, args...)
	m.flush()
}

func (m *Monitor) println(args ...any) {
	fmt.Fprintln(m.output, args...)
	m.flush()
}

func (m *Monitor) flush() {
	m.output.Flush()
}

func (m *Monitor) getLine() (string, error) {
	if m.input.Scan() {
		return m.input.Text(), nil
	}
	if m.input.Err() != nil {
		return "", m.input.Err()
	}
	return "", io.EOF
}

func (m *Monitor) prompt() {
	if m.interactive {
		m.printf("acc8> ")
	}
}

func (m *Monitor) displayPC() {
	if m.interactive {
		m.println(m.registers())
	}
}

// registers renders the instruction at PC with the register file.
func (m *Monitor) registers() string {
	emu := m.emu
	text, _ := m.disassemble(emu.Pc)
	return fmt.Sprintf("%-24s ACC=%-3d Z=%d N=%d T=%d",
		text, emu.Acc, boolToInt(emu.Z), boolToInt(emu.N), emu.Ticks)
}

// disassemble renders one instruction, returning the address after it.
func (m *Monitor) disassemble(addr uint8) (str string, next uint8) {
	mem := m.emu.Memory[:]

	text, size := cpu.Disassemble(mem, int(addr))
	b := make([]uint8, size)
	for i := range b {
		b[i] = mem[(int(addr)+i)%cpu.MEMORY_SIZE]
	}

	str = fmt.Sprintf("%03d-  %-5s  %s", addr, codeString(b), text)
	if label, ok := m.emu.Program.SymbolAt(int(addr), false); ok {
		str = fmt.Sprintf("%-24s ; %s", str, label)
	}

	next = addr + uint8(size)
	return
}

func (m *Monitor) dumpMemory(addr0, bytes int) {
	if bytes <= 0 {
		return
	}

	addr1 := min(addr0+bytes-1, cpu.MEMORY_SIZE-1)

	buf := []byte("   -" + strings.Repeat(" ", 33))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:3])
		for a, c1, c2 := addr0, 5, 29; a <= addr1; a, c1, c2 = a+1, c1+3, c2+1 {
			v := m.emu.Memory[a]
			byteToBuf(v, buf[c1:c1+2])
			buf[c2] = toPrintableChar(v)
		}
		m.println(strings.TrimRight(string(buf), " "))
		return
	}

	for row := addr0 &^ 7; row <= addr1; row += 8 {
		addrToBuf(row, buf[0:3])
		for a, c1, c2 := row, 5, 29; c1 < 29; a, c1, c2 = a+1, c1+3, c2+1 {
			if a >= addr0 && a <= addr1 {
				v := m.emu.Memory[a]
				byteToBuf(v, buf[c1:c1+2])
				buf[c2] = toPrintableChar(v)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		m.println(strings.TrimRight(string(buf), " "))
	}
}

func (m *Monitor) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		c.DisplayUsage(m.output)
		m.flush()
	} else {
		m.println("<no help text>")
	}
}

// parseValue evaluates an integer argument. "." is the program counter,
// and program symbols may be used by name.
func (m *Monitor) parseValue(s string) (value int64, err error) {
	if s == "." {
		value = int64(m.emu.Pc)
		return
	}

	if m.settings.HexMode {
		value, err = strconv.ParseInt(s, 16, 64)
		if err == nil {
			return
		}
	}

	return cpu.Evaluate(s, m.emu.Program)
}

// parseAddr evaluates a memory address argument.
func (m *Monitor) parseAddr(s string) (addr uint8, err error) {
	value, err := m.parseValue(s)
	if err != nil {
		return
	}

	if value < 0 || value >= cpu.MEMORY_SIZE {
		err = ErrAddressRange(value)
		return
	}

	addr = uint8(value)
	return
}

// report describes why the machine stopped.
func (m *Monitor) report(done bool, err error) {
	switch {
	case errors.Is(err, emulator.ErrBreakpoint(0)):
		m.printf("Breakpoint hit at %03d.\n", m.emu.Pc)
	case errors.Is(err, emulator.ErrDataBreakpoint(0)):
		m.printf("Data breakpoint hit on address %03d.\n", m.emu.Last.Address)
	case errors.Is(err, context.Canceled):
		m.println("Stopped.")
	case err != nil:
		m.printf("ERROR: %v\n", err)
	case done:
		m.println("Halted.")
	}
}

// load installs a new program and resets the machine.
func (m *Monitor) load(prog *cpu.Program) {
	m.emu.Load(prog)
	m.settings.NextDisasmAddr = 0
	m.settings.NextMemDumpAddr = 0
}

func (m *Monitor) cmdAssemble(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	filename := args[0]
	if filepath.Ext(filename) == "" {
		filename += ".asm"
	}

	file, err := os.Open(filename)
	if err != nil {
		m.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	asm := &cpu.Assembler{
		Verbose:  m.emu.Verbose,
		DataBase: m.settings.DataBase,
	}
	prog, err := asm.Parse(file)
	if err != nil {
		m.printf("Failed to assemble '%s':\n%v\n", filepath.Base(filename), err)
		return nil
	}

	m.load(prog)
	m.printf("Assembled '%s': %d code bytes, %d variables.\n", filepath.Base(filename), len(prog.Code), len(prog.Variables))
	m.displayPC()
	return nil
}

func (m *Monitor) cmdExample(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.println("Examples:")
		for _, name := range programs.Names() {
			m.printf("    %s\n", name)
		}
		return nil
	}

	source, err := programs.Source(args[0])
	if err != nil {
		m.printf("%v: %s\n", err, args[0])
		return nil
	}

	prog, err := cpu.Assemble(source, m.settings.DataBase)
	if err != nil {
		m.printf("Failed to assemble '%s':\n%v\n", args[0], err)
		return nil
	}

	m.load(prog)
	m.printf("Loaded example '%s'.\n", strings.ToLower(args[0]))
	m.displayPC()
	return nil
}

func (m *Monitor) cmdSave(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	if len(m.emu.Program.Code) == 0 {
		m.printf("%v\n", ErrNoProgram)
		return nil
	}

	filename := args[0]
	if filepath.Ext(filename) == "" {
		filename += ".json"
	}

	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		m.printf("Failed to create '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	_, err = m.emu.Program.WriteTo(file)
	if err != nil {
		m.printf("Failed to save '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	m.printf("Saved '%s'.\n", filepath.Base(filename))
	return nil
}

func (m *Monitor) cmdLoad(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	filename := args[0]
	if filepath.Ext(filename) == "" {
		filename += ".json"
	}

	file, err := os.Open(filename)
	if err != nil {
		m.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	prog := &cpu.Program{}
	_, err = prog.ReadFrom(file)
	if err != nil {
		m.printf("Failed to read '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	m.load(prog)
	m.printf("Loaded '%s': %d code bytes.\n", filepath.Base(filename), len(prog.Code))
	m.displayPC()
	return nil
}

func (m *Monitor) cmdBreakpointList(c *cmd.Command, args []string) error {
	m.println("Addr Enabled")
	m.println("---- -------")
	for _, b := range m.emu.Breakpoints() {
		m.printf("%03d  %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (m *Monitor) cmdBreakpointAdd(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	addr, err := m.parseAddr(args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	m.emu.AddBreakpoint(addr)
	m.printf("Breakpoint added at %03d.\n", addr)
	return nil
}

func (m *Monitor) cmdBreakpointRemove(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	addr, err := m.parseAddr(args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	if m.emu.GetBreakpoint(addr) == nil {
		m.printf("No breakpoint was set on %03d.\n", addr)
		return nil
	}

	m.emu.RemoveBreakpoint(addr)
	m.printf("Breakpoint at %03d removed.\n", addr)
	return nil
}

func (m *Monitor) cmdBreakpointEnable(c *cmd.Command, args []string) error {
	return m.breakpointEnable(c, args, true)
}

func (m *Monitor) cmdBreakpointDisable(c *cmd.Command, args []string) error {
	return m.breakpointEnable(c, args, false)
}

func (m *Monitor) breakpointEnable(c *cmd.Command, args []string, enable bool) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	addr, err := m.parseAddr(args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	b := m.emu.GetBreakpoint(addr)
	if b == nil {
		m.printf("No breakpoint was set on %03d.\n", addr)
		return nil
	}

	b.Disabled = !enable
	if enable {
		m.printf("Breakpoint at %03d enabled.\n", addr)
	} else {
		m.printf("Breakpoint at %03d disabled.\n", addr)
	}
	return nil
}

func (m *Monitor) cmdDataBreakpointList(c *cmd.Command, args []string) error {
	m.println("Addr Enabled  Value")
	m.println("---- -------  -----")
	for _, b := range m.emu.DataBreakpoints() {
		if b.Conditional {
			m.printf("%03d  %-5v    %d\n", b.Address, !b.Disabled, b.Value)
		} else {
			m.printf("%03d  %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (m *Monitor) cmdDataBreakpointAdd(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	addr, err := m.parseAddr(args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	if len(args) > 1 {
		value, err := m.parseValue(args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.emu.AddConditionalDataBreakpoint(addr, uint8(value))
		m.printf("Conditional data breakpoint added at %03d for value %d.\n", addr, uint8(value))
	} else {
		m.emu.AddDataBreakpoint(addr)
		m.printf("Data breakpoint added at %03d.\n", addr)
	}

	return nil
}

func (m *Monitor) cmdDataBreakpointRemove(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	addr, err := m.parseAddr(args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	if m.emu.GetDataBreakpoint(addr) == nil {
		m.printf("No data breakpoint was set on %03d.\n", addr)
		return nil
	}

	m.emu.RemoveDataBreakpoint(addr)
	m.printf("Data breakpoint at %03d removed.\n", addr)
	return nil
}

func (m *Monitor) cmdDataBreakpointEnable(c *cmd.Command, args []string) error {
	return m.dataBreakpointEnable(c, args, true)
}

func (m *Monitor) cmdDataBreakpointDisable(c *cmd.Command, args []string) error {
	return m.dataBreakpointEnable(c, args, false)
}

func (m *Monitor) dataBreakpointEnable(c *cmd.Command, args []string, enable bool) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	addr, err := m.parseAddr(args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	b := m.emu.GetDataBreakpoint(addr)
	if b == nil {
		m.printf("No data breakpoint was set on %03d.\n", addr)
		return nil
	}

	b.Disabled = !enable
	if enable {
		m.printf("Data breakpoint at %03d enabled.\n", addr)
	} else {
		m.printf("Data breakpoint at %03d disabled.\n", addr)
	}
	return nil
}

func (m *Monitor) cmdDisassemble(c *cmd.Command, args []string) error {
	addr := m.emu.Pc
	if len(args) > 0 {
		switch args[0] {
		case "$":
			addr = m.settings.NextDisasmAddr
		default:
			a, err := m.parseAddr(args[0])
			if err != nil {
				m.printf("%v\n", err)
				return nil
			}
			addr = a
		}
	}

	lines := m.settings.DisasmLines
	if len(args) > 1 {
		n, err := m.parseValue(args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		lines = int(n)
	}

	for range lines {
		var text string
		text, addr = m.disassemble(addr)
		m.println(text)
	}

	m.settings.NextDisasmAddr = addr
	m.lastArgs = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (m *Monitor) cmdEval(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	expr := strings.Join(args, " ")
	v, err := m.parseValue(expr)
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	m.printf("%d\n", v)
	return nil
}

func (m *Monitor) cmdHelp(c *cmd.Command, args []string) error {
	err := cmds.GetHelp(m.output, args)
	if err != nil {
		m.printf("%v.\n", err)
	}
	m.flush()
	return nil
}

func (m *Monitor) cmdList(c *cmd.Command, args []string) error {
	prog := m.emu.Program
	if len(prog.Lines) == 0 {
		m.printf("%v\n", ErrNoProgram)
		return nil
	}

	current := m.emu.LineNo()
	for n, line := range prog.Lines {
		marker := "  "
		if n+1 == current {
			marker = "=>"
		}
		m.printf("%s %3d  %s\n", marker, n+1, line)
	}
	return nil
}

func (m *Monitor) cmdMemoryDump(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		m.displayUsage(c)
		return nil
	}

	var addr uint8
	switch args[0] {
	case "$":
		addr = m.settings.NextMemDumpAddr
	default:
		a, err := m.parseAddr(args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := m.settings.MemDumpBytes
	if len(args) > 1 {
		n, err := m.parseValue(args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		bytes = int(n)
	}

	m.dumpMemory(int(addr), bytes)

	m.settings.NextMemDumpAddr = addr + uint8(bytes)
	m.lastArgs = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (m *Monitor) cmdQuit(c *cmd.Command, args []string) error {
	return ErrExiting
}

func (m *Monitor) cmdRegisters(c *cmd.Command, args []string) error {
	m.println(m.registers())
	return nil
}

func (m *Monitor) cmdReset(c *cmd.Command, args []string) error {
	m.emu.Reset()
	m.println("Machine reset.")
	m.displayPC()
	return nil
}

func (m *Monitor) cmdRun(c *cmd.Command, args []string) error {
	if m.emu.Halted {
		m.report(true, nil)
		return nil
	}

	m.printf("Running from %03d. Press ctrl-C to break.\n", m.emu.Pc)

	ctx, release := m.breakable()
	interval := time.Duration(m.settings.RunInterval) * time.Millisecond
	err := m.emu.Run(ctx, interval)
	release()

	m.report(m.emu.Halted, err)
	m.displayPC()

	m.settings.NextDisasmAddr = m.emu.Pc
	return nil
}

func (m *Monitor) cmdSet(c *cmd.Command, args []string) error {
	switch len(args) {
	case 0:
		m.println("Variables:")
		m.settings.Display(m.output)
		m.flush()
		return nil

	case 1:
		m.displayUsage(c)
		return nil
	}

	key, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")

	// Setting a register?
	switch key {
	case "acc":
		v, err := m.parseValue(value)
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.emu.Acc = uint8(v)
		m.printf("Register ACC set to %d.\n", m.emu.Acc)
		return nil
	case ".", "pc":
		addr, err := m.parseAddr(value)
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.emu.Pc = addr
		m.printf("Register PC set to %03d.\n", m.emu.Pc)
		return nil
	}

	var err error
	switch m.settings.Kind(key) {
	case reflect.Invalid:
		err = fmt.Errorf("%w: %s", ErrSettingAbsent, key)
	case reflect.Bool:
		var v bool
		v, err = stringToBool(value)
		if err == nil {
			err = m.settings.Set(key, v)
		}
	default:
		var v int64
		v, err = m.parseValue(value)
		if err == nil {
			err = m.settings.Set(key, v)
		}
	}

	if err == nil {
		m.println("Setting updated.")
	} else {
		m.printf("%v\n", err)
	}

	return nil
}

func (m *Monitor) cmdStep(c *cmd.Command, args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := m.parseValue(args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}

	if m.emu.Halted {
		m.report(true, nil)
		return nil
	}

	ctx, release := m.breakable()
	defer release()

	for i := count - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			m.report(false, err)
			break
		}

		done, err := m.emu.Tick()
		shown := i <= m.settings.StepLinesToDisplay
		switch {
		case i == m.settings.StepLinesToDisplay:
			m.println("...")
			shown = false
		case i < m.settings.StepLinesToDisplay:
			m.println(m.emu.Last.String())
		}
		if done || err != nil {
			if !shown {
				m.println(m.emu.Last.String())
			}
			m.report(done, err)
			break
		}
	}

	m.settings.NextDisasmAddr = m.emu.Pc
	return nil
}

func (m *Monitor) cmdSymbols(c *cmd.Command, args []string) error {
	prog := m.emu.Program

	count := 0
	for name, addr := range prog.Symbols() {
		kind := "label"
		if _, ok := prog.Variables[name]; ok {
			kind = "variable"
		}
		m.printf("%-16s %03d  %s\n", name, addr, kind)
		count++
	}

	if count == 0 {
		m.println("No symbols.")
	}
	return nil
}
