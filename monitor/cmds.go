// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "acc8"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Monitor).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "assemble",
		Brief: "Assemble a file and load it",
		Description: "Run the assembler on the specified file, placing" +
			" variables from the DataBase setting upward. If successful," +
			" the program is loaded and the machine is reset.",
		Usage: "assemble <filename>",
		Data:  (*Monitor).cmdAssemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "example",
		Brief: "Load a bundled example program",
		Description: "Assemble and load one of the bundled example" +
			" programs. Without a name, list the examples.",
		Usage: "example [<name>]",
		Data:  (*Monitor).cmdExample,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "save",
		Brief: "Save the assembled program",
		Description: "Save the loaded program, with its symbols and" +
			" source, as a JSON image file.",
		Usage: "save <filename>",
		Data:  (*Monitor).cmdSave,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load an assembled program",
		Description: "Load a JSON image file written by the save" +
			" command, and reset the machine.",
		Usage: "load <filename>",
		Data:  (*Monitor).cmdLoad,
	})

	// Breakpoint commands
	bp := root.AddSubtree(cmd.TreeDescriptor{Name: "breakpoint", Brief: "Breakpoint commands"})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all current breakpoints.",
		Usage:       "breakpoint list",
		Data:        (*Monitor).cmdBreakpointList,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a breakpoint",
		Description: "Add a breakpoint at the specified address." +
			" The breakpoint starts enabled.",
		Usage: "breakpoint add <address>",
		Data:  (*Monitor).cmdBreakpointAdd,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Remove a breakpoint at the specified address.",
		Usage:       "breakpoint remove <address>",
		Data:        (*Monitor).cmdBreakpointRemove,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a breakpoint",
		Description: "Enable a previously added breakpoint.",
		Usage:       "breakpoint enable <address>",
		Data:        (*Monitor).cmdBreakpointEnable,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:  "disable",
		Brief: "Disable a breakpoint",
		Description: "Disable a previously added breakpoint. This" +
			" prevents the breakpoint from being hit when running.",
		Usage: "breakpoint disable <address>",
		Data:  (*Monitor).cmdBreakpointDisable,
	})

	// Data breakpoint commands
	db := root.AddSubtree(cmd.TreeDescriptor{Name: "databreakpoint", Brief: "Data breakpoint commands"})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List data breakpoints",
		Description: "List all current data breakpoints.",
		Usage:       "databreakpoint list",
		Data:        (*Monitor).cmdDataBreakpointList,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a data breakpoint",
		Description: "Add a new data breakpoint at the specified" +
			" memory address. When the machine stores to this address," +
			" the breakpoint stops it. Optionally, a value may be" +
			" specified, and the machine stops only when this value" +
			" is stored.",
		Usage: "databreakpoint add <address> [<value>]",
		Data:  (*Monitor).cmdDataBreakpointAdd,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:  "remove",
		Brief: "Remove a data breakpoint",
		Description: "Remove a previously added data breakpoint at" +
			" the specified memory address.",
		Usage: "databreakpoint remove <address>",
		Data:  (*Monitor).cmdDataBreakpointRemove,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a data breakpoint",
		Description: "Enable a previously added data breakpoint.",
		Usage:       "databreakpoint enable <address>",
		Data:        (*Monitor).cmdDataBreakpointEnable,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "disable",
		Brief:       "Disable a data breakpoint",
		Description: "Disable a previously added data breakpoint.",
		Usage:       "databreakpoint disable <address>",
		Data:        (*Monitor).cmdDataBreakpointDisable,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble code",
		Description: "Disassemble machine code starting at the requested" +
			" address. The number of instructions to disassemble may be" +
			" specified as an option.",
		Usage: "disassemble [<address> [<count>]]",
		Data:  (*Monitor).cmdDisassemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "evaluate",
		Brief: "Evaluate an expression",
		Description: "Evaluate an integer expression. Program symbols" +
			" may be used by name.",
		Usage: "evaluate <expression>",
		Data:  (*Monitor).cmdEval,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "list",
		Brief: "List the program source",
		Description: "Display the source of the loaded program, marking" +
			" the line of the instruction at the program counter.",
		Usage: "list",
		Data:  (*Monitor).cmdList,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "memory",
		Brief: "Dump memory at address",
		Description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option.",
		Usage: "memory <address> [<bytes>]",
		Data:  (*Monitor).cmdMemoryDump,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Monitor).cmdQuit,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "registers",
		Brief: "Display register contents",
		Description: "Display the current contents of all registers, and" +
			" disassemble the instruction at the program counter.",
		Usage: "registers",
		Data:  (*Monitor).cmdRegisters,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "reset",
		Brief: "Restart the program",
		Description: "Reload the current program into memory and reset" +
			" the registers.",
		Usage: "reset",
		Data:  (*Monitor).cmdReset,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "run",
		Brief: "Run the machine",
		Description: "Run the machine until it halts, a breakpoint is hit," +
			" or the user types Ctrl-C.",
		Usage: "run",
		Data:  (*Monitor).cmdRun,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. Type the set" +
			" command without a variable name or value to display the current" +
			" values of all configuration variables.",
		Usage: "set <var> <value>",
		Data:  (*Monitor).cmdSet,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "step",
		Brief: "Step the machine",
		Description: "Step the machine by a single instruction. The number" +
			" of steps may be specified as an option.",
		Usage: "step [<count>]",
		Data:  (*Monitor).cmdStep,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "symbols",
		Brief: "List program symbols",
		Description: "Display the labels and variables of the loaded" +
			" program with their addresses.",
		Usage: "symbols",
		Data:  (*Monitor).cmdSymbols,
	})

	// Add command shortcuts.
	root.AddShortcut("a", "assemble")
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("dbl", "databreakpoint list")
	root.AddShortcut("dba", "databreakpoint add")
	root.AddShortcut("dbr", "databreakpoint remove")
	root.AddShortcut("dbe", "databreakpoint enable")
	root.AddShortcut("dbd", "databreakpoint disable")
	root.AddShortcut("e", "evaluate")
	root.AddShortcut("l", "list")
	root.AddShortcut("m", "memory")
	root.AddShortcut("r", "registers")
	root.AddShortcut("s", "step")
	root.AddShortcut("?", "help")

	cmds = root
}
