// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/beevik/term"

	"github.com/ezrec/acc8/cpu"
	"github.com/ezrec/acc8/emulator"
	"github.com/ezrec/acc8/io"
	"github.com/ezrec/acc8/monitor"
	"github.com/ezrec/acc8/translate"
)

func main() {
	var compile string
	var load string
	var save string
	var dataBase int
	var input string
	var output string
	var verbose bool
	var trace bool
	var interactive bool
	var language string

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&load, "l", "", ".json image file to load")
	flag.StringVar(&save, "s", "", "Save image to .json file, do not execute")
	flag.IntVar(&dataBase, "b", cpu.DATA_BASE_DEFAULT, "Address of the first variable")
	flag.StringVar(&input, "i", "-", "IN values")
	flag.StringVar(&output, "o", "-", "OUT values")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&trace, "t", false, "Trace each step to stderr")
	flag.BoolVar(&interactive, "m", false, "Interactive monitor")
	flag.StringVar(&language, "L", "", "Message language tag")

	flag.Parse()

	if len(language) != 0 {
		err := translate.SetLanguage(language)
		if err != nil {
			log.Fatalf("%v: %v", language, err)
		}
	}

	if len(compile) == 0 && len(load) == 0 {
		interactive = true
	}

	if flag.NArg() != 0 && !interactive {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var prog *cpu.Program

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose, DataBase: dataBase}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Load an assembled image.
	if len(load) != 0 {
		inf, err := os.Open(load)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		defer inf.Close()

		prog = &cpu.Program{}
		_, err = prog.ReadFrom(inf)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	}

	if len(save) != 0 {
		if prog == nil {
			log.Fatalf("%v: no program to save", save)
		}

		ouf, err := os.Create(save)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		defer ouf.Close()

		_, err = prog.WriteTo(ouf)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	if prog != nil {
		emu.Load(prog)
	}

	if interactive {
		runMonitor(emu, flag.Args())
		return
	}

	stdin_tty := term.IsTerminal(int(os.Stdin.Fd()))

	if input == "-" {
		tape := &io.Tape{Input: os.Stdin}
		if stdin_tty {
			tape.Output = os.Stdout
			tape.Prompt = "IN> "
		}
		emu.Input = tape
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Input = &io.Tape{Input: inf}
	}

	if output == "-" {
		emu.Output = &io.Tape{Output: os.Stdout}
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Output = &io.Tape{Output: ouf}
	}

	for done, err := emu.Tick(); ; done, err = emu.Tick() {
		if trace {
			log.Print(emu.Last)
		}
		if err != nil {
			log.Fatal(err)
		}
		if done {
			break
		}
	}
}

// runMonitor runs any command scripts, then reads commands from stdin.
func runMonitor(emu *emulator.Emulator, scripts []string) {
	m := monitor.New(emu)

	for _, filename := range scripts {
		file, err := os.Open(filename)
		if err != nil {
			log.Fatalf("%v: %v", filename, err)
		}
		m.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			m.Break()
		}
	}()

	m.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}
