// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/gui"
	chipio "github.com/ezrec/chip8/io"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

var (
	ErrMissingArg = errors.New(f("missing program argument"))
)

type options struct {
	scale    int
	rate     int
	headless bool
	steps    int
	seed     uint64
	keys     string
	verbose  bool
	version  bool
}

func init() {
	// SDL must be driven from the main OS thread.
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()

	if err != nil {
		log.Fatalf("%v: %v", filepath.Base(os.Args[0]), err)
	}
}

// run parses the arguments, then loads and runs the program until it quits.
func run(ctx context.Context, args []string, stdout io.Writer) (err error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(stdout)

	opts := options{}
	flags.IntVar(&opts.scale, "scale", 15, "window pixels per display pixel")
	flags.IntVar(&opts.rate, "rate", emulator.DEFAULT_RATE, "instructions per second, 0 for unpaced")
	flags.BoolVar(&opts.headless, "headless", false, "run without a window, drawing the display as text")
	flags.IntVar(&opts.steps, "steps", 0, "stop after this many instructions, 0 for no limit")
	flags.Uint64Var(&opts.seed, "seed", 0, "random number seed, 0 to seed from the time")
	flags.StringVar(&opts.keys, "keys", "", "key script file for headless input")
	flags.BoolVar(&opts.verbose, "v", false, "Verbose mode")
	flags.BoolVar(&opts.version, "version", false, "print the version and exit")

	err = flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		err = nil
		return
	}
	if err != nil {
		return
	}

	if opts.version {
		printBanner(stdout)
		return
	}

	if flags.NArg() != 1 {
		printBanner(stdout)
		fmt.Fprintf(stdout, "usage: chip8 [options] program.ch8\n\n")
		flags.PrintDefaults()
		err = ErrMissingArg
		return
	}

	name := flags.Arg(0)
	program, err := chipio.LoadRom(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	if err != nil {
		return
	}

	emu := emulator.NewEmulator(nil)
	emu.Verbose = opts.verbose
	emu.Rate = opts.rate
	emu.Limit = opts.steps
	if opts.seed != 0 {
		emu.Cpu.Seed(opts.seed)
	}

	var final *chipio.TextScreen
	if opts.headless {
		final, err = headless(emu, stdout, opts.keys)
	} else {
		err = windowed(emu, filepath.Base(name), opts.scale)
	}
	if err != nil {
		return
	}
	defer func() {
		cerr := emu.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = emu.Load(program)
	if err != nil {
		return
	}

	err = emu.Run(ctx)
	if err != nil {
		if opts.verbose {
			log.Printf("state:\n%v", emu)
		}
		return
	}

	if final != nil {
		err = final.Render(&emu.Cpu.Display)
	}

	return
}

// headless wires the text collaborators. When stdout is not a terminal,
// the screen returned is drawn once when the program stops.
func headless(emu *emulator.Emulator, stdout io.Writer, keys string) (final *chipio.TextScreen, err error) {
	file, ok := stdout.(*os.File)
	live := ok && isTerminal(file)

	if live {
		emu.Screen = &chipio.TextScreen{Output: stdout, Ansi: true}
		emu.Speaker = &chipio.Bell{Output: stdout}
	} else {
		final = &chipio.TextScreen{Output: stdout}
	}

	if len(keys) != 0 {
		var script *os.File
		script, err = os.Open(keys)
		if err != nil {
			return
		}
		emu.Input = &scriptFile{ScriptInput: chipio.ScriptInput{Input: script}, file: script}
	}

	return
}

// windowed wires the SDL window as every collaborator.
func windowed(emu *emulator.Emulator, name string, scale int) (err error) {
	g, err := gui.New("chip8 - "+name, scale)
	if err != nil {
		return
	}
	g.Verbose = emu.Verbose

	emu.Screen = g
	emu.Input = g
	emu.Speaker = g

	return
}

// scriptFile is a key script read from a file, closed with the emulator.
type scriptFile struct {
	chipio.ScriptInput
	file *os.File
}

func (sf *scriptFile) Close() error {
	return sf.file.Close()
}

func printBanner(stdout io.Writer) {
	fmt.Fprintln(stdout, "[-----------------------------]")
	fmt.Fprintln(stdout, "[ chip8 - CHIP-8 interpreter  ]")
	fmt.Fprintf(stdout, "[-----------------------------]\n\n")
	fmt.Fprintf(stdout, "version: %s\n\n", buildinfo.Version(version, commit, date))
}
