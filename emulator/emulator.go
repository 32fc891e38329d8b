// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"time"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

const (
	DEFAULT_RATE = 500                    // Default steps per second.
	MAX_LAG      = 100 * time.Millisecond // Pacing resynchronizes when further behind than this.
)

// Emulator state. CPU + collaborators.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	Screen  io.Screen  // Framebuffer presentation.
	Input   io.Input   // Keypad sampling and quit requests.
	Speaker io.Speaker // Sound cue.

	Rate  int // Steps per second. Zero runs unpaced.
	Limit int // Steps before Run stops. Zero is unlimited.

	// Wait blocks for the duration, or until the context is done.
	Wait func(ctx context.Context, d time.Duration) error

	Steps  int // Steps performed since Load.
	Frames int // Frames presented since Load.
}

// NewEmulator creates a new emulator, with headless collaborators,
// whose timers and pacing run from the clock.
func NewEmulator(clock cpu.Clock) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(clock),
		Screen:  io.NoScreen{},
		Input:   io.NoInput{},
		Speaker: io.Silent{},
		Rate:    DEFAULT_RATE,
		Wait:    wait,
	}

	return
}

// Close closes every collaborator that holds a resource, once each.
func (emu *Emulator) Close() (err error) {
	type closer interface {
		Close() error
	}

	var closed []closer
	for _, dev := range []any{emu.Screen, emu.Input, emu.Speaker} {
		c, ok := dev.(closer)
		if !ok {
			continue
		}
		seen := false
		for _, prior := range closed {
			if prior == c {
				seen = true
			}
		}
		if seen {
			continue
		}
		closed = append(closed, c)

		cerr := c.Close()
		if err == nil {
			err = cerr
		}
	}

	return
}

// Load resets the machine and loads a program.
func (emu *Emulator) Load(program []byte) (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	emu.Steps = 0
	emu.Frames = 0

	err = emu.Cpu.Load(program)
	if err != nil {
		return
	}

	// The initial, blank, frame.
	err = emu.render()

	return
}

// State returns an iterator over the emulator counters and the machine
// registers.
func (emu *Emulator) State() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		internal.IterSeq2Lazy("steps", func() string { return fmt.Sprintf("%v", emu.Steps) }),
		internal.IterSeq2Lazy("frames", func() string { return fmt.Sprintf("%v", emu.Frames) }),
		emu.Cpu.Registers(),
	)
}

// String returns the emulator state as a string.
func (emu *Emulator) String() (text string) {
	for name, value := range emu.State() {
		text += fmt.Sprintf("% 7s: %v\n", name, value)
	}
	return
}

// Tick performs a single step of the emulator:
// - Polls the input.
// - Steps the machine.
// - Presents the display if it changed.
// - Updates the sound cue.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	keys, quit, err := emu.Input.Poll()
	if err != nil {
		err = &ErrDevice{Device: "input", Err: err}
		return
	}
	if quit {
		if emu.Verbose {
			log.Printf("emulator: quit after %d steps", emu.Steps)
		}
		done = true
		return
	}

	pc := emu.Cpu.Pc
	result, err := emu.Cpu.Step(keys)
	if err != nil {
		err = &ErrRuntime{Pc: pc, Err: err}
		return
	}
	emu.Steps++

	if result.Draw {
		err = emu.render()
		if err != nil {
			return
		}
	}

	err = emu.Speaker.Sound(result.Sound)
	if err != nil {
		err = &ErrDevice{Device: "speaker", Err: err}
		return
	}

	if emu.Limit > 0 && emu.Steps >= emu.Limit {
		done = true
	}

	return
}

func (emu *Emulator) render() (err error) {
	err = emu.Screen.Render(&emu.Cpu.Display)
	if err != nil {
		err = &ErrDevice{Device: "screen", Err: err}
		return
	}

	emu.Frames++

	return
}

// Run ticks the emulator at Rate steps per second until the input asks to
// quit, the step limit is reached, the context is done, or a step fails.
//
// Each step is scheduled a fixed period after the prior one was scheduled,
// so sleep overshoot does not accumulate.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	var period time.Duration
	if emu.Rate > 0 {
		period = time.Second / time.Duration(emu.Rate)
	}

	clock := emu.Cpu.Clock
	next := clock.Now()

	for {
		if ctx.Err() != nil {
			if emu.Verbose {
				log.Printf("emulator: %v", context.Cause(ctx))
			}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}

		if period == 0 {
			continue
		}

		next = next.Add(period)
		delay := next.Sub(clock.Now())
		if delay < -MAX_LAG {
			// Too far behind to catch up; start over from now.
			next = clock.Now()
			continue
		}
		if delay <= 0 {
			continue
		}

		if emu.Wait(ctx, delay) != nil {
			return
		}
	}
}

// wait sleeps for d, returning early with the context error when ctx is done.
func wait(ctx context.Context, d time.Duration) (err error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-timer.C:
	}

	return
}
