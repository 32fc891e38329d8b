// Package io provides the collaborators of the CHIP-8 emulator.
// It defines the presentation, input and sound interfaces the driver
// talks to, plus headless implementations of each: a text screen (TextScreen),
// a terminal bell (Bell), and fixed or scripted keypads (NoInput, ScriptInput).
// It also loads program images (LoadRom) and maps host keys onto the
// hexadecimal keypad (KeyMap).
package io

import (
	"github.com/ezrec/chip8/cpu"
)

// Screen presents the framebuffer.
type Screen interface {
	// Render presents the current display contents.
	Render(display *cpu.Display) error
}

// Input samples the keypad.
type Input interface {
	// Poll returns the keys currently held, and whether the user has
	// asked to quit.
	Poll() (keys cpu.Keys, quit bool, err error)
}

// Speaker presents the sound cue.
type Speaker interface {
	// Sound turns the cue on or off. It is called once per step.
	Sound(on bool) error
}
