package io

import (
	"io"

	"github.com/ezrec/chip8/cpu"
)

const (
	ansiHome = "\x1b[H\x1b[2J"
)

// TextScreen renders the framebuffer as text on an io.Writer,
// '#' for lit and '.' for unlit pixels, one line per row.
type TextScreen struct {
	Output io.Writer
	Ansi   bool // Home the cursor and clear the terminal before each frame.

	Frames int // Frames rendered.
}

var _ Screen = (*TextScreen)(nil)

// Render writes one frame, followed by a blank separator line.
func (ts *TextScreen) Render(display *cpu.Display) (err error) {
	frame := display.String() + "\n"
	if ts.Ansi {
		frame = ansiHome + frame
	}

	_, err = io.WriteString(ts.Output, frame)
	if err != nil {
		return
	}

	ts.Frames++

	return
}

// NoScreen is a Screen that discards every frame.
type NoScreen struct{}

var _ Screen = NoScreen{}

func (NoScreen) Render(display *cpu.Display) error {
	return nil
}
