// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package gui presents the CHIP-8 machine in an SDL2 window.
//
// A Gui implements the io.Screen, io.Input and io.Speaker collaborators.
// SDL requires its calls to be made from the main OS thread; callers
// should lock the main goroutine to its thread before calling New.
package gui

import (
	"log"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/io"
)

// Gui is an SDL2 window, keyboard and audio device.
type Gui struct {
	Verbose bool
	KeyMap  io.KeyMap // Host key mapping.

	window   *sdl.Window
	renderer *sdl.Renderer
	scale    int32

	scancodes map[rune]sdl.Scancode

	tone *tone
}

var (
	_ io.Screen  = (*Gui)(nil)
	_ io.Input   = (*Gui)(nil)
	_ io.Speaker = (*Gui)(nil)
)

// New opens a window titled title, with each display pixel drawn as a
// scale x scale square.
func New(title string, scale int) (gui *Gui, err error) {
	if scale < 1 {
		scale = 1
	}

	err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS)
	if err != nil {
		err = ErrInit{Err: err}
		return
	}

	gui = &Gui{
		KeyMap:    io.DefaultKeyMap(),
		scale:     int32(scale),
		scancodes: scancodes(),
	}

	defer func() {
		if err != nil {
			gui.Close()
			gui = nil
		}
	}()

	gui.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED),
		cpu.DISPLAY_WIDTH*gui.scale, cpu.DISPLAY_HEIGHT*gui.scale,
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		err = ErrInit{Err: err}
		return
	}

	gui.renderer, err = sdl.CreateRenderer(gui.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		err = ErrInit{Err: err}
		return
	}

	// A blank frame until the program draws.
	err = gui.Render(&cpu.Display{})
	if err != nil {
		err = ErrInit{Err: err}
		return
	}

	gui.tone, err = newTone()
	if err != nil {
		// Run silently without an audio device.
		log.Printf("gui: audio disabled: %v", err)
		gui.tone = nil
		err = nil
	}

	return
}

// Close releases the audio device, the window and SDL itself.
func (gui *Gui) Close() (err error) {
	if gui.tone != nil {
		gui.tone.Close()
		gui.tone = nil
	}

	if gui.renderer != nil {
		err = gui.renderer.Destroy()
		gui.renderer = nil
	}

	if gui.window != nil {
		werr := gui.window.Destroy()
		if err == nil {
			err = werr
		}
		gui.window = nil
	}

	sdl.Quit()

	return
}

// Render draws the display, lit pixels white on black.
func (gui *Gui) Render(display *cpu.Display) (err error) {
	r := gui.renderer

	err = r.SetDrawColor(0, 0, 0, 255)
	if err != nil {
		return
	}
	err = r.Clear()
	if err != nil {
		return
	}

	err = r.SetDrawColor(255, 255, 255, 255)
	if err != nil {
		return
	}

	for y, row := range display.Rows() {
		for x, on := range row {
			if !on {
				continue
			}
			rect := sdl.Rect{
				X: int32(x) * gui.scale,
				Y: int32(y) * gui.scale,
				W: gui.scale,
				H: gui.scale,
			}
			err = r.FillRect(&rect)
			if err != nil {
				return
			}
		}
	}

	r.Present()

	return
}

// Poll drains the SDL event queue, then samples the keyboard.
// Closing the window or pressing Escape requests a quit.
func (gui *Gui) Poll() (keys cpu.Keys, quit bool, err error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			quit = true
		}
	}

	state := sdl.GetKeyboardState()
	held := func(key rune) bool {
		sc, ok := gui.scancodes[key]
		return ok && int(sc) < len(state) && state[sc] != 0
	}

	keys = gui.KeyMap.Keys(held)

	if state[sdl.SCANCODE_ESCAPE] != 0 {
		quit = true
	}

	if gui.Verbose && keys != 0 {
		log.Printf("gui: keys %v", keys)
	}

	return
}

// Sound starts or stops the tone.
func (gui *Gui) Sound(on bool) (err error) {
	if gui.tone == nil {
		return
	}

	return gui.tone.Sound(on)
}

// scancodes maps the host keys a KeyMap may name to their scancodes.
func scancodes() (codes map[rune]sdl.Scancode) {
	codes = map[rune]sdl.Scancode{
		'0': sdl.SCANCODE_0,
	}
	for n := range rune(9) {
		codes['1'+n] = sdl.SCANCODE_1 + sdl.Scancode(n)
	}
	for n := range rune(26) {
		codes['a'+n] = sdl.SCANCODE_A + sdl.Scancode(n)
	}
	return
}
