package gui

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrInit is returned when SDL or one of its resources fails to start.
type ErrInit struct {
	Err error
}

func (err ErrInit) Error() string {
	return f("sdl init: %v", err.Err)
}

func (err ErrInit) Unwrap() error {
	return err.Err
}
