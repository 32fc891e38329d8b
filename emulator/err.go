package emulator

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  uint16 // Address of the faulting instruction.
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%03X: %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrDevice indicates a collaborator failure.
type ErrDevice struct {
	Device string
	Err    error
}

func (err *ErrDevice) Error() string {
	return f("%v: %v", err.Device, err.Err)
}

func (err *ErrDevice) Unwrap() error {
	return err.Err
}
