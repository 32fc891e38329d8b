package cpu

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrStackEmpty  = errors.New(f("stack empty"))
	ErrStackFull   = errors.New(f("stack full"))
	ErrHalted      = errors.New(f("halted"))
	ErrProgramSize = errors.New(f("program too large"))
)

// ErrOpcode is returned when an instruction word does not decode.
type ErrOpcode uint16

func (eo ErrOpcode) Error() string {
	return f("unsupported opcode 0x%04X", uint16(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress is returned when an access runs past the end of memory.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%04X out of range", int(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrInstruction attaches the faulting instruction to an execution error.
type ErrInstruction struct {
	Instruction Instruction
	Err         error
}

func (err ErrInstruction) Error() string {
	return f("%v: %v", err.Instruction, err.Err)
}

func (err ErrInstruction) Unwrap() error {
	return err.Err
}
