package io

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Loader errors
	ErrRomSize = errors.New(f("rom too large"))
)

// ErrScript is returned for a malformed key script line.
type ErrScript struct {
	Line int
	Text string
}

func (err ErrScript) Error() string {
	return f("key script line %v: bad entry %q", err.Line, err.Text)
}
