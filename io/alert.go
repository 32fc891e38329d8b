package io

import (
	"io"
)

// Bell is a Speaker that writes the terminal BEL character when the
// sound cue turns on.
type Bell struct {
	Output io.Writer

	Rings int // Times the bell was rung.

	on bool
}

var _ Speaker = (*Bell)(nil)

func (b *Bell) Sound(on bool) (err error) {
	if on && !b.on {
		_, err = b.Output.Write([]byte{'\a'})
		if err != nil {
			return
		}
		b.Rings++
	}

	b.on = on

	return
}

// Silent is a Speaker that discards the sound cue.
type Silent struct{}

var _ Speaker = Silent{}

func (Silent) Sound(on bool) error {
	return nil
}
