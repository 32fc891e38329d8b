package io

import (
	"fmt"
	"io/fs"

	"github.com/ezrec/chip8/cpu"
)

const (
	ROM_SIZE_LIMIT = cpu.MEMORY_SIZE - cpu.PROGRAM_START // Largest loadable program.
)

// LoadRom reads a program image from the file system.
func LoadRom(fsys fs.FS, name string) (program []byte, err error) {
	program, err = fs.ReadFile(fsys, name)
	if err != nil {
		return
	}

	if len(program) > ROM_SIZE_LIMIT {
		err = fmt.Errorf("%v: %w: %d > %d", name, ErrRomSize, len(program), ROM_SIZE_LIMIT)
		program = nil
		return
	}

	return
}
