package main

import (
	"os"
	"syscall"

	"github.com/pkg/term/termios"
)

// isTerminal returns true if the file is attached to a terminal.
func isTerminal(file *os.File) bool {
	var attr syscall.Termios
	return termios.Tcgetattr(file.Fd(), &attr) == nil
}
