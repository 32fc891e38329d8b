package io

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/chip8/cpu"
)

// NoInput is an Input with no keys held that never quits.
type NoInput struct{}

var _ Input = NoInput{}

func (NoInput) Poll() (keys cpu.Keys, quit bool, err error) {
	return
}

// ScriptInput plays back keypad input from a script.
//
// Each line is a poll count followed by the host keys held for that many
// polls, or '-' for none:
//
//	# wait, then tap '5'
//	100 -
//	4 w
//	10 -
//	quit
//
// Blank lines and lines starting with '#' are ignored. A 'quit' line, or
// the end of the script, requests a quit.
type ScriptInput struct {
	Input  io.Reader
	KeyMap KeyMap // Host key mapping; DefaultKeyMap if nil.

	scanner *bufio.Scanner
	line    int
	keys    cpu.Keys
	remain  int
	done    bool
}

var _ Input = (*ScriptInput)(nil)

func (si *ScriptInput) Poll() (keys cpu.Keys, quit bool, err error) {
	for si.remain == 0 {
		if si.done {
			quit = true
			return
		}

		err = si.next()
		if err != nil {
			return
		}
	}

	si.remain--
	keys = si.keys

	return
}

// next reads the next script entry.
func (si *ScriptInput) next() (err error) {
	if si.scanner == nil {
		si.scanner = bufio.NewScanner(si.Input)
	}
	if si.KeyMap == nil {
		si.KeyMap = DefaultKeyMap()
	}

	for {
		if !si.scanner.Scan() {
			si.done = true
			err = si.scanner.Err()
			return
		}
		si.line++

		text := strings.TrimSpace(si.scanner.Text())
		if len(text) == 0 || strings.HasPrefix(text, "#") {
			continue
		}

		if text == "quit" {
			si.done = true
			return
		}

		bad := ErrScript{Line: si.line, Text: text}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			err = bad
			return
		}

		count, perr := strconv.Atoi(fields[0])
		if perr != nil || count < 1 {
			err = bad
			return
		}

		var keys cpu.Keys
		if fields[1] != "-" {
			for _, key := range fields[1] {
				code, ok := si.KeyMap.Code(key)
				if !ok {
					err = bad
					return
				}
				keys = keys.Press(code)
			}
		}

		si.keys = keys
		si.remain = count
		return
	}
}
