package io

import (
	"unicode"

	"github.com/ezrec/chip8/cpu"
)

// KeyMap maps host keys onto keypad codes.
type KeyMap map[rune]uint8

// DefaultKeyMap returns the canonical layout, with the keypad
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
//
// on the left hand block of a QWERTY keyboard.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
		'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
		'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
		'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
	}
}

// Code returns the keypad code for a host key. Letters match either case.
func (km KeyMap) Code(key rune) (code uint8, ok bool) {
	code, ok = km[unicode.ToLower(key)]
	return
}

// Key returns the host key for a keypad code.
func (km KeyMap) Key(code uint8) (key rune, ok bool) {
	for k, c := range km {
		if c == code {
			return k, true
		}
	}
	return
}

// Keys returns the set of codes whose host keys are held.
func (km KeyMap) Keys(held func(key rune) bool) (keys cpu.Keys) {
	for key, code := range km {
		if held(key) {
			keys = keys.Press(code)
		}
	}
	return
}
