package cpu

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

const (
	KEY_COUNT = 16 // Number of keys on the hexadecimal keypad.
)

// Keys is a set of keypad codes, 0x0 through 0xF.
type Keys uint16

// KeysOf returns the set of the given codes. Codes past 0xF are ignored.
func KeysOf(codes ...uint8) (keys Keys) {
	for _, code := range codes {
		keys = keys.Press(code)
	}
	return
}

// Pressed returns true if the code is in the set.
func (k Keys) Pressed(code uint8) bool {
	if code >= KEY_COUNT {
		return false
	}
	return k&(1<<code) != 0
}

// Press returns the set with the code added.
func (k Keys) Press(code uint8) Keys {
	if code >= KEY_COUNT {
		return k
	}
	return k | (1 << code)
}

// Release returns the set with the code removed.
func (k Keys) Release(code uint8) Keys {
	if code >= KEY_COUNT {
		return k
	}
	return k &^ (1 << code)
}

// Edges returns the keys which are in this set, but not in prior.
func (k Keys) Edges(prior Keys) Keys {
	return k &^ prior
}

// Lowest returns the lowest code in the set.
func (k Keys) Lowest() (code uint8, ok bool) {
	if k == 0 {
		return
	}
	return uint8(bits.TrailingZeros16(uint16(k))), true
}

// All returns an iterator over the codes in the set, lowest first.
func (k Keys) All() iter.Seq[uint8] {
	return func(yield func(code uint8) bool) {
		for code := range uint8(KEY_COUNT) {
			if k.Pressed(code) && !yield(code) {
				return
			}
		}
	}
}

func (k Keys) String() string {
	var codes []string
	for code := range k.All() {
		codes = append(codes, fmt.Sprintf("%X", code))
	}
	return "{" + strings.Join(codes, " ") + "}"
}
