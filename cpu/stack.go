package cpu

import (
	"iter"
)

const (
	STACK_LIMIT = 16 // Maximum stack depth
)

// Stack of subroutine return addresses, with a fixed depth.
type Stack struct {
	Data  [STACK_LIMIT]uint16
	Depth int
}

// Push returns false, leaving the stack unchanged, when it is full.
func (s *Stack) Push(value uint16) (ok bool) {
	if s.Full() {
		return
	}

	s.Data[s.Depth] = value
	s.Depth++

	return true
}

func (s *Stack) Pop() (value uint16, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Depth--
	}
	return
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[s.Depth-1], true
}

func (s *Stack) Empty() bool {
	return s.Depth == 0
}

func (s *Stack) Full() bool {
	return s.Depth >= STACK_LIMIT
}

func (s *Stack) Reset() {
	clear(s.Data[:])
	s.Depth = 0
}

// Frames returns the return addresses in use, oldest first.
func (s *Stack) Frames() []uint16 {
	return s.Data[:s.Depth]
}

// All returns an iterator over the return addresses, innermost first.
func (s *Stack) All() iter.Seq[uint16] {
	return func(yield func(value uint16) bool) {
		for n := s.Depth - 1; n >= 0; n-- {
			if !yield(s.Data[n]) {
				return
			}
		}
	}
}
