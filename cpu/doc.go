// Package cpu implements the CHIP-8 virtual machine.
//
// The machine consists of 4KiB of memory with the built-in hexadecimal font
// at address 0x000, sixteen 8-bit registers (v0-vf), a 16-bit index register
// (i), a return stack, a 64x32 monochrome display, and the delay and sound
// timers which count down at 60Hz of wall-clock time.
//
// Decode maps a raw instruction word to an Instruction. Cpu.Step fetches,
// decodes and executes a single instruction, and reports whether the display
// needs to be redrawn and whether the sound timer is active.
package cpu
