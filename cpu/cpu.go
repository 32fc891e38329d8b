// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	MEMORY_SIZE   = 4096  // Bytes of addressable memory.
	PROGRAM_START = 0x200 // Load address and initial PC.
	REGISTER_FLAG = 0xf   // Carry, borrow and collision flag register.
)

// StepResult reports the externally visible outcome of a step.
type StepResult struct {
	Draw  bool // The display changed, and should be presented.
	Sound bool // The sound timer is active.
}

// Cpu is the CHIP-8 machine state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc     uint16            // Program counter.
	I      uint16            // Index register.
	V      [16]uint8         // Register bank, v0-vf.
	Dt     uint8             // Delay timer.
	St     uint8             // Sound timer.
	Stack  Stack             // Subroutine return addresses.
	Memory [MEMORY_SIZE]byte // Font, program and work memory.

	Display Display // Framebuffer.

	Keys     Keys // Keys held during the current step.
	LastKeys Keys // Keys held during the prior step.

	Clock Clock      // Time source for the timers.
	Rand  *rand.Rand // Random source for the rnd instruction.

	Ticks int // Instructions executed since reset.

	lastTick time.Time
	fault    error
}

// NewCpu creates a new, reset, machine using the clock for its timers.
// A nil clock selects the wall clock.
func NewCpu(clock Clock) (cpu *Cpu) {
	if clock == nil {
		clock = WallClock{}
	}

	cpu = &Cpu{
		Clock: clock,
	}
	cpu.Seed(uint64(time.Now().UnixNano()))
	cpu.Reset()

	return
}

// Seed reseeds the random source.
func (cpu *Cpu) Seed(seed uint64) {
	cpu.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Reset the machine state.
// - Clears memory, registers, stack, keys and display.
// - Installs the font.
// - Sets the PC to the program start.
// - Restarts the timer clock.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[FONT_START:], font[:])

	clear(cpu.V[:])
	cpu.Pc = PROGRAM_START
	cpu.I = 0
	cpu.Dt = 0
	cpu.St = 0
	cpu.Stack.Reset()
	cpu.Display.Clear()
	cpu.Keys = 0
	cpu.LastKeys = 0
	cpu.Ticks = 0

	cpu.lastTick = cpu.Clock.Now()
	cpu.fault = nil
}

// Load copies a program into memory at PROGRAM_START.
func (cpu *Cpu) Load(program []byte) (err error) {
	if len(program) > MEMORY_SIZE-PROGRAM_START {
		err = fmt.Errorf("%w: %d > %d", ErrProgramSize, len(program), MEMORY_SIZE-PROGRAM_START)
		return
	}

	copy(cpu.Memory[PROGRAM_START:], program)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(program))
	}

	return
}

// Halted returns the fault that stopped the machine, or nil if running.
func (cpu *Cpu) Halted() error {
	return cpu.fault
}

// Step advances the timers, installs a new key snapshot, then fetches,
// decodes and executes one instruction.
//
// Any error halts the machine; subsequent steps return ErrHalted.
func (cpu *Cpu) Step(keys Keys) (result StepResult, err error) {
	if cpu.fault != nil {
		err = errors.Join(ErrHalted, cpu.fault)
		return
	}

	defer func() {
		if err != nil {
			cpu.fault = err
		}
	}()

	cpu.tickTimers()

	cpu.LastKeys = cpu.Keys
	cpu.Keys = keys

	ins, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(ins)
	if err != nil {
		return
	}

	cpu.Ticks++

	result.Draw = ins.Redraws()
	result.Sound = cpu.St != 0

	return
}

// Fetch reads the big-endian instruction word at the PC, advances the PC,
// and decodes the word.
func (cpu *Cpu) Fetch() (ins Instruction, err error) {
	mem, err := cpu.span(cpu.Pc, 2)
	if err != nil {
		return
	}

	word := uint16(mem[0])<<8 | uint16(mem[1])
	cpu.Pc += 2

	ins, err = Decode(word)
	return
}

// Execute executes a single decoded instruction.
// All memory ranges are checked before any state is modified.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	defer func() {
		if err != nil {
			err = ErrInstruction{Instruction: ins, Err: err}
		}
	}()

	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.Pc-2, ins)
	}

	x, y := ins.X, ins.Y
	v := &cpu.V

	switch ins.Op {
	case OP_SYS:
		// Machine code routines are not supported.
	case OP_CLS:
		cpu.Display.Clear()
	case OP_RET:
		pc, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		cpu.Pc = pc
	case OP_JP:
		cpu.Pc = ins.NNN
	case OP_CALL:
		if !cpu.Stack.Push(cpu.Pc) {
			err = ErrStackFull
			return
		}
		cpu.Pc = ins.NNN
	case OP_SE_IMM:
		cpu.skip(v[x] == ins.NN)
	case OP_SNE_IMM:
		cpu.skip(v[x] != ins.NN)
	case OP_SE_REG:
		cpu.skip(v[x] == v[y])
	case OP_SNE_REG:
		cpu.skip(v[x] != v[y])
	case OP_LD_IMM:
		v[x] = ins.NN
	case OP_ADD_IMM:
		v[x] += ins.NN
	case OP_LD_REG:
		v[x] = v[y]
	case OP_OR:
		v[x] |= v[y]
	case OP_AND:
		v[x] &= v[y]
	case OP_XOR:
		v[x] ^= v[y]
	case OP_ADD_REG, OP_SUB, OP_SUBN, OP_SHR, OP_SHL:
		flag, value := alu(ins.Op, v[x], v[y])
		// Flag first, then the result; a result in vf wins.
		v[REGISTER_FLAG] = flag
		v[x] = value
	case OP_LD_I:
		cpu.I = ins.NNN
	case OP_JP_V0:
		cpu.Pc = uint16(v[0]) + ins.NNN
	case OP_RND:
		v[x] = uint8(cpu.Rand.Uint32()) & ins.NN
	case OP_DRW:
		var sprite []byte
		sprite, err = cpu.span(cpu.I, int(ins.N))
		if err != nil {
			return
		}
		px, py := int(v[x]), int(v[y])
		v[REGISTER_FLAG] = 0
		if cpu.Display.Blit(px, py, sprite) {
			v[REGISTER_FLAG] = 1
		}
	case OP_SKP:
		cpu.skip(cpu.Keys.Pressed(v[x]))
	case OP_SKNP:
		cpu.skip(!cpu.Keys.Pressed(v[x]))
	case OP_LD_V_DT:
		v[x] = cpu.Dt
	case OP_LD_V_K:
		code, ok := cpu.Keys.Edges(cpu.LastKeys).Lowest()
		if !ok {
			// Spin on this instruction until a key goes down.
			cpu.Pc -= 2
			return
		}
		v[x] = code
	case OP_LD_DT_V:
		cpu.Dt = v[x]
	case OP_LD_ST_V:
		cpu.St = v[x]
	case OP_ADD_I:
		cpu.I += uint16(v[x])
	case OP_LD_F:
		cpu.I = FONT_START + uint16(v[x]%10)*FONT_GLYPH_SIZE
	case OP_LD_B:
		var mem []byte
		mem, err = cpu.span(cpu.I, 3)
		if err != nil {
			return
		}
		mem[0] = v[x] / 100
		mem[1] = v[x] / 10 % 10
		mem[2] = v[x] % 10
	case OP_LD_I_V:
		var mem []byte
		mem, err = cpu.span(cpu.I, int(x)+1)
		if err != nil {
			return
		}
		copy(mem, v[:x+1])
	case OP_LD_V_I:
		var mem []byte
		mem, err = cpu.span(cpu.I, int(x)+1)
		if err != nil {
			return
		}
		copy(v[:x+1], mem)
	default:
		err = ErrOpcode(ins.Word)
		return
	}

	return
}

// alu computes the flag and result of the arithmetic and shift operations
// from the operand values prior to the operation.
func alu(op Op, vx, vy uint8) (flag uint8, value uint8) {
	switch op {
	case OP_ADD_REG:
		sum := uint16(vx) + uint16(vy)
		flag = bit(sum > 0xff)
		value = uint8(sum)
	case OP_SUB:
		flag = bit(vx >= vy)
		value = vx - vy
	case OP_SUBN:
		flag = bit(vy >= vx)
		value = vy - vx
	case OP_SHR:
		flag = vx & 1
		value = vx >> 1
	case OP_SHL:
		flag = vx >> 7
		value = vx << 1
	default:
		panic("unknown alu op")
	}

	return
}

func bit(cond bool) uint8 {
	if cond {
		return 1
	}
	return 0
}

// skip advances over the next instruction if cond is true.
func (cpu *Cpu) skip(cond bool) {
	if cond {
		cpu.Pc += 2
	}
}

// span returns the memory from addr to addr+count, or ErrAddress if the
// range extends past the end of memory.
func (cpu *Cpu) span(addr uint16, count int) (mem []byte, err error) {
	if int(addr)+count > MEMORY_SIZE {
		err = ErrAddress(max(int(addr), MEMORY_SIZE))
		return
	}

	mem = cpu.Memory[int(addr) : int(addr)+count]
	return
}

// Registers returns an iterator over the register names and their values.
func (cpu *Cpu) Registers() iter.Seq2[string, string] {
	return func(yield func(name, value string) bool) {
		if !yield("pc", fmt.Sprintf("%03X", cpu.Pc)) {
			return
		}
		if !yield("i", fmt.Sprintf("%03X", cpu.I)) {
			return
		}
		for n, val := range cpu.V {
			if !yield(fmt.Sprintf("v%x", n), fmt.Sprintf("%02X", val)) {
				return
			}
		}
		if !yield("dt", fmt.Sprintf("%02X", cpu.Dt)) {
			return
		}
		if !yield("st", fmt.Sprintf("%02X", cpu.St)) {
			return
		}
		var frames []string
		for pc := range cpu.Stack.All() {
			frames = append(frames, fmt.Sprintf("%03X", pc))
		}
		stack := "---"
		if len(frames) > 0 {
			stack = strings.Join(frames, " ")
		}
		if !yield("stack", stack) {
			return
		}
		yield("keys", cpu.Keys.String())
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for reg, value := range cpu.Registers() {
		text += fmt.Sprintf("% 5s: %v\n", reg, value)
	}

	return
}
