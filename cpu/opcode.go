package cpu

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_SYS     = Op(0)  // sys
	OP_CLS     = Op(1)  // cls
	OP_RET     = Op(2)  // ret
	OP_JP      = Op(3)  // jp
	OP_CALL    = Op(4)  // call
	OP_SE_IMM  = Op(5)  // se
	OP_SNE_IMM = Op(6)  // sne
	OP_SE_REG  = Op(7)  // se
	OP_LD_IMM  = Op(8)  // ld
	OP_ADD_IMM = Op(9)  // add
	OP_LD_REG  = Op(10) // ld
	OP_OR      = Op(11) // or
	OP_AND     = Op(12) // and
	OP_XOR     = Op(13) // xor
	OP_ADD_REG = Op(14) // add
	OP_SUB     = Op(15) // sub
	OP_SHR     = Op(16) // shr
	OP_SUBN    = Op(17) // subn
	OP_SHL     = Op(18) // shl
	OP_SNE_REG = Op(19) // sne
	OP_LD_I    = Op(20) // ld
	OP_JP_V0   = Op(21) // jp
	OP_RND     = Op(22) // rnd
	OP_DRW     = Op(23) // drw
	OP_SKP     = Op(24) // skp
	OP_SKNP    = Op(25) // sknp
	OP_LD_V_DT = Op(26) // ld
	OP_LD_V_K  = Op(27) // ld
	OP_LD_DT_V = Op(28) // ld
	OP_LD_ST_V = Op(29) // ld
	OP_ADD_I   = Op(30) // add
	OP_LD_F    = Op(31) // ld
	OP_LD_B    = Op(32) // ld
	OP_LD_I_V  = Op(33) // ld
	OP_LD_V_I  = Op(34) // ld
)

// Instruction is a decoded instruction word.
//
// Not every field is meaningful for every Op; the unused fields still hold
// the corresponding bits of Word.
type Instruction struct {
	Op   Op
	Word uint16 // Raw instruction word.
	X    uint8  // Second nibble, a register index.
	Y    uint8  // Third nibble, a register index.
	N    uint8  // Fourth nibble.
	NN   uint8  // Low byte.
	NNN  uint16 // Low 12 bits, an address.
}

// Decode splits an instruction word into its nibbles and returns the
// matching instruction. Words that match no instruction return ErrOpcode.
func Decode(word uint16) (ins Instruction, err error) {
	ins = Instruction{
		Word: word,
		X:    uint8((word >> 8) & 0xf),
		Y:    uint8((word >> 4) & 0xf),
		N:    uint8(word & 0xf),
		NN:   uint8(word & 0xff),
		NNN:  word & 0xfff,
	}

	op, ok := decodeOp(word>>12, ins.X, ins.Y, ins.N)
	if !ok {
		ins = Instruction{}
		err = ErrOpcode(word)
		return
	}

	ins.Op = op
	return
}

func decodeOp(class uint16, x, y, n uint8) (op Op, ok bool) {
	ok = true

	switch class {
	case 0x0:
		switch {
		case x == 0 && y == 0xe && n == 0x0:
			op = OP_CLS
		case x == 0 && y == 0xe && n == 0xe:
			op = OP_RET
		default:
			op = OP_SYS
		}
	case 0x1:
		op = OP_JP
	case 0x2:
		op = OP_CALL
	case 0x3:
		op = OP_SE_IMM
	case 0x4:
		op = OP_SNE_IMM
	case 0x5:
		op, ok = OP_SE_REG, n == 0
	case 0x6:
		op = OP_LD_IMM
	case 0x7:
		op = OP_ADD_IMM
	case 0x8:
		switch n {
		case 0x0:
			op = OP_LD_REG
		case 0x1:
			op = OP_OR
		case 0x2:
			op = OP_AND
		case 0x3:
			op = OP_XOR
		case 0x4:
			op = OP_ADD_REG
		case 0x5:
			op = OP_SUB
		case 0x6:
			op = OP_SHR
		case 0x7:
			op = OP_SUBN
		case 0xe:
			op = OP_SHL
		default:
			ok = false
		}
	case 0x9:
		op, ok = OP_SNE_REG, n == 0
	case 0xa:
		op = OP_LD_I
	case 0xb:
		op = OP_JP_V0
	case 0xc:
		op = OP_RND
	case 0xd:
		op = OP_DRW
	case 0xe:
		switch {
		case y == 0x9 && n == 0xe:
			op = OP_SKP
		case y == 0xa && n == 0x1:
			op = OP_SKNP
		default:
			ok = false
		}
	case 0xf:
		switch (y << 4) | n {
		case 0x07:
			op = OP_LD_V_DT
		case 0x0a:
			op = OP_LD_V_K
		case 0x15:
			op = OP_LD_DT_V
		case 0x18:
			op = OP_LD_ST_V
		case 0x1e:
			op = OP_ADD_I
		case 0x29:
			op = OP_LD_F
		case 0x33:
			op = OP_LD_B
		case 0x55:
			op = OP_LD_I_V
		case 0x65:
			op = OP_LD_V_I
		default:
			ok = false
		}
	default:
		ok = false
	}

	return
}

// Redraws returns true if executing the instruction changes the display.
func (ins Instruction) Redraws() bool {
	return ins.Op == OP_CLS || ins.Op == OP_DRW
}

// String returns the instruction in assembler syntax.
func (ins Instruction) String() string {
	name := ins.Op.String()

	switch ins.Op {
	case OP_CLS, OP_RET:
		return name
	case OP_SYS, OP_JP, OP_CALL:
		return fmt.Sprintf("%v 0x%03x", name, ins.NNN)
	case OP_SE_IMM, OP_SNE_IMM, OP_LD_IMM, OP_ADD_IMM, OP_RND:
		return fmt.Sprintf("%v v%x, 0x%02x", name, ins.X, ins.NN)
	case OP_SE_REG, OP_SNE_REG, OP_LD_REG, OP_OR, OP_AND, OP_XOR,
		OP_ADD_REG, OP_SUB, OP_SUBN:
		return fmt.Sprintf("%v v%x, v%x", name, ins.X, ins.Y)
	case OP_SHR, OP_SHL, OP_SKP, OP_SKNP:
		return fmt.Sprintf("%v v%x", name, ins.X)
	case OP_LD_I:
		return fmt.Sprintf("%v i, 0x%03x", name, ins.NNN)
	case OP_JP_V0:
		return fmt.Sprintf("%v v0, 0x%03x", name, ins.NNN)
	case OP_DRW:
		return fmt.Sprintf("%v v%x, v%x, %d", name, ins.X, ins.Y, ins.N)
	case OP_LD_V_DT:
		return fmt.Sprintf("%v v%x, dt", name, ins.X)
	case OP_LD_V_K:
		return fmt.Sprintf("%v v%x, k", name, ins.X)
	case OP_LD_DT_V:
		return fmt.Sprintf("%v dt, v%x", name, ins.X)
	case OP_LD_ST_V:
		return fmt.Sprintf("%v st, v%x", name, ins.X)
	case OP_ADD_I:
		return fmt.Sprintf("%v i, v%x", name, ins.X)
	case OP_LD_F:
		return fmt.Sprintf("%v f, v%x", name, ins.X)
	case OP_LD_B:
		return fmt.Sprintf("%v b, v%x", name, ins.X)
	case OP_LD_I_V:
		return fmt.Sprintf("%v [i], v%x", name, ins.X)
	case OP_LD_V_I:
		return fmt.Sprintf("%v v%x, [i]", name, ins.X)
	}

	return fmt.Sprintf("0x%04x", ins.Word)
}
