package cpu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/chip8/cpu"
)

var _ = Describe("Decoder", func() {
	Describe("Field extraction", func() {
		// DRW V1, V2, 5 -> 0xD125
		It("should split drw v1, v2, 5", func() {
			ins, err := cpu.Decode(0xd125)

			Expect(err).ToNot(HaveOccurred())
			Expect(ins.Op).To(Equal(cpu.OP_DRW))
			Expect(ins.Word).To(Equal(uint16(0xd125)))
			Expect(ins.X).To(Equal(uint8(0x1)))
			Expect(ins.Y).To(Equal(uint8(0x2)))
			Expect(ins.N).To(Equal(uint8(0x5)))
			Expect(ins.NN).To(Equal(uint8(0x25)))
			Expect(ins.NNN).To(Equal(uint16(0x125)))
		})

		It("should decode every word of a class the same way", func() {
			for word := range uint16(0x1000) {
				ins, err := cpu.Decode(0x6000 | word)
				Expect(err).ToNot(HaveOccurred())
				Expect(ins.Op).To(Equal(cpu.OP_LD_IMM))
				Expect(ins.NNN).To(Equal(word))
			}
		})
	})

	Describe("Classification", func() {
		DescribeTable("should decode",
			func(word uint16, op cpu.Op, text string) {
				ins, err := cpu.Decode(word)

				Expect(err).ToNot(HaveOccurred())
				Expect(ins.Op).To(Equal(op))
				Expect(ins.String()).To(Equal(text))
			},
			Entry("sys", uint16(0x0123), cpu.OP_SYS, "sys 0x123"),
			Entry("cls", uint16(0x00e0), cpu.OP_CLS, "cls"),
			Entry("ret", uint16(0x00ee), cpu.OP_RET, "ret"),
			Entry("jp", uint16(0x1abc), cpu.OP_JP, "jp 0xabc"),
			Entry("call", uint16(0x2300), cpu.OP_CALL, "call 0x300"),
			Entry("se imm", uint16(0x3a42), cpu.OP_SE_IMM, "se va, 0x42"),
			Entry("sne imm", uint16(0x4b42), cpu.OP_SNE_IMM, "sne vb, 0x42"),
			Entry("se reg", uint16(0x5120), cpu.OP_SE_REG, "se v1, v2"),
			Entry("ld imm", uint16(0x6cff), cpu.OP_LD_IMM, "ld vc, 0xff"),
			Entry("add imm", uint16(0x7d01), cpu.OP_ADD_IMM, "add vd, 0x01"),
			Entry("ld reg", uint16(0x8120), cpu.OP_LD_REG, "ld v1, v2"),
			Entry("or", uint16(0x8121), cpu.OP_OR, "or v1, v2"),
			Entry("and", uint16(0x8122), cpu.OP_AND, "and v1, v2"),
			Entry("xor", uint16(0x8123), cpu.OP_XOR, "xor v1, v2"),
			Entry("add reg", uint16(0x8124), cpu.OP_ADD_REG, "add v1, v2"),
			Entry("sub", uint16(0x8125), cpu.OP_SUB, "sub v1, v2"),
			Entry("shr", uint16(0x8126), cpu.OP_SHR, "shr v1"),
			Entry("subn", uint16(0x8127), cpu.OP_SUBN, "subn v1, v2"),
			Entry("shl", uint16(0x812e), cpu.OP_SHL, "shl v1"),
			Entry("sne reg", uint16(0x9120), cpu.OP_SNE_REG, "sne v1, v2"),
			Entry("ld i", uint16(0xa123), cpu.OP_LD_I, "ld i, 0x123"),
			Entry("jp v0", uint16(0xb300), cpu.OP_JP_V0, "jp v0, 0x300"),
			Entry("rnd", uint16(0xc50f), cpu.OP_RND, "rnd v5, 0x0f"),
			Entry("drw", uint16(0xd125), cpu.OP_DRW, "drw v1, v2, 5"),
			Entry("skp", uint16(0xe39e), cpu.OP_SKP, "skp v3"),
			Entry("sknp", uint16(0xe3a1), cpu.OP_SKNP, "sknp v3"),
			Entry("ld v, dt", uint16(0xf407), cpu.OP_LD_V_DT, "ld v4, dt"),
			Entry("ld v, k", uint16(0xf40a), cpu.OP_LD_V_K, "ld v4, k"),
			Entry("ld dt, v", uint16(0xf415), cpu.OP_LD_DT_V, "ld dt, v4"),
			Entry("ld st, v", uint16(0xf418), cpu.OP_LD_ST_V, "ld st, v4"),
			Entry("add i, v", uint16(0xf41e), cpu.OP_ADD_I, "add i, v4"),
			Entry("ld f, v", uint16(0xf429), cpu.OP_LD_F, "ld f, v4"),
			Entry("ld b, v", uint16(0xf433), cpu.OP_LD_B, "ld b, v4"),
			Entry("ld [i], v", uint16(0xf455), cpu.OP_LD_I_V, "ld [i], v4"),
			Entry("ld v, [i]", uint16(0xf465), cpu.OP_LD_V_I, "ld v4, [i]"),
		)

		DescribeTable("should reject",
			func(word uint16) {
				ins, err := cpu.Decode(word)

				Expect(err).To(MatchError(cpu.ErrOpcode(word)))
				Expect(err.Error()).To(ContainSubstring("opcode"))
				Expect(ins).To(BeZero())
			},
			Entry("se with a nonzero low nibble", uint16(0x5121)),
			Entry("sne with a nonzero low nibble", uint16(0x912f)),
			Entry("alu 8xy8", uint16(0x8128)),
			Entry("alu 8xyF", uint16(0x812f)),
			Entry("unknown Ex", uint16(0xe100)),
			Entry("unknown Fx", uint16(0xf1ff)),
			Entry("all ones", uint16(0xffff)),
		)
	})

	Describe("Redraws", func() {
		It("should report display changes for cls and drw only", func() {
			for _, word := range []uint16{0x00e0, 0xd001} {
				ins, _ := cpu.Decode(word)
				Expect(ins.Redraws()).To(BeTrue())
			}
			for _, word := range []uint16{0x00ee, 0x1200, 0x6001, 0xf029} {
				ins, _ := cpu.Decode(word)
				Expect(ins.Redraws()).To(BeFalse())
			}
		})
	})

	Describe("Op names", func() {
		It("should name known ops by mnemonic", func() {
			Expect(cpu.OP_CLS.String()).To(Equal("cls"))
			Expect(cpu.OP_SUBN.String()).To(Equal("subn"))
			Expect(cpu.OP_LD_V_I.String()).To(Equal("ld"))
		})

		It("should number unknown ops", func() {
			Expect(cpu.Op(99).String()).To(Equal("Op(99)"))
		})
	})
})
