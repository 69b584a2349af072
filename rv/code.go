package rv

import (
	"fmt"
)

// Word is a single encoded 32-bit machine word.
type Word uint32

// Bubble is the inert pipeline placeholder. The all-zero word is not a
// valid encoding of any instruction, so it doubles as the no-op sentinel.
const Bubble = Word(0)

// MakeR packs a register-register instruction.
func MakeR(op Op, rd, rs1, rs2 uint32) Word {
	desc := op.Desc()
	return Word(desc.Funct7<<25 | (rs2&0x1f)<<20 | (rs1&0x1f)<<15 |
		desc.Funct3<<12 | (rd&0x1f)<<7 | desc.Opcode)
}

// MakeI packs an immediate-operand instruction (ALU immediates, loads, jalr).
// Shift instructions carry their funct7 in the upper immediate bits.
func MakeI(op Op, rd, rs1 uint32, imm int32) Word {
	desc := op.Desc()
	immBits := uint32(imm) & 0xfff
	if op.IsShift() {
		immBits = (uint32(imm) & 0x1f) | desc.Funct7<<5
	}
	return Word(immBits<<20 | (rs1&0x1f)<<15 |
		desc.Funct3<<12 | (rd&0x1f)<<7 | desc.Opcode)
}

// MakeS packs a store instruction, splitting the immediate across
// bits [31:25] and [11:7].
func MakeS(op Op, rs1, rs2 uint32, imm int32) Word {
	desc := op.Desc()
	immBits := uint32(imm)
	return Word(((immBits>>5)&0x7f)<<25 | (rs2&0x1f)<<20 | (rs1&0x1f)<<15 |
		desc.Funct3<<12 | (immBits&0x1f)<<7 | desc.Opcode)
}

// MakeB packs a conditional branch, scattering the byte offset as
// imm[12|10:5] into bits [31:25] and imm[4:1|11] into bits [11:7].
func MakeB(op Op, rs1, rs2 uint32, imm int32) Word {
	desc := op.Desc()
	immBits := uint32(imm)
	return Word(((immBits>>12)&0x1)<<31 | ((immBits>>5)&0x3f)<<25 |
		(rs2&0x1f)<<20 | (rs1&0x1f)<<15 | desc.Funct3<<12 |
		((immBits>>1)&0xf)<<8 | ((immBits>>11)&0x1)<<7 | desc.Opcode)
}

// MakeU packs an upper-immediate instruction; imm is the 20-bit upper value.
func MakeU(op Op, rd uint32, imm int32) Word {
	desc := op.Desc()
	return Word((uint32(imm)&0xfffff)<<12 | (rd&0x1f)<<7 | desc.Opcode)
}

// MakeJ packs an unconditional jump, scattering the byte offset as
// imm[20|10:1|11|19:12] into bits [31:12].
func MakeJ(op Op, rd uint32, imm int32) Word {
	desc := op.Desc()
	immBits := uint32(imm)
	return Word(((immBits>>20)&0x1)<<31 | ((immBits>>1)&0x3ff)<<21 |
		((immBits>>11)&0x1)<<20 | ((immBits>>12)&0xff)<<12 |
		(rd&0x1f)<<7 | desc.Opcode)
}

// Opcode returns the 7-bit base opcode field.
func (w Word) Opcode() uint32 { return uint32(w) & 0x7f }

// Rd returns the destination register field.
func (w Word) Rd() uint32 { return uint32(w>>7) & 0x1f }

// Funct3 returns the 3-bit function field.
func (w Word) Funct3() uint32 { return uint32(w>>12) & 0x7 }

// Rs1 returns the first source register field.
func (w Word) Rs1() uint32 { return uint32(w>>15) & 0x1f }

// Rs2 returns the second source register field.
func (w Word) Rs2() uint32 { return uint32(w>>20) & 0x1f }

// Funct7 returns the 7-bit function field.
func (w Word) Funct7() uint32 { return uint32(w>>25) & 0x7f }

// ImmI returns the sign-extended I-format immediate.
func (w Word) ImmI() int32 { return int32(w) >> 20 }

// ImmS returns the sign-extended S-format immediate.
func (w Word) ImmS() int32 {
	return (int32(w)>>25)<<5 | int32(uint32(w>>7)&0x1f)
}

// ImmB returns the sign-extended B-format byte offset.
func (w Word) ImmB() int32 {
	return (int32(w)>>31)<<12 |
		int32(uint32(w>>25)&0x3f)<<5 |
		int32(uint32(w>>8)&0xf)<<1 |
		int32(uint32(w>>7)&0x1)<<11
}

// ImmU returns the U-format immediate already shifted into the upper bits.
func (w Word) ImmU() int32 { return int32(uint32(w) & 0xfffff000) }

// ImmJ returns the sign-extended J-format byte offset.
func (w Word) ImmJ() int32 {
	return (int32(w)>>31)<<20 |
		int32(uint32(w>>21)&0x3ff)<<1 |
		int32(uint32(w>>20)&0x1)<<11 |
		int32(uint32(w>>12)&0xff)<<12
}

// Inst is a fully decoded instruction word.
type Inst struct {
	Op     Op
	Format Format
	Rd     uint32
	Rs1    uint32
	Rs2    uint32
	Imm    int32
}

// Decode splits a machine word into its fields and resolves the Op.
// The all-zero bubble word is not decodable.
func (w Word) Decode() (inst Inst, err error) {
	defer func() {
		if err == nil {
			inst.Rd = w.Rd()
			inst.Rs1 = w.Rs1()
			inst.Rs2 = w.Rs2()
			inst.Format = inst.Op.Desc().Format
			switch inst.Format {
			case FORMAT_I:
				inst.Imm = w.ImmI()
				if inst.Op.IsShift() {
					inst.Imm = int32(w.Rs2())
				}
			case FORMAT_S:
				inst.Imm = w.ImmS()
			case FORMAT_B:
				inst.Imm = w.ImmB()
			case FORMAT_U:
				inst.Imm = w.ImmU()
			case FORMAT_J:
				inst.Imm = w.ImmJ()
			}
		}
	}()

	switch w.Opcode() {
	case OPCODE_ALU:
		for _, op := range []Op{OP_ADD, OP_SUB, OP_SLL, OP_SLT, OP_SLTU,
			OP_XOR, OP_SRL, OP_SRA, OP_OR, OP_AND} {
			desc := op.Desc()
			if desc.Funct3 == w.Funct3() && desc.Funct7 == w.Funct7() {
				inst.Op = op
				return
			}
		}
	case OPCODE_ALU_IMM:
		switch w.Funct3() {
		case 0b000:
			inst.Op = OP_ADDI
			return
		case 0b010:
			inst.Op = OP_SLTI
			return
		case 0b011:
			inst.Op = OP_SLTIU
			return
		case 0b100:
			inst.Op = OP_XORI
			return
		case 0b110:
			inst.Op = OP_ORI
			return
		case 0b111:
			inst.Op = OP_ANDI
			return
		case 0b001:
			if w.Funct7() == 0 {
				inst.Op = OP_SLLI
				return
			}
		case 0b101:
			switch w.Funct7() {
			case 0b0000000:
				inst.Op = OP_SRLI
				return
			case 0b0100000:
				inst.Op = OP_SRAI
				return
			}
		}
	case OPCODE_LOAD:
		if w.Funct3() == 0b010 {
			inst.Op = OP_LW
			return
		}
	case OPCODE_STORE:
		if w.Funct3() == 0b010 {
			inst.Op = OP_SW
			return
		}
	case OPCODE_BRANCH:
		for _, op := range []Op{OP_BEQ, OP_BNE, OP_BLT, OP_BGE, OP_BLTU, OP_BGEU} {
			if op.Desc().Funct3 == w.Funct3() {
				inst.Op = op
				return
			}
		}
	case OPCODE_LUI:
		inst.Op = OP_LUI
		return
	case OPCODE_AUIPC:
		inst.Op = OP_AUIPC
		return
	case OPCODE_JAL:
		inst.Op = OP_JAL
		return
	case OPCODE_JALR:
		if w.Funct3() == 0b000 {
			inst.Op = OP_JALR
			return
		}
	}

	err = ErrWord(w)
	return
}

// String returns the assembly language rendering of this word.
func (w Word) String() (out string) {
	if w == Bubble {
		return "bubble"
	}

	inst, err := w.Decode()
	if err != nil {
		return fmt.Sprintf("word(%#08x)", uint32(w))
	}

	op := inst.Op
	switch inst.Format {
	case FORMAT_R:
		out = fmt.Sprintf("%v %v, %v, %v", op,
			RegisterName(inst.Rd), RegisterName(inst.Rs1), RegisterName(inst.Rs2))
	case FORMAT_I:
		if op.IsLoad() {
			out = fmt.Sprintf("%v %v, %d(%v)", op,
				RegisterName(inst.Rd), inst.Imm, RegisterName(inst.Rs1))
		} else {
			out = fmt.Sprintf("%v %v, %v, %d", op,
				RegisterName(inst.Rd), RegisterName(inst.Rs1), inst.Imm)
		}
	case FORMAT_S:
		out = fmt.Sprintf("%v %v, %d(%v)", op,
			RegisterName(inst.Rs2), inst.Imm, RegisterName(inst.Rs1))
	case FORMAT_B:
		out = fmt.Sprintf("%v %v, %v, %d", op,
			RegisterName(inst.Rs1), RegisterName(inst.Rs2), inst.Imm)
	case FORMAT_U:
		out = fmt.Sprintf("%v %v, %#x", op,
			RegisterName(inst.Rd), uint32(inst.Imm)>>12)
	case FORMAT_J:
		out = fmt.Sprintf("%v %v, %d", op, RegisterName(inst.Rd), inst.Imm)
	}

	return
}

// ImmFits reports whether v is representable as a signed two's complement
// value of the given bit width.
func ImmFits(v int64, bits int) bool {
	limit := int64(1) << (bits - 1)
	return v >= -limit && v < limit
}
