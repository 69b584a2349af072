package asm

import (
	"strconv"

	"github.com/mkendall/rvpipe/rv"
)

// regIndex resolves a register operand token to its 5-bit index.
func (asm *Assembler) regIndex(token string) (index uint32, err error) {
	token = asm.substitute(token)
	index, ok := rv.RegisterIndex(token)
	if !ok {
		err = ErrUnknownRegister(token)
	}
	return
}

// resolveImm resolves an immediate operand token: a label resolves through
// the symbol table (byte offset from the instruction's own address for
// branches and jumps, absolute address elsewhere), anything else must be a
// decimal or 0x-prefixed numeric literal.
func (asm *Assembler) resolveImm(token string, inst *Inst) (value int64, err error) {
	token = asm.substitute(token)

	if target, ok := asm.Symbols[token]; ok {
		if inst.Op.IsBranch() || inst.Op == rv.OP_JAL {
			value = int64(target) - int64(inst.Address)
		} else {
			value = int64(target)
		}
		return
	}

	value, err = strconv.ParseInt(token, 0, 64)
	if err != nil {
		if len(token) > 0 && (token[0] == '-' || (token[0] >= '0' && token[0] <= '9')) {
			err = ErrParseNumber(token)
		} else {
			err = ErrUndefinedSymbol(token)
		}
	}
	return
}

// checkImm range-checks a resolved immediate against its field width.
func checkImm(value int64, bits int) (err error) {
	if !rv.ImmFits(value, bits) {
		err = ErrImmediateRange{Value: value, Bits: bits}
	}
	return
}

// checkOffset range-checks a branch/jump byte offset, which must also be even.
func checkOffset(value int64, bits int) (err error) {
	if value&1 != 0 {
		return ErrImmediateRange{Value: value, Bits: bits}
	}
	return checkImm(value, bits)
}

// encode maps one parsed instruction to its 32-bit machine word.
func (asm *Assembler) encode(inst *Inst) (word rv.Word, err error) {
	op := inst.Op

	need := 3
	if op.Desc().Format == rv.FORMAT_U || op.Desc().Format == rv.FORMAT_J {
		need = 2
	}
	if len(inst.Operands) != need {
		err = ErrOperandCount
		return
	}

	var regs [3]uint32
	var imm int64

	switch op.Desc().Format {
	case rv.FORMAT_R:
		for n, token := range inst.Operands {
			regs[n], err = asm.regIndex(token)
			if err != nil {
				return
			}
		}
		word = rv.MakeR(op, regs[0], regs[1], regs[2])

	case rv.FORMAT_I:
		// Loads arrive pre-normalized as [rd, base, imm].
		regs[0], err = asm.regIndex(inst.Operands[0])
		if err != nil {
			return
		}
		regs[1], err = asm.regIndex(inst.Operands[1])
		if err != nil {
			return
		}
		imm, err = asm.resolveImm(inst.Operands[2], inst)
		if err != nil {
			return
		}
		if op.IsShift() {
			if imm < 0 || imm > 31 {
				err = ErrImmediateRange{Value: imm, Bits: 5}
				return
			}
		} else if err = checkImm(imm, 12); err != nil {
			return
		}
		word = rv.MakeI(op, regs[0], regs[1], int32(imm))

	case rv.FORMAT_S:
		// Stores arrive pre-normalized as [rs2, base, imm].
		regs[0], err = asm.regIndex(inst.Operands[0])
		if err != nil {
			return
		}
		regs[1], err = asm.regIndex(inst.Operands[1])
		if err != nil {
			return
		}
		imm, err = asm.resolveImm(inst.Operands[2], inst)
		if err != nil {
			return
		}
		if err = checkImm(imm, 12); err != nil {
			return
		}
		word = rv.MakeS(op, regs[1], regs[0], int32(imm))

	case rv.FORMAT_B:
		regs[0], err = asm.regIndex(inst.Operands[0])
		if err != nil {
			return
		}
		regs[1], err = asm.regIndex(inst.Operands[1])
		if err != nil {
			return
		}
		imm, err = asm.resolveImm(inst.Operands[2], inst)
		if err != nil {
			return
		}
		if err = checkOffset(imm, 13); err != nil {
			return
		}
		word = rv.MakeB(op, regs[0], regs[1], int32(imm))

	case rv.FORMAT_U:
		regs[0], err = asm.regIndex(inst.Operands[0])
		if err != nil {
			return
		}
		imm, err = asm.resolveImm(inst.Operands[1], inst)
		if err != nil {
			return
		}
		if imm < 0 || imm > 0xfffff {
			err = ErrImmediateRange{Value: imm, Bits: 20}
			return
		}
		word = rv.MakeU(op, regs[0], int32(imm))

	case rv.FORMAT_J:
		regs[0], err = asm.regIndex(inst.Operands[0])
		if err != nil {
			return
		}
		imm, err = asm.resolveImm(inst.Operands[1], inst)
		if err != nil {
			return
		}
		if err = checkOffset(imm, 21); err != nil {
			return
		}
		word = rv.MakeJ(op, regs[0], int32(imm))
	}

	return
}
