package asm

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkendall/rvpipe/rv"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Assemble(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Insts))
	assert.Equal(TEXT_BASE, prog.Base)
	assert.Equal(TEXT_BASE, prog.End())

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal(fmt.Sprintf("%#v", TEXT_BASE), asm.Equate["TEXT_BASE"])
}

func TestAssemblerLoop(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"addi x5, x0, 10",
		"loop: addi x5, x5, -1 # decrement",
		"bne x5, x0, loop",
	}

	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(3, len(prog.Insts))
	assert.Equal(rv.Word(0x00A00293), prog.Words[0])
	assert.Equal(rv.Word(0xFFF28293), prog.Words[4])
	assert.Equal(rv.Word(0xFE029EE3), prog.Words[8])

	assert.Equal(uint32(4), prog.Symbols["loop"])
	assert.Equal(uint32(12), prog.End())
	assert.Equal("addi x5, x0, 10", prog.Source[0])

	// The backward branch resolves to a byte offset from its own address.
	inst, err := prog.Words[8].Decode()
	assert.NoError(err)
	assert.Equal(rv.OP_BNE, inst.Op)
	assert.Equal(int32(-4), inst.Imm)

	var addrs []uint32
	for addr, word := range prog.Codes() {
		addrs = append(addrs, addr)
		assert.Equal(prog.Words[addr], word)
	}
	assert.Equal([]uint32{0, 4, 8}, addrs)

	at := prog.At(4)
	assert.NotNil(at)
	assert.Equal(2, at.LineNo)
	assert.Nil(prog.At(16))
}

func TestAssemblerAddresses(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	// Bare labels and directives never consume instruction addresses.
	program := []string{
		".equ OFF 8",
		"start:",
		"add x1, x2, x3",
		"mid: sub x4, x5, x6",
		".word 0, 1",
		"end:",
	}

	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(uint32(0), prog.Symbols["start"])
	assert.Equal(uint32(4), prog.Symbols["mid"])
	assert.Equal(uint32(8), prog.Symbols["end"])
	assert.Equal(uint32(8), prog.End())
	assert.Equal(2, len(prog.Insts))
}

func TestAssemblerLoadStore(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"lw x1, 8(x2)",
		"sw x1, (x2)",
		"lw t0, -4(sp)",
	}

	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(rv.MakeI(rv.OP_LW, 1, 2, 8), prog.Words[0])
	assert.Equal(rv.MakeS(rv.OP_SW, 2, 1, 0), prog.Words[4])
	assert.Equal(rv.MakeI(rv.OP_LW, 5, 2, -4), prog.Words[8])
}

func TestAssemblerJump(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"j skip",
		"jal x1, fn",
		"skip: jalr x0, x1, 0",
		"fn:",
	}

	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	// 'j' is the jump alias with an implicit x0 destination.
	assert.Equal(rv.MakeJ(rv.OP_JAL, 0, 8), prog.Words[0])
	assert.Equal(rv.MakeJ(rv.OP_JAL, 1, 8), prog.Words[4])
	assert.Equal(rv.MakeI(rv.OP_JALR, 0, 1, 0), prog.Words[8])
}

func TestAssemblerBranchForward(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	// A target two instructions ahead encodes a byte offset of 8.
	program := []string{
		"beq x0, x0, skip",
		"add x1, x1, x1",
		"skip: sub x1, x1, x1",
	}

	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(rv.MakeB(rv.OP_BEQ, 0, 0, 8), prog.Words[0])
	assert.Equal(int32(8), prog.Words[0].ImmB())
}

func TestAssemblerAbsoluteSymbol(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	// Outside branches and jumps, a label resolves to its absolute address.
	program := []string{
		"add x1, x1, x1",
		"here: addi x2, x0, here",
	}

	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(rv.MakeI(rv.OP_ADDI, 2, 0, 4), prog.Words[4])
}

func TestAssemblerEquates(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ CONST 0x10",
		"addi x1, x0, CONST",
		"addi x2, x0, $(CONST + 2)",
		"lui x3, $(1 << 4)",
		"slli x4, x4, $(LINENO - 4)",
	}

	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(rv.MakeI(rv.OP_ADDI, 1, 0, 16), prog.Words[0])
	assert.Equal(rv.MakeI(rv.OP_ADDI, 2, 0, 18), prog.Words[4])
	assert.Equal(rv.MakeU(rv.OP_LUI, 3, 16), prog.Words[8])
	assert.Equal(rv.MakeI(rv.OP_SLLI, 4, 4, 1), prog.Words[12])
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "4")
	asm.Predefine("COUNT", "3")

	program := []string{
		"addi x1, x0, BASE",
		"addi x2, x0, $(BASE * COUNT)",
	}

	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(rv.MakeI(rv.OP_ADDI, 1, 0, 4), prog.Words[0])
	assert.Equal(rv.MakeI(rv.OP_ADDI, 2, 0, 12), prog.Words[4])
}

func TestAssemblerWordDirective(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ ADDR 8",
		".word 16, 0xdeadbeef",
		".word ADDR, 5",
		"lw x1, 16(x0)",
	}

	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(uint32(0xdeadbeef), prog.Data[16])
	assert.Equal(uint32(5), prog.Data[8])
	assert.Equal(1, len(prog.Insts))
}

func TestAssemblerUnknownMnemonic(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Assemble(strings.NewReader("frobnicate x1, x2\n"))
	assert.Error(err)

	var unk ErrUnknownMnemonic
	assert.True(errors.As(err, &unk))
	assert.Equal("frobnicate", string(unk))
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	// Various syntax errors
	table := [](struct {
		prog string
		line int
	}){
		{"DUP:\nDUP:\n", 2},
		{":\nadd x1, x2, x3\n", 1},
		{"frobnicate x1\n", 1},
		{"add x1, x2\n", 1},
		{"addi x5, x5, -1, x3\n", 1},
		{"add x1, x2, x99\n", 1},
		{"add x1, x2, r0\n", 1},
		{"addi x1, x0, nothing\n", 1},
		{"addi x1, x0, 0x8gg\n", 1},
		{"addi x1, x0, 5000\n", 1},
		{"addi x1, x0, -2049\n", 1},
		{"addi x1, x0, $(bogus)\n", 1},
		{"addi x1, x0, $(\"aaa\")\n", 1},
		{"lw x1, 8\n", 1},
		{"lw x1, 0x2)8(\n", 1},
		{"lw x1, 8(x2), x3\n", 1},
		{"beq x0, x0, 3\n", 1},
		{"beq x0, x0, 8192\n", 1},
		{"jal x1, 1048576\n", 1},
		{"j\n", 1},
		{"lui x1, 0x100000\n", 1},
		{"lui x1, -1\n", 1},
		{"slli x1, x1, 32\n", 1},
		{"srai x1, x1, -1\n", 1},
		{".equ\n", 1},
		{".equ A\n", 1},
		{".equ A 1\n.equ A 2\n", 2},
		{".word 1\n", 1},
		{".word x, 1\n", 1},
		{".word 1, y\n", 1},
	}

	for _, entry := range table {
		_, err := asm.Assemble(strings.NewReader(entry.prog))
		var se ErrSyntax
		assert.NotNil(err, entry.prog)
		if err != nil {
			assert.True(errors.As(err, &se), entry.prog)
			assert.Equal(entry.line, se.LineNo, entry.prog)
		}
	}
}

func TestAssemblerErrTargets(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Assemble(strings.NewReader("DUP:\nDUP:\n"))
	assert.True(errors.Is(err, ErrLabelDuplicate))

	_, err = asm.Assemble(strings.NewReader("addi x1, x0, 5000\n"))
	assert.True(errors.Is(err, ErrImmediateRange{}))

	_, err = asm.Assemble(strings.NewReader("add x1, x2\n"))
	assert.True(errors.Is(err, ErrOperandCount))

	_, err = asm.Assemble(strings.NewReader("lw x1, 8\n"))
	assert.True(errors.Is(err, ErrOperandFormat))
}
