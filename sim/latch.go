package sim

import (
	"fmt"

	"github.com/mkendall/rvpipe/rv"
)

// The four stage latches. The zero value of each latch is a bubble (its
// instruction word is rv.Bubble), which every stage treats as inert.

// IFID is the fetch/decode latch.
type IFID struct {
	IR  rv.Word // Fetched instruction word.
	PC  uint32  // Address the word was fetched from.
	NPC uint32  // Sequential next-PC.
}

// IDEX is the decode/execute latch.
type IDEX struct {
	IR   rv.Word // Instruction word.
	Inst rv.Inst // Decoded fields and control.
	PC   uint32  // Instruction address.
	NPC  uint32  // Sequential next-PC.
	A    uint32  // First source operand, after forwarding.
	B    uint32  // Second source operand, after forwarding.
	Imm  int32   // Sign-extended immediate.
}

// EXMEM is the execute/memory latch.
type EXMEM struct {
	IR     rv.Word // Instruction word.
	Inst   rv.Inst // Decoded fields and control.
	ALU    uint32  // ALU result, or the effective memory address.
	B      uint32  // Store data.
	Taken  bool    // Branch or jump resolved taken.
	Target uint32  // Resolved control-flow target when Taken.
}

// MEMWB is the memory/write-back latch.
type MEMWB struct {
	IR   rv.Word // Instruction word.
	Inst rv.Inst // Decoded fields and control.
	ALU  uint32  // ALU result passthrough.
	LMD  uint32  // Loaded memory data.
}

// Bubble returns true when the latch holds no real instruction.
func (l IFID) Bubble() bool { return l.IR == rv.Bubble }

func (l IDEX) Bubble() bool { return l.IR == rv.Bubble }

func (l EXMEM) Bubble() bool { return l.IR == rv.Bubble }

func (l MEMWB) Bubble() bool { return l.IR == rv.Bubble }

func (l IFID) String() string {
	return fmt.Sprintf("[IF/ID]  PC: %08x | NPC: %08x | %v", l.PC, l.NPC, l.IR)
}

func (l IDEX) String() string {
	return fmt.Sprintf("[ID/EX]  A: %d | B: %d | IMM: %d | NPC: %08x | %v",
		l.A, l.B, l.Imm, l.NPC, l.IR)
}

func (l EXMEM) String() string {
	return fmt.Sprintf("[EX/MEM] ALU: %d | B: %d | Taken: %v | %v",
		l.ALU, l.B, l.Taken, l.IR)
}

func (l MEMWB) String() string {
	return fmt.Sprintf("[MEM/WB] ALU: %d | LMD: %d | %v", l.ALU, l.LMD, l.IR)
}
