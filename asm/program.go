package asm

import (
	"iter"

	"github.com/mkendall/rvpipe/rv"
)

// Program is a fully assembled program: the instruction-memory words, a
// parallel address-to-source table for diagnostics, and the data segment
// collected from .word directives. Immutable once built.
type Program struct {
	Base    uint32             // Instruction-memory start address.
	Insts   []Inst             // Parsed instructions, in address order.
	Words   map[uint32]rv.Word // Address to encoded machine word.
	Source  map[uint32]string  // Address to verbatim source text.
	Data    map[uint32]uint32  // Data segment, address to 32-bit value.
	Symbols map[string]uint32  // Completed symbol table.
}

// Codes iterates the encoded words in address order.
func (prog *Program) Codes() iter.Seq2[uint32, rv.Word] {
	return func(yield func(addr uint32, word rv.Word) bool) {
		for _, inst := range prog.Insts {
			if !yield(inst.Address, prog.Words[inst.Address]) {
				return
			}
		}
	}
}

// At returns the parsed instruction covering an address, or nil.
func (prog *Program) At(addr uint32) *Inst {
	for n := range prog.Insts {
		if prog.Insts[n].Address == addr {
			return &prog.Insts[n]
		}
	}

	return nil
}

// End returns the first address past the last instruction.
func (prog *Program) End() uint32 {
	if len(prog.Insts) == 0 {
		return prog.Base
	}

	return prog.Insts[len(prog.Insts)-1].Address + 4
}
