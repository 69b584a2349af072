package asm

import (
	"strings"

	"github.com/mkendall/rvpipe/rv"
)

// Inst is a parsed instruction, ready for encoding.
type Inst struct {
	Op       rv.Op    // Resolved instruction.
	Mnemonic string   // Mnemonic token as written.
	Operands []string // Operand tokens, loads/stores normalized to [reg, base, imm].
	Address  uint32   // Assigned instruction address.
	LineNo   int      // Source line number.
	Line     string   // Verbatim source text.
}

// parseLine is pass two for a single line: strip any label, tokenize into a
// mnemonic and operands, and normalize the load/store imm(base) syntax.
// A bare label line yields a nil Inst.
func (asm *Assembler) parseLine(line Line, address uint32) (inst *Inst, err error) {
	_, rest, _ := splitLabel(line.Text)
	if len(rest) == 0 {
		return
	}

	rest, err = asm.expand(rest, line.No)
	if err != nil {
		return
	}

	mnemonic := rest
	operand := ""
	if n := strings.IndexAny(rest, " \t"); n >= 0 {
		mnemonic = rest[:n]
		operand = strings.TrimSpace(rest[n+1:])
	}

	// The jump alias takes a single target operand and encodes as the
	// full jump form with an implicit x0 destination.
	alias_j := mnemonic == "j"
	lookup := mnemonic
	if alias_j {
		lookup = "jal"
	}

	op, ok := rv.Lookup(lookup)
	if !ok {
		err = ErrUnknownMnemonic(mnemonic)
		return
	}

	inst = &Inst{
		Op:       op,
		Mnemonic: mnemonic,
		Address:  address,
		LineNo:   line.No,
		Line:     line.Text,
	}

	parts := splitOperands(operand)

	switch {
	case op.IsLoad() || op.IsStore():
		// reg, imm(base) -> [reg, base, imm]
		if len(parts) != 2 {
			err = ErrOperandCount
			return
		}
		var base, imm string
		base, imm, err = splitBaseOffset(parts[1])
		if err != nil {
			return
		}
		inst.Operands = []string{parts[0], base, imm}
	case alias_j:
		if len(parts) != 1 {
			err = ErrOperandCount
			return
		}
		inst.Operands = []string{"x0", parts[0]}
	default:
		inst.Operands = parts
	}

	return
}

// splitOperands splits a comma-separated operand string into trimmed tokens.
func splitOperands(operand string) (parts []string) {
	if len(operand) == 0 {
		return
	}
	for _, part := range strings.Split(operand, ",") {
		parts = append(parts, strings.TrimSpace(part))
	}
	return
}

// splitBaseOffset takes an 'imm(base)' token apart.
func splitBaseOffset(token string) (base, imm string, err error) {
	open := strings.IndexByte(token, '(')
	close := strings.IndexByte(token, ')')
	if open < 0 || close < 0 || close < open {
		err = ErrOperandFormat
		return
	}

	imm = strings.TrimSpace(token[:open])
	base = strings.TrimSpace(token[open+1 : close])
	if len(imm) == 0 {
		imm = "0"
	}
	return
}

// parseDirective handles '.'-prefixed lines: .equ equates and .word data
// entries. Other directives are ignored; none consume instruction addresses.
func (asm *Assembler) parseDirective(line Line, prog *Program) (err error) {
	text, err := asm.expand(line.Text, line.No)
	if err != nil {
		return
	}

	words := strings.Fields(text)

	switch words[0] {
	case ".equ":
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		if _, ok := asm.Equate[words[1]]; ok {
			err = ErrEquateDup
			return
		}
		asm.Equate[words[1]] = words[2]
	case ".word":
		// .word ADDR, VALUE
		parts := splitOperands(strings.TrimSpace(strings.TrimPrefix(text, ".word")))
		if len(parts) != 2 {
			err = ErrWordSyntax
			return
		}
		var addr, value int64
		addr, err = asm.valueOf(asm.substitute(parts[0]))
		if err != nil {
			return
		}
		value, err = asm.valueOf(asm.substitute(parts[1]))
		if err != nil {
			return
		}
		prog.Data[uint32(addr)] = uint32(value)
	}

	return
}

// substitute replaces an equate token with its value.
func (asm *Assembler) substitute(token string) string {
	if value, ok := asm.Equate[token]; ok {
		return value
	}
	return token
}
