package asm

// buildSymbols is pass one: bind every label to an instruction address.
// A label followed by an instruction on the same line binds to that
// instruction's address; a bare label binds to the address of the next
// instruction without consuming one. Directive lines never occupy addresses.
func (asm *Assembler) buildSymbols(lines []Line) (symbols map[string]uint32, err error) {
	symbols = make(map[string]uint32, 16)
	address := uint32(TEXT_BASE)

	for _, line := range lines {
		if isDirective(line.Text) {
			continue
		}

		label, rest, found := splitLabel(line.Text)
		if !found {
			address += 4
			continue
		}

		if len(label) == 0 {
			err = ErrSyntax{LineNo: line.No, Line: line.Text, Err: ErrLabelEmpty}
			return
		}
		if _, ok := symbols[label]; ok {
			err = ErrSyntax{LineNo: line.No, Line: line.Text, Err: ErrLabelDuplicate}
			return
		}
		symbols[label] = address

		if len(rest) != 0 {
			address += 4
		}
	}

	return
}
