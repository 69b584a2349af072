// Copyright 2025, Morgan Kendall

package asm

import (
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/mkendall/rvpipe/rv"
)

const (
	// TEXT_BASE is the fixed instruction-memory start address.
	TEXT_BASE = uint32(0x0000_0000)
)

// Predefined system equates.
var sysEquate = map[string]string{
	"LINENO":    "0",
	"TEXT_BASE": fmt.Sprintf("%#v", TEXT_BASE),
}

// Assembler is the two-pass assembler for the rvpipe dialect.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Symbols map[string]uint32 // Map of labels to instruction addresses.
	Equate  map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple numeric word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		val, _err := asm.valueOf(str)
		if _err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(val)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// expand substitutes $() expressions on a raw line.
func (asm *Assembler) expand(text string, lineno int) (out string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	out = parenRe.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	return
}

// Assemble runs both passes over the input and returns the encoded program.
func (asm *Assembler) Assemble(input io.Reader) (prog *Program, err error) {
	lines, err := Preprocess(input)
	if err != nil {
		return
	}

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	asm.Symbols, err = asm.buildSymbols(lines)
	if err != nil {
		return
	}

	prog = &Program{
		Base:    TEXT_BASE,
		Words:   map[uint32]rv.Word{},
		Source:  map[uint32]string{},
		Data:    map[uint32]uint32{},
		Symbols: asm.Symbols,
	}

	var line Line
	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: line.No, Line: line.Text, Err: err}
			prog = nil
		}
	}()

	address := uint32(TEXT_BASE)
	for _, line = range lines {
		if asm.Verbose {
			log.Printf("%v: %v\n", line.No, line.Text)
		}

		if isDirective(line.Text) {
			err = asm.parseDirective(line, prog)
			if err != nil {
				return
			}
			continue
		}

		var inst *Inst
		inst, err = asm.parseLine(line, address)
		if err != nil {
			return
		}
		if inst == nil {
			// Bare label.
			continue
		}

		var word rv.Word
		word, err = asm.encode(inst)
		if err != nil {
			return
		}

		prog.Insts = append(prog.Insts, *inst)
		prog.Words[inst.Address] = word
		prog.Source[inst.Address] = inst.Line
		address += 4
	}

	return
}
