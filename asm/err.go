package asm

import (
	"errors"

	"github.com/mkendall/rvpipe/translate"
)

var f = translate.From

var (
	ErrOperandCount   = errors.New(f("wrong operand count"))
	ErrOperandFormat  = errors.New(f("malformed imm(base) operand"))
	ErrEquateSyntax   = errors.New(f(".equ syntax"))
	ErrEquateDup      = errors.New(f(".equ duplicated"))
	ErrWordSyntax     = errors.New(f(".word syntax"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))
	ErrLabelEmpty     = errors.New(f("empty label"))
)

// ErrSyntax locates an assembly error on its offending source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrUnknownMnemonic string

func (err ErrUnknownMnemonic) Error() string {
	return f("'%v' is not an instruction", string(err))
}

type ErrUnknownRegister string

func (err ErrUnknownRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrUndefinedSymbol string

func (err ErrUndefinedSymbol) Error() string {
	return f("symbol '%v' is not defined", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrImmediateRange indicates an immediate that does not fit its field.
type ErrImmediateRange struct {
	Value int64
	Bits  int
}

func (err ErrImmediateRange) Error() string {
	return f("immediate %v does not fit in %d bits", err.Value, err.Bits)
}

func (err ErrImmediateRange) Is(other error) (ok bool) {
	_, ok = other.(ErrImmediateRange)
	return
}
