package emulator

import (
	"github.com/mkendall/rvpipe/translate"
)

var f = translate.From

// ErrRuntime indicates the clock cycle of a simulation error.
type ErrRuntime struct {
	Cycle int
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("cycle %d %v", err.Cycle, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
