package sim

import (
	"github.com/mkendall/rvpipe/translate"
)

var f = translate.From

// ErrMemRange indicates a byte address outside the memory array.
// Out-of-range accesses fail fast; nothing is clamped.
type ErrMemRange uint32

func (err ErrMemRange) Error() string {
	return f("memory address %#x out of range", uint32(err))
}

func (err ErrMemRange) Is(other error) (ok bool) {
	_, ok = other.(ErrMemRange)
	return
}

// ErrRegRange indicates a register index outside x0..x31.
type ErrRegRange int

func (err ErrRegRange) Error() string {
	return f("register index %d out of range", int(err))
}

func (err ErrRegRange) Is(other error) (ok bool) {
	_, ok = other.(ErrRegRange)
	return
}
