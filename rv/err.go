package rv

import (
	"github.com/mkendall/rvpipe/translate"
)

var f = translate.From

// ErrWord indicates a machine word that decodes to no supported instruction.
type ErrWord Word

func (ew ErrWord) Error() string {
	return f("bad instruction word %#08x", uint32(ew))
}

func (ew ErrWord) Is(err error) (ok bool) {
	_, ok = err.(ErrWord)
	return
}
