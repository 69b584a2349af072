package rv

import (
	"fmt"
)

// abiNames lists the ABI register aliases, in x0..x31 order.
var abiNames = []string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

// regMap maps register tokens (x0..x31 and ABI aliases) to 5-bit indexes.
var regMap = map[string]uint32{
	"fp": 8, // alias for s0
}

func init() {
	for n, name := range abiNames {
		regMap[name] = uint32(n)
		regMap[fmt.Sprintf("x%d", n)] = uint32(n)
	}
}

// RegisterIndex resolves a register token to its 5-bit index.
func RegisterIndex(name string) (index uint32, ok bool) {
	index, ok = regMap[name]
	return
}

// RegisterName returns the numeric name of a register index.
func RegisterName(index uint32) string {
	return fmt.Sprintf("x%d", index)
}
