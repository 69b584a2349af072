// Copyright 2025, Morgan Kendall

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/mkendall/rvpipe/asm"
	"github.com/mkendall/rvpipe/internal"
	"github.com/mkendall/rvpipe/sim"
)

const (
	RUN_LIMIT = 1000 // Default cycle cap for run-to-completion.
)

var _emulator_defines = map[string]string{
	"RUN_LIMIT": fmt.Sprintf("%v", RUN_LIMIT),
}

// Emulator ties the assembler and the pipelined simulator into one session:
// assemble a source stream, load its data segment, then drive the clock.
type Emulator struct {
	Verbose   bool          // If set, enables verbose logging.
	Assembler asm.Assembler // Assembler for this session.
	Program   *asm.Program  // Currently loaded program.
	Sim       *sim.Simulator
}

// NewEmulator creates a new emulator session. The session's defines are
// predefined as assembler equates.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{}

	for key, value := range emu.Defines() {
		emu.Assembler.Predefine(key, value)
	}

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines), sim.Defines())
}

// Load assembles a source stream, constructs a fresh simulator over the
// encoded instruction memory, and expands the data segment into byte memory.
func (emu *Emulator) Load(input io.Reader) (err error) {
	emu.Assembler.Verbose = emu.Verbose

	prog, err := emu.Assembler.Assemble(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Sim = sim.NewSimulator(prog.Words, prog.Base)
	emu.Sim.Verbose = emu.Verbose

	err = emu.Sim.LoadData(prog.Data)
	return
}

// SourceAt returns the source text at an instruction address.
func (emu *Emulator) SourceAt(addr uint32) string {
	return emu.Program.Source[addr]
}

// Step advances the simulator by one clock.
func (emu *Emulator) Step() (err error) {
	err = emu.Sim.Step()
	if err != nil {
		err = &ErrRuntime{Cycle: emu.Sim.Cycles(), Err: err}
	}
	return
}

// Done reports whether the fetch has run past the last instruction and the
// pipeline has fully drained.
func (emu *Emulator) Done() bool {
	s := emu.Sim
	return s.PC() >= emu.Program.End() &&
		s.IFID().Bubble() && s.IDEX().Bubble() &&
		s.EXMEM().Bubble() && s.MEMWB().Bubble()
}

// Run steps the clock until the program completes or the cycle cap is
// reached. There is no halt instruction; the cap guards against
// non-terminating programs.
func (emu *Emulator) Run(limit int) (cycles int, err error) {
	if limit <= 0 {
		limit = RUN_LIMIT
	}

	for cycles < limit && !emu.Done() {
		err = emu.Step()
		if err != nil {
			return
		}
		cycles += 1
	}

	return
}
