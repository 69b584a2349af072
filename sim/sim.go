package sim

import (
	"encoding/binary"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/mkendall/rvpipe/rv"
)

const (
	MEM_SIZE  = 128 // Byte-addressable memory size.
	REG_COUNT = 32  // General-purpose registers x0..x31.
)

var _sim_defines = map[string]string{
	"MEM_SIZE": fmt.Sprintf("%v", MEM_SIZE),
}

// Defines for the simulator.
func Defines() iter.Seq2[string, string] {
	return maps.All(_sim_defines)
}

// Simulator owns the architectural state: the register file, byte memory,
// program counter, and the four stage latches. One Step call advances
// exactly one clock.
type Simulator struct {
	Verbose bool // Set to enable verbose logging.

	imem map[uint32]rv.Word // Read-only instruction store.

	reg [REG_COUNT]uint32
	mem []byte
	pc  uint32

	ifid  IFID
	idex  IDEX
	exmem EXMEM
	memwb MEMWB

	cycles int
}

// NewSimulator creates a simulator over an instruction memory, starting
// execution at base.
func NewSimulator(imem map[uint32]rv.Word, base uint32) (sim *Simulator) {
	sim = &Simulator{
		imem: imem,
		mem:  make([]byte, MEM_SIZE),
		pc:   base,
	}

	return
}

// PC returns the current program counter.
func (sim *Simulator) PC() uint32 {
	return sim.pc
}

// Cycles returns the clock count since construction.
func (sim *Simulator) Cycles() int {
	return sim.cycles
}

// Reg reads a general-purpose register.
func (sim *Simulator) Reg(index int) (value uint32, err error) {
	if index < 0 || index >= REG_COUNT {
		err = ErrRegRange(index)
		return
	}
	value = sim.reg[index]
	return
}

// SetReg writes a general-purpose register. Writes to x0 are discarded.
func (sim *Simulator) SetReg(index int, value uint32) (err error) {
	if index < 0 || index >= REG_COUNT {
		return ErrRegRange(index)
	}
	if index != 0 {
		sim.reg[index] = value
	}
	return
}

// Mem reads one byte of memory.
func (sim *Simulator) Mem(addr uint32) (value byte, err error) {
	if addr >= uint32(len(sim.mem)) {
		err = ErrMemRange(addr)
		return
	}
	value = sim.mem[addr]
	return
}

// SetMemory writes one byte of memory.
func (sim *Simulator) SetMemory(addr uint32, value byte) (err error) {
	if addr >= uint32(len(sim.mem)) {
		return ErrMemRange(addr)
	}
	sim.mem[addr] = value
	return
}

// LoadData expands a data segment into byte memory, 4 little-endian bytes
// per 32-bit entry.
func (sim *Simulator) LoadData(data map[uint32]uint32) (err error) {
	for addr, value := range data {
		if err = sim.storeWord(addr, value); err != nil {
			return
		}
	}
	return
}

// Read-only latch accessors, for inspection only.

func (sim *Simulator) IFID() IFID { return sim.ifid }

func (sim *Simulator) IDEX() IDEX { return sim.idex }

func (sim *Simulator) EXMEM() EXMEM { return sim.exmem }

func (sim *Simulator) MEMWB() MEMWB { return sim.memwb }

// loadWord reads 4 little-endian bytes.
func (sim *Simulator) loadWord(addr uint32) (value uint32, err error) {
	if addr+4 > uint32(len(sim.mem)) || addr+4 < addr {
		err = ErrMemRange(addr)
		return
	}
	value = binary.LittleEndian.Uint32(sim.mem[addr:])
	return
}

// storeWord writes 4 little-endian bytes.
func (sim *Simulator) storeWord(addr uint32, value uint32) (err error) {
	if addr+4 > uint32(len(sim.mem)) || addr+4 < addr {
		return ErrMemRange(addr)
	}
	binary.LittleEndian.PutUint32(sim.mem[addr:], value)
	return
}

// Step advances the pipeline by exactly one clock. The next set of latches
// is constructed from the current set; stage effects apply in write-back,
// memory, execute, decode, fetch order so that forwarding always sees the
// youngest in-flight values.
func (sim *Simulator) Step() (err error) {
	// Write-back: reads the current MEM/WB latch.
	if wb := sim.memwb; !wb.Bubble() && wb.Inst.Op.WritesRegister() && wb.Inst.Rd != 0 {
		value := wb.ALU
		if wb.Inst.Op.IsLoad() {
			value = wb.LMD
		}
		sim.reg[wb.Inst.Rd] = value
	}

	// Memory: consumes the current EX/MEM latch, produces the next MEM/WB.
	var memwb MEMWB
	if mw := sim.exmem; !mw.Bubble() {
		memwb = MEMWB{IR: mw.IR, Inst: mw.Inst, ALU: mw.ALU}
		switch {
		case mw.Inst.Op.IsLoad():
			memwb.LMD, err = sim.loadWord(mw.ALU)
		case mw.Inst.Op.IsStore():
			err = sim.storeWord(mw.ALU, mw.B)
		}
		if err != nil {
			return
		}
	}

	// Execute: consumes the current ID/EX latch, produces the next EX/MEM.
	var exmem EXMEM
	if ex := sim.idex; !ex.Bubble() {
		exmem = EXMEM{IR: ex.IR, Inst: ex.Inst, B: ex.B}
		exmem.ALU, exmem.Taken, exmem.Target = execute(ex)
	}

	// Decode: consumes the current IF/ID latch, produces the next ID/EX.
	// Operands forward from the just-built EX/MEM and MEM/WB latches; a
	// load still one stage short of its data forces a stall.
	var idex IDEX
	var stall bool
	if id := sim.ifid; !id.Bubble() {
		var inst rv.Inst
		inst, err = id.IR.Decode()
		if err != nil {
			return
		}

		idex = IDEX{IR: id.IR, Inst: inst, PC: id.PC, NPC: id.NPC, Imm: inst.Imm}
		idex.A = sim.reg[inst.Rs1]
		idex.B = sim.reg[inst.Rs2]
		if readsRs1(inst) {
			var hazard bool
			idex.A, hazard = forward(inst.Rs1, idex.A, exmem, memwb)
			stall = stall || hazard
		}
		if readsRs2(inst) {
			var hazard bool
			idex.B, hazard = forward(inst.Rs2, idex.B, exmem, memwb)
			stall = stall || hazard
		}
	}

	// Fetch: produces the next IF/ID. Absent words (past the last
	// instruction) fetch as bubbles. A stall holds PC and IF/ID and
	// injects a bubble into ID/EX instead.
	var ifid IFID
	next := sim.pc + 4
	if stall {
		ifid = sim.ifid
		idex = IDEX{}
		next = sim.pc
	} else {
		word, ok := sim.imem[sim.pc]
		if !ok {
			word = rv.Bubble
		}
		ifid = IFID{IR: word, PC: sim.pc, NPC: sim.pc + 4}
	}

	// Control hazard: a taken branch or jump overrides the PC and
	// squashes the two wrong-path instructions fetched behind it.
	if exmem.Taken {
		next = exmem.Target
		ifid = IFID{}
		idex = IDEX{}
	}

	sim.ifid, sim.idex, sim.exmem, sim.memwb = ifid, idex, exmem, memwb
	sim.pc = next
	sim.cycles += 1

	if sim.Verbose {
		log.Printf("cycle %v: pc %08x", sim.cycles, sim.pc)
		log.Printf("  %v", sim.ifid)
		log.Printf("  %v", sim.idex)
		log.Printf("  %v", sim.exmem)
		log.Printf("  %v", sim.memwb)
	}

	return
}

// forward returns the youngest in-flight value for a source register,
// checking the EX/MEM latch first, then MEM/WB. A load whose data is still
// a stage away reports a hazard instead of a value.
func forward(src uint32, stale uint32, exmem EXMEM, memwb MEMWB) (value uint32, hazard bool) {
	value = stale
	if src == 0 {
		return
	}

	if !exmem.Bubble() && exmem.Inst.Op.WritesRegister() && exmem.Inst.Rd == src {
		if exmem.Inst.Op.IsLoad() {
			hazard = true
			return
		}
		value = exmem.ALU
		return
	}

	if !memwb.Bubble() && memwb.Inst.Op.WritesRegister() && memwb.Inst.Rd == src {
		if memwb.Inst.Op.IsLoad() {
			value = memwb.LMD
		} else {
			value = memwb.ALU
		}
	}

	return
}

// readsRs1 returns true if the instruction reads its first source register.
func readsRs1(inst rv.Inst) bool {
	switch inst.Format {
	case rv.FORMAT_U, rv.FORMAT_J:
		return false
	}
	return true
}

// readsRs2 returns true if the instruction reads its second source register.
func readsRs2(inst rv.Inst) bool {
	switch inst.Format {
	case rv.FORMAT_R, rv.FORMAT_S, rv.FORMAT_B:
		return true
	}
	return false
}

// execute computes the ALU result, and resolves branch and jump targets.
func execute(ex IDEX) (alu uint32, taken bool, target uint32) {
	a := ex.A
	b := ex.B
	imm := uint32(ex.Imm)

	switch ex.Inst.Op {
	case rv.OP_ADD:
		alu = a + b
	case rv.OP_SUB:
		alu = a - b
	case rv.OP_SLL:
		alu = a << (b & 0x1f)
	case rv.OP_SLT:
		if int32(a) < int32(b) {
			alu = 1
		}
	case rv.OP_SLTU:
		if a < b {
			alu = 1
		}
	case rv.OP_XOR:
		alu = a ^ b
	case rv.OP_SRL:
		alu = a >> (b & 0x1f)
	case rv.OP_SRA:
		alu = uint32(int32(a) >> (b & 0x1f))
	case rv.OP_OR:
		alu = a | b
	case rv.OP_AND:
		alu = a & b
	case rv.OP_ADDI:
		alu = a + imm
	case rv.OP_SLTI:
		if int32(a) < ex.Imm {
			alu = 1
		}
	case rv.OP_SLTIU:
		if a < imm {
			alu = 1
		}
	case rv.OP_XORI:
		alu = a ^ imm
	case rv.OP_ORI:
		alu = a | imm
	case rv.OP_ANDI:
		alu = a & imm
	case rv.OP_SLLI:
		alu = a << (imm & 0x1f)
	case rv.OP_SRLI:
		alu = a >> (imm & 0x1f)
	case rv.OP_SRAI:
		alu = uint32(int32(a) >> (imm & 0x1f))
	case rv.OP_LW, rv.OP_SW:
		// Effective address: base plus sign-extended offset.
		alu = a + imm
	case rv.OP_BEQ:
		taken = a == b
	case rv.OP_BNE:
		taken = a != b
	case rv.OP_BLT:
		taken = int32(a) < int32(b)
	case rv.OP_BGE:
		taken = int32(a) >= int32(b)
	case rv.OP_BLTU:
		taken = a < b
	case rv.OP_BGEU:
		taken = a >= b
	case rv.OP_LUI:
		alu = imm
	case rv.OP_AUIPC:
		alu = ex.PC + imm
	case rv.OP_JAL:
		alu = ex.NPC
		taken = true
		target = ex.PC + imm
	case rv.OP_JALR:
		alu = ex.NPC
		taken = true
		target = (a + imm) &^ 1
	}

	if ex.Inst.Op.IsBranch() && taken {
		target = ex.PC + imm
	}

	return
}
