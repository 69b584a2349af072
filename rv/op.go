package rv

// Format is an instruction format class.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R = Format(0) // R
	FORMAT_I = Format(1) // I
	FORMAT_S = Format(2) // S
	FORMAT_B = Format(3) // B
	FORMAT_U = Format(4) // U
	FORMAT_J = Format(5) // J
)

// Base opcodes of the supported formats.
const (
	OPCODE_ALU     = uint32(0b0110011)
	OPCODE_ALU_IMM = uint32(0b0010011)
	OPCODE_LOAD    = uint32(0b0000011)
	OPCODE_STORE   = uint32(0b0100011)
	OPCODE_BRANCH  = uint32(0b1100011)
	OPCODE_LUI     = uint32(0b0110111)
	OPCODE_AUIPC   = uint32(0b0010111)
	OPCODE_JAL     = uint32(0b1101111)
	OPCODE_JALR    = uint32(0b1100111)
)

// Op is an instruction of the supported subset.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD   = Op(0)  // add
	OP_SUB   = Op(1)  // sub
	OP_SLL   = Op(2)  // sll
	OP_SLT   = Op(3)  // slt
	OP_SLTU  = Op(4)  // sltu
	OP_XOR   = Op(5)  // xor
	OP_SRL   = Op(6)  // srl
	OP_SRA   = Op(7)  // sra
	OP_OR    = Op(8)  // or
	OP_AND   = Op(9)  // and
	OP_ADDI  = Op(10) // addi
	OP_SLTI  = Op(11) // slti
	OP_SLTIU = Op(12) // sltiu
	OP_XORI  = Op(13) // xori
	OP_ORI   = Op(14) // ori
	OP_ANDI  = Op(15) // andi
	OP_SLLI  = Op(16) // slli
	OP_SRLI  = Op(17) // srli
	OP_SRAI  = Op(18) // srai
	OP_LW    = Op(19) // lw
	OP_SW    = Op(20) // sw
	OP_BEQ   = Op(21) // beq
	OP_BNE   = Op(22) // bne
	OP_BLT   = Op(23) // blt
	OP_BGE   = Op(24) // bge
	OP_BLTU  = Op(25) // bltu
	OP_BGEU  = Op(26) // bgeu
	OP_LUI   = Op(27) // lui
	OP_AUIPC = Op(28) // auipc
	OP_JAL   = Op(29) // jal
	OP_JALR  = Op(30) // jalr
)

// Desc carries the fixed encoding fields of an Op.
type Desc struct {
	Format Format
	Opcode uint32
	Funct3 uint32
	Funct7 uint32
}

var descMap = map[Op]Desc{
	OP_ADD:   {FORMAT_R, OPCODE_ALU, 0b000, 0b0000000},
	OP_SUB:   {FORMAT_R, OPCODE_ALU, 0b000, 0b0100000},
	OP_SLL:   {FORMAT_R, OPCODE_ALU, 0b001, 0b0000000},
	OP_SLT:   {FORMAT_R, OPCODE_ALU, 0b010, 0b0000000},
	OP_SLTU:  {FORMAT_R, OPCODE_ALU, 0b011, 0b0000000},
	OP_XOR:   {FORMAT_R, OPCODE_ALU, 0b100, 0b0000000},
	OP_SRL:   {FORMAT_R, OPCODE_ALU, 0b101, 0b0000000},
	OP_SRA:   {FORMAT_R, OPCODE_ALU, 0b101, 0b0100000},
	OP_OR:    {FORMAT_R, OPCODE_ALU, 0b110, 0b0000000},
	OP_AND:   {FORMAT_R, OPCODE_ALU, 0b111, 0b0000000},
	OP_ADDI:  {FORMAT_I, OPCODE_ALU_IMM, 0b000, 0},
	OP_SLTI:  {FORMAT_I, OPCODE_ALU_IMM, 0b010, 0},
	OP_SLTIU: {FORMAT_I, OPCODE_ALU_IMM, 0b011, 0},
	OP_XORI:  {FORMAT_I, OPCODE_ALU_IMM, 0b100, 0},
	OP_ORI:   {FORMAT_I, OPCODE_ALU_IMM, 0b110, 0},
	OP_ANDI:  {FORMAT_I, OPCODE_ALU_IMM, 0b111, 0},
	OP_SLLI:  {FORMAT_I, OPCODE_ALU_IMM, 0b001, 0b0000000},
	OP_SRLI:  {FORMAT_I, OPCODE_ALU_IMM, 0b101, 0b0000000},
	OP_SRAI:  {FORMAT_I, OPCODE_ALU_IMM, 0b101, 0b0100000},
	OP_LW:    {FORMAT_I, OPCODE_LOAD, 0b010, 0},
	OP_SW:    {FORMAT_S, OPCODE_STORE, 0b010, 0},
	OP_BEQ:   {FORMAT_B, OPCODE_BRANCH, 0b000, 0},
	OP_BNE:   {FORMAT_B, OPCODE_BRANCH, 0b001, 0},
	OP_BLT:   {FORMAT_B, OPCODE_BRANCH, 0b100, 0},
	OP_BGE:   {FORMAT_B, OPCODE_BRANCH, 0b101, 0},
	OP_BLTU:  {FORMAT_B, OPCODE_BRANCH, 0b110, 0},
	OP_BGEU:  {FORMAT_B, OPCODE_BRANCH, 0b111, 0},
	OP_LUI:   {FORMAT_U, OPCODE_LUI, 0, 0},
	OP_AUIPC: {FORMAT_U, OPCODE_AUIPC, 0, 0},
	OP_JAL:   {FORMAT_J, OPCODE_JAL, 0, 0},
	OP_JALR:  {FORMAT_I, OPCODE_JALR, 0b000, 0},
}

// opMap maps mnemonic tokens to Ops.
var opMap = map[string]Op{}

func init() {
	for op := range descMap {
		opMap[op.String()] = op
	}
}

// Lookup resolves a mnemonic token to its Op.
func Lookup(mnemonic string) (op Op, ok bool) {
	op, ok = opMap[mnemonic]
	return
}

// Desc returns the fixed encoding fields of the Op.
func (op Op) Desc() Desc {
	return descMap[op]
}

// IsLoad returns true for memory-read instructions.
func (op Op) IsLoad() bool {
	return op == OP_LW
}

// IsStore returns true for memory-write instructions.
func (op Op) IsStore() bool {
	return op == OP_SW
}

// IsBranch returns true for conditional branches.
func (op Op) IsBranch() bool {
	return op.Desc().Format == FORMAT_B
}

// IsJump returns true for unconditional jumps.
func (op Op) IsJump() bool {
	return op == OP_JAL || op == OP_JALR
}

// WritesRegister returns true if the Op writes a destination register.
func (op Op) WritesRegister() bool {
	switch op.Desc().Format {
	case FORMAT_S, FORMAT_B:
		return false
	}
	return true
}

// IsShift returns true for shift instructions, whose immediate field is an
// unsigned 5-bit shift amount rather than a 12-bit signed value.
func (op Op) IsShift() bool {
	switch op {
	case OP_SLLI, OP_SRLI, OP_SRAI:
		return true
	}
	return false
}
