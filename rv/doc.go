// Package rv defines the RV32 instruction subset shared by the assembler
// and the pipelined simulator.
//
// Instructions are a closed enumeration (Op); each Op carries its format
// class and fixed opcode/funct fields as data (Desc). Word is one encoded
// 32-bit machine word, with constructors that bit-pack each format and
// accessors that recover the sign-extended immediates, including the
// scattered B and J layouts.
package rv
