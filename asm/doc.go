// Package asm implements the two-pass assembler for the rvpipe dialect.
//
// Pass one walks the preprocessed source and binds every label to an
// instruction address. Pass two re-walks the same lines, parses each
// instruction into a mnemonic and operand tokens (normalizing the load/store
// imm(base) syntax), and encodes one 32-bit machine word per instruction
// against the completed symbol table.
//
// The assembler also supports .equ equates and compile-time $( ... )
// expression evaluation inside operands, and collects .word directives into
// the program's data segment.
package asm
