// Package sim implements the cycle-accurate 5-stage pipelined processor
// model: fetch, decode, execute, memory, and write-back, advanced one clock
// per Step call.
//
// Each clock constructs the next set of four stage latches from the current
// set, so hazard handling never depends on mutation order. Data hazards are
// resolved by forwarding from the EX/MEM and MEM/WB latches into the decoded
// operands; a load followed immediately by a consumer inserts exactly one
// stall cycle. Branches resolve at the end of Execute under a not-taken
// fetch policy, squashing the two wrong-path instructions behind them.
package sim
