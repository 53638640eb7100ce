package ir

import "strings"

// BlockID names a basic block within its owning Function's arena.
//
// DESIGN CHOICE: blocks refer to each other by index, never by
// pointer, because:
// - Loops make the CFG cyclic; indices keep it a plain slice
// - Analyses can key maps and slices by BlockID directly
// - A stale id fails a range check; a stale pointer fails nothing
type BlockID int

// BasicBlock is a straight-line run of instructions: one entry at the
// top, one exit at the terminator.
//
// WHAT MAKES A BLOCK "BASIC"?
// No jump lands in its middle and no jump leaves from its middle. If
// control reaches the first instruction, every instruction runs. That
// guarantee is what lets liveness treat the block as a unit.
//
// Preds and Succs are derived by Function.Seal from the terminator
// instructions. Before sealing they are empty.
type BasicBlock struct {
	// ID is this block's index in the owning function's arena.
	ID BlockID

	// Label is the block's name, unique within the function.
	Label string

	// Instructions in execution order. After sealing, the last one is
	// always a terminator.
	Instructions []Instruction

	// Succs are the blocks control can reach from this block's
	// terminator.
	Succs []BlockID

	// Preds are the blocks whose terminators can reach this block.
	Preds []BlockID
}

// Add appends an instruction to the block.
func (b *BasicBlock) Add(instr Instruction) {
	b.Instructions = append(b.Instructions, instr)
}

// Terminator returns the block's final instruction if it is a jump,
// conditional jump, or return, and nil otherwise.
func (b *BasicBlock) Terminator() Instruction {
	if len(b.Instructions) == 0 {
		return nil
	}
	last := b.Instructions[len(b.Instructions)-1]
	if IsTerminator(last) {
		return last
	}
	return nil
}

// Terminated reports whether the block ends in a terminator.
func (b *BasicBlock) Terminated() bool { return b.Terminator() != nil }

// String returns the block label and its instructions, one per line.
func (b *BasicBlock) String() string {
	var sb strings.Builder
	sb.WriteString(b.Label)
	sb.WriteString(":\n")
	for _, instr := range b.Instructions {
		sb.WriteString("  ")
		sb.WriteString(instr.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
