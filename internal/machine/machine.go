// Package machine describes the abstract target machine: its register
// set, opcodes, and operand forms.
//
// WHAT KIND OF MACHINE IS THIS?
// A teaching target: 8 general-purpose registers, a downward-growing
// stack with frame and stack pointers, word-addressed memory, and a
// small fixed opcode set. It exists so the backend has something
// concrete to allocate for and emit to; nothing here executes.
//
// KEY DESIGN CHOICES:
// - Pure data, defined once as package values, immutable by
//   convention. Every stage shares the same Register values.
// - Instruction and Operand are plain structs, so an emitted program
//   is a flat, directly printable list with no hidden state.
package machine

// RegisterClass distinguishes allocatable registers from the special
// ones the hardware reserves.
type RegisterClass int

const (
	// ClassGeneral registers hold program values; the allocator hands
	// them out.
	ClassGeneral RegisterClass = iota

	// ClassStackPointer is SP.
	ClassStackPointer

	// ClassFramePointer is FP.
	ClassFramePointer

	// ClassProgramCounter is PC.
	ClassProgramCounter

	// ClassFlags is FLAGS, written by CMP and read by the conditional
	// jumps.
	ClassFlags
)

// String returns the class name for diagnostics.
func (c RegisterClass) String() string {
	switch c {
	case ClassGeneral:
		return "general"
	case ClassStackPointer:
		return "stack pointer"
	case ClassFramePointer:
		return "frame pointer"
	case ClassProgramCounter:
		return "program counter"
	case ClassFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Register is one physical machine register.
type Register struct {
	Name  string
	Class RegisterClass
	Bits  int
}

// String returns the register name as it appears in assembly.
func (r Register) String() string { return r.Name }

// The fixed register file. All registers are one machine word wide.
var (
	R0 = Register{Name: "R0", Class: ClassGeneral, Bits: 64}
	R1 = Register{Name: "R1", Class: ClassGeneral, Bits: 64}
	R2 = Register{Name: "R2", Class: ClassGeneral, Bits: 64}
	R3 = Register{Name: "R3", Class: ClassGeneral, Bits: 64}
	R4 = Register{Name: "R4", Class: ClassGeneral, Bits: 64}
	R5 = Register{Name: "R5", Class: ClassGeneral, Bits: 64}
	R6 = Register{Name: "R6", Class: ClassGeneral, Bits: 64}
	R7 = Register{Name: "R7", Class: ClassGeneral, Bits: 64}

	SP    = Register{Name: "SP", Class: ClassStackPointer, Bits: 64}
	FP    = Register{Name: "FP", Class: ClassFramePointer, Bits: 64}
	PC    = Register{Name: "PC", Class: ClassProgramCounter, Bits: 64}
	FLAGS = Register{Name: "FLAGS", Class: ClassFlags, Bits: 64}
)

const (
	// NumGPR is the number of allocatable registers: the K of the
	// graph coloring.
	NumGPR = 8

	// WordSize is the size of a machine word in bytes. Every value,
	// stack slot, and argument is one word.
	WordSize = 8
)

// GPR lists the general-purpose registers in allocation order:
// color i maps to GPR[i].
var GPR = [NumGPR]Register{R0, R1, R2, R3, R4, R5, R6, R7}

// ReturnRegister receives a function's result under the calling
// convention.
var ReturnRegister = R0
