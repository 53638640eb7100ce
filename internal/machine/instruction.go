package machine

import (
	"fmt"
	"strconv"
	"strings"
)

// Opcode identifies a target instruction.
//
// The set is fixed: three-operand ALU forms (ADD dst, a, b), MOVE for
// register/immediate transfers, CMP writing FLAGS for the conditional
// jumps to read, and the stack/call group the calling convention is
// built from.
type Opcode int

const (
	ADD Opcode = iota
	SUB
	MUL
	DIV
	MOD
	AND
	OR
	NOT
	XOR
	CMP
	JMP
	JEQ
	JNE
	JLT
	JLE
	JGT
	JGE
	LOAD
	STORE
	MOVE
	PUSH
	POP
	CALL
	RET
	HALT
	NOP
)

var opcodeNames = [...]string{
	ADD:   "ADD",
	SUB:   "SUB",
	MUL:   "MUL",
	DIV:   "DIV",
	MOD:   "MOD",
	AND:   "AND",
	OR:    "OR",
	NOT:   "NOT",
	XOR:   "XOR",
	CMP:   "CMP",
	JMP:   "JMP",
	JEQ:   "JEQ",
	JNE:   "JNE",
	JLT:   "JLT",
	JLE:   "JLE",
	JGT:   "JGT",
	JGE:   "JGE",
	LOAD:  "LOAD",
	STORE: "STORE",
	MOVE:  "MOVE",
	PUSH:  "PUSH",
	POP:   "POP",
	CALL:  "CALL",
	RET:   "RET",
	HALT:  "HALT",
	NOP:   "NOP",
}

// String returns the assembly mnemonic.
func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return "UNKNOWN"
	}
	return opcodeNames[op]
}

// OperandKind discriminates the three operand forms.
type OperandKind int

const (
	// OperandRegister names a machine register.
	OperandRegister OperandKind = iota

	// OperandImmediate is a literal value, rendered #n.
	OperandImmediate

	// OperandMemory is a memory reference: either a bare label (jump
	// and call targets) or a base register plus displacement, rendered
	// [FP-16].
	OperandMemory
)

// Operand is one instruction operand.
//
// DESIGN CHOICE: a plain comparable struct with a kind tag, the same
// shape as ir.Value, because operands are pure data: tests compare
// them directly and the renderer is one switch.
type Operand struct {
	Kind OperandKind

	// Register is the register named by an OperandRegister, or the
	// base of a register-relative OperandMemory.
	Register Register

	// Value is the OperandImmediate literal, or the displacement of a
	// register-relative OperandMemory.
	Value int64

	// Label is the label form of an OperandMemory. Empty for the
	// register-relative form.
	Label string
}

// Reg returns a register operand.
func Reg(r Register) Operand {
	return Operand{Kind: OperandRegister, Register: r}
}

// Imm returns an immediate operand.
func Imm(v int64) Operand {
	return Operand{Kind: OperandImmediate, Value: v}
}

// Mem returns a base-plus-displacement memory operand like [FP-16].
func Mem(base Register, disp int64) Operand {
	return Operand{Kind: OperandMemory, Register: base, Value: disp}
}

// LabelRef returns a label memory operand, used as jump and call
// targets.
func LabelRef(name string) Operand {
	return Operand{Kind: OperandMemory, Label: name}
}

// String renders the operand in assembly syntax.
func (o Operand) String() string {
	switch o.Kind {
	case OperandRegister:
		return o.Register.Name
	case OperandImmediate:
		return "#" + strconv.FormatInt(o.Value, 10)
	case OperandMemory:
		if o.Label != "" {
			return o.Label
		}
		if o.Value == 0 {
			return "[" + o.Register.Name + "]"
		}
		return fmt.Sprintf("[%s%+d]", o.Register.Name, o.Value)
	default:
		return "<invalid>"
	}
}

// Instruction is one target instruction plus the labels bound to its
// address. Keeping labels on the instruction makes the emitted list a
// lossless projection of the program: printing it is the assembler.
type Instruction struct {
	Op       Opcode
	Operands []Operand
	Labels   []string
}

// New returns an instruction with the given opcode and operands.
func New(op Opcode, operands ...Operand) Instruction {
	return Instruction{Op: op, Operands: operands}
}

// String renders the instruction without its labels, e.g.
// "ADD R0, R1, #8". Label lines are the program writer's concern.
func (i Instruction) String() string {
	if len(i.Operands) == 0 {
		return i.Op.String()
	}
	parts := make([]string, len(i.Operands))
	for n, op := range i.Operands {
		parts[n] = op.String()
	}
	return i.Op.String() + " " + strings.Join(parts, ", ")
}
