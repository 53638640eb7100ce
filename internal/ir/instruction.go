package ir

import (
	"fmt"
	"strings"
)

// Instruction is one three-address instruction.
//
// WHAT DO USES AND DEF MEAN?
// Uses returns every value the instruction reads; Def returns the
// value it writes, if any. Those two methods are the entire surface
// the dataflow stages need: liveness, interference, and allocation
// never look inside an instruction beyond them.
//
// DESIGN CHOICE: the variant set is closed and every variant
// implements Uses/Def itself, so adding an instruction kind without
// deciding its dataflow behavior is a compile error rather than a
// silent analysis bug.
type Instruction interface {
	// Uses returns the values this instruction reads, in operand
	// order. Constants are included; dataflow stages filter them.
	Uses() []Value

	// Def returns the value this instruction writes and true, or the
	// zero Value and false if it writes nothing.
	Def() (Value, bool)

	// String returns the instruction in IR dump form.
	String() string
}

// BinaryOperator identifies a two-operand IR operation.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpXor

	// Comparisons produce the words 0 or 1. They stay contiguous so
	// IsComparison is a range check.
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
)

// String returns the source-level symbol for the operator.
func (op BinaryOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// IsComparison reports whether op is one of the six comparison
// operators.
func (op BinaryOperator) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}

// UnaryOperator identifies a one-operand IR operation.
type UnaryOperator int

const (
	OpNeg    UnaryOperator = iota // arithmetic negation
	OpNot                         // logical not, canonical 0/1 result
	OpBitNot                      // bitwise complement
)

// String returns the source-level symbol for the operator.
func (op UnaryOperator) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	case OpBitNot:
		return "~"
	default:
		return "?"
	}
}

// BinaryOp computes Dest = Left Op Right.
type BinaryOp struct {
	Op    BinaryOperator
	Dest  Value
	Left  Value
	Right Value
}

func (i *BinaryOp) Uses() []Value      { return []Value{i.Left, i.Right} }
func (i *BinaryOp) Def() (Value, bool) { return i.Dest, true }

func (i *BinaryOp) String() string {
	return fmt.Sprintf("%s = %s %s %s", i.Dest, i.Left, i.Op, i.Right)
}

// UnaryOp computes Dest = Op Operand.
type UnaryOp struct {
	Op      UnaryOperator
	Dest    Value
	Operand Value
}

func (i *UnaryOp) Uses() []Value      { return []Value{i.Operand} }
func (i *UnaryOp) Def() (Value, bool) { return i.Dest, true }

func (i *UnaryOp) String() string {
	return fmt.Sprintf("%s = %s%s", i.Dest, i.Op, i.Operand)
}

// Assign copies Src into Dest.
type Assign struct {
	Dest Value
	Src  Value
}

func (i *Assign) Uses() []Value      { return []Value{i.Src} }
func (i *Assign) Def() (Value, bool) { return i.Dest, true }

func (i *Assign) String() string {
	return fmt.Sprintf("%s = %s", i.Dest, i.Src)
}

// Label binds Name to the position of the next instruction. It has no
// dataflow at all. Ordinary control flow anchors on block labels; the
// Label instruction exists for streams that need an extra in-block
// anchor.
type Label struct {
	Name string
}

func (i *Label) Uses() []Value      { return nil }
func (i *Label) Def() (Value, bool) { return Value{}, false }

func (i *Label) String() string { return i.Name + ":" }

// Jump transfers control to the block labeled Target.
//
// DESIGN CHOICE: jump targets are label strings, not block
// references, because the generator emits forward jumps before the
// destination block exists. Function.Seal resolves every label into a
// CFG edge.
type Jump struct {
	Target string
}

func (i *Jump) Uses() []Value      { return nil }
func (i *Jump) Def() (Value, bool) { return Value{}, false }

func (i *Jump) String() string { return "jump " + i.Target }

// CondJump transfers control to True when Cond holds a non-zero word
// and to False otherwise. Both edges are explicit: a block never falls
// through a CondJump.
type CondJump struct {
	Cond  Value
	True  string
	False string
}

func (i *CondJump) Uses() []Value      { return []Value{i.Cond} }
func (i *CondJump) Def() (Value, bool) { return Value{}, false }

func (i *CondJump) String() string {
	return fmt.Sprintf("condjump %s, %s, %s", i.Cond, i.True, i.False)
}

// Call invokes the named function with Args. Callee is a name rather
// than a Value: the target machine calls labels, and the language has
// no function values. Dest receives the result when HasDest is set; a
// call used purely for effect leaves it unset.
type Call struct {
	Dest    Value
	HasDest bool
	Callee  string
	Args    []Value
}

func (i *Call) Uses() []Value      { return i.Args }
func (i *Call) Def() (Value, bool) { return i.Dest, i.HasDest }

func (i *Call) String() string {
	args := make([]string, len(i.Args))
	for n, arg := range i.Args {
		args[n] = arg.String()
	}
	call := fmt.Sprintf("call %s(%s)", i.Callee, strings.Join(args, ", "))
	if i.HasDest {
		return i.Dest.String() + " = " + call
	}
	return call
}

// Return leaves the function, yielding Value when HasValue is set.
type Return struct {
	Value    Value
	HasValue bool
}

func (i *Return) Uses() []Value {
	if !i.HasValue {
		return nil
	}
	return []Value{i.Value}
}

func (i *Return) Def() (Value, bool) { return Value{}, false }

func (i *Return) String() string {
	if !i.HasValue {
		return "return"
	}
	return "return " + i.Value.String()
}

// IsTerminator reports whether instr ends a basic block: control never
// falls through a Jump, CondJump, or Return.
func IsTerminator(instr Instruction) bool {
	switch instr.(type) {
	case *Jump, *CondJump, *Return:
		return true
	default:
		return false
	}
}
