// Package ir defines the compiler's intermediate representation: a
// three-address code over virtual values, grouped into basic blocks
// that form a control flow graph per function.
//
// WHAT IS THREE-ADDRESS CODE?
// Every computation is broken into steps of at most one operation:
//
//	x = 1 + 2 * 3    becomes    t0 = 2 * 3
//	                            t1 = 1 + t0
//	                            x = t1
//
// This form sits halfway between the AST and machine code:
// - Each IR instruction lowers to a handful of machine instructions
// - Control flow is explicit: jumps between labeled blocks
// - Every intermediate result has a name, so dataflow analysis can
//   track lifetimes value by value
//
// KEY DESIGN CHOICES:
// 1. Value is a small comparable struct, not a pointer. Liveness and
//    interference work with sets of values; value identity makes those
//    sets plain Go maps with no interning table.
// 2. Blocks live in an arena owned by their Function and are referred
//    to by BlockID everywhere else. Loops make the CFG cyclic, and
//    index references keep the graph a plain slice instead of a web of
//    pointers.
// 3. Jump targets are label strings until Function.Seal resolves them
//    into block edges, so the generator can emit a forward jump before
//    the destination block exists.
package ir

import (
	"strconv"

	"github.com/hassan/minicc/internal/types"
)

// ValueKind discriminates the three kinds of IR value.
type ValueKind int

const (
	// ValueConstant is an immutable literal. Constants are materialized
	// as immediate operands at each use site: they are never allocated
	// a register and never appear in liveness sets.
	ValueConstant ValueKind = iota

	// ValueVariable is a named source-level binding. A variable may be
	// assigned any number of times.
	ValueVariable

	// ValueTemporary is a compiler-introduced value t<N>. Each
	// temporary is defined by exactly one instruction in its function.
	ValueTemporary
)

// String returns the kind name for diagnostics.
func (k ValueKind) String() string {
	switch k {
	case ValueConstant:
		return "constant"
	case ValueVariable:
		return "variable"
	case ValueTemporary:
		return "temporary"
	default:
		return "unknown"
	}
}

// Value is one operand or result in the IR.
//
// DESIGN CHOICE: Value is a plain comparable struct because:
// - Two mentions of variable x must be the same value; struct equality
//   gives that without an interning table
// - Liveness, interference, and allocation all key maps by Value
// - A value renders identically wherever it appears
//
// Exactly one identifying field is meaningful per kind: Literal for
// constants, Name for variables, ID for temporaries. Instructions with
// an optional value (Call result, Return operand) pair the field with
// a bool rather than using a pointer, keeping Value comparable.
type Value struct {
	Kind    ValueKind
	Name    string // variable name (ValueVariable)
	ID      int    // temporary number (ValueTemporary)
	Literal int64  // constant payload (ValueConstant)
	Type    types.Type
}

// Constant returns the constant value for a literal.
func Constant(literal int64, typ types.Type) Value {
	return Value{Kind: ValueConstant, Literal: literal, Type: typ}
}

// Variable returns the value denoting the named source variable.
// Mentions with the same name are the same value.
func Variable(name string, typ types.Type) Value {
	return Value{Kind: ValueVariable, Name: name, Type: typ}
}

// Temporary returns the value for temporary number id. Most code wants
// Function.NewTemp, which hands out fresh ids.
func Temporary(id int, typ types.Type) Value {
	return Value{Kind: ValueTemporary, ID: id, Type: typ}
}

// IsConstant reports whether v is a constant.
func (v Value) IsConstant() bool { return v.Kind == ValueConstant }

// Allocatable reports whether v competes for a register: variables and
// temporaries do, constants never do.
func (v Value) Allocatable() bool { return v.Kind != ValueConstant }

// String returns the value as it appears in IR dumps: the literal for
// constants, the name for variables, t<N> for temporaries.
func (v Value) String() string {
	switch v.Kind {
	case ValueConstant:
		return strconv.FormatInt(v.Literal, 10)
	case ValueVariable:
		return v.Name
	case ValueTemporary:
		return "t" + strconv.Itoa(v.ID)
	default:
		return "<invalid>"
	}
}
