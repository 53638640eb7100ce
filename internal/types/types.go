// Package types implements the value types for the compiler.
//
// DESIGN PHILOSOPHY:
// The mini language is monotyped at the machine level: every value is one
// machine word. We still track a small type lattice because:
// 1. IR dumps are clearer when comparisons read as bool and arithmetic as int
// 2. The IR generator needs a "this produces no value" marker for bare calls
// 3. It leaves room to grow (the backend never branches on types today)
//
// KEY DESIGN CHOICES:
// - Types are an interface with singleton instances (Int, Bool, ...)
// - Always use the singletons, never allocate fresh type values. IR values
//   embed their type and compare by value identity, which works precisely
//   because equal types are the same pointer.
package types

// Type is the interface all types implement.
//
// DESIGN CHOICE: An interface rather than an enum because:
// - Type switches read naturally at use sites
// - Each type owns its String rendering
// - Matches how the rest of the compiler models closed sets (ast.Expr, ir.Instruction)
type Type interface {
	// String returns the source-level name of the type.
	String() string

	// kind keeps the set closed; only this package can add types.
	kind() kind
}

type kind int

const (
	kindInvalid kind = iota
	kindVoid
	kindInt
	kindBool
)

// InvalidType marks a value whose type could not be determined.
// Using a real type instead of nil keeps later stages free of nil checks.
type InvalidType struct{}

func (*InvalidType) String() string { return "<invalid>" }
func (*InvalidType) kind() kind     { return kindInvalid }

// VoidType is the "type" of a call used purely for effect.
type VoidType struct{}

func (*VoidType) String() string { return "void" }
func (*VoidType) kind() kind     { return kindVoid }

// IntType is the machine-word integer type. Every variable, parameter,
// and arithmetic result in the mini language has this type.
type IntType struct{}

func (*IntType) String() string { return "int" }
func (*IntType) kind() kind     { return kindInt }

// BoolType is the type of comparison results. Represented as the words
// 0 and 1 at the machine level.
type BoolType struct{}

func (*BoolType) String() string { return "bool" }
func (*BoolType) kind() kind     { return kindBool }

// Singleton instances. All code refers to these; comparing two types is a
// pointer comparison.
var (
	Invalid = &InvalidType{}
	Void    = &VoidType{}
	Int     = &IntType{}
	Bool    = &BoolType{}
)

// IsBoolean reports whether t is the boolean type.
func IsBoolean(t Type) bool {
	_, ok := t.(*BoolType)
	return ok
}

// IsInteger reports whether t is the integer type.
func IsInteger(t Type) bool {
	_, ok := t.(*IntType)
	return ok
}
