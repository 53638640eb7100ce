// Package symtab implements the per-function symbol table used during
// IR generation.
//
// DESIGN PHILOSOPHY:
// The mini language has exactly one namespace per function: parameters
// and variables share it, blocks do not open nested scopes, and an
// assignment declares its target on first sight. The table is used to:
// 1. Resolve identifiers to the IR value they denote
// 2. Reject duplicate parameter names
// 3. Remember declaration positions for diagnostics
//
// KEY DESIGN CHOICES:
// - One flat map per function; no parent pointers, no shadowing
// - Symbols carry the ir.Value they denote, so resolution is a single
//   lookup with no separate name-to-value pass
// - Insertion order is preserved; dumps follow declaration order, not
//   map iteration order
package symtab

import (
	"github.com/hassan/minicc/internal/ir"
	"github.com/hassan/minicc/internal/lexer"
)

// SymbolKind represents the kind of symbol.
type SymbolKind int

const (
	// SymbolParameter is a function parameter, defined at entry.
	SymbolParameter SymbolKind = iota

	// SymbolVariable is a variable introduced by its first assignment.
	SymbolVariable
)

// String returns a human-readable representation of the symbol kind.
func (sk SymbolKind) String() string {
	switch sk {
	case SymbolParameter:
		return "parameter"
	case SymbolVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Symbol binds a source-level name to the IR value it denotes.
type Symbol struct {
	// Name is the symbol's identifier.
	Name string

	// Kind is what kind of symbol this is.
	Kind SymbolKind

	// Value is the IR value the name denotes. Every mention of the
	// name resolves to this exact value.
	Value ir.Value

	// Pos is where the symbol was introduced: the parameter list, or
	// the first assignment. Kept for "already declared at" messages.
	Pos lexer.Position
}

// String returns a human-readable representation of the symbol.
// Format: "kind name: type at position"
// Example: "variable x: int at test.mc:4:2"
func (s *Symbol) String() string {
	return s.Kind.String() + " " + s.Name + ": " + s.Value.Type.String() + " at " + s.Pos.String()
}
