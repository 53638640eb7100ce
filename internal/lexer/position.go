// Package lexer provides lexical analysis (tokenization) for the mini
// language. It transforms raw source text into a stream of tokens that the
// parser consumes.
package lexer

import "strconv"

// Position represents a location in the source code.
//
// DESIGN CHOICE: Position is a value type (not a pointer) because:
// 1. It's small and immutable once created
// 2. Copying is cheap and avoids pointer chasing
// 3. The zero value naturally means "no position"
//
// Position tracking matters because every error the compiler reports, from a
// stray character to an undefined name deep in IR generation, points back at
// a source location.
type Position struct {
	// Filename is the name of the source file. Stored in every position so
	// error messages are self-contained.
	Filename string

	// Line is the 1-based line number, matching how editors display lines.
	Line int

	// Column is the 1-based byte column within the line, the same
	// convention go/token uses.
	Column int

	// Offset is the 0-based byte offset from the start of the file. Used to
	// slice the original source when extracting lexemes.
	Offset int
}

// String renders the position in the GCC/Clang "file:line:column" format,
// which editors and CI systems turn into clickable links.
func (p Position) String() string {
	return p.Filename + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position carries real location information.
// The zero value Position{} correctly reports as invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether this position comes before the other.
// Offsets are the source of truth; line and column are derived.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}
