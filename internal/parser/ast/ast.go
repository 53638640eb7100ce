// Package ast defines the Abstract Syntax Tree node types for the compiler.
//
// DESIGN PHILOSOPHY:
// The AST is a tree representation of the program's structure. It:
// 1. Preserves program semantics (but not all syntax details)
// 2. Is easy to traverse and analyze
// 3. Maintains position information for error reporting
//
// KEY DESIGN CHOICES:
// - Use interfaces (Expr, Stmt) for polymorphism
// - Consumers traverse with type switches rather than a visitor. The IR
//   generator must treat "a node kind I do not handle" as a reportable
//   condition, and the default arm of a type switch expresses that
//   directly; a visitor interface would make unknown nodes a compile
//   error instead of a runtime diagnostic.
// - Store position info in every node (for errors and diagnostics)
// - Parentheses vanish at parse time: grouping has no node because the
//   tree shape already records the grouping.
package ast

import (
	"github.com/hassan/minicc/internal/lexer"
)

// Node is the base interface for all AST nodes.
//
// Every node must be able to report its position for error messages.
type Node interface {
	// Pos returns the starting position of this node in the source.
	Pos() lexer.Position

	// End returns the ending position of this node in the source.
	End() lexer.Position
}

// Expr is the interface for all expression nodes.
//
// WHAT IS AN EXPRESSION?
// An expression is a piece of code that produces a value.
// Examples: 2 + 3, foo(), -x, true
//
// DESIGN CHOICE: Separate interface from Stmt because:
// - Type safety (can't use a statement where an expression is expected)
// - Matches language semantics (expressions have values, statements don't)
type Expr interface {
	Node
	exprNode() // Marker method to prevent accidental interface satisfaction
}

// Stmt is the interface for all statement nodes.
//
// WHAT IS A STATEMENT?
// A statement is a piece of code that performs an action.
// Examples: if (x) {...}, while (...) {...}, return x, x = 5
//
// In some languages (like Ruby), statements also have values.
// In ours, they don't - only expressions have values.
type Stmt interface {
	Node
	stmtNode() // Marker method
}

// Program is the root of the AST: an ordered list of function
// declarations.
//
// DESIGN CHOICE: There is no package or import syntax. A source file IS
// a program, and the only top-level construct is the function. Order is
// preserved so diagnostics and generated code come out in source order.
type Program struct {
	// Functions are the function declarations, in source order.
	Functions []*FuncDecl

	// Filename is the name of the source file.
	Filename string
}

func (p *Program) Pos() lexer.Position {
	if len(p.Functions) > 0 {
		return p.Functions[0].Pos()
	}
	return lexer.Position{Filename: p.Filename, Line: 1, Column: 1}
}

func (p *Program) End() lexer.Position {
	if len(p.Functions) > 0 {
		return p.Functions[len(p.Functions)-1].End()
	}
	return lexer.Position{Filename: p.Filename, Line: 1, Column: 1}
}

// FuncDecl represents a function declaration:
//
//	func name(param1, param2) { body }
//
// COMPONENTS:
// - Name: function name
// - Params: parameter names
// - Body: function body
//
// DESIGN CHOICES:
// - Parameters are bare identifiers. The language is monotyped over
//   machine words, so there is nothing to annotate.
// - There is no return type. Every function may return a word; a
//   function that falls off the end returns nothing meaningful.
type FuncDecl struct {
	FuncPos lexer.Position
	Name    *IdentifierExpr
	Params  []*IdentifierExpr
	Body    *BlockStmt
}

func (f *FuncDecl) Pos() lexer.Position { return f.FuncPos }
func (f *FuncDecl) End() lexer.Position { return f.Body.End() }
