package ast

import (
	"github.com/hassan/minicc/internal/lexer"
)

// Statement nodes represent actions and control flow.

// AssignStmt represents an assignment: name = expr;
//
// DESIGN CHOICE: Assignment is a statement, not an expression, because:
// - Chained assignment (a = b = c) and assignment-in-condition are
//   common sources of bugs, so the grammar simply has no place for them
// - The left side is always a plain name; the language has no lvalue
//   expressions (no arrays, no fields, no pointers)
//
// SEMANTIC NOTE: Assignment also declares. The first assignment to a
// name in a function introduces the variable; later assignments update
// it. There is no separate declaration form.
type AssignStmt struct {
	Name  *IdentifierExpr
	Value Expr
}

func (a *AssignStmt) Pos() lexer.Position { return a.Name.Pos() }
func (a *AssignStmt) End() lexer.Position { return a.Value.End() }
func (a *AssignStmt) stmtNode()           {}

// ExprStmt represents an expression used as a statement: foo(x);
//
// The only expression worth evaluating for effect is a call, and the
// parser enforces that. A bare call discards its result.
type ExprStmt struct {
	Expression Expr
}

func (e *ExprStmt) Pos() lexer.Position { return e.Expression.Pos() }
func (e *ExprStmt) End() lexer.Position { return e.Expression.End() }
func (e *ExprStmt) stmtNode()           {}

// BlockStmt represents a block of statements: { stmt1; stmt2; ... }
//
// Blocks are used in:
// - Function bodies
// - If/else branches
// - Loop bodies
// - Standalone blocks
//
// SEMANTIC NOTE: Blocks do NOT open a new scope. All names live in one
// flat per-function namespace, matching how the register allocator sees
// them: one variable, one live range, one home.
type BlockStmt struct {
	LeftBrace  lexer.Token
	Statements []Stmt
	RightBrace lexer.Token
}

func (b *BlockStmt) Pos() lexer.Position { return b.LeftBrace.Position }
func (b *BlockStmt) End() lexer.Position { return b.RightBrace.Position }
func (b *BlockStmt) stmtNode()           {}

// IfStmt represents an if statement: if (cond) { ... } else { ... }
//
// COMPONENTS:
// - Condition: the controlling expression
// - ThenBranch: executed if condition is true
// - ElseBranch: optional, executed if condition is false
//
// DESIGN CHOICE: Store ElseBranch as Stmt (not *BlockStmt) because:
// - Allows if-else chains: if (a) {} else if (b) {} else {}
type IfStmt struct {
	IfPos      lexer.Position
	Condition  Expr
	ThenBranch *BlockStmt
	ElseBranch Stmt // Can be nil, another IfStmt, or a BlockStmt
}

func (i *IfStmt) Pos() lexer.Position { return i.IfPos }
func (i *IfStmt) End() lexer.Position {
	if i.ElseBranch != nil {
		return i.ElseBranch.End()
	}
	return i.ThenBranch.End()
}
func (i *IfStmt) stmtNode() {}

// WhileStmt represents a while loop: while (cond) { ... }
//
// This is the language's only loop. for-loops desugar to while in the
// programmer's head, not in the compiler.
type WhileStmt struct {
	WhilePos  lexer.Position
	Condition Expr
	Body      *BlockStmt
}

func (w *WhileStmt) Pos() lexer.Position { return w.WhilePos }
func (w *WhileStmt) End() lexer.Position { return w.Body.End() }
func (w *WhileStmt) stmtNode()           {}

// ReturnStmt represents a return statement: return expr; or return;
//
// DESIGN CHOICE: Value is optional (can be nil) because:
// - A bare "return" exits without producing a value
// - Clearer than requiring a special "void" expression
type ReturnStmt struct {
	ReturnPos lexer.Position
	Value     Expr // Can be nil for a bare return
}

func (r *ReturnStmt) Pos() lexer.Position { return r.ReturnPos }
func (r *ReturnStmt) End() lexer.Position {
	if r.Value != nil {
		return r.Value.End()
	}
	return lexer.Position{
		Filename: r.ReturnPos.Filename,
		Line:     r.ReturnPos.Line,
		Column:   r.ReturnPos.Column + 6, // len("return")
		Offset:   r.ReturnPos.Offset + 6,
	}
}
func (r *ReturnStmt) stmtNode() {}

// BreakStmt represents a break statement: break;
//
// The parser accepts break so it can give a precise error position, but
// the IR generator rejects it: the backend's control flow repertoire is
// if and while only.
type BreakStmt struct {
	BreakPos lexer.Position
}

func (b *BreakStmt) Pos() lexer.Position { return b.BreakPos }
func (b *BreakStmt) End() lexer.Position {
	return lexer.Position{
		Filename: b.BreakPos.Filename,
		Line:     b.BreakPos.Line,
		Column:   b.BreakPos.Column + 5, // len("break")
		Offset:   b.BreakPos.Offset + 5,
	}
}
func (b *BreakStmt) stmtNode() {}

// ContinueStmt represents a continue statement: continue;
//
// Parsed for the same reason as break, and rejected the same way.
type ContinueStmt struct {
	ContinuePos lexer.Position
}

func (c *ContinueStmt) Pos() lexer.Position { return c.ContinuePos }
func (c *ContinueStmt) End() lexer.Position {
	return lexer.Position{
		Filename: c.ContinuePos.Filename,
		Line:     c.ContinuePos.Line,
		Column:   c.ContinuePos.Column + 8, // len("continue")
		Offset:   c.ContinuePos.Offset + 8,
	}
}
func (c *ContinueStmt) stmtNode() {}
