package ast

import (
	"github.com/hassan/minicc/internal/lexer"
)

// Expression nodes represent values and computations.

// BinaryExpr represents a binary operation: left op right
// Examples: 2 + 3, x * y, a == b, foo && bar
//
// DESIGN CHOICE: Single node type for all binary operators because:
// - They all have the same structure (left, operator, right)
// - The operator token distinguishes them
// - Simpler than having separate nodes for each operator
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token // The operator token (+, -, *, /, etc.)
	Right    Expr
}

func (b *BinaryExpr) Pos() lexer.Position { return b.Left.Pos() }
func (b *BinaryExpr) End() lexer.Position { return b.Right.End() }
func (b *BinaryExpr) exprNode()           {}

// UnaryExpr represents a prefix unary operation: op operand
// Examples: -x, !flag, ~bits
//
// The language has no postfix operators, so the operator always comes
// first and Pos is simply the operator's position.
type UnaryExpr struct {
	Operator lexer.Token
	Operand  Expr
}

func (u *UnaryExpr) Pos() lexer.Position { return u.Operator.Position }
func (u *UnaryExpr) End() lexer.Position { return u.Operand.End() }
func (u *UnaryExpr) exprNode()           {}

// LiteralExpr represents a literal value: an integer or a boolean.
// Examples: 42, 0, true, false
//
// DESIGN CHOICE: Store the value as int64 with a boolean kind flag
// rather than interface{} because:
// - The language is monotyped over machine words
// - true and false compile to the words 1 and 0 anyway
// - No type assertions downstream
type LiteralExpr struct {
	Token  lexer.Token
	Value  int64 // The literal's word value; 1/0 for true/false
	IsBool bool  // true when the literal was written true or false
}

func (l *LiteralExpr) Pos() lexer.Position { return l.Token.Position }
func (l *LiteralExpr) End() lexer.Position {
	return lexer.Position{
		Filename: l.Token.Position.Filename,
		Line:     l.Token.Position.Line,
		Column:   l.Token.Position.Column + len(l.Token.Lexeme),
		Offset:   l.Token.Position.Offset + l.Token.Length,
	}
}
func (l *LiteralExpr) exprNode() {}

// IdentifierExpr represents a variable or function name: foo, bar, _temp
//
// DESIGN CHOICE: Separate from LiteralExpr even though it's also a "leaf"
// node because:
// - Identifiers need name resolution (lookup in symbol table)
// - Literals don't need resolution
type IdentifierExpr struct {
	Token lexer.Token
	Name  string // The identifier name
}

func (i *IdentifierExpr) Pos() lexer.Position { return i.Token.Position }
func (i *IdentifierExpr) End() lexer.Position {
	return lexer.Position{
		Filename: i.Token.Position.Filename,
		Line:     i.Token.Position.Line,
		Column:   i.Token.Position.Column + len(i.Name),
		Offset:   i.Token.Position.Offset + len(i.Name),
	}
}
func (i *IdentifierExpr) exprNode() {}

// CallExpr represents a function call: foo(1, 2, 3)
//
// DESIGN CHOICE: Callee is an identifier rather than an arbitrary
// expression because:
// - Calls go by name through the symbol table, not through values
// - The target machine's CALL takes a label, not a register
// So obj.method() and fns[0]() have no representation here.
type CallExpr struct {
	Callee     *IdentifierExpr
	LeftParen  lexer.Token // Position of '('
	Args       []Expr
	RightParen lexer.Token // Position of ')'
}

func (c *CallExpr) Pos() lexer.Position { return c.Callee.Pos() }
func (c *CallExpr) End() lexer.Position { return c.RightParen.Position }
func (c *CallExpr) exprNode()           {}
