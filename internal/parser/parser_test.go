package parser

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/minicc/internal/lexer"
	"github.com/hassan/minicc/internal/parser/ast"
)

// parseSource parses a complete program and fails the test on any error.
func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := New(lexer.New(source, "test.mc"))
	program, err := p.ParseProgram("test.mc")
	require.NoError(t, err)
	return program
}

// parseStmts wraps a statement list in a function and returns the
// parsed body.
func parseStmts(t *testing.T, body string) []ast.Stmt {
	t.Helper()
	program := parseSource(t, "func test() { "+body+" }")
	require.Len(t, program.Functions, 1)
	return program.Functions[0].Body.Statements
}

// parseExpr wraps an expression in an assignment and returns the parsed
// right-hand side.
func parseExpr(t *testing.T, expr string) ast.Expr {
	t.Helper()
	stmts := parseStmts(t, "x = "+expr+";")
	require.Len(t, stmts, 1)
	assign, ok := stmts[0].(*ast.AssignStmt)
	require.True(t, ok, "expected assignment, got %T", stmts[0])
	return assign.Value
}

func TestParser_EmptyProgram(t *testing.T) {
	program := parseSource(t, "")
	assert.Empty(t, program.Functions)
	assert.Equal(t, "test.mc", program.Filename)
}

func TestParser_SimpleFunction(t *testing.T) {
	program := parseSource(t, `func main() { x = 1; }`)

	require.Len(t, program.Functions, 1)
	fn := program.Functions[0]
	assert.Equal(t, "main", fn.Name.Name)
	assert.Empty(t, fn.Params)
	require.Len(t, fn.Body.Statements, 1)

	assign, ok := fn.Body.Statements[0].(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name.Name)
}

func TestParser_Parameters(t *testing.T) {
	program := parseSource(t, `func add(a, b) { return a + b; }`)

	require.Len(t, program.Functions, 1)
	fn := program.Functions[0]
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)
}

func TestParser_MultipleFunctions(t *testing.T) {
	program := parseSource(t, `
func first() { return 1; }
func second() { return 2; }
`)

	require.Len(t, program.Functions, 2)
	assert.Equal(t, "first", program.Functions[0].Name.Name)
	assert.Equal(t, "second", program.Functions[1].Name.Name)
}

func TestParser_Precedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3)
	expr := parseExpr(t, "1 + 2 * 3")

	add, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenPlus, add.Operator.Type)

	lit, ok := add.Left.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.Value)

	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenStar, mul.Operator.Type)
}

func TestParser_LeftAssociativity(t *testing.T) {
	// 10 - 2 - 3 must parse as (10 - 2) - 3
	expr := parseExpr(t, "10 - 2 - 3")

	outer, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenMinus, outer.Operator.Type)

	inner, ok := outer.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenMinus, inner.Operator.Type)

	right, ok := outer.Right.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, int64(3), right.Value)
}

func TestParser_Grouping(t *testing.T) {
	// (1 + 2) * 3: the parens flip the precedence
	expr := parseExpr(t, "(1 + 2) * 3")

	mul, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenStar, mul.Operator.Type)

	add, ok := mul.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenPlus, add.Operator.Type)
}

func TestParser_Unary(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		operator lexer.TokenType
	}{
		{"negation", "-y", lexer.TokenMinus},
		{"logical not", "!y", lexer.TokenNot},
		{"bitwise not", "~y", lexer.TokenBitNot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := parseExpr(t, tt.source)
			unary, ok := expr.(*ast.UnaryExpr)
			require.True(t, ok)
			assert.Equal(t, tt.operator, unary.Operator.Type)

			operand, ok := unary.Operand.(*ast.IdentifierExpr)
			require.True(t, ok)
			assert.Equal(t, "y", operand.Name)
		})
	}
}

func TestParser_BoolLiterals(t *testing.T) {
	expr := parseExpr(t, "true")
	lit, ok := expr.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.True(t, lit.IsBool)
	assert.Equal(t, int64(1), lit.Value)

	expr = parseExpr(t, "false")
	lit, ok = expr.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.True(t, lit.IsBool)
	assert.Equal(t, int64(0), lit.Value)
}

func TestParser_Call(t *testing.T) {
	expr := parseExpr(t, "add(1, 2 + 3)")

	call, ok := expr.(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "add", call.Callee.Name)
	require.Len(t, call.Args, 2)

	_, ok = call.Args[0].(*ast.LiteralExpr)
	assert.True(t, ok)
	_, ok = call.Args[1].(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestParser_CallStatement(t *testing.T) {
	stmts := parseStmts(t, "log(42);")

	require.Len(t, stmts, 1)
	exprStmt, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok)

	call, ok := exprStmt.Expression.(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "log", call.Callee.Name)
	assert.Len(t, call.Args, 1)
}

func TestParser_IfElse(t *testing.T) {
	stmts := parseStmts(t, `
		if (n <= 1) {
			return 1;
		} else {
			return n;
		}
	`)

	require.Len(t, stmts, 1)
	ifStmt, ok := stmts[0].(*ast.IfStmt)
	require.True(t, ok)

	cond, ok := ifStmt.Condition.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenLessEqual, cond.Operator.Type)

	require.Len(t, ifStmt.ThenBranch.Statements, 1)
	require.NotNil(t, ifStmt.ElseBranch)

	elseBlock, ok := ifStmt.ElseBranch.(*ast.BlockStmt)
	require.True(t, ok)
	assert.Len(t, elseBlock.Statements, 1)
}

func TestParser_ElseIfChain(t *testing.T) {
	stmts := parseStmts(t, `
		if (a) {
			x = 1;
		} else if (b) {
			x = 2;
		} else {
			x = 3;
		}
	`)

	require.Len(t, stmts, 1)
	first, ok := stmts[0].(*ast.IfStmt)
	require.True(t, ok)

	second, ok := first.ElseBranch.(*ast.IfStmt)
	require.True(t, ok, "else-if should nest as an IfStmt")
	assert.NotNil(t, second.ElseBranch)
}

func TestParser_While(t *testing.T) {
	stmts := parseStmts(t, `
		while (i < 10) {
			i = i + 1;
		}
	`)

	require.Len(t, stmts, 1)
	while, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)

	cond, ok := while.Condition.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenLess, cond.Operator.Type)
	assert.Len(t, while.Body.Statements, 1)
}

func TestParser_ReturnForms(t *testing.T) {
	stmts := parseStmts(t, "return 42;")
	ret, ok := stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.NotNil(t, ret.Value)

	stmts = parseStmts(t, "return;")
	ret, ok = stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Nil(t, ret.Value)
}

func TestParser_BreakContinue(t *testing.T) {
	stmts := parseStmts(t, "while (1) { break; continue; }")

	while, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	require.Len(t, while.Body.Statements, 2)

	_, ok = while.Body.Statements[0].(*ast.BreakStmt)
	assert.True(t, ok)
	_, ok = while.Body.Statements[1].(*ast.ContinueStmt)
	assert.True(t, ok)
}

func TestParser_CommentsSkipped(t *testing.T) {
	program := parseSource(t, `
// leading comment
func main() {
	/* block comment */
	x = 1; // trailing comment
}
`)

	require.Len(t, program.Functions, 1)
	assert.Len(t, program.Functions[0].Body.Statements, 1)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{
			name:    "missing semicolon",
			source:  "func f() { x = 1 }",
			message: "expected ';' after assignment",
		},
		{
			name:    "missing condition parens",
			source:  "func f() { if x { return 1; } }",
			message: "expected '(' after 'if'",
		},
		{
			name:    "string literal",
			source:  `func f() { x = "hello"; }`,
			message: "string literals are not supported",
		},
		{
			name:    "expression as statement",
			source:  "func f() { 2 + 3; }",
			message: "only function calls can be used as statements",
		},
		{
			name:    "assignment to call",
			source:  "func f() { g() = 3; }",
			message: "left side of assignment must be a name",
		},
		{
			name:    "call of a literal",
			source:  "func f() { x = 42(1); }",
			message: "called object must be a function name",
		},
		{
			name:    "chained assignment",
			source:  "func f() { x = y = 3; }",
			message: "expected ';' after assignment",
		},
		{
			name:    "missing function name",
			source:  "func () { return 1; }",
			message: "expected function name",
		},
		{
			name:    "declaration outside function",
			source:  "x = 1;",
			message: "expected 'func' at top level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(lexer.New(tt.source, "test.mc"))
			_, err := p.ParseProgram("test.mc")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParser_ErrorRecovery(t *testing.T) {
	// The second function is broken; the first must still come through.
	source := `
func good() { return 1; }
func bad() { x = ; }
`
	p := New(lexer.New(source, "test.mc"))
	program, err := p.ParseProgram("test.mc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected expression")

	names := make([]string, 0, len(program.Functions))
	for _, fn := range program.Functions {
		names = append(names, fn.Name.Name)
	}
	assert.Contains(t, names, "good")
}

func TestParser_MultipleErrors(t *testing.T) {
	// Two independent broken statements produce two errors, not one
	// error and a cascade of confusion.
	source := "func f() { x = ; y = ; z = 1; }"
	p := New(lexer.New(source, "test.mc"))
	program, err := p.ParseProgram("test.mc")

	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 2)

	// The good trailing statement still parsed.
	require.Len(t, program.Functions, 1)
	require.Len(t, program.Functions[0].Body.Statements, 1)
	assign, ok := program.Functions[0].Body.Statements[0].(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "z", assign.Name.Name)
}

func TestParser_LexicalErrorSurfaces(t *testing.T) {
	p := New(lexer.New("func f() { x = 3.14; }", "test.mc"))
	_, err := p.ParseProgram("test.mc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "float literals are not supported")
}
