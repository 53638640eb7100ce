// Package parser implements a recursive descent parser for the compiler.
//
// PARSING STRATEGY:
// We use a combination of:
// 1. Recursive Descent for declarations and statements
// 2. Pratt Parsing (precedence climbing) for expressions
//
// WHY RECURSIVE DESCENT?
// - Direct mapping from grammar to code
// - Good error messages (you know exactly what you expected)
// - Efficient (no table lookups or complex data structures)
//
// WHY PRATT PARSING FOR EXPRESSIONS?
// - Elegant handling of operator precedence
// - Easy to extend with new operators
// - Compact code
//
// ERROR HANDLING STRATEGY:
// - Report errors but continue parsing (find multiple errors in one pass)
// - Use panic/recover for error recovery at statement boundaries
// - Accumulate everything into one multierror for the caller
package parser

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/hassan/minicc/internal/lexer"
	"github.com/hassan/minicc/internal/parser/ast"
)

// Parser converts a stream of tokens into an Abstract Syntax Tree.
//
// DESIGN CHOICE: Parser is a struct with methods rather than functions because:
// - State management (current token, errors, etc.)
// - Error recovery needs access to parser state
// - Recursive descent naturally fits this style
type Parser struct {
	// lexer is the source of tokens
	lexer *lexer.Lexer

	// current is the token we're currently examining
	current lexer.Token

	// previous is the last token we consumed (useful for error messages)
	previous lexer.Token

	// errors accumulates all parsing errors
	// DESIGN CHOICE: Accumulate errors rather than stopping at the first
	// one because:
	// - Better developer experience (see all errors at once)
	// - Matches what modern compilers do
	errors []error

	// panicMode tracks if we're recovering from an error. While set, new
	// errors are suppressed so one mistake doesn't produce a cascade.
	panicMode bool
}

// New creates a new parser for the given lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: make([]error, 0),
	}
	// Prime the parser by reading the first token
	p.advance()
	return p
}

// ParseProgram parses a complete program: a sequence of function
// declarations.
//
// GRAMMAR:
//
//	program = funcDecl* EOF
//
// DESIGN CHOICE: Return both the AST and the error because:
// - A partial AST lets later stages still process the functions that
//   parsed cleanly
// - Error recovery produces a valid (though incomplete) tree
func (p *Parser) ParseProgram(filename string) (*ast.Program, error) {
	program := &ast.Program{
		Filename:  filename,
		Functions: make([]*ast.FuncDecl, 0),
	}

	for !p.isAtEnd() {
		fn := p.parseFuncDecl()
		if fn != nil {
			program.Functions = append(program.Functions, fn)
		}
	}

	var result *multierror.Error
	result = multierror.Append(result, p.errors...)
	return program, result.ErrorOrNil()
}

// parseFuncDecl parses a function declaration:
//
//	func name(param1, param2) { body }
func (p *Parser) parseFuncDecl() (fn *ast.FuncDecl) {
	// Use panic/recover for error recovery.
	// If we panic during parsing, we recover here, drop the broken
	// declaration, and skip ahead to something that looks like code.
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
			fn = nil
		}
	}()

	p.consume(lexer.TokenFunc, "expected 'func' at top level")
	funcPos := p.previous.Position

	if !p.check(lexer.TokenIdentifier) {
		p.error("expected function name")
		panic("invalid function declaration")
	}
	name := &ast.IdentifierExpr{
		Token: p.current,
		Name:  p.current.Lexeme,
	}
	p.advance()

	p.consume(lexer.TokenLeftParen, "expected '(' after function name")
	params := p.parseParameters()
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")

	body := p.parseBlockStmt()

	return &ast.FuncDecl{
		FuncPos: funcPos,
		Name:    name,
		Params:  params,
		Body:    body,
	}
}

// parseParameters parses function parameters: name, name, ...
//
// Parameters are bare names; the language has no type annotations.
func (p *Parser) parseParameters() []*ast.IdentifierExpr {
	params := make([]*ast.IdentifierExpr, 0)

	if p.check(lexer.TokenRightParen) {
		// No parameters
		return params
	}

	for {
		if !p.check(lexer.TokenIdentifier) {
			p.error("expected parameter name")
			panic("invalid parameter list")
		}

		params = append(params, &ast.IdentifierExpr{
			Token: p.current,
			Name:  p.current.Lexeme,
		})
		p.advance()

		if !p.match(lexer.TokenComma) {
			break
		}
	}

	return params
}

// parseStmt parses a statement.
//
// GRAMMAR:
//
//	stmt = blockStmt | ifStmt | whileStmt | returnStmt
//	     | breakStmt | continueStmt | simpleStmt
func (p *Parser) parseStmt() (stmt ast.Stmt) {
	// Statement-level error recovery: a broken statement is dropped and
	// parsing resumes at the next statement boundary.
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.check(lexer.TokenLeftBrace):
		return p.parseBlockStmt()
	case p.match(lexer.TokenIf):
		return p.parseIfStmt()
	case p.match(lexer.TokenWhile):
		return p.parseWhileStmt()
	case p.match(lexer.TokenReturn):
		return p.parseReturnStmt()
	case p.match(lexer.TokenBreak):
		return p.parseBreakStmt()
	case p.match(lexer.TokenContinue):
		return p.parseContinueStmt()
	default:
		return p.parseSimpleStmt()
	}
}

// parseBlockStmt parses a block statement: { stmt* }
func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	p.consume(lexer.TokenLeftBrace, "expected '{'")
	leftBrace := p.previous

	statements := make([]ast.Stmt, 0)
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		// parseStmt returns nil when it recovered from an error
		if stmt := p.parseStmt(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	p.consume(lexer.TokenRightBrace, "expected '}'")
	rightBrace := p.previous

	return &ast.BlockStmt{
		LeftBrace:  leftBrace,
		Statements: statements,
		RightBrace: rightBrace,
	}
}

// parseIfStmt parses an if statement:
//
//	if (condition) { ... }
//	if (condition) { ... } else { ... }
//	if (condition) { ... } else if (condition) { ... }
func (p *Parser) parseIfStmt() *ast.IfStmt {
	// We've already consumed 'if'
	ifPos := p.previous.Position

	p.consume(lexer.TokenLeftParen, "expected '(' after 'if'")
	condition := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")

	thenBranch := p.parseBlockStmt()

	var elseBranch ast.Stmt
	if p.match(lexer.TokenElse) {
		if p.match(lexer.TokenIf) {
			// else if - parse as another if statement
			elseBranch = p.parseIfStmt()
		} else {
			elseBranch = p.parseBlockStmt()
		}
	}

	return &ast.IfStmt{
		IfPos:      ifPos,
		Condition:  condition,
		ThenBranch: thenBranch,
		ElseBranch: elseBranch,
	}
}

// parseWhileStmt parses a while statement: while (condition) { ... }
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	// We've already consumed 'while'
	whilePos := p.previous.Position

	p.consume(lexer.TokenLeftParen, "expected '(' after 'while'")
	condition := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")

	body := p.parseBlockStmt()

	return &ast.WhileStmt{
		WhilePos:  whilePos,
		Condition: condition,
		Body:      body,
	}
}

// parseReturnStmt parses a return statement: return expr; or return;
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	// We've already consumed 'return'
	returnPos := p.previous.Position

	var value ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		value = p.parseExpression()
	}

	p.consume(lexer.TokenSemicolon, "expected ';' after return statement")

	return &ast.ReturnStmt{
		ReturnPos: returnPos,
		Value:     value,
	}
}

// parseBreakStmt parses a break statement: break;
func (p *Parser) parseBreakStmt() *ast.BreakStmt {
	// We've already consumed 'break'
	breakPos := p.previous.Position

	p.consume(lexer.TokenSemicolon, "expected ';' after 'break'")

	return &ast.BreakStmt{
		BreakPos: breakPos,
	}
}

// parseContinueStmt parses a continue statement: continue;
func (p *Parser) parseContinueStmt() *ast.ContinueStmt {
	// We've already consumed 'continue'
	continuePos := p.previous.Position

	p.consume(lexer.TokenSemicolon, "expected ';' after 'continue'")

	return &ast.ContinueStmt{
		ContinuePos: continuePos,
	}
}

// parseSimpleStmt parses an assignment or an expression statement.
//
// GRAMMAR:
//
//	simpleStmt = name "=" expr ";" | call ";"
//
// The parser cannot tell the two apart from the first token (both start
// with an identifier), so it parses an expression first and decides
// when it sees what follows.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	expr := p.parseExpression()

	if p.match(lexer.TokenAssign) {
		target, ok := expr.(*ast.IdentifierExpr)
		if !ok {
			p.error("left side of assignment must be a name")
			panic("invalid assignment target")
		}

		value := p.parseExpression()
		p.consume(lexer.TokenSemicolon, "expected ';' after assignment")

		return &ast.AssignStmt{
			Name:  target,
			Value: value,
		}
	}

	// Expressions evaluated purely for their value have no effect; the
	// only expression worth keeping as a statement is a call.
	if _, ok := expr.(*ast.CallExpr); !ok {
		p.error("only function calls can be used as statements")
		panic("invalid expression statement")
	}

	p.consume(lexer.TokenSemicolon, "expected ';' after expression")

	return &ast.ExprStmt{Expression: expr}
}

// Expression parsing using Pratt parsing (precedence climbing)
//
// PRATT PARSING:
// Instead of recursive descent for expressions (which struggles with
// precedence), we use Pratt parsing. The key idea:
// - Each operator has a precedence level
// - Parse with minimum precedence, climbing up as needed
//
// REFERENCE: "Top Down Operator Precedence" by Vaughan Pratt (1973)

// parseExpression parses an expression with any precedence.
func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecOr)
}

// parsePrecedence parses an expression with at least the given precedence.
//
// This is the core of Pratt parsing.
func (p *Parser) parsePrecedence(precedence Precedence) ast.Expr {
	// Parse prefix expression
	left := p.parsePrefix()
	if left == nil {
		p.error(fmt.Sprintf("expected expression, got %s", p.current.Type))
		panic("missing expression")
	}

	// Parse infix expressions with sufficient precedence
	for precedence <= getPrecedence(p.current.Type) {
		left = p.parseInfix(left)
	}

	return left
}

// parsePrefix parses a prefix expression (one that starts an expression).
//
// PREFIX EXPRESSIONS:
// - Literals: 42, true, false
// - Identifiers: foo, bar
// - Unary operators: -x, !flag, ~bits
// - Grouping: (expr)
func (p *Parser) parsePrefix() ast.Expr {
	switch p.current.Type {
	case lexer.TokenNumber:
		return p.parseNumberLiteral()

	case lexer.TokenTrue, lexer.TokenFalse:
		return p.parseBoolLiteral()

	case lexer.TokenString:
		p.error("string literals are not supported")
		panic("string literal")

	case lexer.TokenIdentifier:
		return p.parseIdentifier()

	case lexer.TokenLeftParen:
		return p.parseGrouping()

	case lexer.TokenMinus, lexer.TokenNot, lexer.TokenBitNot:
		return p.parseUnary()

	default:
		return nil
	}
}

// parseInfix parses an infix expression (operator between operands).
//
// INFIX EXPRESSIONS:
// - Binary operators: +, -, *, /, %, &, |, ^
// - Logical operators: &&, ||
// - Comparison operators: ==, !=, <, <=, >, >=
// - Function call: callee(args)
func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.current.Type {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash,
		lexer.TokenPercent,
		lexer.TokenEqual, lexer.TokenNotEqual,
		lexer.TokenLess, lexer.TokenLessEqual,
		lexer.TokenGreater, lexer.TokenGreaterEqual,
		lexer.TokenBitAnd, lexer.TokenBitOr, lexer.TokenBitXor,
		lexer.TokenAnd, lexer.TokenOr:
		return p.parseBinary(left)

	case lexer.TokenLeftParen:
		return p.parseCall(left)

	default:
		return left
	}
}

// Literal parsing

func (p *Parser) parseNumberLiteral() ast.Expr {
	token := p.current
	p.advance()

	// The lexer guarantees all digits, so the only possible failure is
	// a literal too large for a machine word.
	value, err := strconv.ParseInt(token.Lexeme, 10, 64)
	if err != nil {
		p.error(fmt.Sprintf("integer literal out of range: %s", token.Lexeme))
		return &ast.LiteralExpr{Token: token, Value: 0}
	}

	return &ast.LiteralExpr{
		Token: token,
		Value: value,
	}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	token := p.current
	p.advance()

	// true and false are just the words 1 and 0
	var value int64
	if token.Type == lexer.TokenTrue {
		value = 1
	}

	return &ast.LiteralExpr{
		Token:  token,
		Value:  value,
		IsBool: true,
	}
}

func (p *Parser) parseIdentifier() ast.Expr {
	token := p.current
	p.advance()

	return &ast.IdentifierExpr{
		Token: token,
		Name:  token.Lexeme,
	}
}

func (p *Parser) parseGrouping() ast.Expr {
	p.advance() // consume '('

	expr := p.parseExpression()

	p.consume(lexer.TokenRightParen, "expected ')' after expression")

	// The parentheses leave no trace: the tree shape already records
	// the grouping.
	return expr
}

// Operator parsing

func (p *Parser) parseUnary() ast.Expr {
	operator := p.current
	p.advance()

	operand := p.parsePrecedence(PrecUnary)

	return &ast.UnaryExpr{
		Operator: operator,
		Operand:  operand,
	}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	operator := p.current
	precedence := getPrecedence(operator.Type)
	p.advance()

	// Every binary operator is left-associative, so the right operand
	// must bind strictly tighter.
	right := p.parsePrecedence(precedence + 1)

	return &ast.BinaryExpr{
		Left:     left,
		Operator: operator,
		Right:    right,
	}
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	callee, ok := left.(*ast.IdentifierExpr)
	if !ok {
		p.error("called object must be a function name")
		panic("invalid call target")
	}

	leftParen := p.current
	p.advance()

	args := make([]ast.Expr, 0)
	if !p.check(lexer.TokenRightParen) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}

	p.consume(lexer.TokenRightParen, "expected ')' after arguments")
	rightParen := p.previous

	return &ast.CallExpr{
		Callee:     callee,
		LeftParen:  leftParen,
		Args:       args,
		RightParen: rightParen,
	}
}

// Helper methods

// advance moves to the next token, skipping comments. Lexical errors
// are recorded and surface through the normal recovery machinery when
// the invalid token fails to match anything.
func (p *Parser) advance() {
	p.previous = p.current
	for {
		token, err := p.lexer.NextToken()
		if err != nil {
			p.record(err)
			p.current = token
			return
		}
		if token.Type == lexer.TokenComment {
			continue
		}
		p.current = token
		return
	}
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) {
	if p.check(tokenType) {
		p.advance()
		return
	}
	p.error(message)
	panic(message)
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// error records a parser error at the current token.
func (p *Parser) error(message string) {
	p.record(errors.Errorf("%s: %s", p.current.Position, message))
}

// record appends an already-positioned error unless we're in panic
// mode, in which case it's a cascade of the error already reported.
func (p *Parser) record(err error) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errors = append(p.errors, err)
}

// synchronize skips tokens until we reach a statement boundary.
// This is used for error recovery.
//
// The first advance is unconditional: recovery must make progress even
// when the offending token is itself a statement starter, or the parser
// would loop on it forever.
func (p *Parser) synchronize() {
	p.panicMode = false

	p.advance()

	for !p.isAtEnd() {
		// Semicolon marks the end of a statement
		if p.previous.Type == lexer.TokenSemicolon {
			return
		}

		// These tokens start new statements
		switch p.current.Type {
		case lexer.TokenFunc, lexer.TokenIf, lexer.TokenWhile,
			lexer.TokenReturn, lexer.TokenBreak, lexer.TokenContinue:
			return
		}

		p.advance()
	}
}
