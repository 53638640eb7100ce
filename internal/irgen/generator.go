// Package irgen lowers the AST to IR, one function at a time.
//
// DESIGN PHILOSOPHY:
// The generator is a recursive type switch over the AST. It keeps:
// - The function under construction and the block being filled
// - A flat symbol table mapping names to IR values
// - A counter for uniquifying control-flow labels
//
// Lowering is all-or-nothing per function: the first unsupported
// construct or unresolved name aborts that function and leaves the
// others untouched. There is no partial IR.
//
// KEY DESIGN CHOICES:
// - Expressions return the ir.Value holding their result; instruction
//   emission is a side effect on the current block
// - Control flow emits jumps to labels that Seal later resolves into
//   CFG edges, so forward references need no placeholder blocks
// - Code after a terminator lands in a fresh dead.N block, keeping
//   every block well-formed without a reachability pass
package irgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/hassan/minicc/internal/ir"
	"github.com/hassan/minicc/internal/lexer"
	"github.com/hassan/minicc/internal/parser/ast"
	"github.com/hassan/minicc/internal/symtab"
	"github.com/hassan/minicc/internal/types"
)

var (
	// ErrUndefinedName reports an identifier read before any parameter
	// or assignment binds it.
	ErrUndefinedName = errors.New("undefined name")

	// ErrUnsupportedConstruct reports an AST node outside the backend
	// contract, such as break or continue.
	ErrUnsupportedConstruct = errors.New("unsupported construct")
)

// Generate lowers every function of the program into an ir.Module.
//
// Failures are isolated per function: a function that fails to lower
// is dropped and reported, the others still generate. The returned
// error collects one entry per failed function.
func Generate(program *ast.Program) (*ir.Module, error) {
	module := ir.NewModule(moduleName(program.Filename))

	var result *multierror.Error
	for _, decl := range program.Functions {
		fn, err := GenerateFunction(decl)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		module.AddFunction(fn)
	}
	return module, result.ErrorOrNil()
}

// GenerateFunction lowers one function declaration into a sealed
// ir.Function.
func GenerateFunction(decl *ast.FuncDecl) (*ir.Function, error) {
	params := make([]ir.Value, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = ir.Variable(p.Name, types.Int)
	}

	fn := ir.NewFunction(decl.Name.Name, params)
	g := &generator{
		fn:    fn,
		scope: symtab.NewScope(),
		cur:   fn.Entry,
	}

	for i, p := range decl.Params {
		sym := &symtab.Symbol{
			Name:  p.Name,
			Kind:  symtab.SymbolParameter,
			Value: params[i],
			Pos:   p.Pos(),
		}
		if err := g.scope.Define(sym); err != nil {
			return nil, errors.Wrapf(err, "function %s", fn.Name)
		}
	}

	if err := g.stmt(decl.Body); err != nil {
		return nil, err
	}
	if err := fn.Seal(); err != nil {
		return nil, err
	}

	glog.V(2).Infof("generated %s: %d blocks, %d symbols", fn.Name, len(fn.Blocks), g.scope.Len())
	return fn, nil
}

// moduleName derives the IR module name from the source filename.
func moduleName(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		return "main"
	}
	return name
}

// generator holds the state for lowering a single function.
type generator struct {
	fn     *ir.Function
	scope  *symtab.Scope
	cur    ir.BlockID
	labels int
}

// emit appends an instruction to the current block. If the block is
// already terminated, the instruction opens a fresh unreachable block
// instead: the source had statements after a return.
func (g *generator) emit(instr ir.Instruction) {
	if g.fn.Block(g.cur).Terminated() {
		g.cur = g.fn.NewBlock(fmt.Sprintf("dead.%d", g.nextLabel()))
	}
	g.fn.Block(g.cur).Add(instr)
}

// nextLabel returns a fresh number for label uniquing.
func (g *generator) nextLabel() int {
	n := g.labels
	g.labels++
	return n
}

// terminated reports whether the current block already ends control
// flow, which suppresses the jump-to-end after if and while branches.
func (g *generator) terminated() bool {
	return g.fn.Block(g.cur).Terminated()
}

// stmt lowers one statement.
func (g *generator) stmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		for _, inner := range s.Statements {
			if err := g.stmt(inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.AssignStmt:
		return g.assign(s)

	case *ast.ExprStmt:
		if call, ok := s.Expression.(*ast.CallExpr); ok {
			return g.callStmt(call)
		}
		// The parser only lets calls through as statements, but an
		// expression evaluated for effect is still well-defined.
		_, err := g.expr(s.Expression)
		return err

	case *ast.IfStmt:
		return g.ifStmt(s)

	case *ast.WhileStmt:
		return g.whileStmt(s)

	case *ast.ReturnStmt:
		return g.returnStmt(s)

	case *ast.BreakStmt:
		return g.unsupported(s.Pos(), "break is not supported")

	case *ast.ContinueStmt:
		return g.unsupported(s.Pos(), "continue is not supported")

	default:
		return g.unsupported(stmt.Pos(), fmt.Sprintf("statement %T", stmt))
	}
}

// assign lowers `name = expr;`. The first assignment to a name defines
// it; later assignments reuse the same variable.
func (g *generator) assign(s *ast.AssignStmt) error {
	value, err := g.expr(s.Value)
	if err != nil {
		return err
	}

	sym := g.scope.Lookup(s.Name.Name)
	if sym == nil {
		sym = &symtab.Symbol{
			Name:  s.Name.Name,
			Kind:  symtab.SymbolVariable,
			Value: ir.Variable(s.Name.Name, types.Int),
			Pos:   s.Name.Pos(),
		}
		if err := g.scope.Define(sym); err != nil {
			return errors.Wrapf(err, "function %s", g.fn.Name)
		}
	}

	g.emit(&ir.Assign{Dest: sym.Value, Src: value})
	return nil
}

// callStmt lowers a call in statement position: no result value.
func (g *generator) callStmt(call *ast.CallExpr) error {
	args, err := g.args(call)
	if err != nil {
		return err
	}
	g.emit(&ir.Call{Callee: call.Callee.Name, Args: args})
	return nil
}

// ifStmt lowers if/else. Branch blocks that already ended in a return
// get no jump to the end block, so the end block stays unreachable
// when both branches return.
func (g *generator) ifStmt(s *ast.IfStmt) error {
	cond, err := g.expr(s.Condition)
	if err != nil {
		return err
	}

	n := g.nextLabel()
	thenLabel := fmt.Sprintf("if.then.%d", n)
	endLabel := fmt.Sprintf("if.end.%d", n)
	elseLabel := endLabel
	if s.ElseBranch != nil {
		elseLabel = fmt.Sprintf("if.else.%d", n)
	}

	g.emit(&ir.CondJump{Cond: cond, True: thenLabel, False: elseLabel})

	g.cur = g.fn.NewBlock(thenLabel)
	if err := g.stmt(s.ThenBranch); err != nil {
		return err
	}
	if !g.terminated() {
		g.emit(&ir.Jump{Target: endLabel})
	}

	if s.ElseBranch != nil {
		g.cur = g.fn.NewBlock(elseLabel)
		if err := g.stmt(s.ElseBranch); err != nil {
			return err
		}
		if !g.terminated() {
			g.emit(&ir.Jump{Target: endLabel})
		}
	}

	g.cur = g.fn.NewBlock(endLabel)
	return nil
}

// whileStmt lowers a while loop: jump to the condition block, test,
// run the body, jump back.
func (g *generator) whileStmt(s *ast.WhileStmt) error {
	n := g.nextLabel()
	condLabel := fmt.Sprintf("while.cond.%d", n)
	bodyLabel := fmt.Sprintf("while.body.%d", n)
	endLabel := fmt.Sprintf("while.end.%d", n)

	g.emit(&ir.Jump{Target: condLabel})

	g.cur = g.fn.NewBlock(condLabel)
	cond, err := g.expr(s.Condition)
	if err != nil {
		return err
	}
	g.emit(&ir.CondJump{Cond: cond, True: bodyLabel, False: endLabel})

	g.cur = g.fn.NewBlock(bodyLabel)
	if err := g.stmt(s.Body); err != nil {
		return err
	}
	if !g.terminated() {
		g.emit(&ir.Jump{Target: condLabel})
	}

	g.cur = g.fn.NewBlock(endLabel)
	return nil
}

// returnStmt lowers `return;` and `return expr;`.
func (g *generator) returnStmt(s *ast.ReturnStmt) error {
	if s.Value == nil {
		g.emit(&ir.Return{})
		return nil
	}
	value, err := g.expr(s.Value)
	if err != nil {
		return err
	}
	g.emit(&ir.Return{Value: value, HasValue: true})
	return nil
}

// expr lowers one expression and returns the value holding its result.
func (g *generator) expr(expr ast.Expr) (ir.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		typ := types.Type(types.Int)
		if e.IsBool {
			typ = types.Bool
		}
		return ir.Constant(e.Value, typ), nil

	case *ast.IdentifierExpr:
		sym := g.scope.Lookup(e.Name)
		if sym == nil {
			return ir.Value{}, errors.Wrapf(ErrUndefinedName,
				"function %s: %s: %s", g.fn.Name, e.Pos(), e.Name)
		}
		return sym.Value, nil

	case *ast.BinaryExpr:
		return g.binary(e)

	case *ast.UnaryExpr:
		return g.unary(e)

	case *ast.CallExpr:
		args, err := g.args(e)
		if err != nil {
			return ir.Value{}, err
		}
		dest := g.fn.NewTemp(types.Int)
		g.emit(&ir.Call{Dest: dest, HasDest: true, Callee: e.Callee.Name, Args: args})
		return dest, nil

	default:
		return ir.Value{}, g.unsupported(expr.Pos(), fmt.Sprintf("expression %T", expr))
	}
}

// binary lowers a binary expression into a fresh temporary.
func (g *generator) binary(e *ast.BinaryExpr) (ir.Value, error) {
	left, err := g.expr(e.Left)
	if err != nil {
		return ir.Value{}, err
	}
	right, err := g.expr(e.Right)
	if err != nil {
		return ir.Value{}, err
	}

	op, typ, err := g.binaryOp(e.Operator)
	if err != nil {
		return ir.Value{}, err
	}

	dest := g.fn.NewTemp(typ)
	g.emit(&ir.BinaryOp{Op: op, Dest: dest, Left: left, Right: right})
	return dest, nil
}

// binaryOp maps an operator token to the IR operator and result type.
//
// && and || lower to the same And/Or as & and |: the language is
// monotyped over words, comparisons already produce canonical 0/1, and
// evaluation is eager, so the logical and bitwise forms coincide on
// boolean words. Only the result type differs for the IR dump.
func (g *generator) binaryOp(tok lexer.Token) (ir.BinaryOperator, types.Type, error) {
	switch tok.Type {
	case lexer.TokenPlus:
		return ir.OpAdd, types.Int, nil
	case lexer.TokenMinus:
		return ir.OpSub, types.Int, nil
	case lexer.TokenStar:
		return ir.OpMul, types.Int, nil
	case lexer.TokenSlash:
		return ir.OpDiv, types.Int, nil
	case lexer.TokenPercent:
		return ir.OpMod, types.Int, nil
	case lexer.TokenBitAnd:
		return ir.OpAnd, types.Int, nil
	case lexer.TokenBitOr:
		return ir.OpOr, types.Int, nil
	case lexer.TokenBitXor:
		return ir.OpXor, types.Int, nil
	case lexer.TokenAnd:
		return ir.OpAnd, types.Bool, nil
	case lexer.TokenOr:
		return ir.OpOr, types.Bool, nil
	case lexer.TokenEqual:
		return ir.OpEq, types.Bool, nil
	case lexer.TokenNotEqual:
		return ir.OpNeq, types.Bool, nil
	case lexer.TokenLess:
		return ir.OpLt, types.Bool, nil
	case lexer.TokenLessEqual:
		return ir.OpLe, types.Bool, nil
	case lexer.TokenGreater:
		return ir.OpGt, types.Bool, nil
	case lexer.TokenGreaterEqual:
		return ir.OpGe, types.Bool, nil
	default:
		return 0, nil, g.unsupported(tok.Position, fmt.Sprintf("binary operator %q", tok.Lexeme))
	}
}

// unary lowers a unary expression into a fresh temporary.
func (g *generator) unary(e *ast.UnaryExpr) (ir.Value, error) {
	operand, err := g.expr(e.Operand)
	if err != nil {
		return ir.Value{}, err
	}

	var op ir.UnaryOperator
	var typ types.Type
	switch e.Operator.Type {
	case lexer.TokenMinus:
		op, typ = ir.OpNeg, types.Int
	case lexer.TokenNot:
		op, typ = ir.OpNot, types.Bool
	case lexer.TokenBitNot:
		op, typ = ir.OpBitNot, types.Int
	default:
		return ir.Value{}, g.unsupported(e.Operator.Position, fmt.Sprintf("unary operator %q", e.Operator.Lexeme))
	}

	dest := g.fn.NewTemp(typ)
	g.emit(&ir.UnaryOp{Op: op, Dest: dest, Operand: operand})
	return dest, nil
}

// args lowers call arguments left to right.
func (g *generator) args(call *ast.CallExpr) ([]ir.Value, error) {
	args := make([]ir.Value, len(call.Args))
	for i, arg := range call.Args {
		value, err := g.expr(arg)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	return args, nil
}

// unsupported builds an ErrUnsupportedConstruct with position and
// function context.
func (g *generator) unsupported(pos lexer.Position, what string) error {
	return errors.Wrapf(ErrUnsupportedConstruct, "function %s: %s: %s", g.fn.Name, pos, what)
}
