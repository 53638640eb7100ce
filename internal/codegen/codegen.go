// Package codegen lowers allocated IR functions to target machine
// instructions.
//
// Every value arrives here with a home: a register or a spill slot
// chosen by the allocator. Lowering is then a flat walk over the
// blocks in declaration order, one IR instruction at a time, with a
// single peephole: a comparison feeding the immediately following
// conditional jump fuses into CMP plus a conditional branch instead
// of materializing a 0/1 value first.
//
// STACK FRAME LAYOUT (the stack grows downward):
//
//	[FP+16+8i]    argument i, pushed by the caller
//	[FP+8]        return address, pushed by CALL
//	[FP]          caller's saved frame pointer
//	[FP-8]        first reserved variable home
//	[FP-8v]       last reserved variable home
//	[FP-8(v+s+1)] spill slot s
//
// The prologue reserves one word per distinct variable plus one per
// spill slot. Register-allocated variables never touch their reserved
// word; the frame is sized conservatively so offsets stay stable no
// matter where each value ended up.
//
// There is one calling convention: arguments on the stack, pushed
// right to left, caller pops, result in R0.
package codegen

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/hassan/minicc/internal/ir"
	"github.com/hassan/minicc/internal/machine"
	"github.com/hassan/minicc/internal/regalloc"
)

var (
	// ErrUnsupportedInstruction reports an IR instruction kind with no
	// lowering rule. Reaching it means the IR generator and this
	// package disagree about the instruction set.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")

	// ErrUnsupportedOperator reports an IR operator with no lowering
	// rule. Like ErrUnsupportedInstruction, it is an internal
	// consistency failure, not a user error.
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// binaryOpcodes maps the arithmetic and bitwise IR operators to their
// three-operand target instructions.
var binaryOpcodes = map[ir.BinaryOperator]machine.Opcode{
	ir.OpAdd: machine.ADD,
	ir.OpSub: machine.SUB,
	ir.OpMul: machine.MUL,
	ir.OpDiv: machine.DIV,
	ir.OpMod: machine.MOD,
	ir.OpAnd: machine.AND,
	ir.OpOr:  machine.OR,
	ir.OpXor: machine.XOR,
}

// comparisonJumps maps each comparison operator to the conditional
// jump taken when the comparison holds.
var comparisonJumps = map[ir.BinaryOperator]machine.Opcode{
	ir.OpEq:  machine.JEQ,
	ir.OpNeq: machine.JNE,
	ir.OpLt:  machine.JLT,
	ir.OpLe:  machine.JLE,
	ir.OpGt:  machine.JGT,
	ir.OpGe:  machine.JGE,
}

// Generate lowers one allocated function to machine instructions.
func Generate(fn *ir.Function, alloc *regalloc.Allocation) (*Function, error) {
	g := &generator{
		fn:       fn,
		alloc:    alloc,
		useCount: make(map[ir.Value]int),
	}
	for _, b := range fn.Blocks {
		for _, instr := range b.Instructions {
			for _, u := range instr.Uses() {
				g.useCount[u]++
			}
		}
	}
	for _, v := range alloc.Values() {
		if v.Kind == ir.ValueVariable {
			g.varSlots++
		}
	}

	if err := g.run(); err != nil {
		return nil, err
	}

	glog.V(2).Infof("codegen %s: %d instructions, frame %d bytes", fn.Name, len(g.out), g.frameSize())
	return &Function{Name: fn.Name, Instructions: g.out}, nil
}

type generator struct {
	fn    *ir.Function
	alloc *regalloc.Allocation

	out     []machine.Instruction
	pending []string

	// useCount backs the fusion check and the used-parameter check.
	useCount map[ir.Value]int

	// varSlots is the number of reserved variable homes in the frame.
	varSlots int

	// locals numbers the set.N labels of materialized comparisons.
	locals int
}

func (g *generator) run() error {
	if err := g.prologue(); err != nil {
		return err
	}

	for _, b := range g.fn.Blocks {
		g.bind(g.label(b.Label))
		for i := 0; i < len(b.Instructions); i++ {
			if cmp, ok := b.Instructions[i].(*ir.BinaryOp); ok && cmp.Op.IsComparison() {
				if jump, fuse := g.fusableJump(b, i, cmp); fuse {
					if err := g.fusedCompare(cmp, jump); err != nil {
						return err
					}
					i++
					continue
				}
			}
			if err := g.lower(b.Instructions[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// prologue saves the caller's frame pointer, establishes the new
// frame, reserves it, and copies each used parameter from the
// caller's pushes into the parameter's allocated home. Parameters the
// body never reads get no copy.
func (g *generator) prologue() error {
	g.emit(machine.New(machine.PUSH, machine.Reg(machine.FP)))
	g.emit(machine.New(machine.MOVE, machine.Reg(machine.FP), machine.Reg(machine.SP)))
	if frame := g.frameSize(); frame > 0 {
		g.emit(machine.New(machine.SUB, machine.Reg(machine.SP), machine.Reg(machine.SP), machine.Imm(frame)))
	}

	for i, p := range g.fn.Params {
		if g.useCount[p] == 0 {
			continue
		}
		home, err := g.operand(p)
		if err != nil {
			return err
		}
		g.emit(machine.New(machine.MOVE, home, machine.Mem(machine.FP, int64(machine.WordSize)*int64(2+i))))
	}
	return nil
}

func (g *generator) frameSize() int64 {
	return int64(machine.WordSize) * int64(g.varSlots+g.alloc.NumSpillSlots())
}

// epilogue tears the frame down. SP snaps back to FP, which also
// discards any spill slots, before the caller's FP is restored.
func (g *generator) epilogue() {
	g.emit(machine.New(machine.MOVE, machine.Reg(machine.SP), machine.Reg(machine.FP)))
	g.emit(machine.New(machine.POP, machine.Reg(machine.FP)))
	g.emit(machine.New(machine.RET))
}

// fusableJump reports whether the comparison at index i can fuse with
// a conditional jump at i+1: the jump must test exactly the
// comparison's destination, and that destination must have no other
// reader anywhere.
func (g *generator) fusableJump(b *ir.BasicBlock, i int, cmp *ir.BinaryOp) (*ir.CondJump, bool) {
	if i+1 >= len(b.Instructions) {
		return nil, false
	}
	jump, ok := b.Instructions[i+1].(*ir.CondJump)
	if !ok || jump.Cond != cmp.Dest || g.useCount[cmp.Dest] != 1 {
		return nil, false
	}
	return jump, true
}

// fusedCompare lowers a comparison and its consuming jump as one
// unit: CMP, branch on the condition, fall through to an explicit
// jump for the false edge.
func (g *generator) fusedCompare(cmp *ir.BinaryOp, jump *ir.CondJump) error {
	cc, ok := comparisonJumps[cmp.Op]
	if !ok {
		return g.badOperator(cmp.Op.String())
	}
	left, err := g.operand(cmp.Left)
	if err != nil {
		return err
	}
	right, err := g.operand(cmp.Right)
	if err != nil {
		return err
	}

	g.emit(machine.New(machine.CMP, left, right))
	g.emit(machine.New(cc, machine.LabelRef(g.label(jump.True))))
	g.emit(machine.New(machine.JMP, machine.LabelRef(g.label(jump.False))))
	return nil
}

func (g *generator) lower(instr ir.Instruction) error {
	switch in := instr.(type) {
	case *ir.BinaryOp:
		return g.binaryOp(in)
	case *ir.UnaryOp:
		return g.unaryOp(in)
	case *ir.Assign:
		dst, err := g.operand(in.Dest)
		if err != nil {
			return err
		}
		src, err := g.operand(in.Src)
		if err != nil {
			return err
		}
		g.emit(machine.New(machine.MOVE, dst, src))
		return nil
	case *ir.Label:
		g.bind(g.label(in.Name))
		return nil
	case *ir.Jump:
		g.emit(machine.New(machine.JMP, machine.LabelRef(g.label(in.Target))))
		return nil
	case *ir.CondJump:
		return g.condJump(in)
	case *ir.Call:
		return g.call(in)
	case *ir.Return:
		if in.HasValue {
			value, err := g.operand(in.Value)
			if err != nil {
				return err
			}
			g.emit(machine.New(machine.MOVE, machine.Reg(machine.ReturnRegister), value))
		}
		g.epilogue()
		return nil
	default:
		return errors.Wrapf(ErrUnsupportedInstruction, "function %s: %T", g.fn.Name, instr)
	}
}

func (g *generator) binaryOp(in *ir.BinaryOp) error {
	if in.Op.IsComparison() {
		return g.materializeCompare(in)
	}
	op, ok := binaryOpcodes[in.Op]
	if !ok {
		return g.badOperator(in.Op.String())
	}

	dst, err := g.operand(in.Dest)
	if err != nil {
		return err
	}
	left, err := g.operand(in.Left)
	if err != nil {
		return err
	}
	right, err := g.operand(in.Right)
	if err != nil {
		return err
	}
	g.emit(machine.New(op, dst, left, right))
	return nil
}

// materializeCompare produces an explicit 0/1 word for a comparison
// whose result is a value in its own right:
//
//	CMP a, b
//	MOVE dst, #1
//	J<cc> set.N
//	MOVE dst, #0
//	set.N:
//
// MOVE leaves the flags alone, so the optimistic store of 1 can sit
// between CMP and the branch that decides whether to undo it.
func (g *generator) materializeCompare(in *ir.BinaryOp) error {
	cc, ok := comparisonJumps[in.Op]
	if !ok {
		return g.badOperator(in.Op.String())
	}
	dst, err := g.operand(in.Dest)
	if err != nil {
		return err
	}
	left, err := g.operand(in.Left)
	if err != nil {
		return err
	}
	right, err := g.operand(in.Right)
	if err != nil {
		return err
	}

	done := g.localLabel()
	g.emit(machine.New(machine.CMP, left, right))
	g.emit(machine.New(machine.MOVE, dst, machine.Imm(1)))
	g.emit(machine.New(cc, machine.LabelRef(done)))
	g.emit(machine.New(machine.MOVE, dst, machine.Imm(0)))
	g.bind(done)
	return nil
}

func (g *generator) unaryOp(in *ir.UnaryOp) error {
	dst, err := g.operand(in.Dest)
	if err != nil {
		return err
	}
	operand, err := g.operand(in.Operand)
	if err != nil {
		return err
	}

	switch in.Op {
	case ir.OpNeg:
		g.emit(machine.New(machine.SUB, dst, machine.Imm(0), operand))
		return nil
	case ir.OpBitNot:
		g.emit(machine.New(machine.NOT, dst, operand))
		return nil
	case ir.OpNot:
		// Logical not is a comparison against zero.
		done := g.localLabel()
		g.emit(machine.New(machine.CMP, operand, machine.Imm(0)))
		g.emit(machine.New(machine.MOVE, dst, machine.Imm(1)))
		g.emit(machine.New(machine.JEQ, machine.LabelRef(done)))
		g.emit(machine.New(machine.MOVE, dst, machine.Imm(0)))
		g.bind(done)
		return nil
	default:
		return g.badOperator(in.Op.String())
	}
}

// condJump lowers a conditional jump whose condition is an existing
// 0/1 word rather than a fused comparison.
func (g *generator) condJump(in *ir.CondJump) error {
	cond, err := g.operand(in.Cond)
	if err != nil {
		return err
	}
	g.emit(machine.New(machine.CMP, cond, machine.Imm(0)))
	g.emit(machine.New(machine.JNE, machine.LabelRef(g.label(in.True))))
	g.emit(machine.New(machine.JMP, machine.LabelRef(g.label(in.False))))
	return nil
}

// call pushes the arguments right to left so the first argument ends
// up nearest the frame, calls, and lets the caller pop.
func (g *generator) call(in *ir.Call) error {
	for i := len(in.Args) - 1; i >= 0; i-- {
		arg, err := g.operand(in.Args[i])
		if err != nil {
			return err
		}
		g.emit(machine.New(machine.PUSH, arg))
	}
	g.emit(machine.New(machine.CALL, machine.LabelRef(in.Callee)))
	if len(in.Args) > 0 {
		adjust := int64(machine.WordSize) * int64(len(in.Args))
		g.emit(machine.New(machine.ADD, machine.Reg(machine.SP), machine.Reg(machine.SP), machine.Imm(adjust)))
	}
	if in.HasDest {
		dst, err := g.operand(in.Dest)
		if err != nil {
			return err
		}
		g.emit(machine.New(machine.MOVE, dst, machine.Reg(machine.ReturnRegister)))
	}
	return nil
}

// operand resolves an IR value to a machine operand: constants become
// immediates, everything else goes through the allocation map.
func (g *generator) operand(v ir.Value) (machine.Operand, error) {
	if v.IsConstant() {
		return machine.Imm(v.Literal), nil
	}
	assignment, ok := g.alloc.Of(v)
	if !ok {
		return machine.Operand{}, errors.Errorf("function %s: value %s has no allocation", g.fn.Name, v)
	}
	if assignment.Spilled {
		offset := -int64(machine.WordSize) * int64(g.varSlots+assignment.SpillSlot+1)
		return machine.Mem(machine.FP, offset), nil
	}
	return machine.Reg(assignment.Register), nil
}

// label qualifies a block-local label with the function name so the
// rendered program has globally unique labels.
func (g *generator) label(name string) string {
	return g.fn.Name + "." + name
}

func (g *generator) localLabel() string {
	name := g.label(fmt.Sprintf("set.%d", g.locals))
	g.locals++
	return name
}

// emit appends an instruction, attaching any labels waiting to bind.
func (g *generator) emit(instr machine.Instruction) {
	if len(g.pending) > 0 {
		instr.Labels = append(instr.Labels, g.pending...)
		g.pending = nil
	}
	g.out = append(g.out, instr)
}

// bind queues a label for the next emitted instruction.
func (g *generator) bind(label string) {
	g.pending = append(g.pending, label)
}

func (g *generator) badOperator(op string) error {
	return errors.Wrapf(ErrUnsupportedOperator, "function %s: operator %q", g.fn.Name, op)
}
