package ir

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/hassan/minicc/internal/types"
)

// Function owns one function's worth of IR: its parameters, its
// blocks, and the counter that numbers its temporaries.
//
// DESIGN CHOICE: Blocks is an arena. The function owns every block,
// and everything else (instructions, analyses, codegen) refers to
// blocks by BlockID. NewBlock hands out ids in declaration order, and
// declaration order is also the fallthrough order Seal uses.
type Function struct {
	// Name is the function name, which is also its call label.
	Name string

	// Params are the parameter values in declaration order. Parameters
	// are ordinary Variables, considered defined at function entry.
	Params []Value

	// Blocks is the arena of basic blocks: Blocks[id] is the block
	// with that BlockID.
	Blocks []*BasicBlock

	// Entry is the block where execution starts.
	Entry BlockID

	// nextTemp numbers this function's temporaries.
	nextTemp int
}

// NewFunction creates a function with a single empty entry block.
func NewFunction(name string, params []Value) *Function {
	fn := &Function{Name: name, Params: params}
	fn.Entry = fn.NewBlock("entry")
	return fn
}

// NewBlock appends an empty block with the given label to the arena
// and returns its id.
func (f *Function) NewBlock(label string) BlockID {
	id := BlockID(len(f.Blocks))
	f.Blocks = append(f.Blocks, &BasicBlock{ID: id, Label: label})
	return id
}

// Block returns the block with the given id.
func (f *Function) Block(id BlockID) *BasicBlock {
	return f.Blocks[id]
}

// NewTemp returns a fresh temporary of the given type. Ids are unique
// within the function.
func (f *Function) NewTemp(typ types.Type) Value {
	v := Temporary(f.nextTemp, typ)
	f.nextTemp++
	return v
}

// Seal finalizes the control flow graph. It runs once, after
// generation and before any analysis:
//
//  1. Every block without a terminator gets one: a Jump to the next
//     block in declaration order, or a bare Return for the last
//     block. Fallthrough becomes an explicit edge.
//  2. Succs and Preds are derived from the terminators by resolving
//     target labels to block ids.
//
// Seal fails if a jump names a label no block carries.
func (f *Function) Seal() error {
	byLabel, err := f.labelIndex()
	if err != nil {
		return err
	}

	for i, b := range f.Blocks {
		if b.Terminated() {
			continue
		}
		if i+1 < len(f.Blocks) {
			b.Add(&Jump{Target: f.Blocks[i+1].Label})
		} else {
			b.Add(&Return{})
		}
	}

	for _, b := range f.Blocks {
		b.Succs = nil
		b.Preds = nil
	}
	for _, b := range f.Blocks {
		targets, err := f.resolveTargets(b, byLabel)
		if err != nil {
			return err
		}
		for _, to := range targets {
			f.addEdge(b.ID, to)
		}
	}
	return nil
}

// labelIndex maps block labels to ids, rejecting duplicates.
func (f *Function) labelIndex() (map[string]BlockID, error) {
	byLabel := make(map[string]BlockID, len(f.Blocks))
	for _, b := range f.Blocks {
		if other, ok := byLabel[b.Label]; ok {
			return nil, errors.Errorf("function %s: duplicate block label %q (blocks %d and %d)",
				f.Name, b.Label, other, b.ID)
		}
		byLabel[b.Label] = b.ID
	}
	return byLabel, nil
}

// resolveTargets returns the successor ids named by b's terminator, in
// terminator order without duplicates.
func (f *Function) resolveTargets(b *BasicBlock, byLabel map[string]BlockID) ([]BlockID, error) {
	var labels []string
	switch term := b.Terminator().(type) {
	case *Jump:
		labels = []string{term.Target}
	case *CondJump:
		labels = []string{term.True, term.False}
	}

	var targets []BlockID
	for _, label := range labels {
		id, ok := byLabel[label]
		if !ok {
			return nil, errors.Errorf("function %s: block %s jumps to unknown label %q",
				f.Name, b.Label, label)
		}
		if !slices.Contains(targets, id) {
			targets = append(targets, id)
		}
	}
	return targets, nil
}

// addEdge records the edge from -> to on both endpoints.
func (f *Function) addEdge(from, to BlockID) {
	src, dst := f.Blocks[from], f.Blocks[to]
	if slices.Contains(src.Succs, to) {
		return
	}
	src.Succs = append(src.Succs, to)
	dst.Preds = append(dst.Preds, from)
}

// Verify checks the structural invariants of a sealed function and
// returns one error per violation:
//
// - the entry block exists
// - every block ends in a terminator
// - every jump target resolves to a block label
// - Succs and Preds agree with the terminators
// - every temporary is defined by exactly one instruction
func (f *Function) Verify() []error {
	var errs []error

	if len(f.Blocks) == 0 {
		return []error{errors.Errorf("function %s has no blocks", f.Name)}
	}
	if int(f.Entry) < 0 || int(f.Entry) >= len(f.Blocks) {
		errs = append(errs, errors.Errorf("function %s: entry block %d out of range", f.Name, f.Entry))
	}

	byLabel, err := f.labelIndex()
	if err != nil {
		return append(errs, err)
	}

	preds := make(map[BlockID][]BlockID)
	for _, b := range f.Blocks {
		if !b.Terminated() {
			errs = append(errs, errors.Errorf("function %s: block %s has no terminator", f.Name, b.Label))
			continue
		}
		targets, err := f.resolveTargets(b, byLabel)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !sameEdges(b.Succs, targets) {
			errs = append(errs, errors.Errorf("function %s: block %s successors %v do not match terminator targets %v",
				f.Name, b.Label, b.Succs, targets))
		}
		for _, to := range targets {
			preds[to] = append(preds[to], b.ID)
		}
	}
	for _, b := range f.Blocks {
		if !sameEdges(b.Preds, preds[b.ID]) {
			errs = append(errs, errors.Errorf("function %s: block %s predecessors %v do not match incoming edges %v",
				f.Name, b.Label, b.Preds, preds[b.ID]))
		}
	}

	defs := make(map[Value]int)
	for _, b := range f.Blocks {
		for _, instr := range b.Instructions {
			if def, ok := instr.Def(); ok && def.Kind == ValueTemporary {
				defs[def]++
			}
		}
	}
	var multi []Value
	for v, n := range defs {
		if n > 1 {
			multi = append(multi, v)
		}
	}
	slices.SortFunc(multi, func(a, b Value) int { return a.ID - b.ID })
	for _, v := range multi {
		errs = append(errs, errors.Errorf("function %s: temporary %s defined %d times", f.Name, v, defs[v]))
	}

	return errs
}

// sameEdges compares two edge lists ignoring order.
func sameEdges(a, b []BlockID) bool {
	if len(a) != len(b) {
		return false
	}
	ac := slices.Clone(a)
	bc := slices.Clone(b)
	slices.Sort(ac)
	slices.Sort(bc)
	return slices.Equal(ac, bc)
}

// String returns the function in IR dump form: the signature, then
// each block with a predecessor note once edges exist.
func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString("func ")
	sb.WriteString(f.Name)
	sb.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") {\n")
	for _, b := range f.Blocks {
		sb.WriteString(b.Label)
		sb.WriteString(":\n")
		if len(b.Preds) > 0 {
			sb.WriteString("  ; preds: ")
			for i, p := range b.Preds {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(f.Blocks[p].Label)
			}
			sb.WriteString("\n")
		}
		for _, instr := range b.Instructions {
			sb.WriteString("  ")
			sb.WriteString(instr.String())
			sb.WriteString("\n")
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}
