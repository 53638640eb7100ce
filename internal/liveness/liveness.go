// Package liveness computes which values are alive at the edges of
// every basic block.
//
// WHAT IS LIVENESS?
// A value is live at a program point when some path from that point
// reads the value before any redefinition. The register allocator
// needs this to know which values compete for registers at the same
// time: two values both live at some point cannot share one.
//
// The analysis is the classic backward dataflow over the CFG:
//
//	Use[B]: values read in B before any definition in B
//	Def[B]: values defined anywhere in B
//	LiveOut[B] = union of LiveIn[S] over all successors S
//	LiveIn[B]  = Use[B] + (LiveOut[B] - Def[B])
//
// Use and Def come from one forward scan per block. The Live sets
// start empty and grow to a fixed point; the sets only ever grow, so
// termination is guaranteed. Blocks are visited in reverse declaration
// order because liveness flows backward: most information arrives in
// one pass and loops settle in two or three.
//
// Constants never appear in any set. They are rematerialized as
// immediates by the code generator and never occupy a register.
package liveness

import (
	"github.com/golang/glog"

	"github.com/hassan/minicc/internal/ir"
)

// Info holds the per-block liveness sets for one function.
type Info struct {
	// Use holds the upward-exposed reads of each block.
	Use map[ir.BlockID]ir.ValueSet

	// Def holds the values each block defines.
	Def map[ir.BlockID]ir.ValueSet

	// LiveIn holds the values alive on entry to each block.
	LiveIn map[ir.BlockID]ir.ValueSet

	// LiveOut holds the values alive on exit from each block.
	LiveOut map[ir.BlockID]ir.ValueSet
}

// Compute runs the analysis on a sealed function.
func Compute(fn *ir.Function) *Info {
	info := &Info{
		Use:     make(map[ir.BlockID]ir.ValueSet, len(fn.Blocks)),
		Def:     make(map[ir.BlockID]ir.ValueSet, len(fn.Blocks)),
		LiveIn:  make(map[ir.BlockID]ir.ValueSet, len(fn.Blocks)),
		LiveOut: make(map[ir.BlockID]ir.ValueSet, len(fn.Blocks)),
	}

	for _, b := range fn.Blocks {
		use, def := localSets(b)
		info.Use[b.ID] = use
		info.Def[b.ID] = def
		info.LiveIn[b.ID] = use.Clone()
		info.LiveOut[b.ID] = ir.NewValueSet()
	}

	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for i := len(fn.Blocks) - 1; i >= 0; i-- {
			b := fn.Blocks[i]

			out := info.LiveOut[b.ID]
			for _, succ := range b.Succs {
				if out.Union(info.LiveIn[succ]) {
					changed = true
				}
			}
			if info.LiveIn[b.ID].Union(out.Difference(info.Def[b.ID])) {
				changed = true
			}
		}
	}

	glog.V(2).Infof("liveness %s: %d blocks, fixed point after %d passes", fn.Name, len(fn.Blocks), passes)
	if glog.V(3) {
		for _, b := range fn.Blocks {
			glog.Infof("liveness %s %s: in=%s out=%s", fn.Name, b.Label, info.LiveIn[b.ID], info.LiveOut[b.ID])
		}
	}
	return info
}

// localSets scans one block forward, splitting its value traffic into
// upward-exposed uses and definitions. A use counts only when nothing
// earlier in the same block defined the value; a definition counts
// wherever it appears.
func localSets(b *ir.BasicBlock) (use, def ir.ValueSet) {
	use = ir.NewValueSet()
	def = ir.NewValueSet()

	for _, instr := range b.Instructions {
		// Reads happen before the write of the same instruction.
		for _, v := range instr.Uses() {
			if !v.Allocatable() {
				continue
			}
			if !def.Contains(v) {
				use.Add(v)
			}
		}
		if d, ok := instr.Def(); ok && d.Allocatable() {
			def.Add(d)
		}
	}
	return use, def
}
