package regalloc

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/exp/maps"

	"github.com/hassan/minicc/internal/ir"
	"github.com/hassan/minicc/internal/machine"
)

// Assignment is the home of one value: a physical register, or a
// numbered spill slot when the registers ran out.
type Assignment struct {
	Register  machine.Register // valid when Spilled is false
	SpillSlot int              // valid when Spilled is true
	Spilled   bool
}

func (a Assignment) String() string {
	if a.Spilled {
		return fmt.Sprintf("spill[%d]", a.SpillSlot)
	}
	return a.Register.Name
}

// Allocation maps every graph node to its assignment.
type Allocation struct {
	assignments map[ir.Value]Assignment
	spillSlots  int
}

// Of returns the assignment of v. The second result is false when v
// was not a node of the allocated graph, which for well-formed input
// means v is a constant.
func (a *Allocation) Of(v ir.Value) (Assignment, bool) {
	assignment, ok := a.assignments[v]
	return assignment, ok
}

// NumSpillSlots returns how many distinct spill slots the allocation
// uses. The code generator reserves this many words of frame space.
func (a *Allocation) NumSpillSlots() int {
	return a.spillSlots
}

// Len returns the number of allocated values.
func (a *Allocation) Len() int {
	return len(a.assignments)
}

// Values returns the allocated values in a stable order.
func (a *Allocation) Values() []ir.Value {
	return ir.NewValueSet(maps.Keys(a.assignments)...).Values()
}

func (a *Allocation) String() string {
	var sb strings.Builder
	for i, v := range a.Values() {
		if i > 0 {
			sb.WriteString(", ")
		}
		assignment := a.assignments[v]
		sb.WriteString(v.String())
		sb.WriteString(":")
		sb.WriteString(assignment.String())
	}
	return sb.String()
}

// Allocate colors the interference graph with k registers, spilling
// whatever does not fit. k must not exceed machine.NumGPR.
//
// HOW KEMPE COLORING WORKS:
//  1. Simplify: repeatedly remove the node with the lowest current
//     degree, pushing it on a stack together with the neighbors it
//     still had at removal time
//  2. Select: pop the stack; every recorded neighbor of a popped node
//     was removed after it, so it is already colored; give the node
//     the lowest color its neighbors do not use
//
// The textbook algorithm removes only nodes of degree < k during
// simplify and treats the rest as spill candidates. Here there is no
// such split: every node goes through the same min-degree removal,
// and a node whose neighbors exhaust the low colors simply receives a
// color >= k, which becomes a spill slot. Spilling is a normal result,
// never an error, and the slot supply is unbounded.
//
// Ties on minimum degree break toward the first node in graph
// insertion order, so the same graph always colors the same way.
func Allocate(g *Graph, k int) *Allocation {
	order := g.Nodes()

	type removal struct {
		node      ir.Value
		neighbors ir.ValueSet
	}

	removed := make(map[ir.Value]bool, len(order))
	degrees := make(map[ir.Value]int, len(order))
	for _, v := range order {
		degrees[v] = g.Degree(v)
	}

	stack := make([]removal, 0, len(order))
	for len(stack) < len(order) {
		best := ir.Value{}
		bestDegree := -1
		for _, v := range order {
			if removed[v] {
				continue
			}
			if bestDegree < 0 || degrees[v] < bestDegree {
				best, bestDegree = v, degrees[v]
			}
		}

		remaining := ir.NewValueSet()
		for _, n := range g.Neighbors(best).Values() {
			if !removed[n] {
				remaining.Add(n)
				degrees[n]--
			}
		}
		stack = append(stack, removal{node: best, neighbors: remaining})
		removed[best] = true
	}

	colors := make(map[ir.Value]int, len(order))
	maxColor := -1
	for i := len(stack) - 1; i >= 0; i-- {
		entry := stack[i]

		used := make(map[int]bool, entry.neighbors.Len())
		for _, n := range entry.neighbors.Values() {
			used[colors[n]] = true
		}
		color := 0
		for used[color] {
			color++
		}
		colors[entry.node] = color
		if color > maxColor {
			maxColor = color
		}
	}

	alloc := &Allocation{assignments: make(map[ir.Value]Assignment, len(order))}
	if maxColor >= k {
		alloc.spillSlots = maxColor - k + 1
	}
	for v, color := range colors {
		if color < k {
			alloc.assignments[v] = Assignment{Register: machine.GPR[color]}
		} else {
			alloc.assignments[v] = Assignment{Spilled: true, SpillSlot: color - k}
		}
	}

	glog.V(2).Infof("regalloc: %d nodes, %d colors, %d spill slots", len(order), maxColor+1, alloc.spillSlots)
	return alloc
}
