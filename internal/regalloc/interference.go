// Package regalloc assigns every IR value a physical register or a
// spill slot.
//
// The package splits into two halves:
// 1. The interference graph: which values are alive at the same time
//    and therefore cannot share a register
// 2. The allocator: a graph coloring that maps each value to one of K
//    registers, overflowing into numbered spill slots
//
// WHAT IS INTERFERENCE?
// Two values interfere when both are live at some program point. The
// graph has one node per allocatable value and one edge per
// interfering pair. Constants never appear: they lower to immediates
// and occupy nothing.
package regalloc

import (
	"github.com/golang/glog"
	"golang.org/x/exp/slices"

	"github.com/hassan/minicc/internal/ir"
	"github.com/hassan/minicc/internal/liveness"
)

// Graph is an undirected interference graph over IR values.
//
// Nodes keep their insertion order. The allocator breaks ties by that
// order, so building the graph in deterministic program order makes
// the whole allocation reproducible.
type Graph struct {
	nodes []ir.Value
	adj   map[ir.Value]ir.ValueSet
	edges int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[ir.Value]ir.ValueSet)}
}

// AddNode registers a value as a node. Adding a node twice, or adding
// a constant, does nothing. Isolated nodes matter: a value that never
// interferes still needs a register.
func (g *Graph) AddNode(v ir.Value) {
	if !v.Allocatable() {
		return
	}
	if _, ok := g.adj[v]; ok {
		return
	}
	g.nodes = append(g.nodes, v)
	g.adj[v] = ir.NewValueSet()
}

// AddEdge records that u and v are simultaneously live. Self-edges
// and constants are ignored; the edge is symmetric.
func (g *Graph) AddEdge(u, v ir.Value) {
	if u == v || !u.Allocatable() || !v.Allocatable() {
		return
	}
	g.AddNode(u)
	g.AddNode(v)
	if g.adj[u].Add(v) {
		g.edges++
	}
	g.adj[v].Add(u)
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []ir.Value {
	return slices.Clone(g.nodes)
}

// Neighbors returns the adjacency set of v. Callers must not modify
// the returned set.
func (g *Graph) Neighbors(v ir.Value) ir.ValueSet {
	return g.adj[v]
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v ir.Value) int {
	return g.adj[v].Len()
}

// Interferes reports whether u and v share an edge.
func (g *Graph) Interferes(u, v ir.Value) bool {
	return g.adj[u].Contains(v)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// BuildGraph constructs the interference graph for a function from
// its liveness results.
//
// Every allocatable value becomes a node up front, in program order:
// parameters first, then each instruction's definition and uses. The
// edges come from one backward walk per block, the mirror image of
// the liveness scan:
//
//  1. Start from the block's LiveOut set
//  2. At a definition d, everything currently live conflicts with d
//  3. Then d's lifetime ends (walking backward) and the instruction's
//     uses begin theirs
//
// Parameters all materialize at the same moment, function entry, so
// every pair of values alive on entry interferes.
func BuildGraph(fn *ir.Function, info *liveness.Info) *Graph {
	g := NewGraph()

	for _, p := range fn.Params {
		g.AddNode(p)
	}
	for _, b := range fn.Blocks {
		for _, instr := range b.Instructions {
			if d, ok := instr.Def(); ok {
				g.AddNode(d)
			}
			for _, u := range instr.Uses() {
				g.AddNode(u)
			}
		}
	}

	for _, b := range fn.Blocks {
		live := info.LiveOut[b.ID].Clone()
		for i := len(b.Instructions) - 1; i >= 0; i-- {
			instr := b.Instructions[i]
			if d, ok := instr.Def(); ok && d.Allocatable() {
				for _, v := range live.Values() {
					g.AddEdge(d, v)
				}
				live.Remove(d)
			}
			for _, u := range instr.Uses() {
				if u.Allocatable() {
					live.Add(u)
				}
			}
		}
	}

	entryLive := info.LiveIn[fn.Entry].Values()
	for i, u := range entryLive {
		for _, v := range entryLive[i+1:] {
			g.AddEdge(u, v)
		}
	}

	glog.V(2).Infof("interference %s: %d nodes, %d edges", fn.Name, g.Len(), g.EdgeCount())
	return g
}
