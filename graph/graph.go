// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package graph implements the program representation symbolic shape
// analysis runs on: a block-structured graph of typed values.
//
// The same representation serves two roles:
//
//   - Shape-compute programs: pure functions from operator arguments to an
//     output shape, expressed as Int/Bool/List[Int] computation. The
//     analyzer in the root package partially evaluates these.
//   - Host graphs: sequences of Operator call sites over tensor-typed
//     values, whose output shapes the propagation driver fills in.
//
// Nodes live in a per-graph arena and are identified by their NodeId, which
// is the index in the arena and never changes, even as nodes are destroyed.
// Structure (order, nesting) lives in Blocks. Dataflow lives in Values,
// each knowing its producer and its ordered uses. Block returns consume
// their values through a Return sentinel node, so "has exactly one use"
// includes being returned.
//
// Graphs are built with the builder methods (Input, Const, Add, If, Loop,
// ...) which panic with exceptions on misuse; building a graph is
// programmer territory. Passes then reshape graphs with the surgery
// methods (ReplaceAllUsesWith, Destroy, SpliceBlock, ...).
package graph

import (
	"github.com/gomlx/exceptions"
)

// Graph is an arena of nodes plus a root block. See the package
// documentation for the model.
type Graph struct {
	name       string
	nodes      []*Node
	valueCount int
	root       *Block
	cur        *Block
}

// New creates an empty graph. The name shows up in dumps and log lines;
// clones derive theirs from it.
func New(name string) *Graph {
	g := &Graph{name: name}
	g.root = g.newBlock(nil)
	g.cur = g.root
	return g
}

// Name of the graph.
func (g *Graph) Name() string { return g.name }

// Root returns the top-level block.
func (g *Graph) Root() *Block { return g.root }

// Inputs returns the graph's parameters, in declaration order.
func (g *Graph) Inputs() []*Value { return g.root.Inputs() }

// NumInputs returns the number of graph parameters.
func (g *Graph) NumInputs() int { return len(g.root.Inputs()) }

// Outputs returns the graph's returned values.
func (g *Graph) Outputs() []*Value { return g.root.Outputs() }

// newBlock creates a block with fresh sentinels. The sentinels live in the
// arena but in no body.
func (g *Graph) newBlock(owner *Node) *Block {
	b := &Block{graph: g, owner: owner}
	b.param = g.newNode(OpTypeParameter, b, false)
	b.ret = g.newNode(OpTypeReturn, b, false)
	return b
}

// newNode allocates a node in the arena. When inBody is set the node is
// appended to the block's body; sentinels pass false.
func (g *Graph) newNode(op OpType, b *Block, inBody bool) *Node {
	n := &Node{
		graph: g,
		id:    NodeId(len(g.nodes)),
		op:    op,
		block: b,
	}
	g.nodes = append(g.nodes, n)
	if inBody {
		b.appendNode(n)
	}
	return n
}

func (g *Graph) nextValueId() ValueId {
	id := ValueId(g.valueCount)
	g.valueCount++
	return id
}

// NumLiveNodes counts the nodes still in the graph, sentinels excluded.
func (g *Graph) NumLiveNodes() int {
	count := 0
	for _, n := range g.nodes {
		if !n.destroyed && n.op != OpTypeParameter && n.op != OpTypeReturn {
			count++
		}
	}
	return count
}

// ReplaceWithConstant rewires every use of v to a fresh constant carrying
// the literal. The constant is inserted at the front of the owning block of
// v's producer (the root block when v is a graph input), where it dominates
// all of v's uses. Returns the constant value.
func (g *Graph) ReplaceWithConstant(v *Value, literal any) *Value {
	if v.Graph() != g {
		exceptions.Panicf("Graph.ReplaceWithConstant: value belongs to graph %q", v.Graph().Name())
	}
	n := g.newNode(OpTypeConstant, v.node.block, false)
	n.literal = cloneLiteral(literal)
	c := n.newOutput(TypeOfLiteral(literal))
	v.node.block.InsertAtFront(n)
	v.ReplaceAllUsesWith(c)
	return c
}

// ConstBefore creates a constant node placed immediately before the given
// node. Passes use it to materialize literals at a specific point, e.g. the
// iteration counter while unrolling a loop.
func (g *Graph) ConstBefore(before *Node, literal any) *Value {
	n := g.newNode(OpTypeConstant, before.block, false)
	n.literal = cloneLiteral(literal)
	c := n.newOutput(TypeOfLiteral(literal))
	before.block.InsertBefore(n, before)
	return c
}

func cloneLiteral(literal any) any {
	if list, ok := literal.([]int); ok {
		cloned := make([]int, len(list))
		copy(cloned, list)
		return cloned
	}
	return literal
}

// AssertValid walks the whole graph checking structural invariants: use
// lists match inputs, producers match outputs, bodies and owners agree.
// It panics with an exception on the first violation. Meant for tests and
// debugging passes.
func (g *Graph) AssertValid() {
	g.assertBlockValid(g.root)
}

func (g *Graph) assertBlockValid(b *Block) {
	if b.graph != g {
		exceptions.Panicf("AssertValid: block of graph %q found in graph %q", b.graph.name, g.name)
	}
	g.assertNodeValid(b.param, b)
	g.assertNodeValid(b.ret, b)
	for _, n := range b.body {
		if n.op == OpTypeParameter || n.op == OpTypeReturn {
			exceptions.Panicf("AssertValid: sentinel %s in block body", n.op)
		}
		g.assertNodeValid(n, b)
		for _, nested := range n.blocks {
			if nested.owner != n {
				exceptions.Panicf("AssertValid: nested block owner mismatch at node #%d", n.id)
			}
			g.assertBlockValid(nested)
		}
	}
}

func (g *Graph) assertNodeValid(n *Node, b *Block) {
	if n.destroyed {
		exceptions.Panicf("AssertValid: destroyed %s node #%d still reachable", n.op, n.id)
	}
	if n.block != b {
		exceptions.Panicf("AssertValid: %s node #%d owning block mismatch", n.op, n.id)
	}
	for i, in := range n.inputs {
		found := false
		for _, u := range in.uses {
			if u.User == n && u.Index == i {
				found = true
				break
			}
		}
		if !found {
			exceptions.Panicf("AssertValid: input #%d of %s node #%d has no matching use on %s", i, n.op, n.id, in)
		}
	}
	for i, out := range n.outputs {
		if out.node != n || out.index != i {
			exceptions.Panicf("AssertValid: output #%d of %s node #%d has wrong producer link", i, n.op, n.id)
		}
		for _, u := range out.uses {
			if u.User.destroyed {
				exceptions.Panicf("AssertValid: %s used by destroyed node #%d", out, u.User.id)
			}
			if u.User.inputs[u.Index] != out {
				exceptions.Panicf("AssertValid: use list of %s disagrees with node #%d input #%d", out, u.User.id, u.Index)
			}
		}
	}
}
