// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package passes implements the graph simplification subroutines the shape
// analyzer drives: tuple lowering, list mutation removal, loop unrolling,
// constant propagation, peephole rewrites, constant pooling and dead code
// elimination.
//
// Every pass has the signature func(*graph.Graph), mutates the graph in
// place, recurses through nested blocks and is deterministic: iteration is
// always over slices in program order, never over maps. Passes are safe to
// run on graphs they cannot improve; they simply do nothing.
package passes

import (
	"github.com/gomlx/symshape/graph"
	"github.com/gomlx/symshape/internal/utils"
)

// forEachBlock visits b and every nested block, pre-order. The visitor may
// mutate the body of the block it receives; nested blocks are collected
// after the visitor ran.
func forEachBlock(g *graph.Graph, visit func(b *graph.Block)) {
	var walk func(b *graph.Block)
	walk = func(b *graph.Block) {
		visit(b)
		for _, n := range bodySnapshot(b) {
			if n.Destroyed() {
				continue
			}
			for _, nested := range n.Blocks() {
				walk(nested)
			}
		}
	}
	walk(g.Root())
}

// bodySnapshot copies the body slice so callers can mutate the block while
// ranging.
func bodySnapshot(b *graph.Block) []*graph.Node {
	nodes := b.Nodes()
	snapshot := make([]*graph.Node, len(nodes))
	copy(snapshot, nodes)
	return snapshot
}

// usesSnapshot copies a value's use list for the same reason.
func usesSnapshot(v *graph.Value) []graph.Use {
	uses := v.Uses()
	snapshot := make([]graph.Use, len(uses))
	copy(snapshot, uses)
	return snapshot
}

// hasMutatingUse returns whether any use of the list value is a ListAppend
// taking it as the list operand. Folding a length or element read out of a
// mutated list would bake in a stale view.
func hasMutatingUse(list *graph.Value) bool {
	for _, u := range list.Uses() {
		if u.User.Op() == graph.OpTypeListAppend && u.Index == 0 {
			return true
		}
	}
	return false
}

// replaceAndDestroy rewires every use of the node's single output to v and
// removes the node.
func replaceAndDestroy(n *graph.Node, v *graph.Value) {
	n.Output().ReplaceAllUsesWith(v)
	n.Destroy()
}

// scalarFoldOps are the pure scalar ops constant propagation can evaluate.
var scalarFoldOps = utils.SetWith(
	graph.OpTypeAdd,
	graph.OpTypeSub,
	graph.OpTypeMul,
	graph.OpTypeFloorDiv,
	graph.OpTypeMod,
	graph.OpTypeMin,
	graph.OpTypeMax,
	graph.OpTypeNeg,
	graph.OpTypeEqual,
	graph.OpTypeNotEqual,
	graph.OpTypeLessThan,
	graph.OpTypeLessOrEqual,
	graph.OpTypeGreaterThan,
	graph.OpTypeGreaterOrEqual,
	graph.OpTypeLogicalAnd,
	graph.OpTypeLogicalOr,
	graph.OpTypeLogicalNot,
	graph.OpTypeIsNone,
)
