// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package passes

import (
	"github.com/gomlx/symshape/graph"
)

// maxUnrollTrip bounds how many times a loop body is replicated. Shape
// programs loop over ranks, so anything past this is either a degenerate
// program or not worth the graph growth.
const maxUnrollTrip = 64

// UnrollConstantLoops replaces counted loops with their repeated bodies.
//
// A loop unrolls when its trip count is a known constant within
// maxUnrollTrip, its initial condition is constant true and its body always
// yields a constant-true continue condition, i.e. it is a plain counted
// loop. Each iteration splices a copy of the body before the loop with the
// iteration index substituted. A known trip count of zero (or a constant
// false initial condition) wires the carried inputs straight through.
//
// While-loops, whose continue condition is data dependent, are left alone:
// the analyzer cannot bound them and their results stay symbolic.
func UnrollConstantLoops(g *graph.Graph) {
	for changed := true; changed; {
		changed = false
		forEachBlock(g, func(b *graph.Block) {
			for _, n := range bodySnapshot(b) {
				if n.Destroyed() || n.Op() != graph.OpTypeLoop {
					continue
				}
				if unrollLoop(g, n) {
					changed = true
				}
			}
		})
	}
}

func unrollLoop(g *graph.Graph, n *graph.Node) bool {
	trip, tripKnown := n.Input(0).ConstantInt()
	initCond, initKnown := n.Input(1).ConstantBool()
	carried := n.Inputs()[2:]

	// Degenerate loops never run the body: forward the carried inputs.
	if (tripKnown && trip <= 0) || (initKnown && !initCond) {
		for i, out := range n.Outputs() {
			out.ReplaceAllUsesWith(carried[i])
		}
		n.Destroy()
		return true
	}

	if !tripKnown || !initKnown || trip > maxUnrollTrip {
		return false
	}
	body := n.Block(0)
	contCond, contKnown := body.Outputs()[0].ConstantBool()
	if !contKnown || !contCond {
		return false
	}

	cur := make([]*graph.Value, len(carried))
	copy(cur, carried)
	for i := 0; i < trip; i++ {
		args := make([]*graph.Value, 0, 1+len(cur))
		args = append(args, g.ConstBefore(n, i))
		args = append(args, cur...)
		outs := graph.SpliceBlock(n, body, args)
		cur = outs[1:] // outs[0] is the continue condition, known true
	}
	for i, out := range n.Outputs() {
		out.ReplaceAllUsesWith(cur[i])
	}
	n.Destroy()
	return true
}
