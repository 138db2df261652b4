// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package passes

import (
	"github.com/gomlx/symshape/graph"
)

// LowerSimpleTuples forwards TupleIndex reads of a directly visible
// TupleConstruct to the packed element, and drops tuple constructions that
// end up unused.
//
// Tuples that escape through a block boundary (an If output, a loop carried
// value, a block parameter) are left alone: the construct that produced them
// is not visible at the read, so there is nothing safe to forward.
func LowerSimpleTuples(g *graph.Graph) {
	for changed := true; changed; {
		changed = false
		forEachBlock(g, func(b *graph.Block) {
			for _, n := range bodySnapshot(b) {
				if n.Destroyed() {
					continue
				}
				switch n.Op() {
				case graph.OpTypeTupleIndex:
					if forwardTupleIndex(n) {
						changed = true
					}
				case graph.OpTypeTupleConstruct:
					if n.Output().NumUses() == 0 {
						n.Destroy()
						changed = true
					}
				}
			}
		})
	}
}

func forwardTupleIndex(n *graph.Node) bool {
	construct := n.Input(0).Node()
	if construct.Op() != graph.OpTypeTupleConstruct {
		return false
	}
	idx, ok := n.Input(1).ConstantInt()
	if !ok || idx < 0 || idx >= construct.NumInputs() {
		return false
	}
	replaceAndDestroy(n, construct.Input(idx))
	return true
}
