// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package passes

import (
	"github.com/gomlx/symshape/graph"
)

// RemoveListMutation absorbs ListAppend mutations into the ListConstruct
// that created the list, in program order, so the list's final contents
// become visible to constant propagation and to output extraction.
//
// An append is absorbed only when it is safe to pretend the element was
// there from the start: the append must sit in the same block as the
// construct, and every other use of the list must come after the append
// (a read between construct and append would otherwise observe an element
// it should not). Uses inside nested blocks take the position of their
// ancestor node in the construct's block. The construct is moved down to
// the append's position, which keeps dominance intact for the absorbed
// element; absorbed appends' aliasing results are rewired to the list
// itself.
//
// Appends inside nested blocks (a loop body that has not been unrolled yet)
// are never absorbed; the list keeps its mutating use and stays opaque,
// which is exactly what keeps the analyzer from folding a list it cannot
// prove.
func RemoveListMutation(g *graph.Graph) {
	for changed := true; changed; {
		changed = false
		forEachBlock(g, func(b *graph.Block) {
			for _, n := range bodySnapshot(b) {
				if n.Destroyed() || n.Op() != graph.OpTypeListAppend {
					continue
				}
				if absorbAppend(b, n) {
					changed = true
				}
			}
		})
	}
}

func absorbAppend(b *graph.Block, ap *graph.Node) bool {
	list := ap.Input(0)
	construct := list.Node()
	if construct.Op() != graph.OpTypeListConstruct || construct.OwningBlock() != b {
		return false
	}
	at := b.IndexOf(ap)
	for _, u := range list.Uses() {
		if u.User == ap {
			continue
		}
		if b.AncestorIndex(u.User) < at {
			return false
		}
	}
	b.MoveBefore(construct, ap)
	construct.AddInput(ap.Input(1))
	ap.Output().ReplaceAllUsesWith(list)
	ap.Destroy()
	return true
}
