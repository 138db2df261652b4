// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package passes

import (
	"github.com/gomlx/symshape/graph"
)

// EliminateDeadCode removes every node that cannot influence the graph's
// outputs or its runtime aborts.
//
// Liveness roots are the graph outputs and all Raise nodes: a shape program
// that would abort must keep aborting after simplification. Liveness flows
// backward through inputs, keeps the control-flow node around any live
// nested node, and keeps every ListAppend that mutates a live list, because
// an observer of the list observes the append. Dead append chains (the list
// itself is unobserved) vanish together with their construct.
func EliminateDeadCode(g *graph.Graph) {
	d := &deadCode{live: make(map[*graph.Node]bool)}
	for _, out := range g.Outputs() {
		d.markValue(out)
	}
	forEachBlock(g, func(b *graph.Block) {
		for _, n := range b.Nodes() {
			if n.Op() == graph.OpTypeRaise {
				d.markNode(n)
			}
		}
	})
	d.sweep(g.Root())
}

type deadCode struct {
	live map[*graph.Node]bool
}

func (d *deadCode) markNode(n *graph.Node) {
	if d.live[n] {
		return
	}
	d.live[n] = true
	for _, in := range n.Inputs() {
		d.markValue(in)
	}
	// A live node inside a nested block keeps its control-flow owner, and a
	// live control-flow node needs its blocks' returned values.
	if owner := n.OwningBlock().Owner(); owner != nil {
		d.markNode(owner)
	}
	for _, b := range n.Blocks() {
		for _, out := range b.Outputs() {
			d.markValue(out)
		}
	}
}

func (d *deadCode) markValue(v *graph.Value) {
	d.markNode(v.Node())
	for _, u := range v.Uses() {
		if u.User.Op() == graph.OpTypeListAppend && u.Index == 0 {
			d.markNode(u.User)
		}
	}
}

// sweep destroys dead nodes in reverse program order, so users die before
// their producers; nested blocks of surviving nodes are swept in place.
func (d *deadCode) sweep(b *graph.Block) {
	body := bodySnapshot(b)
	for i := len(body) - 1; i >= 0; i-- {
		n := body[i]
		if n.Destroyed() {
			continue
		}
		if d.live[n] {
			for _, nested := range n.Blocks() {
				d.sweep(nested)
			}
			continue
		}
		n.Destroy()
	}
}
