// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"github.com/google/uuid"

	"github.com/gomlx/exceptions"
)

// valueMap carries old-value to new-value substitutions during cloning.
// Values defined outside the cloned region map to themselves.
type valueMap map[*Value]*Value

func (m valueMap) lookup(v *Value) *Value {
	if mapped, ok := m[v]; ok {
		return mapped
	}
	return v
}

// cloneNodeInto clones src (including nested blocks) into dst, inserted
// before the given anchor or appended when the anchor is nil. Inputs are
// remapped through m; the clone's outputs are registered into m.
func cloneNodeInto(dst *Block, before *Node, src *Node, m valueMap) *Node {
	g := dst.graph
	n := g.newNode(src.op, dst, false)
	n.literal = cloneLiteral(src.literal)
	n.schema = src.schema
	n.message = src.message
	if before == nil {
		dst.appendNode(n)
	} else {
		dst.InsertBefore(n, before)
	}
	for _, in := range src.inputs {
		n.addInput(m.lookup(in))
	}
	for _, out := range src.outputs {
		m[out] = n.newOutput(out.typ)
	}
	for _, b := range src.blocks {
		nested := g.newBlock(n)
		n.blocks = append(n.blocks, nested)
		for _, p := range b.param.outputs {
			m[p] = nested.AddParam(p.typ)
		}
		for _, inner := range b.body {
			cloneNodeInto(nested, nil, inner, m)
		}
		outs := make([]*Value, 0, len(b.ret.inputs))
		for _, o := range b.ret.inputs {
			outs = append(outs, m.lookup(o))
		}
		nested.SetOutputs(outs...)
	}
	return n
}

// SpliceBlock clones the body of src immediately before the given node,
// substituting args for src's parameters, and returns src's output values
// remapped through the clone. References to values defined outside src pass
// through untouched.
//
// This is the primitive behind If inlining at a constant condition and loop
// body unrolling.
func SpliceBlock(before *Node, src *Block, args []*Value) []*Value {
	g := before.graph
	if src.graph != g {
		exceptions.Panicf("SpliceBlock: block of graph %q spliced into graph %q", src.graph.name, g.name)
	}
	params := src.Inputs()
	if len(args) != len(params) {
		exceptions.Panicf("SpliceBlock: %d args for %d block parameters", len(args), len(params))
	}
	m := make(valueMap, len(params))
	for i, p := range params {
		if !args[i].Type().Equal(p.Type()) {
			exceptions.Panicf("SpliceBlock: arg #%d is %s, parameter wants %s", i, args[i].Type(), p.Type())
		}
		m[p] = args[i]
	}
	dst := before.block
	for _, n := range src.body {
		cloneNodeInto(dst, before, n, m)
	}
	outs := make([]*Value, 0, len(src.Outputs()))
	for _, o := range src.Outputs() {
		outs = append(outs, m.lookup(o))
	}
	return outs
}

// Clone returns a deep copy of the graph. The copy's name is the original
// name plus a short unique suffix, so log lines from concurrent analyses of
// the same program stay distinguishable. Node and value identities are
// fresh; constant payloads are copied.
func (g *Graph) Clone() *Graph {
	cloned := New(g.name + "#" + uuid.NewString()[:8])
	m := make(valueMap, len(g.nodes))
	for _, in := range g.Inputs() {
		m[in] = cloned.Input(in.typ)
	}
	for _, n := range g.root.body {
		cloneNodeInto(cloned.root, nil, n, m)
	}
	outs := g.Outputs()
	if len(outs) > 0 {
		mapped := make([]*Value, 0, len(outs))
		for _, o := range outs {
			mapped = append(mapped, m.lookup(o))
		}
		cloned.root.SetOutputs(mapped...)
	}
	return cloned
}
