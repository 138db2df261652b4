// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"github.com/gomlx/exceptions"
)

// Block is an ordered list of nodes with its own inputs and outputs.
// The root block of a graph has a nil owner; If and Loop nodes own nested
// blocks.
//
// Inputs are produced by a Parameter sentinel and outputs are consumed by a
// Return sentinel. The sentinels are real nodes (so returned values have
// real uses) but are not part of the body.
type Block struct {
	graph *Graph
	owner *Node
	param *Node
	ret   *Node
	body  []*Node
}

// Graph that owns the block.
func (b *Block) Graph() *Graph { return b.graph }

// Owner returns the If/Loop node carrying this block, or nil for the root
// block.
func (b *Block) Owner() *Node { return b.owner }

// Inputs returns the block's parameter values.
func (b *Block) Inputs() []*Value { return b.param.outputs }

// Outputs returns the values the block returns.
func (b *Block) Outputs() []*Value { return b.ret.inputs }

// Nodes returns the body in order. The slice is internal, callers must not
// modify it; use the Insert/Move helpers instead.
func (b *Block) Nodes() []*Node { return b.body }

// ParamNode returns the parameter sentinel.
func (b *Block) ParamNode() *Node { return b.param }

// ReturnNode returns the return sentinel.
func (b *Block) ReturnNode() *Node { return b.ret }

// AddParam adds one parameter value of the given type to the block.
func (b *Block) AddParam(typ Type) *Value {
	return b.param.newOutput(typ)
}

// SetOutputs wires the block's return. It can only be called once.
func (b *Block) SetOutputs(vs ...*Value) {
	if len(b.ret.inputs) > 0 {
		exceptions.Panicf("Block.SetOutputs: outputs already set")
	}
	for _, v := range vs {
		b.ret.addInput(v)
	}
}

// IndexOf returns the position of n in the body, or -1 if n is not a direct
// member.
func (b *Block) IndexOf(n *Node) int {
	for i, member := range b.body {
		if member == n {
			return i
		}
	}
	return -1
}

// AncestorIndex returns the body position of the ancestor of n that is a
// direct member of b: n itself, or the If/Loop node (transitively) holding
// it. Returns -1 when n is not inside b. The return sentinel counts as
// sitting past the end of the body.
func (b *Block) AncestorIndex(n *Node) int {
	for n != nil {
		owning := n.block
		if owning == b {
			if n == b.ret {
				return len(b.body)
			}
			return b.IndexOf(n)
		}
		if owning == nil {
			return -1
		}
		n = owning.owner
	}
	return -1
}

// appendNode adds n at the end of the body.
func (b *Block) appendNode(n *Node) {
	n.block = b
	b.body = append(b.body, n)
}

// InsertAtFront moves a body-less placement of n to the head of the block.
func (b *Block) InsertAtFront(n *Node) {
	b.insertAt(n, 0)
}

// InsertBefore places n immediately before the node `before`, which must be
// a direct member of the body.
func (b *Block) InsertBefore(n *Node, before *Node) {
	at := b.IndexOf(before)
	if at < 0 {
		exceptions.Panicf("Block.InsertBefore: anchor %s node #%d is not in this block", before.op, before.id)
	}
	b.insertAt(n, at)
}

func (b *Block) insertAt(n *Node, at int) {
	n.block = b
	b.body = append(b.body, nil)
	copy(b.body[at+1:], b.body[at:])
	b.body[at] = n
}

// MoveToFront detaches n from its current block and re-inserts it at the
// front of b. Only valid for nodes without operands that dominate nothing
// they would now precede, e.g. constants being pooled.
func (b *Block) MoveToFront(n *Node) {
	if len(n.inputs) > 0 {
		exceptions.Panicf("Block.MoveToFront: %s node #%d has inputs, moving would break dominance", n.op, n.id)
	}
	n.block.removeFromBody(n)
	b.insertAt(n, 0)
}

// MoveBefore detaches n from its current block and re-inserts it immediately
// before the anchor, which must be a direct member of b. The caller is
// responsible for dominance: n's inputs must be defined at the new position
// and n's uses must come after it.
func (b *Block) MoveBefore(n *Node, before *Node) {
	at := b.IndexOf(before)
	if at < 0 {
		exceptions.Panicf("Block.MoveBefore: anchor %s node #%d is not in this block", before.op, before.id)
	}
	n.block.removeFromBody(n)
	b.InsertBefore(n, before)
}

func (b *Block) removeFromBody(n *Node) {
	at := b.IndexOf(n)
	if at < 0 {
		exceptions.Panicf("block: %s node #%d not found in owning block body", n.op, n.id)
	}
	b.body = append(b.body[:at], b.body[at+1:]...)
}
