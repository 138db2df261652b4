// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"github.com/gomlx/exceptions"
)

// NodeId is a unique identifier of a Node within its Graph. It indexes the
// graph's node arena and stays stable for the node's whole life, including
// across destruction of other nodes.
type NodeId int

// InvalidNodeId is returned when no valid node id exists.
const InvalidNodeId = NodeId(-1)

// Node is one operation in a block. Its identity is (graph, id); its
// position is the owning block's body order. Parameter and Return sentinels
// belong to a block but not to its body.
type Node struct {
	graph     *Graph
	id        NodeId
	op        OpType
	block     *Block
	inputs    []*Value
	outputs   []*Value
	blocks    []*Block
	literal   any    // OpTypeConstant payload
	schema    Schema // OpTypeOperator call target
	message   string // OpTypeRaise message
	destroyed bool
}

// Graph that owns the node.
func (n *Node) Graph() *Graph { return n.graph }

// Id of the node within its graph arena.
func (n *Node) Id() NodeId { return n.id }

// Op of the node.
func (n *Node) Op() OpType { return n.op }

// OwningBlock returns the block this node sits in. For the sentinels it is
// the block they delimit; for every other node the block whose body lists it.
func (n *Node) OwningBlock() *Block { return n.block }

// Inputs returns the consumed values in order. The slice is internal,
// callers must not modify it directly.
func (n *Node) Inputs() []*Value { return n.inputs }

// NumInputs returns the number of inputs.
func (n *Node) NumInputs() int { return len(n.inputs) }

// Input returns the i-th input.
func (n *Node) Input(i int) *Value { return n.inputs[i] }

// Outputs returns the produced values in order. The slice is internal,
// callers must not modify it directly.
func (n *Node) Outputs() []*Value { return n.outputs }

// NumOutputs returns the number of outputs.
func (n *Node) NumOutputs() int { return len(n.outputs) }

// Output returns the node's single output and panics if the node does not
// have exactly one.
func (n *Node) Output() *Value {
	if len(n.outputs) != 1 {
		exceptions.Panicf("Node.Output: %s node #%d has %d outputs, want exactly 1", n.op, n.id, len(n.outputs))
	}
	return n.outputs[0]
}

// Blocks returns the nested blocks: two for If (then, else), one for Loop.
func (n *Node) Blocks() []*Block { return n.blocks }

// NumBlocks returns the number of nested blocks.
func (n *Node) NumBlocks() int { return len(n.blocks) }

// Block returns the i-th nested block.
func (n *Node) Block(i int) *Block { return n.blocks[i] }

// Literal returns the constant payload of an OpTypeConstant node. List
// payloads are cloned.
func (n *Node) Literal() any {
	if list, ok := n.literal.([]int); ok {
		cloned := make([]int, len(list))
		copy(cloned, list)
		return cloned
	}
	return n.literal
}

// Schema returns the call target of an OpTypeOperator node.
func (n *Node) Schema() Schema { return n.schema }

// Message returns the abort message of an OpTypeRaise node.
func (n *Node) Message() string { return n.message }

// Destroyed reports whether the node has been removed from its graph.
func (n *Node) Destroyed() bool { return n.destroyed }

// addInput appends a value to the node's inputs, registering the use.
func (n *Node) addInput(v *Value) {
	if v == nil {
		exceptions.Panicf("node %s: nil input", n.op)
	}
	if v.Graph() != n.graph {
		exceptions.Panicf("node %s: input from different graph %q", n.op, v.Graph().Name())
	}
	v.addUse(n, len(n.inputs))
	n.inputs = append(n.inputs, v)
}

// AddInput appends one more input to the node. Passes use it to absorb list
// appends into their originating ListConstruct.
func (n *Node) AddInput(v *Value) {
	n.addInput(v)
}

// ReplaceInput makes input i consume v instead, maintaining use lists.
func (n *Node) ReplaceInput(i int, v *Value) {
	if v == nil {
		exceptions.Panicf("Node.ReplaceInput: nil value")
	}
	old := n.inputs[i]
	if old == v {
		return
	}
	old.removeUse(n, i)
	v.addUse(n, i)
	n.inputs[i] = v
}

// newOutput creates and registers one more output value of the given type.
func (n *Node) newOutput(typ Type) *Value {
	if typ == nil {
		exceptions.Panicf("node %s: nil output type", n.op)
	}
	v := &Value{
		node:  n,
		index: len(n.outputs),
		id:    n.graph.nextValueId(),
		typ:   typ,
	}
	n.outputs = append(n.outputs, v)
	return v
}

// Destroy removes the node from its graph: unlinks every input use
// (recursively through nested blocks), requires all outputs to be unused,
// and removes the node from its block's body. The arena slot stays occupied
// so other node ids remain stable.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	for _, out := range n.outputs {
		if out.NumUses() > 0 {
			exceptions.Panicf("Node.Destroy: output %s of %s node #%d still has %d uses", out, n.op, n.id, out.NumUses())
		}
	}
	n.unlinkTree()
	n.block.removeFromBody(n)
}

// unlinkTree drops the input uses of the node and of everything inside its
// nested blocks, marking all of them destroyed. Body bookkeeping of nested
// blocks is not updated, the blocks die with the node.
func (n *Node) unlinkTree() {
	for i, in := range n.inputs {
		in.removeUse(n, i)
	}
	n.inputs = nil
	for _, b := range n.blocks {
		for _, inner := range b.body {
			inner.unlinkTree()
		}
		b.ret.unlinkTree()
	}
	n.destroyed = true
}
