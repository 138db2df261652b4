// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"github.com/gomlx/exceptions"
)

// The builder methods below append nodes to the current insertion block:
// the root block normally, or the nested block under construction inside an
// If/Loop closure. They panic with exceptions on misuse.

func (g *Graph) checkBuild(op string, vs ...*Value) {
	for _, v := range vs {
		if v == nil {
			exceptions.Panicf("graph %q: %s called with nil value", g.name, op)
		}
		if v.Graph() != g {
			exceptions.Panicf("graph %q: %s called with value from graph %q", g.name, op, v.Graph().Name())
		}
		if v.node.destroyed {
			exceptions.Panicf("graph %q: %s called with value of destroyed node #%d", g.name, op, v.node.id)
		}
	}
}

func (g *Graph) checkNumeric(op string, vs ...*Value) {
	for _, v := range vs {
		if kind := v.Type().Kind(); kind != KindInt && kind != KindFloat {
			exceptions.Panicf("graph %q: %s requires Int or Float operands, got %s", g.name, op, v.Type())
		}
	}
}

func arithResultType(x, y *Value) Type {
	if x.Type().Kind() == KindFloat || y.Type().Kind() == KindFloat {
		return Float
	}
	return Int
}

// Input declares one more graph parameter. Only valid on the root block,
// not inside If/Loop closures.
func (g *Graph) Input(typ Type) *Value {
	if typ == nil {
		exceptions.Panicf("graph %q: Input with nil type", g.name)
	}
	if g.cur != g.root {
		exceptions.Panicf("graph %q: Input declared while building a nested block", g.name)
	}
	return g.root.AddParam(typ)
}

// Return declares the graph's outputs. It can only be called once.
func (g *Graph) Return(vs ...*Value) {
	g.checkBuild("Return", vs...)
	if g.cur != g.root {
		exceptions.Panicf("graph %q: Return called while building a nested block", g.name)
	}
	g.root.SetOutputs(vs...)
}

// Const creates a constant in the current block. Valid literals are int,
// bool, float64, nil and []int.
func (g *Graph) Const(literal any) *Value {
	typ := TypeOfLiteral(literal)
	n := g.newNode(OpTypeConstant, g.cur, true)
	n.literal = cloneLiteral(literal)
	return n.newOutput(typ)
}

// ListConstruct creates a list of the given element type. The element type
// must be passed explicitly so empty lists stay typed.
func (g *Graph) ListConstruct(elem Type, elems ...*Value) *Value {
	if elem == nil {
		exceptions.Panicf("graph %q: ListConstruct with nil element type", g.name)
	}
	g.checkBuild("ListConstruct", elems...)
	for i, e := range elems {
		if !e.Type().Equal(elem) {
			exceptions.Panicf("graph %q: ListConstruct element #%d is %s, want %s", g.name, i, e.Type(), elem)
		}
	}
	n := g.newNode(OpTypeListConstruct, g.cur, true)
	for _, e := range elems {
		n.addInput(e)
	}
	return n.newOutput(ListOf(elem))
}

// Append appends elem to list in place and returns the (aliasing) result
// value.
func (g *Graph) Append(list, elem *Value) *Value {
	g.checkBuild("Append", list, elem)
	listType, ok := list.Type().(*ListType)
	if !ok {
		exceptions.Panicf("graph %q: Append to non-list %s", g.name, list.Type())
	}
	if !elem.Type().Equal(listType.Elem) {
		exceptions.Panicf("graph %q: Append of %s to %s", g.name, elem.Type(), list.Type())
	}
	n := g.newNode(OpTypeListAppend, g.cur, true)
	n.addInput(list)
	n.addInput(elem)
	return n.newOutput(list.Type())
}

// Len returns the length of a list.
func (g *Graph) Len(list *Value) *Value {
	g.checkBuild("Len", list)
	if list.Type().Kind() != KindList {
		exceptions.Panicf("graph %q: Len of non-list %s", g.name, list.Type())
	}
	n := g.newNode(OpTypeListLen, g.cur, true)
	n.addInput(list)
	return n.newOutput(Int)
}

// Index returns list[idx]. Negative indices count from the end at runtime.
func (g *Graph) Index(list, idx *Value) *Value {
	g.checkBuild("Index", list, idx)
	listType, ok := list.Type().(*ListType)
	if !ok {
		exceptions.Panicf("graph %q: Index of non-list %s", g.name, list.Type())
	}
	if idx.Type().Kind() != KindInt {
		exceptions.Panicf("graph %q: Index with non-int index %s", g.name, idx.Type())
	}
	n := g.newNode(OpTypeListIndex, g.cur, true)
	n.addInput(list)
	n.addInput(idx)
	return n.newOutput(listType.Elem)
}

// Slice returns list[start:end:step]. Pass Const(nil) for defaulted bounds;
// step defaults to 1 when None.
func (g *Graph) Slice(list, start, end, step *Value) *Value {
	g.checkBuild("Slice", list, start, end, step)
	if list.Type().Kind() != KindList {
		exceptions.Panicf("graph %q: Slice of non-list %s", g.name, list.Type())
	}
	for _, bound := range []*Value{start, end, step} {
		if kind := bound.Type().Kind(); kind != KindInt && kind != KindNone && kind != KindOptional {
			exceptions.Panicf("graph %q: Slice bound must be Int or None, got %s", g.name, bound.Type())
		}
	}
	n := g.newNode(OpTypeListSlice, g.cur, true)
	n.addInput(list)
	n.addInput(start)
	n.addInput(end)
	n.addInput(step)
	return n.newOutput(list.Type())
}

// TupleConstruct packs values into a tuple.
func (g *Graph) TupleConstruct(vs ...*Value) *Value {
	g.checkBuild("TupleConstruct", vs...)
	types := make([]Type, len(vs))
	for i, v := range vs {
		types[i] = v.Type()
	}
	n := g.newNode(OpTypeTupleConstruct, g.cur, true)
	for _, v := range vs {
		n.addInput(v)
	}
	return n.newOutput(TupleOf(types...))
}

// TupleIndex extracts element i of a tuple. The index is a compile-time
// constant and becomes a constant input node.
func (g *Graph) TupleIndex(tup *Value, i int) *Value {
	g.checkBuild("TupleIndex", tup)
	tupType, ok := tup.Type().(*TupleType)
	if !ok {
		exceptions.Panicf("graph %q: TupleIndex of non-tuple %s", g.name, tup.Type())
	}
	if i < 0 || i >= len(tupType.Elems) {
		exceptions.Panicf("graph %q: TupleIndex %d out of range for %s", g.name, i, tup.Type())
	}
	idx := g.Const(i)
	n := g.newNode(OpTypeTupleIndex, g.cur, true)
	n.addInput(tup)
	n.addInput(idx)
	return n.newOutput(tupType.Elems[i])
}

func (g *Graph) binaryArith(op OpType, x, y *Value) *Value {
	g.checkBuild(op.String(), x, y)
	g.checkNumeric(op.String(), x, y)
	n := g.newNode(op, g.cur, true)
	n.addInput(x)
	n.addInput(y)
	return n.newOutput(arithResultType(x, y))
}

// Add returns x + y.
func (g *Graph) Add(x, y *Value) *Value { return g.binaryArith(OpTypeAdd, x, y) }

// Sub returns x - y.
func (g *Graph) Sub(x, y *Value) *Value { return g.binaryArith(OpTypeSub, x, y) }

// Mul returns x * y.
func (g *Graph) Mul(x, y *Value) *Value { return g.binaryArith(OpTypeMul, x, y) }

// FloorDiv returns x // y with Python rounding (toward negative infinity).
func (g *Graph) FloorDiv(x, y *Value) *Value { return g.binaryArith(OpTypeFloorDiv, x, y) }

// Mod returns x % y with Python semantics (result takes the divisor sign).
func (g *Graph) Mod(x, y *Value) *Value { return g.binaryArith(OpTypeMod, x, y) }

// Min returns the smaller of x and y.
func (g *Graph) Min(x, y *Value) *Value { return g.binaryArith(OpTypeMin, x, y) }

// Max returns the larger of x and y.
func (g *Graph) Max(x, y *Value) *Value { return g.binaryArith(OpTypeMax, x, y) }

// Neg returns -x.
func (g *Graph) Neg(x *Value) *Value {
	g.checkBuild("Neg", x)
	g.checkNumeric("Neg", x)
	n := g.newNode(OpTypeNeg, g.cur, true)
	n.addInput(x)
	return n.newOutput(x.Type())
}

func (g *Graph) binaryCompare(op OpType, x, y *Value, numeric bool) *Value {
	g.checkBuild(op.String(), x, y)
	if numeric {
		g.checkNumeric(op.String(), x, y)
	}
	n := g.newNode(op, g.cur, true)
	n.addInput(x)
	n.addInput(y)
	return n.newOutput(Bool)
}

// Equal returns x == y.
func (g *Graph) Equal(x, y *Value) *Value { return g.binaryCompare(OpTypeEqual, x, y, false) }

// NotEqual returns x != y.
func (g *Graph) NotEqual(x, y *Value) *Value { return g.binaryCompare(OpTypeNotEqual, x, y, false) }

// LessThan returns x < y.
func (g *Graph) LessThan(x, y *Value) *Value { return g.binaryCompare(OpTypeLessThan, x, y, true) }

// LessOrEqual returns x <= y.
func (g *Graph) LessOrEqual(x, y *Value) *Value {
	return g.binaryCompare(OpTypeLessOrEqual, x, y, true)
}

// GreaterThan returns x > y.
func (g *Graph) GreaterThan(x, y *Value) *Value {
	return g.binaryCompare(OpTypeGreaterThan, x, y, true)
}

// GreaterOrEqual returns x >= y.
func (g *Graph) GreaterOrEqual(x, y *Value) *Value {
	return g.binaryCompare(OpTypeGreaterOrEqual, x, y, true)
}

func (g *Graph) binaryLogic(op OpType, x, y *Value) *Value {
	g.checkBuild(op.String(), x, y)
	for _, v := range []*Value{x, y} {
		if v.Type().Kind() != KindBool {
			exceptions.Panicf("graph %q: %s requires Bool operands, got %s", g.name, op, v.Type())
		}
	}
	n := g.newNode(op, g.cur, true)
	n.addInput(x)
	n.addInput(y)
	return n.newOutput(Bool)
}

// And returns x && y.
func (g *Graph) And(x, y *Value) *Value { return g.binaryLogic(OpTypeLogicalAnd, x, y) }

// Or returns x || y.
func (g *Graph) Or(x, y *Value) *Value { return g.binaryLogic(OpTypeLogicalOr, x, y) }

// Not returns !x.
func (g *Graph) Not(x *Value) *Value {
	g.checkBuild("Not", x)
	if x.Type().Kind() != KindBool {
		exceptions.Panicf("graph %q: Not requires a Bool operand, got %s", g.name, x.Type())
	}
	n := g.newNode(OpTypeLogicalNot, g.cur, true)
	n.addInput(x)
	return n.newOutput(Bool)
}

// IsNone tests whether x is None.
func (g *Graph) IsNone(x *Value) *Value {
	g.checkBuild("IsNone", x)
	n := g.newNode(OpTypeIsNone, g.cur, true)
	n.addInput(x)
	return n.newOutput(Bool)
}

// Raise aborts execution with the message. It has no outputs and is never
// removed while reachable.
func (g *Graph) Raise(msg string) {
	n := g.newNode(OpTypeRaise, g.cur, true)
	n.message = msg
}

// If builds conditional control flow. Both closures run immediately to
// build the two branches; each returns the values its branch yields. Both
// branches must yield the same number and types of values, which become the
// If node's outputs.
func (g *Graph) If(cond *Value, thenFn, elseFn func() []*Value) []*Value {
	g.checkBuild("If", cond)
	if cond.Type().Kind() != KindBool {
		exceptions.Panicf("graph %q: If condition must be Bool, got %s", g.name, cond.Type())
	}
	n := g.newNode(OpTypeIf, g.cur, true)
	n.addInput(cond)
	thenOuts := g.buildBranch(n, thenFn)
	elseOuts := g.buildBranch(n, elseFn)
	if len(thenOuts) != len(elseOuts) {
		exceptions.Panicf("graph %q: If branches yield %d vs %d values", g.name, len(thenOuts), len(elseOuts))
	}
	for i := range thenOuts {
		if !thenOuts[i].Type().Equal(elseOuts[i].Type()) {
			exceptions.Panicf("graph %q: If branches yield %s vs %s at position %d",
				g.name, thenOuts[i].Type(), elseOuts[i].Type(), i)
		}
		n.newOutput(thenOuts[i].Type())
	}
	return n.Outputs()
}

func (g *Graph) buildBranch(n *Node, fn func() []*Value) []*Value {
	b := g.newBlock(n)
	n.blocks = append(n.blocks, b)
	saved := g.cur
	g.cur = b
	outs := fn()
	g.cur = saved
	g.checkBuild("If branch yield", outs...)
	b.SetOutputs(outs...)
	return outs
}

// Select returns x if cond else y, emitted as a real If node so the
// simplifier sees ordinary control flow.
func (g *Graph) Select(cond, x, y *Value) *Value {
	g.checkBuild("Select", cond, x, y)
	if !x.Type().Equal(y.Type()) {
		exceptions.Panicf("graph %q: Select arms have types %s vs %s", g.name, x.Type(), y.Type())
	}
	outs := g.If(cond,
		func() []*Value { return []*Value{x} },
		func() []*Value { return []*Value{y} },
	)
	return outs[0]
}

// Loop builds counted/while control flow with the usual semantics: the body
// runs while the iteration count is below maxTrip and the condition holds.
// The condition is initCond before the first iteration and the body's first
// yielded value after each one. carried values flow through the loop; the
// body closure receives the iteration counter and the carried values as
// block parameters and yields (nextCond, carried').
func (g *Graph) Loop(maxTrip, initCond *Value, carried []*Value, body func(iter *Value, carried []*Value) (*Value, []*Value)) []*Value {
	g.checkBuild("Loop", append([]*Value{maxTrip, initCond}, carried...)...)
	if maxTrip.Type().Kind() != KindInt {
		exceptions.Panicf("graph %q: Loop trip count must be Int, got %s", g.name, maxTrip.Type())
	}
	if initCond.Type().Kind() != KindBool {
		exceptions.Panicf("graph %q: Loop condition must be Bool, got %s", g.name, initCond.Type())
	}
	n := g.newNode(OpTypeLoop, g.cur, true)
	n.addInput(maxTrip)
	n.addInput(initCond)
	for _, c := range carried {
		n.addInput(c)
	}

	b := g.newBlock(n)
	n.blocks = append(n.blocks, b)
	iter := b.AddParam(Int)
	params := make([]*Value, len(carried))
	for i, c := range carried {
		params[i] = b.AddParam(c.Type())
	}
	saved := g.cur
	g.cur = b
	nextCond, outs := body(iter, params)
	g.cur = saved

	g.checkBuild("Loop yield", append([]*Value{nextCond}, outs...)...)
	if nextCond.Type().Kind() != KindBool {
		exceptions.Panicf("graph %q: Loop body must yield a Bool condition first, got %s", g.name, nextCond.Type())
	}
	if len(outs) != len(carried) {
		exceptions.Panicf("graph %q: Loop body yields %d carried values, want %d", g.name, len(outs), len(carried))
	}
	for i := range outs {
		if !outs[i].Type().Equal(carried[i].Type()) {
			exceptions.Panicf("graph %q: Loop carried value #%d is %s, body yields %s",
				g.name, i, carried[i].Type(), outs[i].Type())
		}
	}
	b.SetOutputs(append([]*Value{nextCond}, outs...)...)
	for _, out := range outs {
		n.newOutput(out.Type())
	}
	return n.Outputs()
}

// ForRange builds the common counted loop: body runs trip times with the
// iteration counter, carrying nothing. Appends inside the body are how
// results escape.
func (g *Graph) ForRange(trip *Value, body func(iter *Value)) {
	g.Loop(trip, g.Const(true), nil, func(iter *Value, _ []*Value) (*Value, []*Value) {
		body(iter)
		return g.Const(true), nil
	})
}

// Operator creates a host-graph call site for the given operator schema,
// with one output of the given type.
func (g *Graph) Operator(schema Schema, out Type, ins ...*Value) *Value {
	g.checkBuild("Operator", ins...)
	if out == nil {
		exceptions.Panicf("graph %q: Operator %s with nil output type", g.name, schema)
	}
	n := g.newNode(OpTypeOperator, g.cur, true)
	n.schema = schema
	for _, in := range ins {
		n.addInput(in)
	}
	return n.newOutput(out)
}
