// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package passes

import (
	"github.com/gomlx/symshape/graph"
)

// ConstantPropagation folds every node it can prove constant: scalar
// arithmetic, comparisons and logic over constant operands, reads of
// constant lists, list constructions whose elements are all constant ints,
// and If nodes whose condition is constant (the taken branch is inlined).
//
// Loops are not touched here, UnrollConstantLoops owns them. Reads that
// would fail at runtime (index out of range, division by zero) are left in
// the graph untouched: the analyzer never guesses and never crashes on
// behalf of the runtime.
func ConstantPropagation(g *graph.Graph) {
	for changed := true; changed; {
		changed = false
		forEachBlock(g, func(b *graph.Block) {
			for _, n := range bodySnapshot(b) {
				if n.Destroyed() {
					continue
				}
				if foldNode(g, n) {
					changed = true
				}
			}
		})
	}
}

func foldNode(g *graph.Graph, n *graph.Node) bool {
	op := n.Op()
	switch {
	case scalarFoldOps.Has(op):
		literals := make([]any, n.NumInputs())
		for i := range literals {
			literal, ok := n.Input(i).ConstantValue()
			if !ok {
				return false
			}
			literals[i] = literal
		}
		result, ok := evalScalar(op, literals)
		if !ok {
			return false
		}
		g.ReplaceWithConstant(n.Output(), result)
		n.Destroy()
		return true

	case op == graph.OpTypeListLen:
		list, ok := n.Input(0).ConstantIntList()
		if !ok {
			return false
		}
		g.ReplaceWithConstant(n.Output(), len(list))
		n.Destroy()
		return true

	case op == graph.OpTypeListIndex:
		list, ok := n.Input(0).ConstantIntList()
		if !ok {
			return false
		}
		idx, ok := n.Input(1).ConstantInt()
		if !ok {
			return false
		}
		norm, ok := normIndex(idx, len(list))
		if !ok {
			return false
		}
		g.ReplaceWithConstant(n.Output(), list[norm])
		n.Destroy()
		return true

	case op == graph.OpTypeListSlice:
		list, ok := n.Input(0).ConstantIntList()
		if !ok {
			return false
		}
		bounds := make([]any, 3)
		for i := 0; i < 3; i++ {
			literal, isConst := n.Input(1 + i).ConstantValue()
			if !isConst {
				return false
			}
			bounds[i] = literal
		}
		sliced, ok := foldSlice(list, bounds[0], bounds[1], bounds[2])
		if !ok {
			return false
		}
		g.ReplaceWithConstant(n.Output(), sliced)
		n.Destroy()
		return true

	case op == graph.OpTypeListConstruct:
		return foldListConstruct(g, n)

	case op == graph.OpTypeIf:
		cond, ok := n.Input(0).ConstantBool()
		if !ok {
			return false
		}
		chosen := n.Block(0)
		if !cond {
			chosen = n.Block(1)
		}
		inlined := graph.SpliceBlock(n, chosen, nil)
		for i, out := range n.Outputs() {
			out.ReplaceAllUsesWith(inlined[i])
		}
		n.Destroy()
		return true
	}
	return false
}

// foldListConstruct turns ListConstruct of constant ints into a list
// constant, but only for int lists with no mutating uses: a list that is
// still being appended to has no final value to bake in.
func foldListConstruct(g *graph.Graph, n *graph.Node) bool {
	if !graph.IsIntList(n.Output().Type()) {
		return false
	}
	if hasMutatingUse(n.Output()) {
		return false
	}
	elems := make([]int, n.NumInputs())
	for i := range elems {
		value, ok := n.Input(i).ConstantInt()
		if !ok {
			return false
		}
		elems[i] = value
	}
	g.ReplaceWithConstant(n.Output(), elems)
	n.Destroy()
	return true
}

// normIndex resolves a possibly negative index against a length. The bool
// result is false when the index falls outside the list.
func normIndex(index, length int) (int, bool) {
	if index < 0 {
		index += length
	}
	if index < 0 || index >= length {
		return 0, false
	}
	return index, true
}

// foldSlice evaluates list[start:end:step] with Python semantics: nil
// bounds default per step direction, negative bounds count from the end,
// out-of-range bounds clamp. A zero step cannot be evaluated.
func foldSlice(list []int, startL, endL, stepL any) ([]int, bool) {
	step := 1
	if stepL != nil {
		s, ok := stepL.(int)
		if !ok {
			return nil, false
		}
		step = s
	}
	if step == 0 {
		return nil, false
	}
	n := len(list)
	var start, end int
	if step > 0 {
		start, end = 0, n
	} else {
		start, end = n-1, -n-1
	}
	if startL != nil {
		s, ok := startL.(int)
		if !ok {
			return nil, false
		}
		start = s
	}
	if endL != nil {
		e, ok := endL.(int)
		if !ok {
			return nil, false
		}
		end = e
	}
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	out := []int{}
	if step > 0 {
		start = clampInt(start, 0, n)
		end = clampInt(end, 0, n)
		for i := start; i < end; i += step {
			out = append(out, list[i])
		}
	} else {
		start = clampInt(start, -1, n-1)
		end = clampInt(end, -1, n-1)
		for i := start; i > end; i += step {
			out = append(out, list[i])
		}
	}
	return out, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
