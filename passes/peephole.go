// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package passes

import (
	"github.com/gomlx/symshape/graph"
)

// PeepholeOptimize applies local rewrites that need structure rather than
// constant operands: reads of a visible ListConstruct, arithmetic and logic
// identities, and comparisons of a value against itself.
//
// Arithmetic identities apply to Int values only; float identities are not
// generally sound (NaN, signed zero) and shape math never needs them.
func PeepholeOptimize(g *graph.Graph) {
	for changed := true; changed; {
		changed = false
		forEachBlock(g, func(b *graph.Block) {
			for _, n := range bodySnapshot(b) {
				if n.Destroyed() {
					continue
				}
				if peepholeNode(g, n) {
					changed = true
				}
			}
		})
	}
}

func peepholeNode(g *graph.Graph, n *graph.Node) bool {
	switch n.Op() {
	case graph.OpTypeListLen:
		// len of a visible, unmutated construct is its arity.
		construct := n.Input(0).Node()
		if construct.Op() != graph.OpTypeListConstruct || hasMutatingUse(n.Input(0)) {
			return false
		}
		g.ReplaceWithConstant(n.Output(), construct.NumInputs())
		n.Destroy()
		return true

	case graph.OpTypeListIndex:
		construct := n.Input(0).Node()
		if construct.Op() != graph.OpTypeListConstruct || hasMutatingUse(n.Input(0)) {
			return false
		}
		idx, ok := n.Input(1).ConstantInt()
		if !ok {
			return false
		}
		norm, ok := normIndex(idx, construct.NumInputs())
		if !ok {
			return false
		}
		replaceAndDestroy(n, construct.Input(norm))
		return true

	case graph.OpTypeAdd:
		if !isIntValued(n) {
			return false
		}
		if isConstInt(n.Input(1), 0) {
			replaceAndDestroy(n, n.Input(0))
			return true
		}
		if isConstInt(n.Input(0), 0) {
			replaceAndDestroy(n, n.Input(1))
			return true
		}
		return false

	case graph.OpTypeSub:
		if isIntValued(n) && isConstInt(n.Input(1), 0) {
			replaceAndDestroy(n, n.Input(0))
			return true
		}
		return false

	case graph.OpTypeMul:
		if !isIntValued(n) {
			return false
		}
		if isConstInt(n.Input(1), 1) {
			replaceAndDestroy(n, n.Input(0))
			return true
		}
		if isConstInt(n.Input(0), 1) {
			replaceAndDestroy(n, n.Input(1))
			return true
		}
		if isConstInt(n.Input(0), 0) || isConstInt(n.Input(1), 0) {
			g.ReplaceWithConstant(n.Output(), 0)
			n.Destroy()
			return true
		}
		return false

	case graph.OpTypeFloorDiv:
		if isIntValued(n) && isConstInt(n.Input(1), 1) {
			replaceAndDestroy(n, n.Input(0))
			return true
		}
		return false

	case graph.OpTypeMin, graph.OpTypeMax:
		if n.Input(0) == n.Input(1) {
			replaceAndDestroy(n, n.Input(0))
			return true
		}
		return false

	case graph.OpTypeLogicalNot:
		inner := n.Input(0).Node()
		if inner.Op() != graph.OpTypeLogicalNot {
			return false
		}
		replaceAndDestroy(n, inner.Input(0))
		return true

	case graph.OpTypeLogicalAnd, graph.OpTypeLogicalOr:
		return foldLogicWithConstant(g, n)

	case graph.OpTypeEqual, graph.OpTypeNotEqual:
		// x == x is true and x != x is false for Int and Bool values; the
		// comparison is not foldable for floats (NaN).
		if n.Input(0) != n.Input(1) {
			return false
		}
		if kind := n.Input(0).Type().Kind(); kind != graph.KindInt && kind != graph.KindBool {
			return false
		}
		g.ReplaceWithConstant(n.Output(), n.Op() == graph.OpTypeEqual)
		n.Destroy()
		return true
	}
	return false
}

// foldLogicWithConstant simplifies And/Or when one side is constant: the
// dominant constant wins outright, the neutral constant forwards the other
// side. Both operands are Bool valued and side-effect free, so dropping one
// is always sound.
func foldLogicWithConstant(g *graph.Graph, n *graph.Node) bool {
	for i := 0; i < 2; i++ {
		c, ok := n.Input(i).ConstantBool()
		if !ok {
			continue
		}
		other := n.Input(1 - i)
		dominant := n.Op() == graph.OpTypeLogicalOr
		if c == dominant {
			g.ReplaceWithConstant(n.Output(), dominant)
			n.Destroy()
		} else {
			replaceAndDestroy(n, other)
		}
		return true
	}
	return false
}

func isIntValued(n *graph.Node) bool {
	return n.Output().Type().Kind() == graph.KindInt
}

func isConstInt(v *graph.Value, want int) bool {
	value, ok := v.ConstantInt()
	return ok && value == want
}
