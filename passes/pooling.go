// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package passes

import (
	"fmt"

	"github.com/gomlx/symshape/graph"
)

// ConstantPooling deduplicates constants graph wide: the first occurrence of
// each literal survives, moved to the front of the root block where it
// dominates everything, and every other occurrence is rewired to it.
//
// Rounds of substitution and splicing mint the same small integers over and
// over; pooling them keeps the specialized program (and its dumps) small.
func ConstantPooling(g *graph.Graph) {
	pooled := make(map[string]*graph.Value)
	forEachBlock(g, func(b *graph.Block) {
		for _, n := range bodySnapshot(b) {
			if n.Destroyed() || n.Op() != graph.OpTypeConstant {
				continue
			}
			key := literalKey(n.Literal())
			canonical, seen := pooled[key]
			if !seen {
				g.Root().MoveToFront(n)
				pooled[key] = n.Output()
				continue
			}
			n.Output().ReplaceAllUsesWith(canonical)
			n.Destroy()
		}
	})
}

// literalKey builds a collision-free map key for a constant literal. The
// type tag keeps int(1) apart from float64(1) and []int{} apart from None.
func literalKey(literal any) string {
	switch v := literal.(type) {
	case nil:
		return "none"
	case int:
		return fmt.Sprintf("i:%d", v)
	case bool:
		return fmt.Sprintf("b:%t", v)
	case float64:
		return fmt.Sprintf("f:%x", v)
	case []int:
		return fmt.Sprintf("l:%v", v)
	}
	return fmt.Sprintf("?:%v", literal)
}
