// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// ValueId is a unique identifier of a Value within its Graph.
type ValueId int

// InvalidValueId is returned when no valid value id exists.
const InvalidValueId = ValueId(-1)

// Use records one consumption of a Value: the consuming node and the input
// position within it.
type Use struct {
	User  *Node
	Index int
}

// Value is an edge of the graph: produced by exactly one node output (block
// parameters are produced by the block's parameter sentinel) and consumed by
// an ordered list of uses.
//
// A value consumed by its block's return counts that as a regular use; a
// value whose only consumer is the return has exactly one use.
type Value struct {
	node  *Node
	index int
	id    ValueId
	typ   Type
	uses  []Use
}

// Node returns the producer. Never nil: block parameters return the
// parameter sentinel node.
func (v *Value) Node() *Node { return v.node }

// Index of this value among the producer's outputs.
func (v *Value) Index() int { return v.index }

// Id returns the value id, unique within the graph.
func (v *Value) Id() ValueId { return v.id }

// Graph that owns the value.
func (v *Value) Graph() *Graph { return v.node.graph }

// Type of the value.
func (v *Value) Type() Type { return v.typ }

// SetType replaces the value's type. The shape propagation driver uses this
// to install inferred tensor shapes.
func (v *Value) SetType(typ Type) {
	if typ == nil {
		exceptions.Panicf("Value.SetType: nil type for %s", v)
	}
	v.typ = typ
}

// Uses returns the value's uses in registration order. The returned slice is
// the internal one, callers must not modify it.
func (v *Value) Uses() []Use { return v.uses }

// NumUses returns how many inputs consume this value.
func (v *Value) NumUses() int { return len(v.uses) }

func (v *Value) addUse(user *Node, index int) {
	v.uses = append(v.uses, Use{User: user, Index: index})
}

func (v *Value) removeUse(user *Node, index int) {
	for i, u := range v.uses {
		if u.User == user && u.Index == index {
			v.uses = append(v.uses[:i], v.uses[i+1:]...)
			return
		}
	}
	exceptions.Panicf("Value.removeUse: use (%s input #%d) not registered on %s", user.Op(), index, v)
}

// ReplaceAllUsesWith rewires every use of v to consume other instead.
// v keeps its producer and ends up with zero uses.
func (v *Value) ReplaceAllUsesWith(other *Value) {
	if other == v {
		return
	}
	if other.Graph() != v.Graph() {
		exceptions.Panicf("Value.ReplaceAllUsesWith: values belong to different graphs (%q vs %q)",
			v.Graph().Name(), other.Graph().Name())
	}
	uses := v.uses
	v.uses = nil
	for _, u := range uses {
		u.User.inputs[u.Index] = other
		other.addUse(u.User, u.Index)
	}
}

// IsConstant returns whether the value is produced by a Constant node.
func (v *Value) IsConstant() bool {
	return v.node.op == OpTypeConstant
}

// ConstantValue returns the literal behind the value if it is produced by a
// Constant node. List literals are cloned, callers may keep them.
func (v *Value) ConstantValue() (literal any, ok bool) {
	if v.node.op != OpTypeConstant {
		return nil, false
	}
	if list, isList := v.node.literal.([]int); isList {
		cloned := make([]int, len(list))
		copy(cloned, list)
		return cloned, true
	}
	return v.node.literal, true
}

// ConstantInt returns the value as an int constant, if it is one.
func (v *Value) ConstantInt() (value int, ok bool) {
	literal, isConst := v.ConstantValue()
	if !isConst {
		return 0, false
	}
	value, ok = literal.(int)
	return
}

// ConstantBool returns the value as a bool constant, if it is one.
func (v *Value) ConstantBool() (value bool, ok bool) {
	literal, isConst := v.ConstantValue()
	if !isConst {
		return false, false
	}
	value, ok = literal.(bool)
	return
}

// ConstantIntList returns the value as an []int constant, if it is one.
// The returned slice is a private copy.
func (v *Value) ConstantIntList() (value []int, ok bool) {
	literal, isConst := v.ConstantValue()
	if !isConst {
		return nil, false
	}
	value, ok = literal.([]int)
	return
}

// String renders the value reference the way the graph printer does.
func (v *Value) String() string {
	return fmt.Sprintf("%%%d", v.id)
}
