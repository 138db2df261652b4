// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

// OpType is an enum of every operation a Node can carry.
//
// The set is fixed and small: shape-compute programs manipulate ints, bools
// and int lists, and host graphs only add Operator call sites. Anything a
// shape function needs beyond this is expressed with If/Loop control flow.
type OpType int

//go:generate go tool enumer -type=OpType -trimprefix=OpType -output=gen_optype_enumer.go optype.go

const (
	OpTypeInvalid OpType = iota

	// Structural ops: the two block sentinels, constants, host operator
	// calls, control flow and runtime aborts.
	OpTypeParameter
	OpTypeReturn
	OpTypeConstant
	OpTypeOperator
	OpTypeIf
	OpTypeLoop
	OpTypeRaise

	// List and tuple ops.
	OpTypeListConstruct
	OpTypeListLen
	OpTypeListIndex
	OpTypeListAppend
	OpTypeListSlice
	OpTypeTupleConstruct
	OpTypeTupleIndex

	// Scalar arithmetic. FloorDiv and Mod use Python semantics: the result
	// of FloorDiv rounds toward negative infinity and Mod takes the sign of
	// the divisor.
	OpTypeAdd
	OpTypeSub
	OpTypeMul
	OpTypeFloorDiv
	OpTypeMod
	OpTypeMin
	OpTypeMax
	OpTypeNeg

	// Comparison and logic, all Bool valued.
	OpTypeEqual
	OpTypeNotEqual
	OpTypeLessThan
	OpTypeLessOrEqual
	OpTypeGreaterThan
	OpTypeGreaterOrEqual
	OpTypeLogicalAnd
	OpTypeLogicalOr
	OpTypeLogicalNot
	OpTypeIsNone

	// OpTypeLast is not an op, it marks the end of the enum.
	OpTypeLast
)

// HasSideEffects returns whether the op must be preserved even when its
// outputs are unused. Raise aborts the runtime and ListAppend mutates its
// list operand in place.
func (op OpType) HasSideEffects() bool {
	return op == OpTypeRaise || op == OpTypeListAppend
}

// IsControlFlow returns whether the op carries nested blocks.
func (op OpType) IsControlFlow() bool {
	return op == OpTypeIf || op == OpTypeLoop
}
