// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package passes

import (
	"math"

	"github.com/gomlx/symshape/graph"
)

// evalScalar evaluates a pure scalar op over constant literals. The bool
// result reports whether the op could be evaluated; division by zero and
// type mismatches return false and are left in the graph for the runtime
// to report.
func evalScalar(op graph.OpType, literals []any) (any, bool) {
	switch op {
	case graph.OpTypeNeg:
		switch v := literals[0].(type) {
		case int:
			return -v, true
		case float64:
			return -v, true
		}
		return nil, false

	case graph.OpTypeLogicalNot:
		if b, ok := literals[0].(bool); ok {
			return !b, true
		}
		return nil, false

	case graph.OpTypeIsNone:
		return literals[0] == nil, true

	case graph.OpTypeLogicalAnd, graph.OpTypeLogicalOr:
		x, okX := literals[0].(bool)
		y, okY := literals[1].(bool)
		if !okX || !okY {
			return nil, false
		}
		if op == graph.OpTypeLogicalAnd {
			return x && y, true
		}
		return x || y, true

	case graph.OpTypeEqual, graph.OpTypeNotEqual:
		eq, ok := literalsEqual(literals[0], literals[1])
		if !ok {
			return nil, false
		}
		if op == graph.OpTypeNotEqual {
			return !eq, true
		}
		return eq, true

	case graph.OpTypeAdd, graph.OpTypeSub, graph.OpTypeMul, graph.OpTypeFloorDiv,
		graph.OpTypeMod, graph.OpTypeMin, graph.OpTypeMax:
		return evalArith(op, literals[0], literals[1])

	case graph.OpTypeLessThan, graph.OpTypeLessOrEqual, graph.OpTypeGreaterThan,
		graph.OpTypeGreaterOrEqual:
		return evalCompare(op, literals[0], literals[1])
	}
	return nil, false
}

func literalsEqual(x, y any) (eq bool, ok bool) {
	if x == nil || y == nil {
		return x == nil && y == nil, true
	}
	if bx, isBool := x.(bool); isBool {
		by, alsoBool := y.(bool)
		if !alsoBool {
			return false, false
		}
		return bx == by, true
	}
	fx, xIsNum := asFloat(x)
	fy, yIsNum := asFloat(y)
	if xIsNum && yIsNum {
		return fx == fy, true
	}
	return false, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func bothInts(x, y any) (int, int, bool) {
	xi, okX := x.(int)
	yi, okY := y.(int)
	return xi, yi, okX && okY
}

func evalArith(op graph.OpType, x, y any) (any, bool) {
	if xi, yi, ok := bothInts(x, y); ok {
		switch op {
		case graph.OpTypeAdd:
			return xi + yi, true
		case graph.OpTypeSub:
			return xi - yi, true
		case graph.OpTypeMul:
			return xi * yi, true
		case graph.OpTypeFloorDiv:
			if yi == 0 {
				return nil, false
			}
			return floorDivInt(xi, yi), true
		case graph.OpTypeMod:
			if yi == 0 {
				return nil, false
			}
			return modInt(xi, yi), true
		case graph.OpTypeMin:
			return min(xi, yi), true
		case graph.OpTypeMax:
			return max(xi, yi), true
		}
		return nil, false
	}
	fx, okX := asFloat(x)
	fy, okY := asFloat(y)
	if !okX || !okY {
		return nil, false
	}
	switch op {
	case graph.OpTypeAdd:
		return fx + fy, true
	case graph.OpTypeSub:
		return fx - fy, true
	case graph.OpTypeMul:
		return fx * fy, true
	case graph.OpTypeFloorDiv:
		if fy == 0 {
			return nil, false
		}
		return math.Floor(fx / fy), true
	case graph.OpTypeMod:
		if fy == 0 {
			return nil, false
		}
		m := math.Mod(fx, fy)
		if m != 0 && (m < 0) != (fy < 0) {
			m += fy
		}
		return m, true
	case graph.OpTypeMin:
		return math.Min(fx, fy), true
	case graph.OpTypeMax:
		return math.Max(fx, fy), true
	}
	return nil, false
}

// floorDivInt rounds toward negative infinity, like Python's //.
func floorDivInt(x, y int) int {
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

// modInt takes the sign of the divisor, like Python's %.
func modInt(x, y int) int {
	m := x % y
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func evalCompare(op graph.OpType, x, y any) (any, bool) {
	fx, okX := asFloat(x)
	fy, okY := asFloat(y)
	if !okX || !okY {
		return nil, false
	}
	switch op {
	case graph.OpTypeLessThan:
		return fx < fy, true
	case graph.OpTypeLessOrEqual:
		return fx <= fy, true
	case graph.OpTypeGreaterThan:
		return fx > fy, true
	case graph.OpTypeGreaterOrEqual:
		return fx >= fy, true
	}
	return nil, false
}
