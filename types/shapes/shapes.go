// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines a tensor shape whose rank and dimensions are each
// independently known or unknown.
//
// It is the currency of symbolic shape analysis: operand shapes flow in
// partially known, and analysis results flow out partially known. The rules
// are deliberately conservative. A dimension that cannot be determined is
// DimUnknown, a rank that cannot be determined is the zero value Shape, and
// nothing in this package ever guesses.
//
// The zero value of Shape is valid and means "rank unknown".
package shapes

import (
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
)

// DimUnknown marks a dimension whose size is not known.
// All other valid dimensions are >= 0 (zero-sized dimensions are legal).
const DimUnknown = -1

// Shape of a tensor, possibly only partially known.
//
// If KnownRank is false the shape says nothing at all and Dimensions must be
// empty. If KnownRank is true, len(Dimensions) is the rank and each entry is
// either a concrete size (>= 0) or DimUnknown.
type Shape struct {
	KnownRank  bool
	Dimensions []int
}

// Make returns a Shape of known rank with the given dimensions.
// Each dimension must be >= 0 or DimUnknown, otherwise it panics.
func Make(dimensions ...int) Shape {
	s := Shape{KnownRank: true, Dimensions: make([]int, len(dimensions))}
	for axis, dim := range dimensions {
		if dim < 0 && dim != DimUnknown {
			exceptions.Panicf("shapes.Make: invalid dimension %d for axis %d, must be >= 0 or DimUnknown", dim, axis)
		}
		s.Dimensions[axis] = dim
	}
	return s
}

// OfRank returns a Shape of the given rank with every dimension unknown.
// It panics if rank is negative.
func OfRank(rank int) Shape {
	if rank < 0 {
		exceptions.Panicf("shapes.OfRank: invalid rank %d", rank)
	}
	s := Shape{KnownRank: true, Dimensions: make([]int, rank)}
	for axis := range s.Dimensions {
		s.Dimensions[axis] = DimUnknown
	}
	return s
}

// Unknown returns the shape about which nothing is known, not even the rank.
// It is the same as the zero value of Shape.
func Unknown() Shape {
	return Shape{}
}

// HasRank returns whether the rank is known.
func (s Shape) HasRank() bool {
	return s.KnownRank
}

// Rank of the shape, or -1 if the rank is unknown.
//
// Scalar shapes have rank 0, which is different from unknown.
func (s Shape) Rank() int {
	if !s.KnownRank {
		return -1
	}
	return len(s.Dimensions)
}

// Dim returns the size of the given axis, or DimUnknown if that size is not
// known. A negative axis counts from the end, Python style: Dim(-1) is the
// size of the last axis.
//
// It panics if the rank is unknown or the axis is out of range.
func (s Shape) Dim(axis int) int {
	adjusted := s.checkedAxis("Dim", axis)
	return s.Dimensions[adjusted]
}

// DimKnown returns whether the size of the given axis is known.
// Negative axes count from the end. It panics if the rank is unknown or the
// axis is out of range.
func (s Shape) DimKnown(axis int) bool {
	adjusted := s.checkedAxis("DimKnown", axis)
	return s.Dimensions[adjusted] != DimUnknown
}

func (s Shape) checkedAxis(fn string, axis int) int {
	if !s.KnownRank {
		exceptions.Panicf("shapes.%s: rank is unknown", fn)
	}
	adjusted := axis
	if adjusted < 0 {
		adjusted += len(s.Dimensions)
	}
	if adjusted < 0 || adjusted >= len(s.Dimensions) {
		exceptions.Panicf("shapes.%s: axis %d out of range for rank %d", fn, axis, len(s.Dimensions))
	}
	return adjusted
}

// IsComplete returns whether the rank and every dimension are known.
// A scalar (known rank 0) is complete.
func (s Shape) IsComplete() bool {
	if !s.KnownRank {
		return false
	}
	for _, dim := range s.Dimensions {
		if dim == DimUnknown {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape with its own backing array, so the two
// can be mutated independently.
func (s Shape) Clone() (cloned Shape) {
	cloned.KnownRank = s.KnownRank
	if s.Dimensions != nil {
		cloned.Dimensions = make([]int, len(s.Dimensions))
		copy(cloned.Dimensions, s.Dimensions)
	}
	return
}

// Equal compares two shapes: same rank knowledge, same rank and the same
// per-dimension knowledge. Two unknown dimensions compare equal here; this
// is structural equality of the descriptors, not a statement that the
// underlying runtime sizes would match.
func (s Shape) Equal(other Shape) bool {
	if s.KnownRank != other.KnownRank {
		return false
	}
	if !s.KnownRank {
		return true
	}
	if len(s.Dimensions) != len(other.Dimensions) {
		return false
	}
	for axis, dim := range s.Dimensions {
		if dim != other.Dimensions[axis] {
			return false
		}
	}
	return true
}

// String prints known-rank shapes as "[2, *, 4]" with "*" for unknown
// dimensions, and the unknown-rank shape as "[...]".
func (s Shape) String() string {
	if !s.KnownRank {
		return "[...]"
	}
	parts := make([]string, len(s.Dimensions))
	for axis, dim := range s.Dimensions {
		if dim == DimUnknown {
			parts[axis] = "*"
		} else {
			parts[axis] = strconv.Itoa(dim)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// AssertValid panics (with an exception) if the shape breaks its own
// invariants: dimensions present without a known rank, or a dimension that
// is negative but not DimUnknown.
func (s Shape) AssertValid() {
	if !s.KnownRank {
		if len(s.Dimensions) > 0 {
			exceptions.Panicf("shapes.AssertValid: shape has %d dimensions but no known rank", len(s.Dimensions))
		}
		return
	}
	for axis, dim := range s.Dimensions {
		if dim < 0 && dim != DimUnknown {
			exceptions.Panicf("shapes.AssertValid: invalid dimension %d for axis %d", dim, axis)
		}
	}
}
