// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/gomlx/symshape/types/shapes"
)

// TypeKind discriminates the Type implementations.
type TypeKind int

const (
	KindInvalid TypeKind = iota
	KindInt
	KindBool
	KindFloat
	KindNone
	KindList
	KindTuple
	KindOptional
	KindTensor
)

// Type of a Value.
//
// Scalar types are the package-level singletons Int, Bool, Float and None.
// Composite types are built with ListOf, TupleOf and OptionalOf.
// Host-graph tensor values carry a *TensorType.
type Type interface {
	Kind() TypeKind
	String() string
	Equal(other Type) bool
}

type scalarType struct {
	kind TypeKind
	name string
}

func (t *scalarType) Kind() TypeKind { return t.kind }
func (t *scalarType) String() string { return t.name }

func (t *scalarType) Equal(other Type) bool {
	o, ok := other.(*scalarType)
	return ok && o.kind == t.kind
}

// The scalar type singletons.
var (
	Int   Type = &scalarType{KindInt, "Int"}
	Bool  Type = &scalarType{KindBool, "Bool"}
	Float Type = &scalarType{KindFloat, "Float"}
	None  Type = &scalarType{KindNone, "None"}
)

// IntList is the type of every shape-compute program output.
var IntList = ListOf(Int)

// ListType is a homogeneous list.
type ListType struct {
	Elem Type
}

// ListOf returns the list type with the given element type.
func ListOf(elem Type) *ListType {
	if elem == nil {
		exceptions.Panicf("graph.ListOf: nil element type")
	}
	return &ListType{Elem: elem}
}

func (t *ListType) Kind() TypeKind { return KindList }
func (t *ListType) String() string { return fmt.Sprintf("List[%s]", t.Elem) }

func (t *ListType) Equal(other Type) bool {
	o, ok := other.(*ListType)
	return ok && t.Elem.Equal(o.Elem)
}

// TupleType is a fixed-arity heterogeneous tuple.
type TupleType struct {
	Elems []Type
}

// TupleOf returns the tuple type with the given element types.
func TupleOf(elems ...Type) *TupleType {
	for i, elem := range elems {
		if elem == nil {
			exceptions.Panicf("graph.TupleOf: nil element type at position %d", i)
		}
	}
	return &TupleType{Elems: elems}
}

func (t *TupleType) Kind() TypeKind { return KindTuple }

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, elem := range t.Elems {
		parts[i] = elem.String()
	}
	return fmt.Sprintf("Tuple[%s]", strings.Join(parts, ", "))
}

func (t *TupleType) Equal(other Type) bool {
	o, ok := other.(*TupleType)
	if !ok || len(o.Elems) != len(t.Elems) {
		return false
	}
	for i, elem := range t.Elems {
		if !elem.Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

// OptionalType wraps a type that may also be None.
type OptionalType struct {
	Elem Type
}

// OptionalOf returns the optional type with the given element type.
func OptionalOf(elem Type) *OptionalType {
	if elem == nil {
		exceptions.Panicf("graph.OptionalOf: nil element type")
	}
	return &OptionalType{Elem: elem}
}

func (t *OptionalType) Kind() TypeKind { return KindOptional }
func (t *OptionalType) String() string { return fmt.Sprintf("Optional[%s]", t.Elem) }

func (t *OptionalType) Equal(other Type) bool {
	o, ok := other.(*OptionalType)
	return ok && t.Elem.Equal(o.Elem)
}

// DeviceNum identifies the device a host tensor lives on.
type DeviceNum int

// TensorType is the type of a host-graph tensor value: dtype, device and a
// possibly partial shape. Shape analysis only ever rewrites the Shape part,
// through WithShape.
type TensorType struct {
	DType  dtypes.DType
	Device DeviceNum
	Shape  shapes.Shape
}

// TensorOf returns a tensor type on device 0.
func TensorOf(dtype dtypes.DType, shape shapes.Shape) *TensorType {
	shape.AssertValid()
	return &TensorType{DType: dtype, Shape: shape}
}

// OnDevice returns a copy of the tensor type placed on the given device.
func (t *TensorType) OnDevice(device DeviceNum) *TensorType {
	updated := &TensorType{DType: t.DType, Device: device, Shape: t.Shape.Clone()}
	return updated
}

// WithShape returns a copy of the tensor type with the shape replaced.
// DType and Device are preserved.
func (t *TensorType) WithShape(shape shapes.Shape) *TensorType {
	shape.AssertValid()
	return &TensorType{DType: t.DType, Device: t.Device, Shape: shape.Clone()}
}

func (t *TensorType) Kind() TypeKind { return KindTensor }

func (t *TensorType) String() string {
	return fmt.Sprintf("Tensor[%s, %s]", t.DType, t.Shape)
}

func (t *TensorType) Equal(other Type) bool {
	o, ok := other.(*TensorType)
	return ok && o.DType == t.DType && o.Device == t.Device && o.Shape.Equal(t.Shape)
}

// IsTensorList returns whether t is List[Tensor], the one operand type
// symbolic analysis refuses to model.
func IsTensorList(t Type) bool {
	list, ok := t.(*ListType)
	if !ok {
		return false
	}
	_, elemIsTensor := list.Elem.(*TensorType)
	return elemIsTensor
}

// IsIntList returns whether t is List[Int].
func IsIntList(t Type) bool {
	return t != nil && t.Equal(IntList)
}

// TypeOfLiteral maps a constant literal to its type. Valid literals are
// int, bool, float64, nil (None) and []int. Anything else panics.
func TypeOfLiteral(literal any) Type {
	switch literal.(type) {
	case int:
		return Int
	case bool:
		return Bool
	case float64:
		return Float
	case nil:
		return None
	case []int:
		return IntList
	}
	exceptions.Panicf("graph: unsupported constant literal %T (want int, bool, float64, nil or []int)", literal)
	return nil
}
