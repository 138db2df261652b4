// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package utils holds small generic helpers shared across the module.
package utils

// Set implements a set of T as a map to empty structs.
type Set[T comparable] map[T]struct{}

// MakeSet returns an empty Set. Size is optional and reserves space.
func MakeSet[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// SetWith returns a Set with the given elements inserted.
func SetWith[T comparable](elements ...T) Set[T] {
	s := MakeSet[T](len(elements))
	for _, element := range elements {
		s.Insert(element)
	}
	return s
}

// Insert adds the element to the set.
func (s Set[T]) Insert(element T) {
	s[element] = struct{}{}
}

// Has returns whether the element is in the set.
func (s Set[T]) Has(element T) bool {
	_, found := s[element]
	return found
}
