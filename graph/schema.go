// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import "strings"

// Schema identifies an operator: a namespaced name plus an optional
// overload, e.g. {"aten::add", "Tensor"} prints as "aten::add.Tensor".
//
// Schema is a comparable value type and is used as a map key by shape
// function registries.
type Schema struct {
	Name     string
	Overload string
}

func (s Schema) String() string {
	if s.Overload == "" {
		return s.Name
	}
	return s.Name + "." + s.Overload
}

// ParseSchema is the inverse of Schema.String: "aten::add.Tensor" becomes
// {"aten::add", "Tensor"}. Operator names never contain ".".
func ParseSchema(s string) Schema {
	name, overload, _ := strings.Cut(s, ".")
	return Schema{Name: name, Overload: overload}
}
