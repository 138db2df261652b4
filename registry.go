// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package symshape

import (
	"slices"
	"strings"
	"sync"

	"github.com/gomlx/exceptions"
	"golang.org/x/exp/maps"

	"github.com/gomlx/symshape/graph"
)

// Registry maps operator schemas to shape-compute programs.
//
// A Registry is safe for concurrent use. Registered programs are shared and
// treated as immutable: analyzers clone before specializing, so handing the
// same *graph.Graph to many concurrent analyses is fine.
type Registry struct {
	mu       sync.Mutex
	programs map[graph.Schema]*graph.Graph
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{programs: make(map[graph.Schema]*graph.Graph)}
}

// Register installs fn as the shape function for schema. The first
// registration wins; re-registering a schema is a no-op, so concurrent
// duplicate registration is benign. A schema with an empty name registers
// nothing.
//
// fn must return exactly one List[Int] value; violations panic with an
// exception, since a malformed shape function is a programming error at its
// definition site, not a runtime condition.
func (r *Registry) Register(schema graph.Schema, fn *graph.Graph) {
	if schema.Name == "" {
		return
	}
	assertProgramContract(schema, fn)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.programs[schema]; exists {
		return
	}
	r.programs[schema] = fn
}

func assertProgramContract(schema graph.Schema, fn *graph.Graph) {
	if fn == nil {
		exceptions.Panicf("symshape: nil shape function registered for %s", schema)
	}
	outs := fn.Outputs()
	if len(outs) != 1 {
		exceptions.Panicf("symshape: shape function %q for %s must return exactly one value, it returns %d",
			fn.Name(), schema, len(outs))
	}
	if !graph.IsIntList(outs[0].Type()) {
		exceptions.Panicf("symshape: shape function %q for %s must return List[Int], it returns %s",
			fn.Name(), schema, outs[0].Type())
	}
}

// Lookup returns the shape function registered for schema, or nil.
func (r *Registry) Lookup(schema graph.Schema) *graph.Graph {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.programs[schema]
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.programs)
}

// Schemas returns the registered schemas sorted by their printed form, for
// stable listings.
func (r *Registry) Schemas() []graph.Schema {
	r.mu.Lock()
	defer r.mu.Unlock()
	schemas := maps.Keys(r.programs)
	slices.SortFunc(schemas, func(a, b graph.Schema) int {
		return strings.Compare(a.String(), b.String())
	})
	return schemas
}
