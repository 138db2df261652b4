// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapefuncs ships shape-compute programs for the standard operator
// set.
//
// Each program takes one List[Int] (or scalar) value per operand of the
// operator it describes and returns the operator's output shape as a single
// List[Int]. Programs are plain data built with the graph builder; the
// analyzer in the parent package partially evaluates them per call site.
//
// There is no ambient global registry: Register installs everything into a
// caller-owned *symshape.Registry, and New returns a fresh populated one.
// Families of operators with identical shape behavior (the unary functions,
// the broadcasting binary functions) share one program value; sharing is
// safe because analyzers clone before specializing.
package shapefuncs

import (
	"github.com/gomlx/symshape"
	"github.com/gomlx/symshape/graph"
)

// unarySchemas all produce a tensor of exactly their input's shape.
var unarySchemas = []string{
	"aten::relu",
	"aten::tanh",
	"aten::sigmoid",
	"aten::exp",
	"aten::neg",
}

// broadcastSchemas are the binary functions with NumPy broadcast semantics,
// all registered under their Tensor overload.
var broadcastSchemas = []string{
	"aten::add",
	"aten::sub",
	"aten::mul",
	"aten::div",
}

// Register installs the standard shape functions into r.
func Register(r *symshape.Registry) {
	unary := unaryProgram()
	for _, name := range unarySchemas {
		r.Register(graph.Schema{Name: name}, unary)
	}
	broadcast := broadcastProgram()
	for _, name := range broadcastSchemas {
		r.Register(graph.Schema{Name: name, Overload: "Tensor"}, broadcast)
	}
	r.Register(graph.Schema{Name: "aten::mm"}, mmProgram())
	r.Register(graph.Schema{Name: "aten::bmm"}, bmmProgram())
	r.Register(graph.Schema{Name: "aten::t"}, tProgram())
	r.Register(graph.Schema{Name: "aten::conv2d"}, conv2dProgram())
	r.Register(graph.Schema{Name: "aten::adaptive_avg_pool2d"}, adaptiveAvgPool2dProgram())
	r.Register(graph.Schema{Name: "aten::cat"}, catProgram())
}

// New returns a fresh registry with the standard shape functions installed.
func New() *symshape.Registry {
	r := symshape.NewRegistry()
	Register(r)
	return r
}

// assertThat keeps the program aborting when cond is false: an If guarding
// a Raise. Simplification inlines it away once cond proves true, and dead
// code elimination keeps it as long as the abort is reachable.
func assertThat(g *graph.Graph, cond *graph.Value, msg string) {
	g.If(cond,
		func() []*graph.Value { return nil },
		func() []*graph.Value {
			g.Raise(msg)
			return nil
		},
	)
}

// mmProgram: matrix multiply, [n, k] x [k, m] -> [n, m].
func mmProgram() *graph.Graph {
	g := graph.New("aten::mm")
	self := g.Input(graph.IntList)
	mat2 := g.Input(graph.IntList)
	two := g.Const(2)
	assertThat(g, g.Equal(g.Len(self), two), "self must be a matrix")
	assertThat(g, g.Equal(g.Len(mat2), two), "mat2 must be a matrix")
	assertThat(g, g.Equal(g.Index(self, g.Const(1)), g.Index(mat2, g.Const(0))),
		"mat1 and mat2 shapes cannot be multiplied")
	g.Return(g.ListConstruct(graph.Int,
		g.Index(self, g.Const(0)),
		g.Index(mat2, g.Const(1))))
	return g
}

// bmmProgram: batched matrix multiply, [b, n, k] x [b, k, m] -> [b, n, m].
func bmmProgram() *graph.Graph {
	g := graph.New("aten::bmm")
	self := g.Input(graph.IntList)
	mat2 := g.Input(graph.IntList)
	three := g.Const(3)
	assertThat(g, g.Equal(g.Len(self), three), "bmm: self must be a 3-d tensor")
	assertThat(g, g.Equal(g.Len(mat2), three), "bmm: mat2 must be a 3-d tensor")
	assertThat(g, g.Equal(g.Index(self, g.Const(0)), g.Index(mat2, g.Const(0))),
		"bmm: batch sizes must match")
	assertThat(g, g.Equal(g.Index(self, g.Const(2)), g.Index(mat2, g.Const(1))),
		"bmm: self and mat2 shapes cannot be multiplied")
	g.Return(g.ListConstruct(graph.Int,
		g.Index(self, g.Const(0)),
		g.Index(self, g.Const(1)),
		g.Index(mat2, g.Const(2))))
	return g
}

// tProgram: matrix transpose, [n, m] -> [m, n].
func tProgram() *graph.Graph {
	g := graph.New("aten::t")
	self := g.Input(graph.IntList)
	assertThat(g, g.Equal(g.Len(self), g.Const(2)), "t expects a matrix")
	g.Return(g.ListConstruct(graph.Int,
		g.Index(self, g.Const(1)),
		g.Index(self, g.Const(0))))
	return g
}

// unaryProgram copies the input shape element-wise: a counted loop over the
// rank appending each dimension. One shared program serves every
// elementwise operator.
func unaryProgram() *graph.Graph {
	g := graph.New("unary")
	self := g.Input(graph.IntList)
	out := g.ListConstruct(graph.Int)
	g.ForRange(g.Len(self), func(i *graph.Value) {
		g.Append(out, g.Index(self, i))
	})
	g.Return(out)
	return g
}

// broadcastProgram implements NumPy broadcasting over two shapes: align
// from the right, missing leading dimensions count as 1, and per position
// the sizes must match or one of them must be 1.
//
// The reads a[dimA] and b[dimB] sit inside the dimA >= 0 / dimB >= 0
// branches rather than being computed eagerly: a negative dimA means "a has
// no such dimension", not an index from the end, so the read must stay
// unreachable until the guard proves the index valid.
func broadcastProgram() *graph.Graph {
	g := graph.New("broadcast")
	a := g.Input(graph.IntList)
	b := g.Input(graph.IntList)
	zero := g.Const(0)
	one := g.Const(1)
	lenA := g.Len(a)
	lenB := g.Len(b)
	ndim := g.Max(lenA, lenB)
	out := g.ListConstruct(graph.Int)
	g.ForRange(ndim, func(i *graph.Value) {
		offset := g.Sub(g.Sub(ndim, one), i)
		dimA := g.Sub(g.Sub(lenA, one), offset)
		dimB := g.Sub(g.Sub(lenB, one), offset)
		sizeA := g.If(g.GreaterOrEqual(dimA, zero),
			func() []*graph.Value { return []*graph.Value{g.Index(a, dimA)} },
			func() []*graph.Value { return []*graph.Value{one} },
		)[0]
		sizeB := g.If(g.GreaterOrEqual(dimB, zero),
			func() []*graph.Value { return []*graph.Value{g.Index(b, dimB)} },
			func() []*graph.Value { return []*graph.Value{one} },
		)[0]
		compatible := g.Or(
			g.Or(g.Equal(sizeA, sizeB), g.Equal(sizeA, one)),
			g.Equal(sizeB, one))
		assertThat(g, compatible, "shapes are not broadcastable")
		// size 1 broadcasts to the other side, anything else wins as is;
		// max() would get the zero-sized-dimension case wrong.
		g.Append(out, g.Select(g.Equal(sizeA, one), sizeB, sizeA))
	})
	g.Return(out)
	return g
}

// conv2dProgram: [n, cIn, h, w] with weight [cOut, cIn/groups, kH, kW] and
// int-list stride/padding/dilation operands. Batch and output channels pass
// through; each spatial dimension follows
//
//	(in + 2*pad - dilation*(kernel-1) - 1) / stride + 1
//
// with floor division.
func conv2dProgram() *graph.Graph {
	g := graph.New("aten::conv2d")
	input := g.Input(graph.IntList)
	weight := g.Input(graph.IntList)
	g.Input(graph.OptionalOf(graph.IntList)) // bias shape does not affect the output
	stride := g.Input(graph.IntList)
	padding := g.Input(graph.IntList)
	dilation := g.Input(graph.IntList)
	groups := g.Input(graph.Int)

	one := g.Const(1)
	two := g.Const(2)
	four := g.Const(4)
	assertThat(g, g.Equal(g.Len(input), four), "conv2d expects a 4-d input")
	assertThat(g, g.Equal(g.Len(weight), four), "conv2d expects a 4-d weight")
	assertThat(g, g.Equal(g.Index(input, one), g.Mul(g.Index(weight, one), groups)),
		"conv2d: input channels must equal weight channels times groups")

	out := g.ListConstruct(graph.Int,
		g.Index(input, g.Const(0)),
		g.Index(weight, g.Const(0)))
	g.ForRange(two, func(i *graph.Value) {
		spatial := g.Add(i, two)
		kernel := g.Add(g.Mul(g.Index(dilation, i), g.Sub(g.Index(weight, spatial), one)), one)
		numerator := g.Sub(g.Add(g.Index(input, spatial), g.Mul(two, g.Index(padding, i))), kernel)
		g.Append(out, g.Add(g.FloorDiv(numerator, g.Index(stride, i)), one))
	})
	g.Return(out)
	return g
}

// adaptiveAvgPool2dProgram: leading dimensions pass through, the trailing
// two come from output_size.
func adaptiveAvgPool2dProgram() *graph.Graph {
	g := graph.New("aten::adaptive_avg_pool2d")
	self := g.Input(graph.IntList)
	outputSize := g.Input(graph.IntList)
	two := g.Const(2)
	assertThat(g, g.Equal(g.Len(outputSize), two),
		"adaptive_avg_pool2d: output_size must have 2 elements")
	rank := g.Len(self)
	assertThat(g, g.Or(g.Equal(rank, g.Const(3)), g.Equal(rank, g.Const(4))),
		"adaptive_avg_pool2d expects a 3-d or 4-d input")
	out := g.ListConstruct(graph.Int)
	g.ForRange(g.Sub(rank, two), func(i *graph.Value) {
		g.Append(out, g.Index(self, i))
	})
	g.ForRange(two, func(i *graph.Value) {
		g.Append(out, g.Index(outputSize, i))
	})
	g.Return(out)
	return g
}

// catProgram exists to document the operator, not to be evaluated: the
// first operand of aten::cat is a list of tensors, which analysis reports
// as unsupported before ever looking at the body.
func catProgram() *graph.Graph {
	g := graph.New("aten::cat")
	tensors := g.Input(graph.ListOf(graph.IntList))
	g.Input(graph.Int) // dim
	g.Return(g.Index(tensors, g.Const(0)))
	return g
}
