package symshape

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/symshape/graph"
	"github.com/gomlx/symshape/types/shapes"
)

func tensorOf(shape shapes.Shape) *graph.TensorType {
	return graph.TensorOf(dtypes.Float32, shape)
}

// callSiteWith builds a host graph with a single operator call site whose
// operands are fresh inputs of the given types, and returns its node.
func callSiteWith(t *testing.T, schema string, operands ...graph.Type) *graph.Node {
	t.Helper()
	host := graph.New("host")
	ins := make([]*graph.Value, len(operands))
	for i, typ := range operands {
		ins[i] = host.Input(typ)
	}
	out := host.Operator(graph.ParseSchema(schema), tensorOf(shapes.Unknown()), ins...)
	host.Return(out)
	return out.Node()
}

// copyProgram rebuilds its input element by element. It only resolves once
// the loop trip count is known, so it exercises rank substitution, loop
// unrolling, mutation removal and extraction across several rounds.
func copyProgram() *graph.Graph {
	g := graph.New("copy")
	self := g.Input(graph.IntList)
	out := g.ListConstruct(graph.Int)
	g.ForRange(g.Len(self), func(i *graph.Value) {
		g.Append(out, g.Index(self, i))
	})
	g.Return(out)
	return g
}

// gatherProgram returns [x[0], x[1], ..., x[rank-1]] with one read per axis.
func gatherProgram(rank int) *graph.Graph {
	g := graph.New("gather")
	self := g.Input(graph.IntList)
	elems := make([]*graph.Value, rank)
	for i := range elems {
		elems[i] = g.Index(self, g.Const(i))
	}
	g.Return(g.ListConstruct(graph.Int, elems...))
	return g
}

func TestAnalyzerCompleteOperandBecomesConstant(t *testing.T) {
	n := callSiteWith(t, "aten::relu", tensorOf(shapes.Make(2, 3, 4)))
	a := must.M1(NewAnalyzer(n, identityProgram()))

	// The operand is complete, so the clone's input is already a constant
	// before the first round runs.
	dims, ok := a.fn.Outputs()[0].ConstantIntList()
	require.True(t, ok)
	assert.Equal(t, []int{2, 3, 4}, dims)

	got := a.Run()
	assert.True(t, got.Equal(shapes.Make(2, 3, 4)), "got %s", got)
	assert.Equal(t, 1, a.RoundsUsed())
}

func TestAnalyzerRoundTripsElements(t *testing.T) {
	fn := copyProgram()
	before := fn.StructuralHash()

	n := callSiteWith(t, "aten::relu", tensorOf(shapes.Make(1, 2, 5, 7)))
	a := must.M1(NewAnalyzer(n, fn))
	got := a.Run()

	assert.True(t, got.Equal(shapes.Make(1, 2, 5, 7)), "got %s", got)
	// Analysis ran on a clone: the registered program is untouched.
	assert.Equal(t, before, fn.StructuralHash())
}

func TestAnalyzerRankSubstitution(t *testing.T) {
	g := graph.New("ranker")
	self := g.Input(graph.IntList)
	g.Return(g.ListConstruct(graph.Int, g.Len(self)))

	n := callSiteWith(t, "aten::relu", tensorOf(shapes.OfRank(3)))
	a := must.M1(NewAnalyzer(n, g))
	got := a.Run()

	assert.True(t, got.Equal(shapes.Make(3)), "got %s", got)
	assert.Equal(t, 2, a.RoundsUsed())
}

func TestAnalyzerNegativeIndexSubstitution(t *testing.T) {
	operand := tensorOf(shapes.Make(8, shapes.DimUnknown, 6, 7))

	t.Run("in range", func(t *testing.T) {
		g := graph.New("lastdim")
		self := g.Input(graph.IntList)
		g.Return(g.ListConstruct(graph.Int, g.Index(self, g.Const(-1))))

		a := must.M1(NewAnalyzer(callSiteWith(t, "aten::relu", operand), g))
		got := a.Run()
		assert.True(t, got.Equal(shapes.Make(7)), "got %s", got)
	})

	t.Run("out of range", func(t *testing.T) {
		g := graph.New("oob")
		self := g.Input(graph.IntList)
		g.Return(g.ListConstruct(graph.Int, g.Index(self, g.Const(-5))))

		a := must.M1(NewAnalyzer(callSiteWith(t, "aten::relu", operand), g))
		got := a.Run()
		// The read is out of range: it is left in place unresolved rather
		// than guessed at, and the element stays unknown.
		assert.True(t, got.Equal(shapes.Make(shapes.DimUnknown)), "got %s", got)
	})
}

func TestAnalyzerMixedExtraction(t *testing.T) {
	n := callSiteWith(t, "aten::relu", tensorOf(shapes.Make(1, 2, 9, shapes.DimUnknown)))
	a := must.M1(NewAnalyzer(n, gatherProgram(4)))
	got := a.Run()
	assert.True(t, got.Equal(shapes.Make(1, 2, 9, shapes.DimUnknown)), "got %s", got)
}

func TestAnalyzerAliasedOutputStaysOpaque(t *testing.T) {
	// Both programs return ListConstruct(probe) with a symbolic element. The
	// guarded one also reads the list inside an abort guard: that second use
	// means the return is not the sole observer, so not even the rank is
	// reported.
	program := func(guarded bool) *graph.Graph {
		g := graph.New("probed")
		g.Input(graph.IntList)
		probe := g.Input(graph.Int)
		out := g.ListConstruct(graph.Int, probe)
		if guarded {
			bad := g.LessThan(g.Index(out, probe), g.Const(0))
			g.If(bad,
				func() []*graph.Value { g.Raise("negative dimension"); return nil },
				func() []*graph.Value { return nil },
			)
		}
		g.Return(out)
		return g
	}

	t.Run("aliased", func(t *testing.T) {
		n := callSiteWith(t, "aten::squeeze.dim", tensorOf(shapes.Make(4)), graph.Int)
		a := must.M1(NewAnalyzer(n, program(true)))
		got := a.Run()
		assert.False(t, got.HasRank(), "got %s", got)
	})

	t.Run("single use", func(t *testing.T) {
		n := callSiteWith(t, "aten::squeeze.dim", tensorOf(shapes.Make(4)), graph.Int)
		a := must.M1(NewAnalyzer(n, program(false)))
		got := a.Run()
		assert.True(t, got.Equal(shapes.OfRank(1)), "got %s", got)
	})
}

func TestAnalyzerRankOnlyOperand(t *testing.T) {
	n := callSiteWith(t, "aten::relu", tensorOf(shapes.OfRank(3)))
	a := must.M1(NewAnalyzer(n, copyProgram()))
	got := a.Run()

	assert.True(t, got.Equal(shapes.OfRank(3)), "got %s", got)
	assert.Equal(t, 3, a.RoundsUsed())
}

func TestAnalyzerUnknownRankStaysUnknown(t *testing.T) {
	n := callSiteWith(t, "aten::relu", tensorOf(shapes.Unknown()))
	a := must.M1(NewAnalyzer(n, copyProgram()))
	got := a.Run()
	assert.False(t, got.HasRank())
}

func TestAnalyzerHostConstantOperand(t *testing.T) {
	// return [x[0] + pad], with pad supplied as a constant at the call site.
	g := graph.New("padded")
	self := g.Input(graph.IntList)
	pad := g.Input(graph.Int)
	g.Return(g.ListConstruct(graph.Int, g.Add(g.Index(self, g.Const(0)), pad)))

	host := graph.New("host")
	x := host.Input(tensorOf(shapes.Make(5)))
	out := host.Operator(graph.ParseSchema("aten::pad1d"), tensorOf(shapes.Unknown()), x, host.Const(2))
	host.Return(out)

	a := must.M1(NewAnalyzer(out.Node(), g))
	got := a.Run()
	assert.True(t, got.Equal(shapes.Make(7)), "got %s", got)
}

func TestAnalyzerArityMismatch(t *testing.T) {
	n := callSiteWith(t, "aten::mm", tensorOf(shapes.Make(2, 3)), tensorOf(shapes.Make(3, 4)))
	_, err := NewAnalyzer(n, identityProgram())
	require.Error(t, err)

	var unsupported *UnsupportedOperandError
	assert.False(t, errors.As(err, &unsupported))
}

func TestAnalyzerUnsupportedOperand(t *testing.T) {
	g := graph.New("catlike")
	tensors := g.Input(graph.ListOf(graph.IntList))
	g.Input(graph.Int)
	g.Return(g.Index(tensors, g.Const(0)))

	n := callSiteWith(t, "aten::cat", graph.ListOf(tensorOf(shapes.Make(2, 3))), graph.Int)
	_, err := NewAnalyzer(n, g)
	require.Error(t, err)

	var unsupported *UnsupportedOperandError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, 0, unsupported.OperandIndex)
	assert.Equal(t, graph.ParseSchema("aten::cat"), unsupported.Schema)
}

func TestAnalyzerWithRounds(t *testing.T) {
	n := callSiteWith(t, "aten::relu", tensorOf(shapes.Make(2, 3, 4)))

	// Two rounds are not enough to unroll the loop and absorb the appends:
	// the analyzer gives up rather than guess.
	a := must.M1(NewAnalyzer(n, copyProgram(), WithRounds(2)))
	got := a.Run()
	assert.False(t, got.HasRank())
	assert.Equal(t, 2, a.RoundsUsed())

	// The default budget converges, and the structural-hash check stops the
	// loop as soon as a round makes no progress.
	a = must.M1(NewAnalyzer(n, copyProgram()))
	got = a.Run()
	assert.True(t, got.Equal(shapes.Make(2, 3, 4)), "got %s", got)
	assert.Equal(t, 4, a.RoundsUsed())
	assert.Less(t, a.RoundsUsed(), DefaultOptimizationRounds)
}

func TestAnalyzerWithRoundsIgnoresNonPositive(t *testing.T) {
	n := callSiteWith(t, "aten::relu", tensorOf(shapes.Make(2)))
	a := must.M1(NewAnalyzer(n, identityProgram(), WithRounds(0)))
	assert.Equal(t, defaultRounds(), a.rounds)
}

func TestRoundsFromEnv(t *testing.T) {
	assert.Equal(t, DefaultOptimizationRounds, roundsFromEnv(""))
	assert.Equal(t, 9, roundsFromEnv("9"))
	assert.Equal(t, DefaultOptimizationRounds, roundsFromEnv("banana"))
	assert.Equal(t, DefaultOptimizationRounds, roundsFromEnv("0"))
	assert.Equal(t, DefaultOptimizationRounds, roundsFromEnv("-3"))
}
