package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/symshape/graph"
)

func TestPeepholeListReads(t *testing.T) {
	// The list elements are symbolic, but the list structure is visible:
	// len and indexed reads resolve without constant propagation.
	g := graph.New("listreads")
	a := g.Input(graph.Int)
	b := g.Input(graph.Int)
	list := g.ListConstruct(graph.Int, a, b)
	g.Return(g.ListConstruct(graph.Int,
		g.Len(list),
		g.Index(list, g.Const(-1)),
		g.Index(list, g.Const(0)),
	))

	PeepholeOptimize(g)
	g.AssertValid()

	out := g.Outputs()[0].Node()
	length, ok := out.Input(0).ConstantInt()
	require.True(t, ok)
	assert.Equal(t, 2, length)
	assert.Same(t, b, out.Input(1))
	assert.Same(t, a, out.Input(2))
}

func TestPeepholeListReadsBlockedByMutation(t *testing.T) {
	g := graph.New("mutatedreads")
	a := g.Input(graph.Int)
	list := g.ListConstruct(graph.Int, a)
	length := g.Len(list)
	g.Append(list, a)
	g.Return(g.ListConstruct(graph.Int, length))

	PeepholeOptimize(g)
	g.AssertValid()

	assert.Equal(t, graph.OpTypeListLen, g.Outputs()[0].Node().Input(0).Node().Op())
}

func TestPeepholeArithmeticIdentities(t *testing.T) {
	g := graph.New("identities")
	x := g.Input(graph.Int)
	g.Return(g.ListConstruct(graph.Int,
		g.Add(x, g.Const(0)),
		g.Add(g.Const(0), x),
		g.Sub(x, g.Const(0)),
		g.Mul(x, g.Const(1)),
		g.Mul(g.Const(1), x),
		g.FloorDiv(x, g.Const(1)),
		g.Min(x, x),
		g.Max(x, x),
	))

	PeepholeOptimize(g)
	g.AssertValid()

	out := g.Outputs()[0].Node()
	for i := 0; i < out.NumInputs(); i++ {
		assert.Same(t, x, out.Input(i), "input #%d", i)
	}
}

func TestPeepholeMulByZero(t *testing.T) {
	g := graph.New("mulzero")
	x := g.Input(graph.Int)
	g.Return(g.ListConstruct(graph.Int, g.Mul(x, g.Const(0))))

	PeepholeOptimize(g)
	g.AssertValid()

	elem, ok := g.Outputs()[0].Node().Input(0).ConstantInt()
	require.True(t, ok)
	assert.Equal(t, 0, elem)
}

func TestPeepholeFloatIdentitiesNotApplied(t *testing.T) {
	// x + 0.0 is not an identity for floats (-0.0 + 0.0 is +0.0), so the
	// rewrite is Int only.
	g := graph.New("floats")
	f := g.Input(graph.Float)
	sum := g.Add(f, g.Const(0))
	g.Return(g.ListConstruct(graph.Float, sum))

	PeepholeOptimize(g)
	g.AssertValid()

	assert.Equal(t, graph.OpTypeAdd, g.Outputs()[0].Node().Input(0).Node().Op())
}

func TestPeepholeLogic(t *testing.T) {
	g := graph.New("logic")
	p := g.Input(graph.Bool)

	notNot := g.Not(g.Not(p))
	andTrue := g.And(p, g.Const(true))
	andFalse := g.And(p, g.Const(false))
	orTrue := g.Or(g.Const(true), p)
	orFalse := g.Or(g.Const(false), p)
	g.Return(g.ListConstruct(graph.Bool, notNot, andTrue, andFalse, orTrue, orFalse))

	PeepholeOptimize(g)
	g.AssertValid()

	out := g.Outputs()[0].Node()
	assert.Same(t, p, out.Input(0), "not(not p)")
	assert.Same(t, p, out.Input(1), "p && true")
	val, ok := out.Input(2).ConstantBool()
	require.True(t, ok, "p && false")
	assert.False(t, val)
	val, ok = out.Input(3).ConstantBool()
	require.True(t, ok, "true || p")
	assert.True(t, val)
	assert.Same(t, p, out.Input(4), "false || p")
}

func TestPeepholeSelfComparison(t *testing.T) {
	g := graph.New("selfcmp")
	x := g.Input(graph.Int)
	f := g.Input(graph.Float)

	eq := g.Equal(x, x)
	ne := g.NotEqual(x, x)
	eqF := g.Equal(f, f) // NaN != NaN: must survive
	g.Return(g.ListConstruct(graph.Bool, eq, ne, eqF))

	PeepholeOptimize(g)
	g.AssertValid()

	out := g.Outputs()[0].Node()
	val, ok := out.Input(0).ConstantBool()
	require.True(t, ok)
	assert.True(t, val)
	val, ok = out.Input(1).ConstantBool()
	require.True(t, ok)
	assert.False(t, val)
	assert.Equal(t, graph.OpTypeEqual, out.Input(2).Node().Op())
}
