package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/symshape/graph"
)

func TestEliminateDeadCodeDropsUnusedChains(t *testing.T) {
	g := graph.New("deadchain")
	x := g.Input(graph.Int)
	kept := g.Add(x, g.Const(1))
	g.Mul(g.Add(x, g.Const(2)), g.Const(3)) // unused
	g.Return(g.ListConstruct(graph.Int, kept))

	EliminateDeadCode(g)
	g.AssertValid()

	assert.Zero(t, countOps(g, graph.OpTypeMul))
	assert.Equal(t, 1, countOps(g, graph.OpTypeAdd))
	assert.Equal(t, 1, countOps(g, graph.OpTypeConstant))
}

func TestEliminateDeadCodeKeepsRaise(t *testing.T) {
	// The If yields nothing and nothing reads it, but it guards an abort:
	// it must survive, together with its condition chain.
	g := graph.New("guard")
	x := g.Input(graph.Int)
	bad := g.LessThan(x, g.Const(0))
	g.If(bad,
		func() []*graph.Value { g.Raise("negative size"); return nil },
		func() []*graph.Value { return nil },
	)
	g.Return(g.ListConstruct(graph.Int, x))

	EliminateDeadCode(g)
	g.AssertValid()

	assert.Equal(t, 1, countOps(g, graph.OpTypeRaise))
	assert.Equal(t, 1, countOps(g, graph.OpTypeIf))
	assert.Equal(t, 1, countOps(g, graph.OpTypeLessThan))
}

func TestEliminateDeadCodeDropsDeadAppendChain(t *testing.T) {
	// Nothing observes the list: the appends and the construct both go.
	g := graph.New("deadlist")
	x := g.Input(graph.Int)
	list := g.ListConstruct(graph.Int)
	g.Append(list, x)
	g.Append(list, x)
	g.Return(g.ListConstruct(graph.Int, x))

	EliminateDeadCode(g)
	g.AssertValid()

	assert.Zero(t, countOps(g, graph.OpTypeListAppend))
	assert.Equal(t, 1, countOps(g, graph.OpTypeListConstruct))
}

func TestEliminateDeadCodeKeepsAppendsOnObservedList(t *testing.T) {
	// The list is read, so every append that mutates it is an effect the
	// read observes, even appends after the read.
	g := graph.New("observed")
	x := g.Input(graph.Int)
	list := g.ListConstruct(graph.Int, x)
	length := g.Len(list)
	g.Append(list, x)
	g.Return(g.ListConstruct(graph.Int, length))

	EliminateDeadCode(g)
	g.AssertValid()

	assert.Equal(t, 1, countOps(g, graph.OpTypeListAppend))
}

func TestEliminateDeadCodeReturnedListKeepsAppends(t *testing.T) {
	g := graph.New("returned")
	x := g.Input(graph.Int)
	list := g.ListConstruct(graph.Int)
	g.Append(list, x)
	g.Return(list)

	EliminateDeadCode(g)
	g.AssertValid()

	require.Equal(t, 1, countOps(g, graph.OpTypeListAppend))
	assert.Equal(t, graph.OpTypeListConstruct, g.Outputs()[0].Node().Op())
}

func TestEliminateDeadCodeInsideLiveLoop(t *testing.T) {
	// The loop survives (its result is returned) but the dead chain inside
	// its body goes away.
	g := graph.New("loopbody")
	trip := g.Input(graph.Int)
	outs := g.Loop(trip, g.Const(true), []*graph.Value{g.Const(0)},
		func(iter *graph.Value, carried []*graph.Value) (*graph.Value, []*graph.Value) {
			g.Mul(iter, iter) // unused
			return g.Const(true), []*graph.Value{g.Add(carried[0], iter)}
		})
	g.Return(g.ListConstruct(graph.Int, outs[0]))

	EliminateDeadCode(g)
	g.AssertValid()

	assert.Equal(t, 1, countOps(g, graph.OpTypeLoop))
	assert.Zero(t, countOps(g, graph.OpTypeMul))
	assert.Equal(t, 1, countOps(g, graph.OpTypeAdd))
}

func TestEliminateDeadCodeDropsWholeDeadLoop(t *testing.T) {
	g := graph.New("deadloop")
	x := g.Input(graph.Int)
	g.Loop(x, g.Const(true), []*graph.Value{g.Const(0)},
		func(iter *graph.Value, carried []*graph.Value) (*graph.Value, []*graph.Value) {
			return g.Const(true), []*graph.Value{g.Add(carried[0], iter)}
		})
	g.Return(g.ListConstruct(graph.Int, x))

	EliminateDeadCode(g)
	g.AssertValid()

	assert.Zero(t, countOps(g, graph.OpTypeLoop))
	assert.Zero(t, countOps(g, graph.OpTypeAdd))
}
