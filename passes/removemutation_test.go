package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/symshape/graph"
)

// countOps counts live nodes of the given op anywhere in the graph.
func countOps(g *graph.Graph, op graph.OpType) int {
	count := 0
	var walk func(b *graph.Block)
	walk = func(b *graph.Block) {
		for _, n := range b.Nodes() {
			if n.Op() == op {
				count++
			}
			for _, nested := range n.Blocks() {
				walk(nested)
			}
		}
	}
	walk(g.Root())
	return count
}

func TestRemoveListMutationStraightLine(t *testing.T) {
	g := graph.New("straight")
	list := g.ListConstruct(graph.Int, g.Const(1))
	g.Append(list, g.Const(2))
	g.Append(list, g.Const(3))
	g.Return(list)

	RemoveListMutation(g)
	g.AssertValid()

	require.Zero(t, countOps(g, graph.OpTypeListAppend))
	out := g.Outputs()[0].Node()
	require.Equal(t, graph.OpTypeListConstruct, out.Op())
	require.Equal(t, 3, out.NumInputs())
	for i, want := range []int{1, 2, 3} {
		elem, ok := out.Input(i).ConstantInt()
		require.True(t, ok)
		assert.Equal(t, want, elem)
	}
}

func TestRemoveListMutationChainedAliases(t *testing.T) {
	// Appends through the aliasing result of earlier appends absorb too,
	// one layer per iteration.
	g := graph.New("chained")
	list := g.ListConstruct(graph.Int)
	alias := g.Append(list, g.Const(1))
	alias = g.Append(alias, g.Const(2))
	g.Return(alias)

	RemoveListMutation(g)
	g.AssertValid()

	assert.Zero(t, countOps(g, graph.OpTypeListAppend))
	out := g.Outputs()[0].Node()
	require.Equal(t, graph.OpTypeListConstruct, out.Op())
	assert.Equal(t, 2, out.NumInputs())
}

func TestRemoveListMutationBlockedByEarlierRead(t *testing.T) {
	// A read between construct and append observes the shorter list; the
	// append must not be absorbed past it.
	g := graph.New("read")
	list := g.ListConstruct(graph.Int, g.Const(1))
	length := g.Len(list)
	g.Append(list, g.Const(2))
	g.Return(g.ListConstruct(graph.Int, length))

	RemoveListMutation(g)
	g.AssertValid()

	assert.Equal(t, 1, countOps(g, graph.OpTypeListAppend))
}

func TestRemoveListMutationLeavesNestedAppends(t *testing.T) {
	// An append inside a loop body mutates a list from the outer block; it
	// only disappears after unrolling splices it into the construct's block.
	g := graph.New("nested")
	trip := g.Input(graph.Int)
	list := g.ListConstruct(graph.Int)
	g.ForRange(trip, func(iter *graph.Value) {
		g.Append(list, iter)
	})
	g.Return(list)

	RemoveListMutation(g)
	g.AssertValid()

	assert.Equal(t, 1, countOps(g, graph.OpTypeListAppend))
	assert.Equal(t, 1, countOps(g, graph.OpTypeLoop))
}
