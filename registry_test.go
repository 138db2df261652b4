package symshape

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/symshape/graph"
)

// identityProgram returns its input list unchanged.
func identityProgram() *graph.Graph {
	g := graph.New("identity")
	self := g.Input(graph.IntList)
	g.Return(self)
	return g
}

func TestRegistryFirstRegistrationWins(t *testing.T) {
	r := NewRegistry()
	schema := graph.ParseSchema("aten::mm")
	first := identityProgram()
	second := identityProgram()

	r.Register(schema, first)
	r.Register(schema, second)

	assert.Same(t, first, r.Lookup(schema))
	assert.Equal(t, 1, r.Len())
}

func TestRegistryLookupMiss(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Lookup(graph.ParseSchema("aten::mm")))
}

func TestRegistryEmptySchemaRegistersNothing(t *testing.T) {
	r := NewRegistry()
	r.Register(graph.Schema{}, identityProgram())
	assert.Zero(t, r.Len())
}

func TestRegistryProgramContract(t *testing.T) {
	r := NewRegistry()
	schema := graph.ParseSchema("aten::mm")

	t.Run("nil program", func(t *testing.T) {
		require.Panics(t, func() { r.Register(schema, nil) })
	})
	t.Run("no output", func(t *testing.T) {
		g := graph.New("noout")
		g.Input(graph.IntList)
		require.Panics(t, func() { r.Register(schema, g) })
	})
	t.Run("not an int list", func(t *testing.T) {
		g := graph.New("scalarout")
		g.Return(g.Const(3))
		require.Panics(t, func() { r.Register(schema, g) })
	})
	t.Run("two outputs", func(t *testing.T) {
		g := graph.New("twoout")
		list := g.Const([]int{1})
		g.Return(list, list)
		require.Panics(t, func() { r.Register(schema, g) })
	})

	assert.Zero(t, r.Len())
}

func TestRegistrySchemasSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"aten::t", "aten::bmm", "aten::mm", "aten::add.Tensor"} {
		r.Register(graph.ParseSchema(name), identityProgram())
	}

	schemas := r.Schemas()
	require.Len(t, schemas, 4)
	got := make([]string, len(schemas))
	for i, s := range schemas {
		got[i] = s.String()
	}
	assert.Equal(t, []string{"aten::add.Tensor", "aten::bmm", "aten::mm", "aten::t"}, got)
}

func TestRegistryConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	schema := graph.ParseSchema("aten::relu")
	programs := make([]*graph.Graph, 8)
	for i := range programs {
		programs[i] = identityProgram()
	}

	var wg sync.WaitGroup
	for _, fn := range programs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Register(schema, fn)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, r.Len())
	assert.Contains(t, programs, r.Lookup(schema))
}
