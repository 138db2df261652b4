package symshape

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/symshape/graph"
	"github.com/gomlx/symshape/types/shapes"
)

func tensorShape(t *testing.T, v *graph.Value) shapes.Shape {
	t.Helper()
	tensor, ok := v.Type().(*graph.TensorType)
	require.True(t, ok, "value %s is not a tensor", v)
	return tensor.Shape
}

func TestPropagateShapesIsolatesCallSites(t *testing.T) {
	r := NewRegistry()
	r.Register(graph.ParseSchema("aten::relu"), copyProgram())

	// Two call sites of the same operator, with different operand shapes.
	host := graph.New("host")
	x := host.Input(tensorOf(shapes.Make(2, 3)))
	y := host.Input(tensorOf(shapes.Make(4, shapes.DimUnknown, 6)))
	outX := host.Operator(graph.ParseSchema("aten::relu"), tensorOf(shapes.Unknown()), x)
	outY := host.Operator(graph.ParseSchema("aten::relu"), tensorOf(shapes.Unknown()), y)
	host.Return(outX, outY)

	r.PropagateShapes(host)

	gotX := tensorShape(t, outX)
	gotY := tensorShape(t, outY)
	assert.True(t, gotX.Equal(shapes.Make(2, 3)), "got %s", gotX)
	assert.True(t, gotY.Equal(shapes.Make(4, shapes.DimUnknown, 6)), "got %s", gotY)
}

func TestPropagateShapesPreservesDTypeAndDevice(t *testing.T) {
	r := NewRegistry()
	r.Register(graph.ParseSchema("aten::relu"), identityProgram())

	host := graph.New("host")
	x := host.Input(tensorOf(shapes.Make(8)))
	outType := graph.TensorOf(dtypes.BFloat16, shapes.Unknown()).OnDevice(3)
	out := host.Operator(graph.ParseSchema("aten::relu"), outType, x)
	host.Return(out)

	r.PropagateShapes(host)

	tensor := out.Type().(*graph.TensorType)
	assert.Equal(t, dtypes.BFloat16, tensor.DType)
	assert.Equal(t, graph.DeviceNum(3), tensor.Device)
	assert.True(t, tensor.Shape.Equal(shapes.Make(8)), "got %s", tensor.Shape)
}

func TestPropagateShapesSkipsUnregisteredOperators(t *testing.T) {
	r := NewRegistry()

	host := graph.New("host")
	x := host.Input(tensorOf(shapes.Make(2)))
	out := host.Operator(graph.ParseSchema("aten::mystery"), tensorOf(shapes.OfRank(1)), x)
	host.Return(out)

	r.PropagateShapes(host)

	got := tensorShape(t, out)
	assert.True(t, got.Equal(shapes.OfRank(1)), "got %s", got)
}

func TestPropagateShapesSkipsTensorListOperands(t *testing.T) {
	catLike := graph.New("catlike")
	tensors := catLike.Input(graph.ListOf(graph.IntList))
	catLike.Return(catLike.Index(tensors, catLike.Const(0)))

	r := NewRegistry()
	r.Register(graph.ParseSchema("aten::cat"), catLike)

	host := graph.New("host")
	in := host.Input(graph.ListOf(tensorOf(shapes.Make(2, 3))))
	out := host.Operator(graph.ParseSchema("aten::cat"), tensorOf(shapes.Unknown()), in)
	host.Return(out)

	r.PropagateShapes(host)
	assert.False(t, tensorShape(t, out).HasRank())
}

func TestPropagateShapesSkipsArityMismatch(t *testing.T) {
	r := NewRegistry()
	r.Register(graph.ParseSchema("aten::mm"), identityProgram())

	host := graph.New("host")
	x := host.Input(tensorOf(shapes.Make(2, 3)))
	y := host.Input(tensorOf(shapes.Make(3, 4)))
	out := host.Operator(graph.ParseSchema("aten::mm"), tensorOf(shapes.Unknown()), x, y)
	host.Return(out)

	r.PropagateShapes(host)
	assert.False(t, tensorShape(t, out).HasRank())
}

func TestPropagateShapesLeavesNonTensorOutputs(t *testing.T) {
	r := NewRegistry()
	r.Register(graph.ParseSchema("aten::size"), identityProgram())

	host := graph.New("host")
	x := host.Input(tensorOf(shapes.Make(2)))
	out := host.Operator(graph.ParseSchema("aten::size"), graph.IntList, x)
	host.Return(out)

	r.PropagateShapes(host)
	assert.True(t, graph.IsIntList(out.Type()))
}

func TestPropagateShapesVisitsTopLevelOnly(t *testing.T) {
	r := NewRegistry()
	r.Register(graph.ParseSchema("aten::relu"), identityProgram())

	host := graph.New("host")
	cond := host.Input(graph.Bool)
	x := host.Input(tensorOf(shapes.Make(2)))
	schema := graph.ParseSchema("aten::relu")
	var thenOut, elseOut *graph.Value
	outs := host.If(cond,
		func() []*graph.Value {
			thenOut = host.Operator(schema, tensorOf(shapes.Unknown()), x)
			return []*graph.Value{thenOut}
		},
		func() []*graph.Value {
			elseOut = host.Operator(schema, tensorOf(shapes.Unknown()), x)
			return []*graph.Value{elseOut}
		})
	host.Return(outs[0])

	r.PropagateShapes(host)

	// Only straight-line operators are analyzed; call sites nested under
	// control flow are left as they are.
	assert.False(t, tensorShape(t, thenOut).HasRank())
	assert.False(t, tensorShape(t, elseOut).HasRank())
}
