package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	s := Make(2, DimUnknown, 4)
	require.True(t, s.HasRank())
	require.Equal(t, 3, s.Rank())
	assert.Equal(t, 2, s.Dim(0))
	assert.Equal(t, DimUnknown, s.Dim(1))
	assert.Equal(t, 4, s.Dim(2))
	assert.True(t, s.DimKnown(0))
	assert.False(t, s.DimKnown(1))

	// Zero-sized dimensions are valid: empty tensors exist.
	empty := Make(0, 3)
	assert.True(t, empty.IsComplete())

	scalar := Make()
	assert.Equal(t, 0, scalar.Rank())
	assert.True(t, scalar.IsComplete())

	require.Panics(t, func() { Make(2, -3) })
}

func TestOfRankAndUnknown(t *testing.T) {
	s := OfRank(3)
	require.Equal(t, 3, s.Rank())
	for axis := 0; axis < 3; axis++ {
		assert.False(t, s.DimKnown(axis))
	}
	assert.False(t, s.IsComplete())

	u := Unknown()
	assert.False(t, u.HasRank())
	assert.Equal(t, -1, u.Rank())
	assert.False(t, u.IsComplete())
	assert.True(t, u.Equal(Shape{}))

	require.Panics(t, func() { OfRank(-1) })
}

func TestDimNegativeAxis(t *testing.T) {
	s := Make(1, 2, 9, DimUnknown)
	assert.Equal(t, DimUnknown, s.Dim(-1))
	assert.Equal(t, 9, s.Dim(-2))
	assert.Equal(t, 1, s.Dim(-4))
	require.Panics(t, func() { s.Dim(4) })
	require.Panics(t, func() { s.Dim(-5) })
	require.Panics(t, func() { Unknown().Dim(0) })
}

func TestCloneIsIndependent(t *testing.T) {
	s := Make(2, 3)
	c := s.Clone()
	c.Dimensions[0] = 7
	assert.Equal(t, 2, s.Dim(0))
	assert.Equal(t, 7, c.Dim(0))
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b Shape
		want bool
	}{
		{"both unknown rank", Unknown(), Shape{}, true},
		{"unknown vs known", Unknown(), Make(2), false},
		{"same dims", Make(2, DimUnknown), Make(2, DimUnknown), true},
		{"different dims", Make(2, 3), Make(2, 4), false},
		{"different ranks", Make(2, 3), Make(2, 3, 4), false},
		{"scalar vs scalar", Make(), Make(), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Equal(tc.b))
			assert.Equal(t, tc.want, tc.b.Equal(tc.a))
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "[2, *, 4]", Make(2, DimUnknown, 4).String())
	assert.Equal(t, "[]", Make().String())
	assert.Equal(t, "[...]", Unknown().String())
}

func TestAssertValid(t *testing.T) {
	Make(1, 2).AssertValid()
	Unknown().AssertValid()
	require.Panics(t, func() {
		s := Shape{Dimensions: []int{2}}
		s.AssertValid()
	})
	require.Panics(t, func() {
		s := Shape{KnownRank: true, Dimensions: []int{-7}}
		s.AssertValid()
	})
}
