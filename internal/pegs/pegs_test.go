package pegs

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"string-art/pkg/geometry"
)

func TestCircleLayoutFourPegs(t *testing.T) {
	const size = 100
	const inset = 10.0
	layout, err := Generate(4, size, Circle, inset)
	require.NoError(t, err)
	require.Len(t, layout, 4)

	center := float64(size) / 2
	radius := center - inset
	for i, p := range layout {
		angle := float64(i) * math.Pi / 2
		assert.Equal(t, i, p.Index)
		assert.InDelta(t, center+radius*math.Cos(angle), p.X, 1e-9, "peg %d X", i)
		assert.InDelta(t, center+radius*math.Sin(angle), p.Y, 1e-9, "peg %d Y", i)
	}

	// Peg 0 is the rightmost point.
	assert.InDelta(t, 90, layout[0].X, 1e-9)
	assert.InDelta(t, 50, layout[0].Y, 1e-9)

	c := geometry.Centroid(layout.Points())
	assert.InDelta(t, center, c.X, 1e-9)
	assert.InDelta(t, center, c.Y, 1e-9)
}

func TestCircleEqualSpacing(t *testing.T) {
	layout, err := Generate(200, 600, Circle, 10)
	require.NoError(t, err)

	want := layout[0].Point().Distance(layout[1].Point())
	for i := range layout {
		next := layout[(i+1)%len(layout)]
		assert.InDelta(t, want, layout[i].Point().Distance(next.Point()), 1e-6)
	}
}

func TestRectangleLayoutCount(t *testing.T) {
	const size = 500
	const inset = 10.0
	layout, err := Generate(100, size, Rectangle, inset)
	require.NoError(t, err)
	require.Len(t, layout, 100)

	lo, hi := inset, float64(size)-1-inset
	var top, right, bottom, left int
	for i, p := range layout {
		assert.Equal(t, i, p.Index)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.X, float64(size))
		assert.Less(t, p.Y, float64(size))

		switch {
		case p.Y == lo && p.X < hi:
			top++
		case p.X == hi && p.Y < hi:
			right++
		case p.Y == hi && p.X > lo:
			bottom++
		case p.X == lo && p.Y > lo:
			left++
		default:
			t.Errorf("peg %d at (%v, %v) is not on the frame", i, p.X, p.Y)
		}
	}
	for _, n := range []int{top, right, bottom, left} {
		assert.InDelta(t, 25, n, 1)
	}
}

func TestRectangleRemainderGoesToFirstEdges(t *testing.T) {
	layout, err := Generate(11, 200, Rectangle, 5)
	require.NoError(t, err)
	require.Len(t, layout, 11)

	// 11 = 3+3+3+2: the left edge starts at index 9.
	assert.Equal(t, 5.0, layout[0].X)
	assert.Equal(t, 5.0, layout[0].Y)
	assert.Equal(t, 194.0, layout[3].X, "right edge starts at the top-right corner")
	assert.Equal(t, 194.0, layout[6].Y, "bottom edge starts at the bottom-right corner")
	assert.Equal(t, 5.0, layout[9].X, "left edge starts at the bottom-left corner")
	assert.Equal(t, 194.0, layout[9].Y)
}

func TestGenerateDeterministic(t *testing.T) {
	for _, shape := range []Shape{Circle, Rectangle} {
		a, err := Generate(150, 800, shape, 10)
		require.NoError(t, err)
		b, err := Generate(150, 800, shape, 10)
		require.NoError(t, err)
		assert.Equal(t, a, b, "shape %s", shape)
	}
}

func TestGenerateTooFewPegs(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 2} {
		_, err := Generate(n, 100, Circle, 10)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTooFewPegs), "count %d", n)
	}
}

func TestRingDistance(t *testing.T) {
	tests := []struct {
		a, b, n, want int
	}{
		{0, 1, 10, 1},
		{0, 9, 10, 1},
		{2, 7, 10, 5},
		{7, 2, 10, 5},
		{0, 6, 10, 4},
		{3, 3, 10, 0},
		{0, 100, 200, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RingDistance(tt.a, tt.b, tt.n), "RingDistance(%d, %d, %d)", tt.a, tt.b, tt.n)
	}
}

func TestShapeText(t *testing.T) {
	for _, name := range []string{"circle", "Rectangle", " rect ", "round", "square"} {
		_, err := ParseShape(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseShape("hexagon")
	assert.Error(t, err)

	var s Shape
	require.NoError(t, s.UnmarshalText([]byte("rectangle")))
	assert.Equal(t, Rectangle, s)

	text, err := Circle.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "circle", string(text))

	_, err = Shape(7).MarshalText()
	assert.Error(t, err)
}
