package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"string-art/internal/pegs"
	"string-art/pkg/geometry"
)

func pt(x, y int) geometry.PointInt { return geometry.PointInt{X: x, Y: y} }

func TestRasterizeHorizontal(t *testing.T) {
	px := Rasterize(pt(2, 3), pt(6, 3), 10)
	assert.Equal(t, []int32{32, 33, 34, 35, 36}, px)
}

func TestRasterizeOrderFollowsDirection(t *testing.T) {
	fwd := Rasterize(pt(1, 1), pt(8, 5), 10)
	rev := Rasterize(pt(8, 5), pt(1, 1), 10)

	require.NotEmpty(t, fwd)
	assert.Equal(t, int32(11), fwd[0])
	assert.Equal(t, int32(58), fwd[len(fwd)-1])
	assert.Equal(t, int32(58), rev[0])
	assert.Equal(t, int32(11), rev[len(rev)-1])
	assert.Len(t, fwd, 8, "one pixel per step along the major axis")
}

func TestRasterizeDiagonal(t *testing.T) {
	px := Rasterize(pt(0, 0), pt(3, 3), 4)
	assert.Equal(t, []int32{0, 5, 10, 15}, px)
}

func TestRasterizeIsConnected(t *testing.T) {
	const size = 64
	px := Rasterize(pt(3, 60), pt(57, 9), size)
	for i := 1; i < len(px); i++ {
		x0, y0 := int(px[i-1])%size, int(px[i-1])/size
		x1, y1 := int(px[i])%size, int(px[i])/size
		assert.LessOrEqual(t, abs(x1-x0), 1)
		assert.LessOrEqual(t, abs(y1-y0), 1)
	}
}

func TestRasterizeSkipsOutOfBounds(t *testing.T) {
	px := Rasterize(pt(-2, 0), pt(2, 0), 2)
	assert.Equal(t, []int32{0, 1}, px)

	px = Rasterize(pt(5, 5), pt(9, 9), 4)
	assert.Empty(t, px)
}

func TestNewKeyCanonical(t *testing.T) {
	assert.Equal(t, Key{A: 3, B: 9}, NewKey(9, 3))
	assert.Equal(t, NewKey(3, 9), NewKey(9, 3))
}

func TestCacheSharesBothDirections(t *testing.T) {
	layout, err := pegs.Generate(12, 120, pegs.Circle, 10)
	require.NoError(t, err)
	c := NewCache(layout, 120)

	a := c.Pixels(2, 7)
	b := c.Pixels(7, 2)
	c.Pixels(2, 7)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Rasterized())
	assert.Equal(t, a, b)
}

func TestCacheBoundedByPairs(t *testing.T) {
	const n = 10
	layout, err := pegs.Generate(n, 100, pegs.Rectangle, 5)
	require.NoError(t, err)
	c := NewCache(layout, 100)

	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a != b {
				c.Pixels(a, b)
			}
		}
	}
	assert.Equal(t, n*(n-1)/2, c.Len())
	assert.Equal(t, n*(n-1)/2, c.Rasterized())
}

func TestCacheEndpointsMatchPegs(t *testing.T) {
	const size = 200
	layout, err := pegs.Generate(8, size, pegs.Circle, 10)
	require.NoError(t, err)
	c := NewCache(layout, size)

	px := c.Pixels(1, 5)
	require.NotEmpty(t, px)
	p1 := layout[1].Point().Round()
	p5 := layout[5].Point().Round()
	assert.Equal(t, int32(p1.Y*size+p1.X), px[0])
	assert.Equal(t, int32(p5.Y*size+p5.X), px[len(px)-1])
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
