// Package chord rasterizes straight chords between pegs and caches the
// resulting pixel lists for the lifetime of one synthesis run.
package chord

import (
	"string-art/internal/pegs"
	"string-art/pkg/geometry"
)

// Key identifies an unordered peg pair. A is always the lower index.
type Key struct {
	A, B int
}

// NewKey returns the canonical key for the pair {a, b}.
func NewKey(a, b int) Key {
	if a > b {
		a, b = b, a
	}
	return Key{A: a, B: b}
}

// Rasterize returns the linear indices (y*size+x) of every pixel the line
// from p0 to p1 passes through, in order from p0 to p1, using Bresenham's
// algorithm. Pixels outside the size x size square are skipped.
func Rasterize(p0, p1 geometry.PointInt, size int) []int32 {
	x0, y0 := p0.X, p0.Y
	x1, y1 := p1.X, p1.Y

	dx := x1 - x0
	dy := y1 - y0
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	pixels := make([]int32, 0, max(dx, dy)+1)
	err := dx - dy

	for {
		if x0 >= 0 && x0 < size && y0 >= 0 && y0 < size {
			pixels = append(pixels, int32(y0*size+x0))
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return pixels
}

// Cache memoizes chord rasterizations per unordered peg pair.
// A Cache belongs to a single synthesis run and is not safe for
// concurrent use.
type Cache struct {
	size       int
	points     []geometry.PointInt
	entries    map[Key][]int32
	rasterized int
}

// NewCache creates an empty cache for the given layout and working size.
func NewCache(layout pegs.Layout, size int) *Cache {
	points := make([]geometry.PointInt, len(layout))
	for i, p := range layout {
		points[i] = p.Point().Round()
	}
	return &Cache{
		size:    size,
		points:  points,
		entries: make(map[Key][]int32),
	}
}

// Pixels returns the rasterized chord between pegs a and b. The pair is
// rasterized on first request only; (a, b) and (b, a) share an entry.
// The returned slice must not be modified.
func (c *Cache) Pixels(a, b int) []int32 {
	key := NewKey(a, b)
	if px, ok := c.entries[key]; ok {
		return px
	}
	px := Rasterize(c.points[key.A], c.points[key.B], c.size)
	c.entries[key] = px
	c.rasterized++
	return px
}

// Len returns the number of cached peg pairs.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Rasterized returns how many times a chord was actually rasterized.
func (c *Cache) Rasterized() int {
	return c.rasterized
}
