// Package pegs generates the peg layout around the frame of a string-art pattern.
package pegs

import (
	"errors"
	"fmt"
	"strings"

	"string-art/pkg/geometry"
)

// Shape identifies the frame the pegs are mounted on.
type Shape int

const (
	Circle Shape = iota
	Rectangle
)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Rectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape converts a frame name to a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "circle", "round":
		return Circle, nil
	case "rectangle", "rect", "square":
		return Rectangle, nil
	}
	return Circle, fmt.Errorf("unknown frame shape %q", name)
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	return s == Circle || s == Rectangle
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown frame shape %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	shape, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = shape
	return nil
}

// ErrTooFewPegs is returned when fewer than three pegs are requested.
var ErrTooFewPegs = errors.New("pegs: at least 3 pegs are required")

// Peg is a single anchor point in working-image coordinates.
type Peg struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Point returns the peg position.
func (p Peg) Point() geometry.Point2D {
	return geometry.Point2D{X: p.X, Y: p.Y}
}

// Layout is the ordered list of pegs. Pegs i and i+1 are neighbours
// along the frame perimeter, and the last peg neighbours the first.
type Layout []Peg

// Points returns the peg positions in index order.
func (l Layout) Points() []geometry.Point2D {
	pts := make([]geometry.Point2D, len(l))
	for i, p := range l {
		pts[i] = p.Point()
	}
	return pts
}

// Generate computes count peg positions for a square working image of the
// given size. Pegs are inset from the image border by inset pixels.
// The layout is fully determined by its arguments.
func Generate(count, size int, shape Shape, inset float64) (Layout, error) {
	if count < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPegs, count)
	}
	switch shape {
	case Circle:
		return circle(count, size, inset), nil
	case Rectangle:
		return rectangle(count, size, inset), nil
	}
	return nil, fmt.Errorf("pegs: unknown frame shape %d", int(shape))
}

func circle(count, size int, inset float64) Layout {
	c := float64(size) / 2
	pts := geometry.GenerateCirclePoints(c, c, c-inset, count)
	layout := make(Layout, count)
	for i, p := range pts {
		layout[i] = Peg{Index: i, X: p.X, Y: p.Y}
	}
	return layout
}

// rectangle walks the frame clockwise from the top-left corner:
// top edge, right edge, bottom edge, left edge. Each edge owns its
// starting corner, so corners are never duplicated.
func rectangle(count, size int, inset float64) Layout {
	lo := inset
	hi := float64(size) - 1 - inset
	corners := [4]geometry.Point2D{
		{X: lo, Y: lo},
		{X: hi, Y: lo},
		{X: hi, Y: hi},
		{X: lo, Y: hi},
	}

	perEdge := count / 4
	remainder := count % 4

	layout := make(Layout, 0, count)
	for edge := 0; edge < 4; edge++ {
		n := perEdge
		if edge < remainder {
			n++
		}
		start := corners[edge]
		span := corners[(edge+1)%4].Sub(start)
		for j := 0; j < n; j++ {
			p := start.Add(span.Scale(float64(j) / float64(n)))
			layout = append(layout, Peg{Index: len(layout), X: p.X, Y: p.Y})
		}
	}
	return layout
}

// RingDistance returns the shorter of the two arc distances between peg
// indices a and b on a ring of n pegs.
func RingDistance(a, b, n int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if n-d < d {
		return n - d
	}
	return d
}
