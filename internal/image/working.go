package image

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"

	"string-art/internal/pegs"
	"string-art/pkg/colorutil"
)

const (
	// MinWorkingSize is the smallest working square that still yields a
	// meaningful pattern.
	MinWorkingSize = 100

	// MaxWorkingSize keeps every linear pixel index within int32.
	MaxWorkingSize = 8192
)

// Working is the square luminance field the synthesizer matches against.
// Values are 0 (black) to 255 (white), indexed y*Size+x.
type Working struct {
	Size int
	Pix  []float64
}

// Dark returns how dark pixel i is (255 - luminance).
func (w *Working) Dark(i int) float64 {
	return 255 - w.Pix[i]
}

// ToGray renders the field as a grayscale image.
func (w *Working) ToGray() *image.Gray {
	return toGray(w.Size, w.Pix, 1)
}

// Importance weights each working pixel by visual salience, in [0, 1].
type Importance struct {
	Size int
	Pix  []float64
}

// ToGray renders the field as a grayscale image, white = most important.
func (m *Importance) ToGray() *image.Gray {
	return toGray(m.Size, m.Pix, 255)
}

// Options configures preprocessing.
type Options struct {
	Shape         pegs.Shape // Circle frames mask pixels outside the inscribed circle
	Inset         float64    // Mask inset from the square border, in pixels
	ContrastBoost float64    // S-curve strength, 0 disables
	EdgeWeight    float64    // Weight of normalized gradient magnitude
	DarkWeight    float64    // Weight of inverse brightness
}

// DefaultOptions returns the default preprocessing options.
func DefaultOptions() Options {
	return Options{
		Shape:         pegs.Circle,
		Inset:         10,
		ContrastBoost: 0.2,
		EdgeWeight:    0.75,
		DarkWeight:    0.5,
	}
}

// Preprocess scales img to cover a size x size square, converts it to
// luminance and derives the importance field. The result does not depend on
// anything but its arguments.
func Preprocess(img image.Image, size int, opts Options) (*Working, *Importance) {
	square := Letterbox(img, size)

	n := size * size
	lum := make([]float64, n)
	for y := 0; y < size; y++ {
		row := square.Pix[y*square.Stride:]
		for x := 0; x < size; x++ {
			p := row[x*4:]
			l := colorutil.Luminance(p[0], p[1], p[2])
			lum[y*size+x] = colorutil.SCurve(l, opts.ContrastBoost)
		}
	}

	grad := sobelMagnitude(lum, size)
	if peak := floats.Max(grad); peak > 0 {
		floats.Scale(1/peak, grad)
	}

	// The frame mask is applied after the gradient so the circle boundary
	// does not register as an edge.
	if opts.Shape == pegs.Circle {
		applyCircleMask(lum, grad, size, opts.Inset)
	}

	importance := make([]float64, n)
	for i := range importance {
		v := opts.EdgeWeight*grad[i] + opts.DarkWeight*(1-lum[i]/255)
		importance[i] = colorutil.Clamp(v, 0, 1)
	}

	return &Working{Size: size, Pix: lum}, &Importance{Size: size, Pix: importance}
}

// Letterbox scales img, preserving aspect ratio, so that it covers a
// size x size square and centers it. Overflow is cropped, and anything the
// image leaves uncovered (including transparency) is white.
func Letterbox(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(colorutil.White), image.Point{}, draw.Src)

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 {
		return dst
	}

	scale := math.Max(float64(size)/w, float64(size)/h)
	sw := int(math.Round(w * scale))
	sh := int(math.Round(h * scale))
	x0 := (size - sw) / 2
	y0 := (size - sh) / 2
	dr := image.Rect(x0, y0, x0+sw, y0+sh)

	draw.BiLinear.Scale(dst, dr, img, b, draw.Over, nil)
	return dst
}

func applyCircleMask(lum, grad []float64, size int, inset float64) {
	c := float64(size) / 2
	r := c - inset
	r2 := r * r
	for y := 0; y < size; y++ {
		dy := float64(y) + 0.5 - c
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - c
			if dx*dx+dy*dy > r2 {
				i := y*size + x
				lum[i] = 255
				grad[i] = 0
			}
		}
	}
}

func toGray(size int, pix []float64, scale float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i, v := range pix {
		img.Pix[i] = uint8(colorutil.Clamp(math.Round(v*scale), 0, 255))
	}
	return img
}
