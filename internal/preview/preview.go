// Package preview renders a synthesis result as the thread would look on the
// frame: a white board with every chord stroked, in order, as a translucent
// line.
package preview

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"

	"string-art/internal/synth"
)

// ErrEmptyResult is returned when there is nothing to draw on.
var ErrEmptyResult = errors.New("preview: result has no pegs")

// Options controls how a result is drawn.
type Options struct {
	ThreadColor string  // #rrggbb
	Background  string  // #rrggbb
	Opacity     float64 // per-chord alpha in (0,1]
	LineWidth   float64 // in working-image pixels
	Scale       float64 // output pixels per working pixel
	ShowPegs    bool
	PegRadius   float64
	PegColor    string
}

// DefaultOptions returns a black thread on a white board at working size.
func DefaultOptions() Options {
	return Options{
		ThreadColor: "#000000",
		Background:  "#ffffff",
		Opacity:     0.2,
		LineWidth:   1,
		Scale:       1,
		ShowPegs:    false,
		PegRadius:   2,
		PegColor:    "#b03a2e",
	}
}

// WithScale returns options with a different output scale.
func (o Options) WithScale(scale float64) Options {
	o.Scale = scale
	return o
}

// WithThread returns options with a different thread color and opacity.
func (o Options) WithThread(hex string, opacity float64) Options {
	o.ThreadColor = hex
	o.Opacity = opacity
	return o
}

// WithPegs returns options with peg markers switched on or off.
func (o Options) WithPegs(show bool) Options {
	o.ShowPegs = show
	return o
}

func (o Options) validate() error {
	if o.Opacity <= 0 || o.Opacity > 1 {
		return fmt.Errorf("preview: opacity %g outside (0,1]", o.Opacity)
	}
	if o.LineWidth <= 0 {
		return fmt.Errorf("preview: line width %g must be positive", o.LineWidth)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("preview: scale %g must be positive", o.Scale)
	}
	return nil
}

// parseColor turns a #rrggbb string into a gg color with the given alpha.
func parseColor(hex string, alpha float64) (gg.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("preview: bad color %q: %w", hex, err)
	}
	return gg.RGBA2(c.R, c.G, c.B, alpha), nil
}

// Size returns the output side length in pixels for res.
func Size(res *synth.Result, opts Options) int {
	s := int(float64(res.Parameters.WorkingSize)*opts.Scale + 0.5)
	return max(s, 1)
}

func draw(res *synth.Result, opts Options) (*gg.Context, error) {
	if res == nil || len(res.Pegs) == 0 {
		return nil, ErrEmptyResult
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	bg, err := parseColor(opts.Background, 1)
	if err != nil {
		return nil, err
	}
	thread, err := parseColor(opts.ThreadColor, opts.Opacity)
	if err != nil {
		return nil, err
	}

	size := Size(res, opts)
	dc := gg.NewContext(size, size)
	dc.ClearWithColor(bg)
	dc.SetRGBA(thread.R, thread.G, thread.B, thread.A)
	dc.SetLineWidth(opts.LineWidth * opts.Scale)

	n := len(res.Pegs)
	for i, c := range res.Chords {
		if c.From < 0 || c.From >= n || c.To < 0 || c.To >= n {
			dc.Close()
			return nil, fmt.Errorf("preview: chord %d references peg outside [0,%d)", i, n)
		}
		a, b := res.Pegs[c.From], res.Pegs[c.To]
		dc.DrawLine(a.X*opts.Scale, a.Y*opts.Scale, b.X*opts.Scale, b.Y*opts.Scale)
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("failed to stroke chord %d: %w", i, err)
		}
	}

	if opts.ShowPegs {
		pc, err := parseColor(opts.PegColor, 1)
		if err != nil {
			dc.Close()
			return nil, err
		}
		dc.SetRGBA(pc.R, pc.G, pc.B, pc.A)
		for _, p := range res.Pegs {
			dc.DrawCircle(p.X*opts.Scale, p.Y*opts.Scale, opts.PegRadius*opts.Scale)
		}
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("failed to draw pegs: %w", err)
		}
	}

	// Every output path reads pixels, so pending accelerator work lands first.
	if err := dc.FlushGPU(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("failed to flush preview: %w", err)
	}
	return dc, nil
}

// Render draws res and returns the image.
func Render(res *synth.Result, opts Options) (image.Image, error) {
	dc, err := draw(res, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// SavePNG renders res into a PNG file at path.
func SavePNG(path string, res *synth.Result, opts Options) error {
	dc, err := draw(res, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

// EncodePNG renders res as PNG into w.
func EncodePNG(w io.Writer, res *synth.Result, opts Options) error {
	dc, err := draw(res, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}
