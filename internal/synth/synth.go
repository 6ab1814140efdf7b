// Package synth turns a photo into an ordered sequence of peg-to-peg chords
// whose superposition approximates the image.
//
// A run validates its parameters, preprocesses the image into luminance and
// importance fields, lays out the pegs and then greedily selects chords with
// a [Sequencer]. Runs are deterministic: the same image and parameters always
// produce the same [Result]. Every run owns its own chord cache and ink
// buffer, so concurrent runs never share mutable state.
package synth

import (
	"context"
	"image"
	"io"
	"time"

	artimage "string-art/internal/image"
	"string-art/internal/pegs"
)

// Option configures a single Synthesize call.
type Option func(*runOptions)

type runOptions struct {
	progress ProgressFunc
	onStep   func(ink []float64) // test hook, called after every accepted chord
}

// WithProgress registers a progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(o *runOptions) {
		o.progress = fn
	}
}

// Synthesize computes a chord sequence for img.
//
// Parameters are validated before any image work; an invalid set returns an
// *InvalidParameterError. Once the sequencer starts the run can only end
// early through ctx, and a run that finds no improving chord still succeeds
// with fewer than MaxChords chords.
func Synthesize(ctx context.Context, img image.Image, params Parameters, opts ...Option) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return run(ctx, img, params, opts)
}

// SynthesizeReader decodes an image from r and synthesizes it.
// Decode failures match ErrImageDecode.
func SynthesizeReader(ctx context.Context, r io.Reader, params Parameters, opts ...Option) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	src, err := artimage.Decode(r)
	if err != nil {
		return nil, err
	}
	return run(ctx, src.Image, params, opts)
}

// SynthesizeFile loads the image at path and synthesizes it.
// Decode failures match ErrImageDecode.
func SynthesizeFile(ctx context.Context, path string, params Parameters, opts ...Option) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	src, err := artimage.Load(path)
	if err != nil {
		return nil, err
	}
	return run(ctx, src.Image, params, opts)
}

func run(ctx context.Context, img image.Image, params Parameters, opts []Option) (*Result, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	log := Logger()
	start := time.Now()
	p := params.effective()

	work, imp := artimage.Preprocess(img, p.WorkingSize, p.PreprocessOptions())

	layout, err := pegs.Generate(p.PegCount, p.WorkingSize, p.FrameShape, p.PegInset)
	if err != nil {
		return nil, &InvalidParameterError{Field: "PegCount", Value: p.PegCount, Reason: err.Error()}
	}

	if params.MinLoopSeparation > p.MinLoopSeparation {
		log.Debug("loop separation clamped",
			"requested", params.MinLoopSeparation, "effective", p.MinLoopSeparation)
	}
	log.Info("synthesis started",
		"pegs", p.PegCount, "max_chords", p.MaxChords, "frame", p.FrameShape.String(),
		"working_size", p.WorkingSize, "stride", p.Stride())

	seq := NewSequencer(work, imp, layout, p)
	seq.onStep = o.onStep
	if err := seq.Run(ctx, o.progress); err != nil {
		log.Info("synthesis abandoned", "chords", len(seq.Chords()), "err", err)
		return nil, err
	}

	res := seq.Result()
	log.Info("synthesis finished",
		"chords", len(res.Chords), "stop", string(res.Stats.StopReason),
		"elapsed", time.Since(start).Round(time.Millisecond))
	log.Debug("chord cache",
		"entries", res.Stats.CacheEntries, "rasterized", res.Stats.Rasterized,
		"evaluated", res.Stats.Evaluated)
	return res, nil
}
