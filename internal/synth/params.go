package synth

import (
	"math"

	artimage "string-art/internal/image"
	"string-art/internal/pegs"
)

// Parameters controls a synthesis run.
type Parameters struct {
	PegCount          int        `json:"peg_count"`
	MaxChords         int        `json:"max_chords"`
	MinLoopSeparation int        `json:"min_loop_separation"` // 0 derives PegCount/12
	InkWeightPerChord float64    `json:"ink_weight_per_chord"`
	FrameShape        pegs.Shape `json:"frame_shape"`
	WorkingSize       int        `json:"working_size"`

	// Tuning
	PegInset         float64 `json:"peg_inset"`
	EdgeWeight       float64 `json:"edge_weight"`
	DarkWeight       float64 `json:"dark_weight"`
	ContrastBoost    float64 `json:"contrast_boost"`
	ImportanceFloor  float64 `json:"importance_floor"`
	MaxCandidates    int     `json:"max_candidates"`    // 0 uses DefaultMaxCandidates
	ProgressInterval int     `json:"progress_interval"` // 0 uses DefaultProgressInterval
}

const (
	// DefaultMaxCandidates bounds the candidates scored per step. Peg
	// counts above it are subsampled with stride PegCount/DefaultMaxCandidates.
	DefaultMaxCandidates = 320

	// DefaultProgressInterval is the progress cadence in accepted chords.
	DefaultProgressInterval = 30

	// Epsilon is the smallest score that counts as an improvement.
	Epsilon = 1e-9
)

// DefaultParams returns default synthesis parameters.
// These match the medium product tier on a circular frame.
func DefaultParams() Parameters {
	return Parameters{
		PegCount:          200,
		MaxChords:         3000,
		MinLoopSeparation: 0, // derived from PegCount
		InkWeightPerChord: 20,
		FrameShape:        pegs.Circle,
		WorkingSize:       600,

		PegInset:         10,
		EdgeWeight:       0.75,
		DarkWeight:       0.5,
		ContrastBoost:    0.2,
		ImportanceFloor:  0.05,
		MaxCandidates:    DefaultMaxCandidates,
		ProgressInterval: DefaultProgressInterval,
	}
}

// WithPegCount returns a copy of params with the given peg count. An
// explicit loop separation is kept; a zero one still derives count/12.
func (p Parameters) WithPegCount(count int) Parameters {
	p.PegCount = count
	return p
}

// WithMaxChords returns a copy of params with a different chord budget.
func (p Parameters) WithMaxChords(n int) Parameters {
	p.MaxChords = n
	return p
}

// WithFrame returns a copy of params for a different frame shape.
func (p Parameters) WithFrame(shape pegs.Shape) Parameters {
	p.FrameShape = shape
	return p
}

// WithWorkingSize returns a copy of params with a different detail level.
func (p Parameters) WithWorkingSize(size int) Parameters {
	p.WorkingSize = size
	return p
}

// WithInkWeight returns a copy of params with a different per-chord darkening.
func (p Parameters) WithInkWeight(w float64) Parameters {
	p.InkWeightPerChord = w
	return p
}

// WithMinLoopSeparation returns a copy of params with an explicit separation.
func (p Parameters) WithMinLoopSeparation(sep int) Parameters {
	p.MinLoopSeparation = sep
	return p
}

// Validate checks params against sane bounds and returns the first
// violation as an *InvalidParameterError.
func (p Parameters) Validate() error {
	switch {
	case p.PegCount < 3:
		return invalid("PegCount", p.PegCount, "at least 3 pegs are required")
	case p.MaxChords <= 0:
		return invalid("MaxChords", p.MaxChords, "must be positive")
	case p.MinLoopSeparation < 0:
		return invalid("MinLoopSeparation", p.MinLoopSeparation, "must not be negative")
	case p.InkWeightPerChord <= 0 || p.InkWeightPerChord > 255 || math.IsNaN(p.InkWeightPerChord):
		return invalid("InkWeightPerChord", p.InkWeightPerChord, "must be in (0, 255]")
	case !p.FrameShape.Valid():
		return invalid("FrameShape", int(p.FrameShape), "unknown frame shape")
	case p.WorkingSize < artimage.MinWorkingSize || p.WorkingSize > artimage.MaxWorkingSize:
		return invalid("WorkingSize", p.WorkingSize, "must be in [%d, %d]", artimage.MinWorkingSize, artimage.MaxWorkingSize)
	case p.PegInset < 0 || p.PegInset >= float64(p.WorkingSize)/4:
		return invalid("PegInset", p.PegInset, "must be in [0, %g)", float64(p.WorkingSize)/4)
	case p.EdgeWeight < 0:
		return invalid("EdgeWeight", p.EdgeWeight, "must not be negative")
	case p.DarkWeight < 0:
		return invalid("DarkWeight", p.DarkWeight, "must not be negative")
	case p.ContrastBoost < 0 || p.ContrastBoost > 1:
		return invalid("ContrastBoost", p.ContrastBoost, "must be in [0, 1]")
	case p.ImportanceFloor < 0:
		return invalid("ImportanceFloor", p.ImportanceFloor, "must not be negative")
	case p.MaxCandidates < 0:
		return invalid("MaxCandidates", p.MaxCandidates, "must not be negative")
	case p.ProgressInterval < 0:
		return invalid("ProgressInterval", p.ProgressInterval, "must not be negative")
	}
	return nil
}

// Effective returns params with derived and zero-valued settings resolved,
// as recorded in Result.Parameters.
func (p Parameters) Effective() Parameters {
	return p.effective()
}

// effective resolves derived and zero-valued settings. The loop separation
// is clamped to PegCount/2 so the opposite peg always stays eligible.
func (p Parameters) effective() Parameters {
	if p.MinLoopSeparation == 0 {
		p.MinLoopSeparation = p.PegCount / 12
	}
	if half := p.PegCount / 2; p.MinLoopSeparation > half {
		p.MinLoopSeparation = half
	}
	if p.MaxCandidates == 0 {
		p.MaxCandidates = DefaultMaxCandidates
	}
	if p.ProgressInterval == 0 {
		p.ProgressInterval = DefaultProgressInterval
	}
	return p
}

// Stride returns the candidate subsampling stride for these parameters.
func (p Parameters) Stride() int {
	limit := p.MaxCandidates
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}
	return max(1, p.PegCount/limit)
}

// PreprocessOptions returns the image preprocessing settings for params.
func (p Parameters) PreprocessOptions() artimage.Options {
	return artimage.Options{
		Shape:         p.FrameShape,
		Inset:         p.PegInset,
		ContrastBoost: p.ContrastBoost,
		EdgeWeight:    p.EdgeWeight,
		DarkWeight:    p.DarkWeight,
	}
}
