package synth

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"string-art/internal/chord"
	artimage "string-art/internal/image"
	"string-art/internal/pegs"
)

// ProgressFunc observes a run every ProgressInterval accepted chords.
// chords is the accepted sequence so far and must be treated as read-only.
// Observing progress never changes the result.
type ProgressFunc func(step, total int, chords []Chord)

// Sequencer greedily picks chords that best reduce the darkness the target
// still wants. A Sequencer owns its ink buffer and chord cache and must not
// be shared between goroutines.
type Sequencer struct {
	params Parameters
	layout pegs.Layout
	cache  *chord.Cache

	target []float64 // Darkness wanted per pixel (255 - luminance)
	weight []float64 // importance + ImportanceFloor
	ink    []float64 // Simulated ink, 255 = untouched

	stride    int
	current   int
	previous  int
	chords    []Chord
	evaluated int
	stop      StopReason

	onStep func(ink []float64)
}

// NewSequencer prepares a run over a preprocessed image. params must have
// passed Validate; zero-valued derived settings are resolved here.
func NewSequencer(work *artimage.Working, imp *artimage.Importance, layout pegs.Layout, params Parameters) *Sequencer {
	p := params.effective()
	n := work.Size * work.Size

	target := make([]float64, n)
	weight := make([]float64, n)
	ink := make([]float64, n)
	for i := 0; i < n; i++ {
		target[i] = work.Dark(i)
		weight[i] = imp.Pix[i] + p.ImportanceFloor
		ink[i] = 255
	}

	return &Sequencer{
		params:   p,
		layout:   layout,
		cache:    chord.NewCache(layout, work.Size),
		target:   target,
		weight:   weight,
		ink:      ink,
		stride:   p.Stride(),
		previous: -1,
		chords:   make([]Chord, 0, p.MaxChords),
	}
}

// Done reports whether the run has stopped.
func (s *Sequencer) Done() bool {
	return s.stop != ""
}

// Chords returns the accepted chords so far. The slice must not be modified.
func (s *Sequencer) Chords() []Chord {
	return s.chords[:len(s.chords):len(s.chords)]
}

// Step selects and applies one chord. It returns false once the run has
// stopped, either because the budget is spent or nothing improves.
func (s *Sequencer) Step() (Chord, bool) {
	if s.Done() {
		return Chord{}, false
	}
	if len(s.chords) >= s.params.MaxChords {
		s.stop = StopMaxChords
		return Chord{}, false
	}

	best, score, ok := s.bestCandidate()
	if !ok {
		s.stop = StopNoCandidates
		return Chord{}, false
	}
	if score <= Epsilon {
		s.stop = StopNoImprovement
		return Chord{}, false
	}

	c := Chord{From: s.current, To: best}
	s.apply(c)
	s.chords = append(s.chords, c)
	s.previous, s.current = s.current, best

	if len(s.chords) == s.params.MaxChords {
		s.stop = StopMaxChords
	}
	return c, true
}

// bestCandidate scores every eligible peg from the current one and returns
// the highest scorer, lowest index first on ties. The strided walk covers
// offsets sep..n-sep only, so the nearest eligible peg is always sampled.
func (s *Sequencer) bestCandidate() (best int, bestScore float64, ok bool) {
	n := len(s.layout)
	sep := max(1, s.params.MinLoopSeparation)
	best = -1
	for d := sep; d <= n-sep; d += s.stride {
		t := (s.current + d) % n
		if t == s.previous {
			continue
		}
		score := s.score(s.cache.Pixels(s.current, t))
		s.evaluated++
		if best < 0 || score > bestScore || (score == bestScore && t < best) {
			best, bestScore = t, score
		}
	}
	return best, bestScore, best >= 0
}

// score sums the darkness the target still wants along a chord, weighted
// by importance. Pixels already as dark as the target contribute nothing.
func (s *Sequencer) score(px []int32) float64 {
	var total float64
	for _, p := range px {
		remaining := s.target[p] - (255 - s.ink[p])
		if remaining > 0 {
			total += remaining * s.weight[p]
		}
	}
	return total
}

func (s *Sequencer) apply(c Chord) {
	w := s.params.InkWeightPerChord
	for _, p := range s.cache.Pixels(c.From, c.To) {
		i := int(p)
		if i < 0 || i >= len(s.ink) {
			defect("pixel index %d out of range [0, %d)", i, len(s.ink))
			continue
		}
		v := s.ink[i] - w
		if v < 0 {
			v = 0
		} else if v > 255 {
			defect("ink %g above 255 at pixel %d", v, i)
			v = 255
		}
		s.ink[i] = v
	}
}

// Run steps until the run stops. The context is polled at the progress
// cadence; a cancelled run returns the context error and its partial state
// should be discarded.
func (s *Sequencer) Run(ctx context.Context, progress ProgressFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	interval := s.params.ProgressInterval
	for {
		if _, ok := s.Step(); !ok {
			break
		}
		if s.onStep != nil {
			s.onStep(s.ink)
		}
		if n := len(s.chords); n%interval == 0 {
			if progress != nil {
				progress(n, s.params.MaxChords, s.Chords())
			}
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("synthesis abandoned after %d chords: %w", n, err)
			}
		}
	}
	return nil
}

// residual returns the total darkness the target still wants.
func (s *Sequencer) residual() float64 {
	rem := make([]float64, len(s.target))
	for i := range rem {
		rem[i] = max(0, s.target[i]-(255-s.ink[i]))
	}
	return floats.Sum(rem)
}

// Result assembles the run outcome. The chord slice is copied.
func (s *Sequencer) Result() *Result {
	chords := make([]Chord, len(s.chords))
	copy(chords, s.chords)
	return &Result{
		Pegs:       s.layout,
		Chords:     chords,
		Parameters: s.params,
		Stats: Stats{
			StopReason:      s.stop,
			Stride:          s.stride,
			CacheEntries:    s.cache.Len(),
			Rasterized:      s.cache.Rasterized(),
			Evaluated:       s.evaluated,
			InitialDarkness: floats.Sum(s.target),
			Residual:        s.residual(),
		},
	}
}
