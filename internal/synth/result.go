package synth

import "string-art/internal/pegs"

// Chord is one accepted peg-to-peg connection, in sequence order.
type Chord struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// StopReason records why the sequencer stopped.
type StopReason string

const (
	StopMaxChords     StopReason = "max_chords"     // Chord budget exhausted
	StopNoImprovement StopReason = "no_improvement" // Best candidate scored <= Epsilon
	StopNoCandidates  StopReason = "no_candidates"  // Separation left nothing to score
)

// Stats carries run diagnostics. Every field is deterministic.
type Stats struct {
	StopReason      StopReason `json:"stop_reason"`
	Stride          int        `json:"stride"`
	CacheEntries    int        `json:"cache_entries"`
	Rasterized      int        `json:"rasterized"`
	Evaluated       int        `json:"candidates_evaluated"`
	InitialDarkness float64    `json:"initial_darkness"`
	Residual        float64    `json:"residual_darkness"`
}

// Result is the outcome of a synthesis run. Parameters holds the effective
// settings, after defaults and the loop separation clamp were applied.
type Result struct {
	Pegs       pegs.Layout `json:"pegs"`
	Chords     []Chord     `json:"chords"`
	Parameters Parameters  `json:"parameters"`
	Stats      Stats       `json:"stats"`
}
