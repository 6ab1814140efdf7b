// Package instructions turns a synthesis result into the step list a person
// follows when threading the frame by hand.
package instructions

import (
	"bufio"
	"fmt"
	"io"

	"string-art/internal/synth"
)

// Step formats one threading step. Steps are numbered from 1.
func Step(i int, c synth.Chord) string {
	return fmt.Sprintf("Step %d: connect peg %d to peg %d", i, c.From, c.To)
}

// Steps returns one line per chord, in threading order.
func Steps(res *synth.Result) []string {
	steps := make([]string, len(res.Chords))
	for i, c := range res.Chords {
		steps[i] = Step(i+1, c)
	}
	return steps
}

// Header describes the board the steps refer to.
func Header(res *synth.Result) string {
	p := res.Parameters
	return fmt.Sprintf("%s frame, %d pegs numbered clockwise from 0, %d chords",
		p.FrameShape, len(res.Pegs), len(res.Chords))
}

// Write writes the header followed by every step.
func Write(w io.Writer, res *synth.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header(res))
	if len(res.Chords) > 0 {
		fmt.Fprintf(bw, "Start at peg %d\n", res.Chords[0].From)
	}
	fmt.Fprintln(bw)
	for i, c := range res.Chords {
		fmt.Fprintln(bw, Step(i+1, c))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write instructions: %w", err)
	}
	return nil
}
