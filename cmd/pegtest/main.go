// Command pegtest generates a peg layout and prints it as a table.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"string-art/internal/config"
	"string-art/internal/pegs"
	"string-art/internal/synth"
	"string-art/pkg/geometry"
)

func main() {
	count := flag.Int("pegs", 200, "Number of pegs")
	tier := flag.String("tier", "", "Product tier (overrides -pegs)")
	size := flag.Int("size", 600, "Working image side in pixels")
	frame := flag.String("frame", "circle", "Frame shape: circle or rectangle")
	inset := flag.Float64("inset", 10, "Peg inset from the frame edge in pixels")
	maxCandidates := flag.Int("candidates", synth.DefaultMaxCandidates, "Candidate bound per step")
	flag.Parse()

	shape, err := pegs.ParseShape(*frame)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid frame: %v\n", err)
		os.Exit(1)
	}

	n := *count
	if *tier != "" {
		n, err = config.TierPegs(*tier)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid tier: %v\n", err)
			os.Exit(1)
		}
	}

	layout, err := pegs.Generate(n, *size, shape, *inset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Layout failed: %v\n", err)
		os.Exit(1)
	}

	params := synth.DefaultParams().WithPegCount(n).WithWorkingSize(*size).WithFrame(shape)
	params.MaxCandidates = *maxCandidates

	fmt.Printf("Frame: %s, %dx%d px, inset %.1f\n", shape, *size, *size, *inset)
	fmt.Printf("Pegs: %d\n", len(layout))
	fmt.Printf("Default loop separation: %d\n", params.Effective().MinLoopSeparation)
	fmt.Printf("Candidate stride: %d (bound %d)\n", params.Stride(), *maxCandidates)

	fmt.Printf("\n%-6s %10s %10s %10s\n", "Index", "X", "Y", "Gap")
	fmt.Println(strings.Repeat("-", 40))

	bounds := geometry.RectInt{X: 0, Y: 0, Width: *size, Height: *size}
	outside := 0
	var minGap, maxGap float64
	for i, p := range layout {
		if !bounds.Contains(p.Point().Round()) {
			outside++
		}
		next := layout[(i+1)%len(layout)]
		gap := p.Point().Distance(next.Point())
		if i == 0 || gap < minGap {
			minGap = gap
		}
		if gap > maxGap {
			maxGap = gap
		}
		fmt.Printf("%-6d %10.2f %10.2f %10.2f\n", p.Index, p.X, p.Y, gap)
	}

	c := geometry.Centroid(layout.Points())
	center := bounds.Center()
	fmt.Printf("\nCentroid: (%.2f, %.2f), frame center (%.2f, %.2f)\n", c.X, c.Y, center.X, center.Y)
	fmt.Printf("Gap: min %.2f, max %.2f px\n", minGap, maxGap)
	if outside > 0 {
		fmt.Fprintf(os.Stderr, "%d pegs fall outside the %dx%d frame\n", outside, *size, *size)
		os.Exit(1)
	}
}
