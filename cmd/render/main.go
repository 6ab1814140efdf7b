// Command render draws a saved project as a PNG preview and writes its
// threading instructions.
package main

import (
	"flag"
	"fmt"
	"os"

	"string-art/internal/config"
	"string-art/internal/instructions"
	"string-art/internal/preview"
	"string-art/internal/project"
	"string-art/internal/synth"
)

func main() {
	projPath := flag.String("project", "", "Path to project file")
	outPath := flag.String("out", "", "PNG output path (default <project>_preview.png)")
	stepsPath := flag.String("steps", "", "Instructions output path (default <project>_steps.txt, - for stdout)")
	configPath := flag.String("config", "", "YAML config with a render section")
	scale := flag.Float64("scale", 0, "Output pixels per working pixel")
	color := flag.String("color", "", "Thread color as #rrggbb")
	opacity := flag.Float64("opacity", 0, "Per-chord opacity (0-1]")
	showPegs := flag.Bool("pegs", false, "Draw peg markers")
	flag.Parse()

	if *projPath == "" {
		fmt.Println("Usage: render -project <path> [-out preview.png] [-steps steps.txt] [-scale 2]")
		os.Exit(1)
	}

	proj, err := project.Load(*projPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
		os.Exit(1)
	}
	if proj.Result == nil {
		fmt.Fprintf(os.Stderr, "Project %s has no result\n", *projPath)
		os.Exit(1)
	}
	res := proj.Result
	fmt.Printf("Loaded %s: %d pegs, %d chords (%s)\n",
		proj.Name, len(res.Pegs), len(res.Chords), proj.Generator)
	if src := proj.GetSourceImagePath(*projPath); src != "" {
		fmt.Printf("Source image: %s\n", src)
	}

	cfg := &config.File{}
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	flags := &config.File{Render: config.Render{
		ThreadColor:   *color,
		ThreadOpacity: *opacity,
		Scale:         *scale,
	}}
	if *showPegs {
		flags.Render.ShowPegs = showPegs
	}
	opts := flags.RenderOptions(cfg.RenderOptions(preview.DefaultOptions()))

	out := *outPath
	if out == "" {
		out = proj.GetPreviewPath(*projPath)
	}
	if err := preview.SavePNG(out, res, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}
	size := preview.Size(res, opts)
	fmt.Printf("Wrote %s (%dx%d)\n", out, size, size)

	steps := *stepsPath
	if steps == "" {
		steps = proj.GetStepsPath(*projPath)
	}
	if steps == "-" {
		err = instructions.Write(os.Stdout, res)
	} else {
		err = writeFile(steps, res)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write instructions: %v\n", err)
		os.Exit(1)
	}
	if steps != "-" {
		fmt.Printf("Wrote %s (%d steps)\n", steps, len(res.Chords))
	}
}

func writeFile(path string, res *synth.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := instructions.Write(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
