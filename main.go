// Package main provides the entry point for the string-art synthesizer.
//
// It reads a photo, computes a chord sequence and writes a project file,
// optionally with a PNG preview and a threading step list alongside.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"string-art/internal/config"
	artimage "string-art/internal/image"
	"string-art/internal/instructions"
	"string-art/internal/preview"
	"string-art/internal/project"
	"string-art/internal/synth"
	"string-art/internal/version"
)

const appTitle = "string-art"

type options struct {
	imagePath   string
	configPath  string
	outPath     string
	previewPath string
	stepsPath   string
	fieldsDir   string
	timeout     time.Duration
	verbose     bool

	// Explicitly set flags, layered over the config file.
	overrides config.Synthesis
}

func parseFlags() (*options, bool) {
	o := &options{}
	flag.StringVar(&o.imagePath, "image", "", "Path to source image (PNG, JPEG, GIF, TIFF, BMP or WebP)")
	flag.StringVar(&o.configPath, "config", "", "Path to YAML config (default "+config.DefaultPath()+")")
	flag.StringVar(&o.outPath, "out", "", "Project file to write (default <image>"+project.Extension+")")
	flag.StringVar(&o.previewPath, "preview", "", "Write a PNG preview to this path")
	flag.StringVar(&o.stepsPath, "steps", "", "Write threading instructions to this path")
	flag.StringVar(&o.fieldsDir, "fields", "", "Write the working and importance fields as PNGs into this directory")
	flag.DurationVar(&o.timeout, "timeout", 0, "Abandon the run after this long (0 = no limit)")
	flag.BoolVar(&o.verbose, "v", false, "Verbose synthesis logging")
	showVersion := flag.Bool("version", false, "Print version and exit")

	tier := flag.String("tier", "", "Product tier: small, medium or large")
	pegCount := flag.Int("pegs", 0, "Number of pegs (overrides -tier)")
	maxChords := flag.Int("chords", 0, "Maximum number of chords")
	sep := flag.Int("sep", 0, "Minimum ring distance between chord ends")
	ink := flag.Float64("ink", 0, "Darkening per chord, 0-255")
	frame := flag.String("frame", "", "Frame shape: circle or rectangle")
	size := flag.Int("size", 0, "Working image side in pixels")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String(appTitle))
		return nil, false
	}

	o.overrides = config.Synthesis{
		Tier:              *tier,
		PegCount:          *pegCount,
		MaxChords:         *maxChords,
		MinLoopSeparation: *sep,
		InkWeight:         *ink,
		FrameShape:        *frame,
		WorkingSize:       *size,
	}
	return o, true
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	opts, ok := parseFlags()
	if !ok {
		return
	}
	if opts.imagePath == "" {
		fmt.Println("Usage: string-art -image <path> [-tier small|medium|large] [-preview out.png] [-steps out.txt]")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	if err := run(ctx, opts); err != nil {
		log.Fatalf("%s: %v", appTitle, err)
	}
}

func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

func run(ctx context.Context, opts *options) error {
	if opts.verbose {
		synth.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	params, err := cfg.Apply(synth.DefaultParams())
	if err != nil {
		return err
	}
	params, err = (&config.File{Synthesis: opts.overrides}).Apply(params)
	if err != nil {
		return err
	}

	if _, ok := artimage.FormatForPath(opts.imagePath); !ok {
		return fmt.Errorf("unsupported image %s (want one of %v)", opts.imagePath, artimage.SupportedFormats())
	}
	if err := params.Validate(); err != nil {
		return err
	}

	log.Printf("Starting %s v%s: %s", appTitle, version.Version, opts.imagePath)
	src, err := artimage.Load(opts.imagePath)
	if err != nil {
		return err
	}
	log.Printf("Loaded %s image: %dx%d pixels", src.Format, src.Width(), src.Height())
	log.Printf("%d pegs on a %s frame, up to %d chords, working size %d",
		params.PegCount, params.FrameShape, params.MaxChords, params.WorkingSize)

	if opts.fieldsDir != "" {
		if err := writeFields(opts.fieldsDir, src, params); err != nil {
			return err
		}
		log.Printf("Saved working and importance fields to %s", opts.fieldsDir)
	}

	start := time.Now()
	res, err := synth.Synthesize(ctx, src.Image, params, synth.WithProgress(printProgress))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	log.Printf("Computed %d chords in %s (%s)",
		len(res.Chords), time.Since(start).Round(time.Millisecond), res.Stats.StopReason)

	outPath := opts.outPath
	if outPath == "" {
		dir := filepath.Dir(opts.imagePath)
		outPath = filepath.Join(dir, project.NameFromPath(opts.imagePath)+project.Extension)
	}
	proj := project.New(project.NameFromPath(opts.imagePath), res)
	proj.Tier = opts.overrides.Tier
	if proj.Tier == "" {
		proj.Tier = cfg.Synthesis.Tier
	}
	proj.SetSourceImage(outPath, opts.imagePath)
	if err := proj.Save(outPath); err != nil {
		return err
	}
	log.Printf("Saved project %s", outPath)

	if opts.previewPath != "" {
		if err := preview.SavePNG(opts.previewPath, res, cfg.RenderOptions(preview.DefaultOptions())); err != nil {
			return err
		}
		log.Printf("Saved preview %s", opts.previewPath)
	}

	if opts.stepsPath != "" {
		if err := writeSteps(opts.stepsPath, res); err != nil {
			return err
		}
		log.Printf("Saved %d steps to %s", len(res.Chords), opts.stepsPath)
	}
	return nil
}

// writeFields saves the preprocessed luminance and importance fields the
// sequencer matches against.
func writeFields(dir string, src *artimage.Source, params synth.Parameters) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	p := params.Effective()
	work, imp := artimage.Preprocess(src.Image, p.WorkingSize, p.PreprocessOptions())
	fields := map[string]image.Image{
		"working.png":    work.ToGray(),
		"importance.png": imp.ToGray(),
	}
	for name, img := range fields {
		if err := savePNG(filepath.Join(dir, name), img); err != nil {
			return err
		}
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func printProgress(step, total int, _ []synth.Chord) {
	fmt.Fprintf(os.Stderr, "\r  %d/%d chords", step, total)
}

func writeSteps(path string, res *synth.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := instructions.Write(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
