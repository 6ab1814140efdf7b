// Package config loads the YAML configuration file shared by the string-art
// binaries. Every field is optional; a zero field keeps the built-in default.
//
// Example:
//
//	synthesis:
//	  tier: large
//	  max_chords: 4000
//	  frame_shape: rectangle
//	render:
//	  thread_color: "#1a1a1a"
//	  thread_opacity: 0.15
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"string-art/internal/pegs"
	"string-art/internal/preview"
	"string-art/internal/synth"
)

const (
	appDir     = "string-art"
	configFile = "config.yaml"
)

// ErrUnknownTier is returned for a tier name outside Tiers.
var ErrUnknownTier = errors.New("config: unknown tier")

// Tiers maps product tier names to peg counts.
var Tiers = map[string]int{
	"small":  150,
	"medium": 200,
	"large":  250,
}

// TierNames returns the tier names ordered by peg count.
func TierNames() []string {
	names := make([]string, 0, len(Tiers))
	for name := range Tiers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return Tiers[names[i]] < Tiers[names[j]] })
	return names
}

// TierPegs returns the peg count for a tier.
func TierPegs(name string) (int, error) {
	n, ok := Tiers[name]
	if !ok {
		return 0, fmt.Errorf("%w %q (want one of %v)", ErrUnknownTier, name, TierNames())
	}
	return n, nil
}

// Synthesis overrides synth.Parameters.
type Synthesis struct {
	Tier              string   `yaml:"tier,omitempty"`
	PegCount          int      `yaml:"peg_count,omitempty"`
	MaxChords         int      `yaml:"max_chords,omitempty"`
	MinLoopSeparation int      `yaml:"min_loop_separation,omitempty"`
	InkWeight         float64  `yaml:"ink_weight,omitempty"`
	FrameShape        string   `yaml:"frame_shape,omitempty"`
	WorkingSize       int      `yaml:"working_size,omitempty"`
	PegInset          *float64 `yaml:"peg_inset,omitempty"`
	ContrastBoost     *float64 `yaml:"contrast_boost,omitempty"`
	EdgeWeight        *float64 `yaml:"edge_weight,omitempty"`
	DarkWeight        *float64 `yaml:"dark_weight,omitempty"`
}

// Render overrides preview.Options.
type Render struct {
	ThreadColor   string  `yaml:"thread_color,omitempty"`
	ThreadOpacity float64 `yaml:"thread_opacity,omitempty"`
	LineWidth     float64 `yaml:"line_width,omitempty"`
	ShowPegs      *bool   `yaml:"show_pegs,omitempty"`
	Scale         float64 `yaml:"scale,omitempty"`
}

// File is the parsed configuration.
type File struct {
	Synthesis Synthesis `yaml:"synthesis"`
	Render    Render    `yaml:"render"`
}

// DefaultPath returns ~/.config/string-art/config.yaml (or the platform
// equivalent).
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, configFile)
}

// Parse decodes a configuration. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &f, nil
}

// Load reads the configuration at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadDefault reads the configuration at DefaultPath.
// Returns an empty File if it doesn't exist.
func LoadDefault() (*File, error) {
	f, err := Load(DefaultPath())
	if errors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}
	return f, err
}

// Save writes the configuration to path, creating its directory.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Apply layers the synthesis section over base. A tier sets the peg count
// and an explicit peg_count overrides the tier. A loop separation set by an
// earlier layer survives a peg count change. The result is not validated;
// synth.Synthesize does that.
func (f *File) Apply(base synth.Parameters) (synth.Parameters, error) {
	s := f.Synthesis
	p := base

	if s.Tier != "" {
		n, err := TierPegs(s.Tier)
		if err != nil {
			return base, err
		}
		p = p.WithPegCount(n)
	}
	if s.PegCount != 0 {
		p = p.WithPegCount(s.PegCount)
	}
	if s.MinLoopSeparation != 0 {
		p = p.WithMinLoopSeparation(s.MinLoopSeparation)
	}
	if s.MaxChords != 0 {
		p = p.WithMaxChords(s.MaxChords)
	}
	if s.InkWeight != 0 {
		p = p.WithInkWeight(s.InkWeight)
	}
	if s.FrameShape != "" {
		shape, err := pegs.ParseShape(s.FrameShape)
		if err != nil {
			return base, fmt.Errorf("config: %w", err)
		}
		p = p.WithFrame(shape)
	}
	if s.WorkingSize != 0 {
		p = p.WithWorkingSize(s.WorkingSize)
	}
	if s.PegInset != nil {
		p.PegInset = *s.PegInset
	}
	if s.ContrastBoost != nil {
		p.ContrastBoost = *s.ContrastBoost
	}
	if s.EdgeWeight != nil {
		p.EdgeWeight = *s.EdgeWeight
	}
	if s.DarkWeight != nil {
		p.DarkWeight = *s.DarkWeight
	}
	return p, nil
}

// RenderOptions layers the render section over base.
func (f *File) RenderOptions(base preview.Options) preview.Options {
	r := f.Render
	o := base
	if r.ThreadColor != "" || r.ThreadOpacity != 0 {
		color, opacity := o.ThreadColor, o.Opacity
		if r.ThreadColor != "" {
			color = r.ThreadColor
		}
		if r.ThreadOpacity != 0 {
			opacity = r.ThreadOpacity
		}
		o = o.WithThread(color, opacity)
	}
	if r.LineWidth != 0 {
		o.LineWidth = r.LineWidth
	}
	if r.ShowPegs != nil {
		o = o.WithPegs(*r.ShowPegs)
	}
	if r.Scale != 0 {
		o = o.WithScale(r.Scale)
	}
	return o
}
