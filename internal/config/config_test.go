package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"string-art/internal/pegs"
	"string-art/internal/preview"
	"string-art/internal/synth"
)

const sample = `
synthesis:
  tier: large
  max_chords: 4000
  frame_shape: rectangle
  contrast_boost: 0
render:
  thread_color: "#1a1a1a"
  thread_opacity: 0.15
  show_pegs: true
`

func TestParseAndApply(t *testing.T) {
	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	p, err := f.Apply(synth.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 250, p.PegCount)
	assert.Equal(t, 250/12, p.Effective().MinLoopSeparation)
	assert.Equal(t, 4000, p.MaxChords)
	assert.Equal(t, pegs.Rectangle, p.FrameShape)
	assert.Zero(t, p.ContrastBoost, "explicit zero must override the default")
	assert.Equal(t, synth.DefaultParams().InkWeightPerChord, p.InkWeightPerChord)
	assert.NoError(t, p.Validate())

	o := f.RenderOptions(preview.DefaultOptions())
	assert.Equal(t, "#1a1a1a", o.ThreadColor)
	assert.Equal(t, 0.15, o.Opacity)
	assert.True(t, o.ShowPegs)
	assert.Equal(t, preview.DefaultOptions().Scale, o.Scale)
}

func TestApplyPegCountOverridesTier(t *testing.T) {
	f := &File{Synthesis: Synthesis{Tier: "small", PegCount: 180, MinLoopSeparation: 9}}
	p, err := f.Apply(synth.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 180, p.PegCount)
	assert.Equal(t, 9, p.MinLoopSeparation)
}

func TestApplyLayersKeepSeparation(t *testing.T) {
	file := &File{Synthesis: Synthesis{MinLoopSeparation: 40}}
	p, err := file.Apply(synth.DefaultParams())
	require.NoError(t, err)

	// A later layer that only changes the peg count, like -pegs or -tier.
	for _, layer := range []*File{
		{Synthesis: Synthesis{PegCount: 300}},
		{Synthesis: Synthesis{Tier: "large"}},
	} {
		got, err := layer.Apply(p)
		require.NoError(t, err)
		assert.Equal(t, 40, got.MinLoopSeparation)
		assert.Equal(t, 40, got.Effective().MinLoopSeparation)
	}
}

func TestApplyEmptyKeepsBase(t *testing.T) {
	base := synth.DefaultParams()
	p, err := (&File{}).Apply(base)
	require.NoError(t, err)
	assert.Equal(t, base, p)
	assert.Equal(t, preview.DefaultOptions(), (&File{}).RenderOptions(preview.DefaultOptions()))
}

func TestApplyErrors(t *testing.T) {
	_, err := (&File{Synthesis: Synthesis{Tier: "huge"}}).Apply(synth.DefaultParams())
	assert.ErrorIs(t, err, ErrUnknownTier)

	_, err = (&File{Synthesis: Synthesis{FrameShape: "hexagon"}}).Apply(synth.DefaultParams())
	assert.ErrorContains(t, err, "unknown frame shape")
}

func TestTiers(t *testing.T) {
	assert.Equal(t, []string{"small", "medium", "large"}, TierNames())
	for name, want := range map[string]int{"small": 150, "medium": 200, "large": 250} {
		got, err := TierPegs(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("synthesis:\n  pegs: 10\n"))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, &File{}, f)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", configFile)
	boost := 0.4
	show := false
	f := &File{
		Synthesis: Synthesis{Tier: "medium", WorkingSize: 500, ContrastBoost: &boost},
		Render:    Render{Scale: 2, ShowPegs: &show},
	}
	require.NoError(t, f.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	f, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, &File{}, f)

	path := DefaultPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("synthesis:\n  tier: small\n"), 0o644))

	f, err = LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "small", f.Synthesis.Tier)

	require.NoError(t, os.WriteFile(path, []byte("synthesis: [\n"), 0o644))
	_, err = LoadDefault()
	assert.Error(t, err)
}
