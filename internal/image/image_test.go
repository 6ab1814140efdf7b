package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"string-art/internal/pegs"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(7, 3, color.Black)))

	src, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", src.Format)
	assert.Equal(t, 7, src.Width())
	assert.Equal(t, 3, src.Height())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrImageDecode))

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Empty(t, de.Path)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrImageDecode))
	assert.Contains(t, err.Error(), path)
}

func TestFormatForPath(t *testing.T) {
	format, ok := FormatForPath("portrait.JPG")
	assert.True(t, ok)
	assert.Equal(t, "jpeg", format)

	format, ok = FormatForPath("scan.tif")
	assert.True(t, ok)
	assert.Equal(t, "tiff", format)

	_, ok = FormatForPath("notes.txt")
	assert.False(t, ok)

	assert.Contains(t, SupportedFormats(), ".webp")
	assert.IsIncreasing(t, SupportedFormats())
}

func TestPreprocessWhiteImage(t *testing.T) {
	for _, shape := range []pegs.Shape{pegs.Circle, pegs.Rectangle} {
		opts := DefaultOptions()
		opts.Shape = shape
		work, imp := Preprocess(solid(40, 30, color.White), 100, opts)

		require.Len(t, work.Pix, 100*100)
		require.Len(t, imp.Pix, 100*100)
		for i := range work.Pix {
			require.Equal(t, 255.0, work.Pix[i], "pixel %d luminance", i)
			require.Equal(t, 0.0, imp.Pix[i], "pixel %d importance", i)
		}
	}
}

func TestPreprocessCircleMask(t *testing.T) {
	opts := DefaultOptions()
	work, imp := Preprocess(solid(50, 50, color.Black), 100, opts)

	// Corners lie outside the inscribed circle.
	assert.Equal(t, 255.0, work.Pix[0*100+0])
	assert.Equal(t, 255.0, work.Pix[99*100+99])
	assert.Equal(t, 0.0, imp.Pix[0])

	// The center stays black and is fully important.
	assert.Equal(t, 0.0, work.Pix[50*100+50])
	assert.InDelta(t, 0.5, imp.Pix[50*100+50], 1e-9, "flat black: dark weight only")

	opts.Shape = pegs.Rectangle
	work, _ = Preprocess(solid(50, 50, color.Black), 100, opts)
	assert.Equal(t, 0.0, work.Pix[0*100+0], "rectangle frames are not masked")
}

func TestLetterboxCoversSquare(t *testing.T) {
	// Left half black, right half white, twice as wide as tall.
	src := solid(200, 100, color.White)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			src.Set(x, y, color.Black)
		}
	}

	sq := Letterbox(src, 100)
	require.Equal(t, image.Rect(0, 0, 100, 100), sq.Bounds())

	// Scale is 1 (cover by height), so the square shows x in [50, 150).
	assert.Equal(t, uint8(0), sq.RGBAAt(10, 50).R)
	assert.Equal(t, uint8(255), sq.RGBAAt(90, 50).R)
}

func TestLetterboxTransparentIsWhite(t *testing.T) {
	sq := Letterbox(image.NewRGBA(image.Rect(0, 0, 20, 20)), 100)
	c := sq.RGBAAt(50, 50)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c)
}

func TestSobelVerticalEdge(t *testing.T) {
	const size = 8
	lum := make([]float64, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x >= size/2 {
				lum[y*size+x] = 255
			}
		}
	}
	grad := sobelKernel(lum, size)

	assert.Equal(t, 0.0, grad[3*size+0], "flat region")
	assert.Equal(t, 0.0, grad[3*size+7], "flat region")
	assert.InDelta(t, 4*255, grad[3*size+3], 1e-9)
	assert.InDelta(t, 4*255, grad[3*size+4], 1e-9)
}

func TestImportanceFavorsEdges(t *testing.T) {
	// Black square on white: the square border is an edge, its interior is
	// flat dark, and the background is flat white.
	src := solid(100, 100, color.White)
	for y := 30; y < 70; y++ {
		for x := 30; x < 70; x++ {
			src.Set(x, y, color.Black)
		}
	}
	opts := DefaultOptions()
	opts.Shape = pegs.Rectangle
	opts.ContrastBoost = 0
	_, imp := Preprocess(src, 100, opts)

	edge := imp.Pix[50*100+30]
	interior := imp.Pix[50*100+50]
	background := imp.Pix[50*100+5]

	assert.Equal(t, 0.0, background)
	assert.InDelta(t, 0.5, interior, 1e-9)
	assert.Greater(t, edge, interior)
	assert.LessOrEqual(t, edge, 1.0)
}

func TestToGray(t *testing.T) {
	work := &Working{Size: 2, Pix: []float64{0, 255, 127.6, 300}}
	g := work.ToGray()
	assert.Equal(t, []uint8{0, 255, 128, 255}, g.Pix)

	imp := &Importance{Size: 2, Pix: []float64{0, 1, 0.5, 0.25}}
	assert.Equal(t, []uint8{0, 255, 128, 64}, imp.ToGray().Pix)
}
