// Package image provides source image loading and the preprocessing that turns
// a photo into the working luminance and importance fields.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrImageDecode is matched by every error returned when a source image
// cannot be read or decoded.
var ErrImageDecode = errors.New("image: decode failed")

// DecodeError describes a source image that could not be decoded.
type DecodeError struct {
	Path string // Empty when decoding from a reader
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to decode image: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports ErrImageDecode as a match.
func (e *DecodeError) Is(target error) bool { return target == ErrImageDecode }

// Source is a decoded input photo.
type Source struct {
	Path   string      // Original file path, if loaded from disk
	Format string      // Format name reported by the decoder
	Image  image.Image // Decoded image data
}

// Width returns the image width in pixels.
func (s *Source) Width() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *Source) Height() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// Decode reads and decodes an image from r.
func Decode(r io.Reader) (*Source, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if b := img.Bounds(); b.Empty() {
		return nil, &DecodeError{Err: fmt.Errorf("empty image bounds %v", b)}
	}
	return &Source{Format: format, Image: img}, nil
}

// Load opens and decodes the image at path.
func Load(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer file.Close()

	src, err := Decode(file)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	src.Path = path
	return src, nil
}

// extensions maps file extensions to the registered decoder that reads them.
var extensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".tif":  "tiff",
	".tiff": "tiff",
	".bmp":  "bmp",
	".webp": "webp",
}

// SupportedFormats returns the accepted file extensions, sorted.
func SupportedFormats() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// FormatForPath returns the decoder name for path's extension, or false if
// no registered decoder handles it.
func FormatForPath(path string) (string, bool) {
	format, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return format, ok
}
