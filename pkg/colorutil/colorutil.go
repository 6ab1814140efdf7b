// Package colorutil provides shared color utilities for the string-art synthesizer.
package colorutil

import (
	"image/color"
	"math"
)

// White is the board color.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Rec. 709 luma weights.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Luminance returns the perceptual luminance (0-255) of 8-bit RGB components.
// Gray input maps to itself exactly.
func Luminance(r, g, b uint8) float64 {
	if r == g && g == b {
		return float64(r)
	}
	return Clamp(lumaR*float64(r)+lumaG*float64(g)+lumaB*float64(b), 0, 255)
}

// SCurve applies a smoothstep contrast curve to a luminance value (0-255).
// Strength 0 leaves the value unchanged, 1 applies the full curve.
// Black and white are fixed points.
func SCurve(l, strength float64) float64 {
	if strength <= 0 {
		return l
	}
	t := Clamp(l/255, 0, 1)
	s := t * t * (3 - 2*t)
	return Clamp(255*(t+strength*(s-t)), 0, 255)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
