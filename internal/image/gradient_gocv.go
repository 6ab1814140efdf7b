//go:build gocv

package image

import (
	"gocv.io/x/gocv"
)

// sobelMagnitude returns hypot(gx, gy) of the 3x3 Sobel operator over a
// size x size field, computed with OpenCV. Border pixels are replicated.
func sobelMagnitude(lum []float64, size int) []float64 {
	src := gocv.NewMatWithSize(size, size, gocv.MatTypeCV32F)
	defer src.Close()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			src.SetFloatAt(y, x, float32(lum[y*size+x]))
		}
	}

	gx := gocv.NewMat()
	defer gx.Close()
	gocv.Sobel(src, &gx, gocv.MatTypeCV32F, 1, 0, 3, 1, 0, gocv.BorderReplicate)

	gy := gocv.NewMat()
	defer gy.Close()
	gocv.Sobel(src, &gy, gocv.MatTypeCV32F, 0, 1, 3, 1, 0, gocv.BorderReplicate)

	mag := gocv.NewMat()
	defer mag.Close()
	gocv.Magnitude(gx, gy, &mag)

	out := make([]float64, len(lum))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			out[y*size+x] = float64(mag.GetFloatAt(y, x))
		}
	}
	return out
}
