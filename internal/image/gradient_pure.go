//go:build !gocv

package image

func sobelMagnitude(lum []float64, size int) []float64 {
	return sobelKernel(lum, size)
}
