package image

import "math"

// sobelKernel returns hypot(gx, gy) of the 3x3 Sobel operator over a
// size x size field in pure Go. Border pixels are replicated.
func sobelKernel(lum []float64, size int) []float64 {
	out := make([]float64, len(lum))
	at := func(x, y int) float64 {
		x = min(max(x, 0), size-1)
		y = min(max(y, 0), size-1)
		return lum[y*size+x]
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			tl, tc, tr := at(x-1, y-1), at(x, y-1), at(x+1, y-1)
			ml, mr := at(x-1, y), at(x+1, y)
			bl, bc, br := at(x-1, y+1), at(x, y+1), at(x+1, y+1)

			gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy := (bl + 2*bc + br) - (tl + 2*tc + tr)
			out[y*size+x] = math.Hypot(gx, gy)
		}
	}
	return out
}
