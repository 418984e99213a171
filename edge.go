package maskpaint

import (
	"errors"
	"image"
	"math"
)

// DefaultEdgeThreshold is the gradient magnitude above which a reference
// pixel counts as an edge.
const DefaultEdgeThreshold = 80.0

type kernel [][]int32

var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// SeedEdges detects the edges of the reference image with the Sobel
// operator and paints them white into the mask, keeping the regions the
// mask already marks. The reference image must match the surface bounds.
// See https://en.wikipedia.org/wiki/Sobel_operator
func SeedEdges(s *Surface, ref *image.NRGBA, threshold float64) error {
	if !s.Ready() {
		return ErrNoSurface
	}
	if ref == nil {
		return errors.New("no reference image to detect edges on")
	}
	bounds := s.Bounds()
	if ref.Bounds().Dx() != bounds.Dx() || ref.Bounds().Dy() != bounds.Dy() {
		return errors.New("reference image bounds do not match the mask")
	}
	dx, dy := bounds.Dx(), bounds.Dy()
	img := s.Image()

	lum := make([]int32, dx*dy)
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			i := ref.PixOffset(x, y)
			r := int32(ref.Pix[i+0])
			g := int32(ref.Pix[i+1])
			b := int32(ref.Pix[i+2])
			lum[y*dx+x] = (r + g + b) / 3
		}
	}

	for y := 1; y < dy-1; y++ {
		for x := 1; x < dx-1; x++ {
			// Convolve the 3x3 window with both kernels.
			var sumX, sumY int32
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					px := lum[(y+ky-1)*dx+(x+kx-1)]
					sumX += px * kernelX[ky][kx]
					sumY += px * kernelY[ky][kx]
				}
			}
			magnitude := math.Sqrt(float64(sumX*sumX) + float64(sumY*sumY))

			if magnitude > threshold {
				i := img.PixOffset(x, y)
				img.Pix[i+0] = 0xff
				img.Pix[i+1] = 0xff
				img.Pix[i+2] = 0xff
				img.Pix[i+3] = 0xff
			}
		}
	}
	return nil
}
