package maskpaint

import (
	"image/color"
	"math"

	"github.com/esimov/maskpaint/utils"
)

// Point is a position in surface local pixel coordinates.
type Point struct {
	X, Y float64
}

// Stamp fills a disc of the given radius centered at pt with a flat color.
// The disc covers the full 2π sweep without anti-aliasing and the covered
// pixels are fully replaced. Pixels falling outside the surface are clipped.
func Stamp(s *Surface, pt Point, radius float64, col color.NRGBA) error {
	if !s.Ready() {
		return ErrNoSurface
	}
	bounds := s.img.Bounds()

	minX := utils.Max(int(math.Floor(pt.X-radius)), bounds.Min.X)
	maxX := utils.Min(int(math.Ceil(pt.X+radius)), bounds.Max.X-1)
	minY := utils.Max(int(math.Floor(pt.Y-radius)), bounds.Min.Y)
	maxY := utils.Min(int(math.Ceil(pt.Y+radius)), bounds.Max.Y-1)

	rsq := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - pt.X
			dy := float64(y) - pt.Y
			if dx*dx+dy*dy > rsq {
				continue
			}
			i := s.img.PixOffset(x, y)
			s.img.Pix[i+0] = col.R
			s.img.Pix[i+1] = col.G
			s.img.Pix[i+2] = col.B
			s.img.Pix[i+3] = col.A
		}
	}
	return nil
}

// StampPath applies Stamp for every point of the ordered sequence onto the
// same surface, using a single flat color for the whole batch.
func StampPath(s *Surface, pts []Point, radius float64, col color.NRGBA) error {
	if !s.Ready() {
		return ErrNoSurface
	}
	for _, pt := range pts {
		if err := Stamp(s, pt, radius, col); err != nil {
			return err
		}
	}
	return nil
}
