package maskpaint

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrNoSurface is returned when a drawing operation is invoked on a surface
// which has not been initialized yet. This is a lifecycle bug in the caller,
// the operation is aborted without touching any pixel data.
var ErrNoSurface = errors.New("surface is not initialized")

// Surface is an addressable 2D pixel buffer with four 8 bit channels per pixel.
// The dimensions are fixed for the whole session, a surface is resized only by
// recreating it.
type Surface struct {
	img *image.NRGBA
}

// NewSurface creates a new surface with the given dimensions.
// All the pixels are initialized to transparent black.
func NewSurface(width, height int) *Surface {
	return &Surface{
		img: image.NewNRGBA(image.Rect(0, 0, width, height)),
	}
}

// Ready reports whether the surface is backed by pixel storage.
// Callers must check the availability before invoking any drawing operation.
func (s *Surface) Ready() bool {
	return s != nil && s.img != nil
}

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle {
	if !s.Ready() {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// Image exposes the underlying pixel storage.
func (s *Surface) Image() *image.NRGBA {
	if !s.Ready() {
		return nil
	}
	return s.img
}

// Clear resets every pixel of the surface to transparent black.
func (s *Surface) Clear() error {
	if !s.Ready() {
		return ErrNoSurface
	}
	pix := s.img.Pix
	for i := range pix {
		pix[i] = 0
	}
	return nil
}

// Draw copies the source surface into s at the (dx, dy) destination offset.
// The covered pixels are fully replaced, the alpha channel included.
func (s *Surface) Draw(src *Surface, dx, dy int) error {
	if !s.Ready() || !src.Ready() {
		return ErrNoSurface
	}
	rect := src.img.Bounds().Add(image.Pt(dx, dy))
	draw.Draw(s.img, rect, src.img, image.Point{}, draw.Src)

	return nil
}

// DrawImage copies an external image source into s at the (dx, dy)
// destination offset, fully replacing the covered pixels.
func (s *Surface) DrawImage(src image.Image, dx, dy int) error {
	if !s.Ready() {
		return ErrNoSurface
	}
	rect := src.Bounds().Sub(src.Bounds().Min).Add(image.Pt(dx, dy))
	draw.Draw(s.img, rect, src, src.Bounds().Min, draw.Src)

	return nil
}

// ReadPixels returns a copy of the raw RGBA pixel data of the surface.
func (s *Surface) ReadPixels() ([]uint8, error) {
	if !s.Ready() {
		return nil, ErrNoSurface
	}
	pix := make([]uint8, len(s.img.Pix))
	copy(pix, s.img.Pix)

	return pix, nil
}

// WritePixels replaces the surface content with the provided raw pixel data.
// The buffer length must match the surface dimensions.
func (s *Surface) WritePixels(pix []uint8) error {
	if !s.Ready() {
		return ErrNoSurface
	}
	if len(pix) != len(s.img.Pix) {
		return fmt.Errorf("pixel buffer length mismatch: got %d, expected %d", len(pix), len(s.img.Pix))
	}
	copy(s.img.Pix, pix)

	return nil
}
