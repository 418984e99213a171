package maskpaint

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var stampWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func TestStamp_FillsDisc(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(16, 16)
	assert.NoError(Stamp(s, Point{X: 8, Y: 8}, 4, stampWhite))

	img := s.Image()

	// Center and the cardinal points at the radius are covered.
	i := img.PixOffset(8, 8)
	assert.Equal(uint8(255), img.Pix[i+3])
	i = img.PixOffset(12, 8)
	assert.Equal(uint8(255), img.Pix[i+3])
	i = img.PixOffset(8, 4)
	assert.Equal(uint8(255), img.Pix[i+3])

	// A corner of the bounding box lies outside the disc.
	i = img.PixOffset(12, 12)
	assert.Equal(uint8(0), img.Pix[i+3])
}

func TestStamp_ClipsAtBorders(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(8, 8)
	assert.NoError(Stamp(s, Point{X: 0, Y: 0}, 4, stampWhite))

	img := s.Image()
	i := img.PixOffset(0, 0)
	assert.Equal(uint8(255), img.Pix[i+3])

	// A stamp entirely outside the surface touches nothing.
	s2 := NewSurface(8, 8)
	assert.NoError(Stamp(s2, Point{X: 100, Y: 100}, 4, stampWhite))
	for _, v := range s2.Image().Pix {
		assert.Equal(uint8(0), v)
	}
}

func TestStamp_OrderIndependence(t *testing.T) {
	assert := assert.New(t)

	pts := []Point{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 8, Y: 4}}
	fwd := NewSurface(16, 16)
	rev := NewSurface(16, 16)

	assert.NoError(StampPath(fwd, pts, 3, stampWhite))

	for i := len(pts) - 1; i >= 0; i-- {
		assert.NoError(Stamp(rev, pts[i], 3, stampWhite))
	}

	assert.Equal(fwd.Image().Pix, rev.Image().Pix)
}

func TestStamp_FullyReplacesPixels(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(8, 8)
	assert.NoError(Stamp(s, Point{X: 4, Y: 4}, 3, stampWhite))

	gray := color.NRGBA{R: 128, G: 128, B: 128, A: 64}
	assert.NoError(Stamp(s, Point{X: 4, Y: 4}, 3, gray))

	img := s.Image()
	i := img.PixOffset(4, 4)
	assert.Equal(uint8(128), img.Pix[i+0])
	assert.Equal(uint8(64), img.Pix[i+3])
}

func TestStamp_UninitializedSurface(t *testing.T) {
	var s *Surface
	assert.ErrorIs(t, Stamp(s, Point{}, 2, stampWhite), ErrNoSurface)
	assert.ErrorIs(t, StampPath(s, []Point{{}}, 2, stampWhite), ErrNoSurface)
}
