package maskpaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurface_NewSurfaceIsTransparentBlack(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(4, 3)
	assert.True(s.Ready())
	assert.Equal(4, s.Bounds().Dx())
	assert.Equal(3, s.Bounds().Dy())

	pix, err := s.ReadPixels()
	assert.NoError(err)
	for _, v := range pix {
		assert.Equal(uint8(0), v)
	}
}

func TestSurface_UninitializedOperationsFail(t *testing.T) {
	assert := assert.New(t)

	var s *Surface
	assert.False(s.Ready())
	assert.ErrorIs(s.Clear(), ErrNoSurface)

	_, err := s.ReadPixels()
	assert.ErrorIs(err, ErrNoSurface)
	assert.ErrorIs(s.WritePixels(nil), ErrNoSurface)
	assert.ErrorIs(s.Draw(NewSurface(1, 1), 0, 0), ErrNoSurface)
	assert.ErrorIs(NewSurface(1, 1).Draw(s, 0, 0), ErrNoSurface)
}

func TestSurface_ClearResetsAllPixels(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(8, 8)
	for i := range s.Image().Pix {
		s.Image().Pix[i] = 0xff
	}
	assert.NoError(s.Clear())

	for _, v := range s.Image().Pix {
		assert.Equal(uint8(0), v)
	}
}

func TestSurface_DrawReplacesCoveredPixels(t *testing.T) {
	assert := assert.New(t)

	dst := NewSurface(8, 8)
	for i := range dst.Image().Pix {
		dst.Image().Pix[i] = 0x80
	}
	src := NewSurface(2, 2)

	// A fully transparent source must still replace the destination pixels.
	assert.NoError(dst.Draw(src, 3, 3))

	i := dst.Image().PixOffset(3, 3)
	assert.Equal(uint8(0), dst.Image().Pix[i+3])

	i = dst.Image().PixOffset(0, 0)
	assert.Equal(uint8(0x80), dst.Image().Pix[i+3])
}

func TestSurface_PixelRoundTrip(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(4, 4)
	pix, err := s.ReadPixels()
	assert.NoError(err)

	for i := range pix {
		pix[i] = uint8(i % 256)
	}
	assert.NoError(s.WritePixels(pix))

	got, err := s.ReadPixels()
	assert.NoError(err)
	assert.Equal(pix, got)

	// The returned slice is a copy, mutating it must not leak into the surface.
	got[0] = 0xff - got[0]
	again, err := s.ReadPixels()
	assert.NoError(err)
	assert.Equal(pix, again)
}

func TestSurface_WritePixelsLengthMismatch(t *testing.T) {
	s := NewSurface(4, 4)
	err := s.WritePixels(make([]uint8, 3))
	assert.Error(t, err)
}
