package maskpaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// gradientSurface fills a surface with every gray value from 0 to 255.
func gradientSurface() *Surface {
	s := NewSurface(16, 16)
	pix := s.Image().Pix
	for i := 0; i < len(pix); i += 4 {
		v := uint8(i / 4 % 256)
		pix[i+0] = v
		pix[i+1] = v
		pix[i+2] = v
		pix[i+3] = 255
	}
	return s
}

func TestTransform_FillBlackAndWhite(t *testing.T) {
	assert := assert.New(t)

	s := gradientSurface()
	assert.NoError(Transform(s, FillBlack))
	for i := 0; i < len(s.Image().Pix); i += 4 {
		assert.Equal(uint8(0), s.Image().Pix[i])
		assert.Equal(uint8(255), s.Image().Pix[i+3])
	}

	assert.NoError(Transform(s, FillWhite))
	for i := 0; i < len(s.Image().Pix); i += 4 {
		assert.Equal(uint8(255), s.Image().Pix[i])
	}
}

func TestTransform_InvertIsSelfInverse(t *testing.T) {
	assert := assert.New(t)

	s := gradientSurface()
	orig, err := s.ReadPixels()
	assert.NoError(err)

	assert.NoError(Transform(s, Invert))
	assert.NoError(Transform(s, Invert))

	got, err := s.ReadPixels()
	assert.NoError(err)
	assert.Equal(orig, got)
}

func TestTransform_FillIsIdempotent(t *testing.T) {
	assert := assert.New(t)

	s := gradientSurface()
	assert.NoError(Transform(s, FillBlack))
	once, err := s.ReadPixels()
	assert.NoError(err)

	assert.NoError(Transform(s, FillBlack))
	twice, err := s.ReadPixels()
	assert.NoError(err)
	assert.Equal(once, twice)
}

func TestTransform_Thresholds(t *testing.T) {
	assert := assert.New(t)

	below := BelowThreshold(224)
	assert.Equal(uint8(0), below(223))
	assert.Equal(uint8(255), below(224))
	assert.Equal(uint8(255), below(255))

	above := AboveThreshold(32)
	assert.Equal(uint8(255), above(33))
	assert.Equal(uint8(0), above(32))
	assert.Equal(uint8(0), above(0))
}

func TestTransform_LuminanceIsIntegerAverage(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(1, 1)
	pix := s.Image().Pix
	pix[0], pix[1], pix[2], pix[3] = 100, 150, 200, 255 // lum = 150

	var got uint8
	assert.NoError(Transform(s, func(lum uint8) uint8 {
		got = lum
		return lum
	}))
	assert.Equal(uint8(150), got)
	assert.Equal(uint8(150), pix[0])
	assert.Equal(uint8(150), pix[1])
	assert.Equal(uint8(150), pix[2])
	assert.Equal(uint8(255), pix[3])
}

func TestTransform_BlackInvertsToWhite(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(64, 64)
	assert.NoError(Transform(s, FillBlack))
	assert.NoError(Transform(s, Invert))
	assert.NoError(Transform(s, BelowThreshold(DefaultBlackThreshold)))

	// Inverted black is white, which stays white through the threshold.
	for i := 0; i < len(s.Image().Pix); i += 4 {
		assert.Equal(uint8(255), s.Image().Pix[i])
	}
}

func TestTransform_DarkGrayStaysBlackThroughWhiteThreshold(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(8, 8)
	pix := s.Image().Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0], pix[i+1], pix[i+2], pix[i+3] = 30, 30, 30, 255
	}

	assert.NoError(Transform(s, AboveThreshold(DefaultWhiteThreshold)))
	for i := 0; i < len(pix); i += 4 {
		assert.Equal(uint8(0), pix[i])
		assert.Equal(uint8(255), pix[i+3])
	}
}

func TestTransform_UninitializedSurface(t *testing.T) {
	var s *Surface
	assert.ErrorIs(t, Transform(s, Invert), ErrNoSurface)
}
