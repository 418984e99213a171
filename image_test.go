package maskpaint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage_EncodeMaskRoundTrip(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(12, 9)
	assert.NoError(Transform(s, FillBlack))
	assert.NoError(Stamp(s, Point{X: 6, Y: 4}, 3, stampWhite))

	data, err := EncodeMask(s)
	assert.NoError(err)
	assert.NotEmpty(data)

	img, err := DecodeImage(bytes.NewReader(data))
	assert.NoError(err)
	assert.Equal(12, img.Bounds().Dx())
	assert.Equal(9, img.Bounds().Dy())

	// PNG keeps the mask lossless.
	restored := NewSurface(12, 9)
	assert.NoError(restored.DrawImage(img, 0, 0))

	want, err := s.ReadPixels()
	assert.NoError(err)
	got, err := restored.ReadPixels()
	assert.NoError(err)
	assert.Equal(want, got)
}

func TestImage_EncodeMaskUninitializedSurface(t *testing.T) {
	var s *Surface
	_, err := EncodeMask(s)
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestImage_DecodeImageInvalidData(t *testing.T) {
	_, err := DecodeImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
