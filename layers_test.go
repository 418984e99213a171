package maskpaint

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayerSet_SurfacesShareDimensions(t *testing.T) {
	assert := assert.New(t)

	l := NewLayerSet(20, 10)
	assert.Equal(20, l.Width())
	assert.Equal(10, l.Height())

	for _, s := range []*Surface{l.Buffer(), l.BrushLayer(), l.UndoLayer(), l.CompositeLayer()} {
		assert.Equal(20, s.Bounds().Dx())
		assert.Equal(10, s.Bounds().Dy())
	}
}

func TestLayerSet_RecompositeAppliesOverlayOpacity(t *testing.T) {
	assert := assert.New(t)

	l := NewLayerSet(4, 4)
	assert.NoError(Transform(l.Buffer(), FillWhite))
	assert.NoError(l.Recomposite(true))

	// White at the default 0.75 opacity over a cleared composite:
	// the alpha scales down, the color channels stay at full value.
	img := l.CompositeLayer().Image()
	i := img.PixOffset(1, 1)
	assert.Equal(uint8(255), img.Pix[i+0])
	assert.Equal(uint8(255), img.Pix[i+1])
	assert.Equal(uint8(255), img.Pix[i+2])
	assert.Equal(uint8(191), img.Pix[i+3])
}

func TestLayerSet_RecompositeHidesBrushWhilePainting(t *testing.T) {
	assert := assert.New(t)

	l := NewLayerSet(8, 8)
	assert.NoError(Stamp(l.BrushLayer(), Point{X: 4, Y: 4}, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))

	assert.NoError(l.Recomposite(false))
	img := l.CompositeLayer().Image()
	i := img.PixOffset(4, 4)
	assert.Equal(uint8(0), img.Pix[i+3])

	assert.NoError(l.Recomposite(true))
	i = img.PixOffset(4, 4)
	assert.Equal(uint8(255), img.Pix[i+3])
}

func TestLayerSet_SnapshotAndRestore(t *testing.T) {
	assert := assert.New(t)

	l := NewLayerSet(8, 8)
	assert.NoError(Transform(l.Buffer(), FillBlack))
	orig, err := l.Buffer().ReadPixels()
	assert.NoError(err)

	assert.NoError(l.Snapshot())
	assert.NoError(Transform(l.Buffer(), FillWhite))
	assert.NoError(l.Restore())

	got, err := l.Buffer().ReadPixels()
	assert.NoError(err)
	assert.Equal(orig, got)
}

func TestLayerSet_LoadBackgroundRescales(t *testing.T) {
	assert := assert.New(t)

	l := NewLayerSet(10, 10)
	l.LoadBackground(image.NewNRGBA(image.Rect(0, 0, 40, 40)))

	bg := l.Background()
	assert.NotNil(bg)
	assert.Equal(10, bg.Bounds().Dx())
	assert.Equal(10, bg.Bounds().Dy())
}

func TestLayerSet_LoadMaskReplacesBuffer(t *testing.T) {
	assert := assert.New(t)

	l := NewLayerSet(8, 8)
	assert.NoError(Transform(l.Buffer(), FillBlack))

	mask := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(mask.Pix); i += 4 {
		mask.Pix[i+0], mask.Pix[i+1], mask.Pix[i+2], mask.Pix[i+3] = 255, 255, 255, 255
	}
	assert.NoError(l.LoadMask(mask))

	img := l.Buffer().Image()
	i := img.PixOffset(0, 0)
	assert.Equal(uint8(255), img.Pix[i+0])
	assert.Equal(uint8(255), img.Pix[i+3])
}

func TestLayerSet_InvalidOpacityFallsBackToDefault(t *testing.T) {
	assert := assert.New(t)

	l := NewLayerSet(4, 4)
	l.SetOverlayOpacity(1.5)

	assert.NoError(Transform(l.Buffer(), FillWhite))
	assert.NoError(l.Recomposite(true))

	img := l.CompositeLayer().Image()
	i := img.PixOffset(0, 0)
	assert.Equal(uint8(191), img.Pix[i+3])
}
