package maskpaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrush_Defaults(t *testing.T) {
	assert := assert.New(t)

	b := NewBrush()
	assert.Equal(uint8(DefaultBrushColor), b.Color())
	assert.Equal(DefaultBrushSize, b.Size())
	assert.Equal(DefaultBrushStrength, b.Strength())
}

func TestBrush_ClampsConfiguration(t *testing.T) {
	assert := assert.New(t)

	b := NewBrush()
	b.SetSize(0)
	assert.Equal(MinBrushSize, b.Size())
	b.SetSize(1000)
	assert.Equal(MaxBrushSize, b.Size())

	b.SetColor(-10)
	assert.Equal(uint8(0), b.Color())
	b.SetColor(300)
	assert.Equal(uint8(255), b.Color())

	b.SetStrength(-0.5)
	assert.Equal(0.0, b.Strength())
	b.SetStrength(2.0)
	assert.Equal(1.0, b.Strength())
}

func TestBrush_RGBAUsesStrengthAsAlpha(t *testing.T) {
	assert := assert.New(t)

	b := NewBrush()
	b.SetColor(200)
	b.SetStrength(1.0)

	col := b.RGBA()
	assert.Equal(uint8(200), col.R)
	assert.Equal(uint8(200), col.G)
	assert.Equal(uint8(200), col.B)
	assert.Equal(uint8(255), col.A)

	b.SetStrength(0.0)
	assert.Equal(uint8(0), b.RGBA().A)
}
