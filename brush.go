package maskpaint

import (
	"image/color"
	"sync"

	"github.com/esimov/maskpaint/utils"
)

// Brush configuration limits and defaults.
const (
	MinBrushSize = 1
	MaxBrushSize = 64

	DefaultBrushColor    = 255
	DefaultBrushSize     = 8
	DefaultBrushStrength = 0.5
)

// Brush holds the shared painting configuration: the gray value painted into
// the mask, the stamp radius and the stroke opacity. The engine only reads
// the brush, writes come from the outside (usually the UI controls) and are
// observed by the subsequent rasterizer calls.
type Brush struct {
	mu       sync.RWMutex
	color    uint8
	size     int
	strength float64
}

// NewBrush creates a brush with the default configuration.
func NewBrush() *Brush {
	return &Brush{
		color:    DefaultBrushColor,
		size:     DefaultBrushSize,
		strength: DefaultBrushStrength,
	}
}

// SetColor sets the gray value painted by the brush, clamped to [0, 255].
func (b *Brush) SetColor(c int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.color = uint8(utils.Clamp(c, 0, 255))
}

// Color returns the gray value painted by the brush.
func (b *Brush) Color() uint8 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.color
}

// SetSize sets the stamp radius in pixels, clamped to [MinBrushSize, MaxBrushSize].
func (b *Brush) SetSize(size int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.size = utils.Clamp(size, MinBrushSize, MaxBrushSize)
}

// Size returns the stamp radius in pixels.
func (b *Brush) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.size
}

// SetStrength sets the stroke opacity, clamped to [0, 1].
func (b *Brush) SetStrength(strength float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.strength = utils.Clamp(strength, 0.0, 1.0)
}

// Strength returns the stroke opacity.
func (b *Brush) Strength() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.strength
}

// RGBA returns the flat stamp color of the brush at call time.
// The brush gray value fills the color channels and the strength the alpha.
func (b *Brush) RGBA() color.NRGBA {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return color.NRGBA{
		R: b.color,
		G: b.color,
		B: b.color,
		A: uint8(b.strength * 255),
	}
}
