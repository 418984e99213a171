package maskpaint

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/esimov/maskpaint/imop"
)

// DefaultOverlayOpacity is the opacity the committed mask is drawn with
// into the composite view, keeping the reference image readable under the
// painted regions.
const DefaultOverlayOpacity = 0.75

// LayerSet owns the four paint surfaces sharing the same fixed dimensions:
// the committed mask buffer, the transient brush preview, the single undo
// snapshot and the derived composite view. The composite is never a source
// of truth, it is rebuilt from the other layers on every change and it is
// never serialized.
type LayerSet struct {
	width  int
	height int

	opacity    float64
	background image.Image

	brush     *Surface
	buffer    *Surface
	undo      *Surface
	composite *Surface

	op    *imop.Composite
	blend *imop.Blend
}

// NewLayerSet creates the paint surfaces at the given dimensions.
func NewLayerSet(width, height int) *LayerSet {
	return &LayerSet{
		width:     width,
		height:    height,
		opacity:   DefaultOverlayOpacity,
		brush:     NewSurface(width, height),
		buffer:    NewSurface(width, height),
		undo:      NewSurface(width, height),
		composite: NewSurface(width, height),
		op:        imop.InitOp(),
	}
}

// Width returns the layer width in pixels.
func (l *LayerSet) Width() int { return l.width }

// Height returns the layer height in pixels.
func (l *LayerSet) Height() int { return l.height }

// Buffer returns the surface holding the committed mask strokes.
// This is the persisted source of truth.
func (l *LayerSet) Buffer() *Surface { return l.buffer }

// BrushLayer returns the transient brush preview surface.
func (l *LayerSet) BrushLayer() *Surface { return l.brush }

// UndoLayer returns the surface holding the most recent buffer snapshot.
func (l *LayerSet) UndoLayer() *Surface { return l.undo }

// CompositeLayer returns the derived display surface.
func (l *LayerSet) CompositeLayer() *Surface { return l.composite }

// Background returns the display-only reference image.
func (l *LayerSet) Background() image.Image { return l.background }

// SetOverlayOpacity adjusts the opacity the committed mask is composed with.
func (l *LayerSet) SetOverlayOpacity(opacity float64) {
	if opacity < 0 || opacity > 1 {
		opacity = DefaultOverlayOpacity
	}
	l.opacity = opacity
}

// SetBlend activates a blend mode for the composite view.
// An empty mode disables blending.
func (l *LayerSet) SetBlend(mode string) {
	if mode == "" {
		l.blend = nil
		return
	}
	blend := imop.NewBlend()
	blend.Set(mode)
	l.blend = blend
}

// Snapshot copies the committed buffer into the undo slot.
// The undo surface is replaced in full, never partially updated.
func (l *LayerSet) Snapshot() error {
	return l.undo.Draw(l.buffer, 0, 0)
}

// Restore copies the undo snapshot back into the committed buffer.
func (l *LayerSet) Restore() error {
	return l.buffer.Draw(l.undo, 0, 0)
}

// Recomposite rebuilds the composite view from the paint layers.
// The committed buffer is drawn at the overlay opacity and the brush
// preview at full opacity, the latter only when no stroke is active so the
// live brush dot does not render over the committed path while painting.
func (l *LayerSet) Recomposite(showBrush bool) error {
	if err := l.composite.Clear(); err != nil {
		return err
	}
	bmp := &imop.Bitmap{Img: l.composite.Image()}
	l.op.Draw(bmp, l.buffer.Image(), l.composite.Image(), l.opacity, l.blend)

	if showBrush {
		l.op.Draw(bmp, l.brush.Image(), l.composite.Image(), 1.0, nil)
	}
	return nil
}

// LoadBackground replaces the display-only reference image, releasing the
// previous one. The reference is rescaled to the layer dimensions so the
// overlay lines up with it pixel by pixel.
func (l *LayerSet) LoadBackground(img image.Image) {
	if img != nil {
		bounds := img.Bounds()
		if bounds.Dx() != l.width || bounds.Dy() != l.height {
			img = imaging.Resize(img, l.width, l.height, imaging.Lanczos)
		}
	}
	l.background = img
}

// LoadMask hydrates the committed buffer from a decoded mask image at full
// opacity, replacing any prior content. A mask not matching the layer
// dimensions is rescaled first.
func (l *LayerSet) LoadMask(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() != l.width || bounds.Dy() != l.height {
		img = imaging.Resize(img, l.width, l.height, imaging.Lanczos)
	}
	return l.buffer.DrawImage(img, 0, 0)
}
