// Package imop implements the alpha composition operations used to build
// the visible mask overlay from the paint layers. The image/draw core
// package only implements the source-over-destination and source operators
// and neither of them can scale the source opacity, which the mask overlay
// needs to keep the reference image visible under the painted regions.
//
// The composition works on straight (non-premultiplied) alpha, matching
// the *image.NRGBA pixel layout used across the engine.
package imop

import (
	"image"
	"image/color"

	"github.com/esimov/maskpaint/utils"
)

const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
)

// Bitmap holds the composition result.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// NewBitmap initializes the composition result image.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp initializes a new composite operation, defaulting to source over.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Copy,
			SrcOver,
			DstOver,
		},
	}
}

// Set activates one of the supported composite operations.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the currently active composite operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composes src and dst into bitmap using the active operation.
// The source alpha is scaled by opacity before composing, which is how a
// paint layer is drawn at a reduced overlay opacity. When a blend mode is
// provided the composed color channels are additionally mixed with the
// backdrop using the selected blend formula.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, opacity float64, blend *Blend) {
	if bitmap == nil {
		bitmap = NewBitmap(src.Bounds())
	}
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()

	var rn, gn, bn, an float64

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			si := src.PixOffset(x, y)
			di := dst.PixOffset(x, y)

			rsn := float64(src.Pix[si+0]) / 255
			gsn := float64(src.Pix[si+1]) / 255
			bsn := float64(src.Pix[si+2]) / 255
			asn := float64(src.Pix[si+3]) / 255 * opacity

			rbn := float64(dst.Pix[di+0]) / 255
			gbn := float64(dst.Pix[di+1]) / 255
			bbn := float64(dst.Pix[di+2]) / 255
			abn := float64(dst.Pix[di+3]) / 255

			// applying the alpha composition formula
			switch op.current {
			case Copy:
				rn, gn, bn, an = rsn, gsn, bsn, asn
			case SrcOver:
				an = asn + abn*(1-asn)
				if an > 0 {
					rn = (asn*rsn + abn*rbn*(1-asn)) / an
					gn = (asn*gsn + abn*gbn*(1-asn)) / an
					bn = (asn*bsn + abn*bbn*(1-asn)) / an
				} else {
					rn, gn, bn = 0, 0, 0
				}
			case DstOver:
				an = abn + asn*(1-abn)
				if an > 0 {
					rn = (abn*rbn + asn*rsn*(1-abn)) / an
					gn = (abn*gbn + asn*gsn*(1-abn)) / an
					bn = (abn*bbn + asn*bsn*(1-abn)) / an
				} else {
					rn, gn, bn = 0, 0, 0
				}
			}

			// applying the blending mode over the composed color channels
			if blend != nil {
				switch blend.OpType {
				case Darken:
					rn = utils.Min(rn, rbn)
					gn = utils.Min(gn, gbn)
					bn = utils.Min(bn, bbn)
				case Lighten:
					rn = utils.Max(rn, rbn)
					gn = utils.Max(gn, gbn)
					bn = utils.Max(bn, bbn)
				case Screen:
					rn = 1 - (1-rn)*(1-rbn)
					gn = 1 - (1-gn)*(1-gbn)
					bn = 1 - (1-bn)*(1-bbn)
				case Multiply:
					rn = rn * rbn
					gn = gn * gbn
					bn = bn * bbn
				}
			}

			bitmap.Img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rn*255 + 0.5),
				G: uint8(gn*255 + 0.5),
				B: uint8(bn*255 + 0.5),
				A: uint8(an*255 + 0.5),
			})
		}
	}
}
