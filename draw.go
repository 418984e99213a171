package maskpaint

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/esimov/maskpaint/utils"
)

// brushRing is the color of the brush size indicator drawn at the cursor.
var brushRing = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb4}

// drawImage paints the image at the origin in surface coordinates.
func drawImage(gtx C, img image.Image) {
	defer clip.Rect(img.Bounds()).Push(gtx.Ops).Pop()
	paint.NewImageOp(img).Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// drawCursor draws a circle outline at the cursor position indicating the
// brush size.
func (e *Editor) drawCursor(gtx C) {
	radius := float32(e.canvas.Brush().Size())
	x := e.cursor.X / e.scale
	y := e.cursor.Y / e.scale
	orig := f32.Pt(x-radius, y)

	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(orig)
	path.Arc(f32.Pt(radius, 0), f32.Pt(radius, 0), 2*math.Pi)
	path.Close()

	defer clip.Stroke{Path: path.End(), Width: 1}.Op().Push(gtx.Ops).Pop()
	paint.ColorOp{Color: brushRing}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// getRatio returns the scale factor which fits the canvas dimensions into
// the predefined screen size.
func getRatio(w, h float64) float32 {
	var r float64 = 1
	if w > maxScreenX && h > maxScreenY {
		wr := maxScreenX / w // width ratio
		hr := maxScreenY / h // height ratio

		r = utils.Max(wr, hr)
	}
	return float32(r)
}
