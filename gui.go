package maskpaint

import (
	"image"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"

	"gioui.org/f32"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	maxScreenX = 1366
	maxScreenY = 768
)

// Editor is the interactive mask painting window. It displays the
// reference image with the composite mask overlay on top and routes the
// pointer events into the canvas state machine. The engine itself never
// depends on the editor, the window is just one of its possible drivers.
type Editor struct {
	cfg struct {
		window struct {
			w     float64
			h     float64
			title string
		}
	}
	canvas *Canvas
	scale  float32
	cursor f32.Point
	hover  bool
}

// NewEditor initializes the Gio interface around the canvas.
func NewEditor(canvas *Canvas) *Editor {
	e := &Editor{canvas: canvas}
	e.initWindow(canvas.Layers().Width(), canvas.Layers().Height())

	return e
}

// initWindow computes the window size from the canvas dimensions,
// preserving the aspect ratio in case the canvas is larger than the
// predefined screen size.
func (e *Editor) initWindow(w, h int) {
	e.scale = getRatio(float64(w), float64(h))
	e.cfg.window.w = float64(w) * float64(e.scale)
	e.cfg.window.h = float64(h) * float64(e.scale)
	e.cfg.window.title = "Mask editor"
}

// Run is the core method of the Gio GUI application. It reacts to the
// window events until the window gets closed, flushing any pending mask
// save on the way out.
func (e *Editor) Run() error {
	w := app.NewWindow(app.Title(e.cfg.window.title), app.Size(
		unit.Dp(e.cfg.window.w),
		unit.Dp(e.cfg.window.h),
	))

	var ops op.Ops
	for ev := range w.Events() {
		switch ev := ev.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, ev)
			e.processEvents(gtx)
			e.draw(gtx)
			w.Invalidate()
			ev.Frame(gtx.Ops)
		case key.Event:
			if ev.State == key.Press {
				e.handleKey(w, ev)
			}
		case system.DestroyEvent:
			if err := e.canvas.Flush(); err != nil {
				return err
			}
			return ev.Err
		}
	}
	return nil
}

// processEvents feeds the queued pointer events into the canvas state
// machine. Leaving the drawable region ends the stroke unconditionally,
// resuming requires a new press.
func (e *Editor) processEvents(gtx C) {
	for _, ev := range gtx.Events(e) {
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pt := e.canvasPoint(pe.Position)

		switch pe.Type {
		case pointer.Press:
			e.canvas.PointerDown(pt)
		case pointer.Drag:
			e.cursor = pe.Position
			e.canvas.PointerMove(pt)
		case pointer.Move:
			e.cursor = pe.Position
			e.hover = true
			e.canvas.PointerMove(pt)
		case pointer.Release:
			e.canvas.PointerUp()
		case pointer.Leave, pointer.Cancel:
			e.hover = false
			e.canvas.PointerLeave()
		}
	}
}

// handleKey maps the keyboard shortcuts onto the canvas actions.
func (e *Editor) handleKey(w *app.Window, ev key.Event) {
	brush := e.canvas.Brush()

	switch ev.Name {
	case key.NameEscape:
		w.Perform(system.ActionClose)
	case "Z":
		e.canvas.Undo()
	case "B":
		e.canvas.FillBlack()
	case "W":
		e.canvas.FillWhite()
	case "I":
		e.canvas.Invert()
	case "G":
		e.canvas.GrayToBlack()
	case "T":
		e.canvas.GrayToWhite()
	case "F":
		e.canvas.Feather()
	case "E":
		e.canvas.SeedEdges()
	case "[":
		brush.SetSize(brush.Size() - 1)
	case "]":
		brush.SetSize(brush.Size() + 1)
	}
}

// draw renders the reference image and the composite overlay, registering
// the pointer input area over the whole drawable region.
func (e *Editor) draw(gtx C) {
	area := clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops)
	pointer.InputOp{
		Tag:   e,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Leave,
	}.Add(gtx.Ops)
	area.Pop()

	if e.scale != 1 {
		op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(e.scale, e.scale))).Add(gtx.Ops)
	}

	if bg := e.canvas.Background(); bg != nil {
		drawImage(gtx, bg)
	}
	drawImage(gtx, e.canvas.Composite())

	if e.hover {
		e.drawCursor(gtx)
	}
}

// canvasPoint converts a window position to surface local coordinates.
func (e *Editor) canvasPoint(pos f32.Point) Point {
	return Point{
		X: float64(pos.X / e.scale),
		Y: float64(pos.Y / e.scale),
	}
}
