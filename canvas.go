package maskpaint

import (
	"bytes"
	"errors"
	"image"
	"sync"
)

// PaintState describes the paint/undo state machine of the canvas.
// Exactly one state holds at any instant.
type PaintState int

const (
	// StateClean means the buffer matches the last successful save.
	StateClean PaintState = iota
	// StatePainting means a stroke is in progress.
	StatePainting
	// StateDirty means the buffer holds unsaved changes.
	StateDirty
)

func (s PaintState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StatePainting:
		return "painting"
	case StateDirty:
		return "dirty"
	}
	return "unknown"
}

// Canvas drives the paint/undo state machine over a layer set: pointer
// events commit strokes into the buffer, bulk transforms rewrite it in one
// pass and every mutation eventually reaches the save sink through the
// persistence throttle. The methods are safe to call from the UI event
// loop and the saver timer concurrently.
type Canvas struct {
	mu     sync.Mutex
	layers *LayerSet
	brush  *Brush
	saver  *Saver
	save   SaveFunc

	// BlackThreshold is the luminance below which GrayToBlack turns a
	// pixel black; WhiteThreshold the luminance above which GrayToWhite
	// turns a pixel white.
	BlackThreshold uint8
	WhiteThreshold uint8

	// FeatherRadius is the blur radius of the feather action and
	// EdgeThreshold the gradient magnitude cutoff of the edge seeding.
	FeatherRadius int
	EdgeThreshold float64

	state      PaintState
	dirty      bool
	seq        uint64
	maskGen    uint64
	bufferInit bool
}

// NewCanvas creates a canvas with the given dimensions. The save function
// receives the encoded mask whenever the throttled persistence fires; a
// nil save function disables persistence.
func NewCanvas(width, height int, brush *Brush, save SaveFunc) *Canvas {
	if brush == nil {
		brush = NewBrush()
	}
	c := &Canvas{
		layers:         NewLayerSet(width, height),
		brush:          brush,
		save:           save,
		BlackThreshold: DefaultBlackThreshold,
		WhiteThreshold: DefaultWhiteThreshold,
		FeatherRadius:  DefaultFeatherRadius,
		EdgeThreshold:  DefaultEdgeThreshold,
		state:          StateClean,
	}
	if save != nil {
		c.saver = NewSaver(DefaultSaveDelay, c.doSave)
	} else {
		c.saver = NewSaver(DefaultSaveDelay, nil)
	}
	return c
}

// Layers exposes the layer set owned by the canvas.
func (c *Canvas) Layers() *LayerSet { return c.layers }

// Brush returns the shared brush configuration.
func (c *Canvas) Brush() *Brush { return c.brush }

// Saver returns the persistence throttle owned by the canvas.
func (c *Canvas) Saver() *Saver { return c.saver }

// State returns the current paint state.
func (c *Canvas) State() PaintState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Dirty reports whether the buffer has mutated since the last
// successful save.
func (c *Canvas) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dirty
}

// Composite returns the derived display image.
func (c *Canvas) Composite() *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.layers.CompositeLayer().Image()
}

// Background returns the display-only reference image.
func (c *Canvas) Background() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.layers.Background()
}

// LoadBackground replaces the display-only reference image, releasing the
// previous one and dropping any in-flight mask decode started before the
// swap. On the first load without a prior mask the buffer is cleared to
// blank, which counts as an unsaved change.
func (c *Canvas) LoadBackground(img image.Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maskGen++
	c.layers.LoadBackground(img)

	if !c.bufferInit {
		if err := c.layers.Buffer().Clear(); err != nil {
			return err
		}
		c.markDirty()
	}
	return c.recomposite()
}

// LoadMaskImage hydrates the buffer from an already decoded mask image,
// replacing any prior content. A hydrated mask matches its saved encode,
// so the canvas stays clean.
func (c *Canvas) LoadMaskImage(img image.Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maskGen++
	if err := c.layers.LoadMask(img); err != nil {
		return err
	}
	c.bufferInit = true

	return c.recomposite()
}

// LoadMask decodes an encoded mask blob and hydrates the buffer with it.
// The decode runs outside the caller's event turn; when several loads
// race only the most recent one is applied and a background replacement
// drops any in-flight decode. A failed decode leaves the buffer
// unchanged. The done callback, when not nil, receives the outcome.
func (c *Canvas) LoadMask(data []byte, done func(error)) {
	c.mu.Lock()
	c.maskGen++
	gen := c.maskGen
	c.mu.Unlock()

	go func() {
		var err error
		img, err := DecodeImage(bytes.NewReader(data))
		if err == nil {
			c.mu.Lock()
			if gen == c.maskGen {
				if err = c.layers.LoadMask(img); err == nil {
					c.bufferInit = true
					err = c.recomposite()
				}
			}
			c.mu.Unlock()
		}
		if done != nil {
			done(err)
		}
	}()
}

// PointerDown snapshots the buffer into the undo slot and begins a stroke.
// A pointer down while a stroke is already active is a no-op.
func (c *Canvas) PointerDown(pt Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePainting {
		return nil
	}
	if err := c.layers.Snapshot(); err != nil {
		return err
	}
	if err := c.layers.BrushLayer().Clear(); err != nil {
		return err
	}
	c.state = StatePainting

	return c.recomposite()
}

// PointerMove extends the active stroke with the given points, or moves
// the hover preview onto the brush layer when no stroke is active. The
// preview never mutates the buffer and never changes the dirty flag.
func (c *Canvas) PointerMove(pts ...Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(pts) == 0 {
		return nil
	}
	radius := float64(c.brush.Size())
	col := c.brush.RGBA()

	if c.state == StatePainting {
		if err := StampPath(c.layers.Buffer(), pts, radius, col); err != nil {
			return err
		}
		c.markDirty()
	} else {
		if err := c.layers.BrushLayer().Clear(); err != nil {
			return err
		}
		if err := Stamp(c.layers.BrushLayer(), pts[len(pts)-1], radius, col); err != nil {
			return err
		}
	}
	return c.recomposite()
}

// PointerUp ends the active stroke and requests a save when the buffer
// holds unsaved changes.
func (c *Canvas) PointerUp() error {
	return c.endStroke()
}

// PointerLeave unconditionally ends the active stroke: the pointer
// re-entering the drawable region requires a new pointer down to resume
// painting.
func (c *Canvas) PointerLeave() error {
	return c.endStroke()
}

func (c *Canvas) endStroke() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.layers.BrushLayer().Clear(); err != nil {
		return err
	}
	if c.state == StatePainting {
		if c.dirty {
			c.state = StateDirty
			c.saver.Request()
		} else {
			c.state = StateClean
		}
	}
	return c.recomposite()
}

// Undo restores the buffer to the snapshot taken at the most recent
// stroke begin, discarding every stroke and bulk transform applied since.
// The undo is itself an unsaved change.
func (c *Canvas) Undo() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.layers.Restore(); err != nil {
		return err
	}
	c.markDirty()

	return c.recomposite()
}

// FillBlack paints the whole mask black.
func (c *Canvas) FillBlack() error {
	return c.flood(FillBlack)
}

// FillWhite paints the whole mask white.
func (c *Canvas) FillWhite() error {
	return c.flood(FillWhite)
}

// Invert flips the mask luminance.
func (c *Canvas) Invert() error {
	return c.flood(Invert)
}

// GrayToBlack turns every pixel darker than the black threshold black and
// everything else white.
func (c *Canvas) GrayToBlack() error {
	return c.flood(BelowThreshold(c.BlackThreshold))
}

// GrayToWhite turns every pixel brighter than the white threshold white
// and everything else black.
func (c *Canvas) GrayToWhite() error {
	return c.flood(AboveThreshold(c.WhiteThreshold))
}

// Feather softens the painted mask edges by blurring the buffer.
func (c *Canvas) Feather() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := Feather(c.layers.Buffer(), c.FeatherRadius); err != nil {
		return err
	}
	c.markDirty()

	return c.recomposite()
}

// SeedEdges paints the edges of the reference image white into the mask.
func (c *Canvas) SeedEdges() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bg := c.layers.Background()
	if bg == nil {
		return errors.New("no reference image loaded")
	}
	if err := SeedEdges(c.layers.Buffer(), imgToNRGBA(bg), c.EdgeThreshold); err != nil {
		return err
	}
	c.markDirty()

	return c.recomposite()
}

// flood applies a transform over the whole buffer. The bulk transforms are
// not gated by the painting state.
func (c *Canvas) flood(fn TransformFn) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := Transform(c.layers.Buffer(), fn); err != nil {
		return err
	}
	c.markDirty()

	return c.recomposite()
}

// MaskFaces detects faces on the reference image and paints them into the
// buffer as white discs. It returns the number of masked faces.
func (c *Canvas) MaskFaces(f *FaceMasker) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bg := c.layers.Background()
	if bg == nil {
		return 0, errors.New("no reference image loaded")
	}
	dets := f.Detect(imgToNRGBA(bg))

	var masked int
	for _, det := range dets {
		if det.Q < f.QThreshold {
			continue
		}
		pt := Point{X: float64(det.Col), Y: float64(det.Row)}
		if err := Stamp(c.layers.Buffer(), pt, float64(det.Scale)/2, maskWhite); err != nil {
			return masked, err
		}
		masked++
	}
	if masked > 0 {
		c.markDirty()
	}
	return masked, c.recomposite()
}

// markDirty records a buffer mutation. Outside of an active stroke the
// transition to dirty schedules a save; during a stroke the request is
// deferred to the stroke end so a burst of pointer moves coalesces into
// a single save window. Caller must hold the lock.
func (c *Canvas) markDirty() {
	c.seq++
	c.dirty = true
	c.bufferInit = true

	if c.state != StatePainting {
		c.state = StateDirty
		c.saver.Request()
	}
}

// recomposite rebuilds the composite view, hiding the brush preview while
// a stroke is active. Caller must hold the lock.
func (c *Canvas) recomposite() error {
	return c.layers.Recomposite(c.state != StatePainting)
}

// doSave encodes the buffer and hands it to the save sink. The dirty flag
// clears only when the sink accepted the blob and no newer mutation
// happened while it was being delivered; on any failure it stays set so
// the next dirty signal retries the save.
func (c *Canvas) doSave() error {
	c.mu.Lock()
	if c.save == nil || !c.dirty {
		c.mu.Unlock()
		return nil
	}
	seq := c.seq
	data, err := EncodeMask(c.layers.Buffer())
	c.mu.Unlock()

	if err != nil {
		return err
	}
	if err := c.save(data); err != nil {
		return err
	}

	c.mu.Lock()
	if c.seq == seq {
		c.dirty = false
		if c.state != StatePainting {
			c.state = StateClean
		}
	}
	c.mu.Unlock()

	return nil
}

// Flush forces any pending save to run immediately.
func (c *Canvas) Flush() error {
	return c.saver.Flush()
}
