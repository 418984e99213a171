package maskpaint

// TransformFn maps the luminance of a pixel to a new channel value.
type TransformFn func(lum uint8) uint8

// Default luminance thresholds of the gray-to-black and gray-to-white
// transforms. Both are tunables on the Canvas.
const (
	DefaultBlackThreshold = 224
	DefaultWhiteThreshold = 32
)

// FillBlack paints every pixel black regardless of its luminance.
func FillBlack(uint8) uint8 { return 0 }

// FillWhite paints every pixel white regardless of its luminance.
func FillWhite(uint8) uint8 { return 255 }

// Invert flips the pixel luminance.
func Invert(lum uint8) uint8 { return 255 - lum }

// BelowThreshold returns a transform which turns every pixel darker than
// the threshold black and everything else white.
func BelowThreshold(threshold uint8) TransformFn {
	return func(lum uint8) uint8 {
		if lum < threshold {
			return 0
		}
		return 255
	}
}

// AboveThreshold returns a transform which turns every pixel brighter than
// the threshold white and everything else black.
func AboveThreshold(threshold uint8) TransformFn {
	return func(lum uint8) uint8 {
		if lum > threshold {
			return 255
		}
		return 0
	}
}

// Transform applies fn in place over every pixel of the surface.
// The pixel luminance is the integer average of the color channels and the
// mapped value is written back into all three of them at full opacity.
func Transform(s *Surface, fn TransformFn) error {
	if !s.Ready() {
		return ErrNoSurface
	}
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		lum := uint8((int(pix[i+0]) + int(pix[i+1]) + int(pix[i+2])) / 3)
		v := fn(lum)

		pix[i+0] = v
		pix[i+1] = v
		pix[i+2] = v
		pix[i+3] = 255
	}
	return nil
}
