package maskpaint

// DefaultFeatherRadius is the blur radius used by the feather action.
const DefaultFeatherRadius = 4

// Feather softens the mask edges by blurring the luminance channel with a
// sliding window mean, run once horizontally and once vertically. The window
// is clamped at the surface borders so the border pixels keep their weight.
// The result is written back as an opaque gray.
func Feather(s *Surface, radius int) error {
	if !s.Ready() {
		return ErrNoSurface
	}
	if radius < 1 {
		return nil
	}
	bounds := s.Bounds()
	dx, dy := bounds.Dx(), bounds.Dy()
	img := s.Image()

	lum := make([]uint32, dx*dy)
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			i := img.PixOffset(x, y)
			r := uint32(img.Pix[i+0])
			g := uint32(img.Pix[i+1])
			b := uint32(img.Pix[i+2])
			lum[y*dx+x] = (r + g + b) / 3
		}
	}

	blurAxis(lum, dx, dy, radius, true)
	blurAxis(lum, dx, dy, radius, false)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			v := uint8(lum[y*dx+x])
			i := img.PixOffset(x, y)
			img.Pix[i+0] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 0xff
		}
	}
	return nil
}

// blurAxis runs the sliding window mean over every row (horizontal) or
// every column (vertical) of the luminance plane in place.
func blurAxis(lum []uint32, dx, dy, radius int, horizontal bool) {
	length, lines, stride := dx, dy, 1
	if !horizontal {
		length, lines, stride = dy, dx, dx
	}
	if radius > length-1 {
		radius = length - 1
	}
	window := uint32(2*radius + 1)
	line := make([]uint32, length)

	for l := 0; l < lines; l++ {
		base := l * dx
		if !horizontal {
			base = l
		}
		for i := 0; i < length; i++ {
			line[i] = lum[base+i*stride]
		}

		// Seed the window as if the first pixel extended past the border.
		var sum uint32
		sum = line[0] * uint32(radius+1)
		for i := 1; i <= radius; i++ {
			sum += line[i]
		}

		for i := 0; i < length; i++ {
			lum[base+i*stride] = sum / window

			in := i + radius + 1
			if in > length-1 {
				in = length - 1
			}
			out := i - radius
			if out < 0 {
				out = 0
			}
			sum += line[in] - line[out]
		}
	}
}
